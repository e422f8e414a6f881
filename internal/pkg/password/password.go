package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes é o maior tamanho de senha que o bcrypt aceita.
const MaxBytes = 72

var (
	// ErrMismatch indica que a senha não corresponde ao hash.
	ErrMismatch = errors.New("senha não confere")
	// ErrTooLong indica senha com mais de MaxBytes bytes.
	ErrTooLong = errors.New("senha excede 72 bytes")
)

// dummyHash é comparado quando o usuário não existe, para que o tempo de
// resposta não revele se o email está cadastrado.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gocontrole-dummy-password"), bcrypt.DefaultCost)

// Hasher gera e verifica hashes bcrypt.
type Hasher struct {
	Cost int
}

// NewHasher cria um Hasher com o custo informado (0 usa bcrypt.DefaultCost).
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{Cost: cost}
}

// Hash gera um hash salgado e de mão única para a senha.
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare retorna ErrMismatch quando a senha não confere.
// Senhas acima de MaxBytes nunca foram aceitas por Hash e não conferem.
func (h *Hasher) Compare(hash, plain string) error {
	if len(plain) > MaxBytes {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// CompareDummy executa uma comparação descartável.
func (h *Hasher) CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
