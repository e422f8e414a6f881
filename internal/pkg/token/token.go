package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Size é o número de bytes aleatórios de um token de sessão (256 bits).
const Size = 32

// Generator emite tokens de sessão opacos.
type Generator interface {
	NewToken() (string, error)
}

// RandomGenerator lê de crypto/rand e codifica em base64url sem padding.
type RandomGenerator struct{}

// NewToken gera um token imprevisível.
func (RandomGenerator) NewToken() (string, error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("falha ao gerar token de sessão: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
