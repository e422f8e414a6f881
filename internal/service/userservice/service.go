package userservice

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/password"
)

// msgInvalidCredentials é a única mensagem de falha de login: não revela se o email existe.
const msgInvalidCredentials = "Credenciais inválidas."

// PasswordHasher é o contrato do pacote internal/pkg/password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
	CompareDummy(plain string)
}

// SessionManager é a parte do gerenciador de sessões usada no login/logout.
type SessionManager interface {
	Create(ctx context.Context, user domain.User) (domain.Session, error)
	Destroy(ctx context.Context, token string) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo            domain.UserRepository
	Sessions            SessionManager
	Hasher              PasswordHasher
	AllowRoleOnRegister bool
	logger              logger.Logger
}

// NewService cria uma nova instância do UserService.
func NewService(repo domain.UserRepository, sessions SessionManager, hasher PasswordHasher, allowRole bool, log logger.Logger) *UserService {
	return &UserService{
		UserRepo:            repo,
		Sessions:            sessions,
		Hasher:              hasher,
		AllowRoleOnRegister: allowRole,
		logger:              log,
	}
}

// NormalizeEmail aplica trim e minúsculas; o email é o identificador do usuário.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register registra um novo usuário no sistema.
func (s *UserService) Register(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	email := NormalizeEmail(reg.Email)

	// 1. Validação de presença e formato
	if email == "" || strings.TrimSpace(reg.Password) == "" {
		return domain.User{}, apperror.NewInvalidInputError("Email e senha são obrigatórios.")
	}
	if !validEmail(email) {
		return domain.User{}, apperror.NewInvalidInputError("Email em formato inválido.")
	}
	if len(reg.Password) > password.MaxBytes {
		return domain.User{}, apperror.NewInvalidInputError("A senha deve ter no máximo 72 bytes.")
	}

	// 2. Papel: padrão user; admin só quando a configuração permite
	role := domain.RoleUser
	if reg.Role != "" {
		if !reg.Role.Valid() {
			return domain.User{}, apperror.NewInvalidInputError("Papel inválido: use user ou admin.")
		}
		if reg.Role != domain.RoleUser && !s.AllowRoleOnRegister {
			s.logger.Warn("Tentativa de registro com papel privilegiado.", map[string]interface{}{"email": email, "role": reg.Role})
			return domain.User{}, apperror.NewForbiddenError("Não é permitido escolher o papel no registro.")
		}
		role = reg.Role
	}

	// 3. Hashing da Senha
	hash, err := s.Hasher.Hash(reg.Password)
	if errors.Is(err, password.ErrTooLong) {
		return domain.User{}, apperror.NewInvalidInputError("A senha deve ter no máximo 72 bytes.")
	}
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Persistência: email duplicado chega como ConflictError do repositório
	user, err := s.UserRepo.Save(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Verify confere email e senha. Email inexistente e senha errada produzem o mesmo erro.
func (s *UserService) Verify(ctx context.Context, email, plain string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || plain == "" {
		return domain.User{}, apperror.NewInvalidInputError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Mesmo custo de bcrypt de um usuário existente.
			s.Hasher.CompareDummy(plain)
			return domain.User{}, apperror.NewAuthFailureError(msgInvalidCredentials)
		}
		return domain.User{}, err
	}

	if err := s.Hasher.Compare(user.PasswordHash, plain); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.logger.Error("Hash de senha inválido no banco.", err)
		}
		return domain.User{}, apperror.NewAuthFailureError(msgInvalidCredentials)
	}

	return user, nil
}

// Login autentica o usuário e abre uma sessão.
func (s *UserService) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResponse, error) {
	// 1. Verificar credenciais
	user, err := s.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	// 2. Criar sessão
	sess, err := s.Sessions.Create(ctx, user)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return domain.LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: user}, nil
}

// Logout encerra a sessão; encerrar uma sessão inexistente não é erro.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}

// Profile devolve o registro atual do usuário da sessão.
func (s *UserService) Profile(ctx context.Context, userID string) (domain.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}
