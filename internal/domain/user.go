package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Papéis aceitos.
const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Valid reporta se o papel pertence ao conjunto user|admin.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Email    string   `json:"email" example:"ana@example.com"`
	Password string   `json:"password" example:"segredo123"`
	Role     UserRole `json:"role,omitempty" example:"user"`
}

// Credentials é o payload de login.
type Credentials struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"segredo123"`
}

// LoginResponse é devolvido por POST /login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}
