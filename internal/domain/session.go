package domain

import "time"

// Session liga um token opaco a uma identidade autenticada. O papel é uma
// cópia feita no login e não é relido do banco a cada requisição.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reporta se a sessão já venceu em now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
