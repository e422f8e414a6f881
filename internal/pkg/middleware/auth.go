package middleware

import (
	"context"
	"net/http"
	"strings"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/response"
	"gocontrole/internal/session"
)

// ContextKey evita colisão com chaves de contexto de outros pacotes.
type ContextKey int

const (
	SessionKey ContextKey = iota
	TokenKey
)

// SessionValidator define o contrato de validação necessário para o middleware.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (domain.Session, error)
}

// ExtractToken lê o token do cookie de sessão ou, na falta dele, do header
// Authorization: Bearer <token>.
func ExtractToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// NewAuthMiddleware valida a sessão da requisição e anexa a sessão e o token
// ao contexto. Sem sessão válida a resposta é 401.
func NewAuthMiddleware(sessions SessionValidator, cookieName string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := ExtractToken(r, cookieName)

			sess, err := sessions.Validate(r.Context(), tok)
			if err != nil {
				response.Error(w, r, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, TokenKey, tok)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extrai a sessão anexada pelo NewAuthMiddleware.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(domain.Session)
	return sess, ok
}

// TokenFromContext extrai o token da sessão autenticada.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(TokenKey).(string)
	return tok
}

// PermissionMiddleware exige que a sessão tenha um dos papéis informados.
// Sem sessão no contexto responde 401; papel errado responde 403.
func PermissionMiddleware(log logger.Logger, requiredRoles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária."))
				return
			}

			if err := session.RequireRole(sess, requiredRoles...); err != nil {
				log.Warn("Acesso negado por papel.", map[string]interface{}{
					"user_id": sess.UserID,
					"role":    sess.Role,
					"path":    r.URL.Path,
				})
				response.Error(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
