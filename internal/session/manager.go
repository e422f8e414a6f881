package session

import (
	"context"
	"errors"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/token"
)

// Manager controla o ciclo de vida das sessões: Anônima -> Autenticada -> Encerrada.
type Manager struct {
	store  Store
	tokens token.Generator
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

// NewManager cria o gerenciador de sessões.
func NewManager(store Store, tokens token.Generator, ttl time.Duration, log logger.Logger) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

// Create emite um token novo para o usuário, copiando email e papel.
func (m *Manager) Create(ctx context.Context, user domain.User) (domain.Session, error) {
	tok, err := m.tokens.NewToken()
	if err != nil {
		return domain.Session{}, apperror.NewInternalError("falha ao gerar token de sessão", err)
	}

	now := m.now().UTC()
	sess := domain.Session{
		Token:     tok,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		m.logger.Error("Falha ao gravar sessão.", err)
		return domain.Session{}, apperror.NewInternalError("falha ao criar sessão", err)
	}

	m.logger.Info("Sessão criada.", map[string]interface{}{"user_id": user.ID})
	return sess, nil
}

// Validate é uma consulta pura: token ausente, desconhecido ou vencido vira UnauthorizedError.
func (m *Manager) Validate(ctx context.Context, tok string) (domain.Session, error) {
	if tok == "" {
		return domain.Session{}, apperror.NewUnauthorizedError("Sessão ausente.")
	}

	sess, err := m.store.Find(ctx, tok)
	if errors.Is(err, ErrNotFound) {
		return domain.Session{}, apperror.NewUnauthorizedError("Sessão inválida ou expirada.")
	}
	if err != nil {
		m.logger.Error("Falha ao consultar sessão.", err)
		return domain.Session{}, apperror.NewInternalError("falha ao validar sessão", err)
	}
	if sess.Expired(m.now()) {
		return domain.Session{}, apperror.NewUnauthorizedError("Sessão inválida ou expirada.")
	}
	return sess, nil
}

// Destroy encerra a sessão. Encerrar duas vezes não é erro.
func (m *Manager) Destroy(ctx context.Context, tok string) error {
	if tok == "" {
		return nil
	}
	if err := m.store.Delete(ctx, tok); err != nil {
		m.logger.Error("Falha ao remover sessão.", err)
		return apperror.NewInternalError("falha ao encerrar sessão", err)
	}
	return nil
}

// RequireRole devolve ForbiddenError quando o papel da sessão não está entre os permitidos.
func RequireRole(sess domain.Session, roles ...domain.UserRole) error {
	for _, r := range roles {
		if sess.Role == r {
			return nil
		}
	}
	return apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária.")
}

// Janitor expurga periodicamente as sessões vencidas até ctx ser cancelado.
func Janitor(ctx context.Context, store *SQLStore, every time.Duration, log logger.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx, time.Now())
			if err != nil {
				log.Error("Falha ao expurgar sessões vencidas.", err)
				continue
			}
			if n > 0 {
				log.Debug("Sessões vencidas removidas.", map[string]interface{}{"count": n})
			}
		}
	}
}
