package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gocontrole/internal/domain"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/database"
)

// ErrNotFound é devolvido pelo Store quando o token não existe.
var ErrNotFound = errors.New("sessão não encontrada")

// Store persiste sessões indexadas pelo token.
type Store interface {
	Save(ctx context.Context, s domain.Session) error
	Find(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// SQLStore guarda as sessões na tabela sessions.
type SQLStore struct {
	DB      *database.DB
	Timeout time.Duration
}

// NewSQLStore cria um Store sobre o banco da aplicação.
func NewSQLStore(db *database.DB, timeout time.Duration) *SQLStore {
	return &SQLStore{DB: db, Timeout: timeout}
}

func (s *SQLStore) Save(ctx context.Context, sess domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(
		`INSERT INTO sessions (token, user_id, email, role, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`),
		sess.Token, sess.UserID, sess.Email, string(sess.Role), sess.CreatedAt.UTC(), sess.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("falha ao gravar sessão: %w", err)
	}
	return nil
}

func (s *SQLStore) Find(ctx context.Context, token string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		sess domain.Session
		role string
	)
	err := s.DB.QueryRowContext(ctx, s.DB.Rebind(
		`SELECT token, user_id, email, role, created_at, expires_at FROM sessions WHERE token = ?`), token).
		Scan(&sess.Token, &sess.UserID, &sess.Email, &role,
			database.ScanTime(&sess.CreatedAt), database.ScanTime(&sess.ExpiresAt))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("falha ao buscar sessão: %w", err)
	}
	sess.Role = domain.UserRole(role)
	return sess, nil
}

func (s *SQLStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if _, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM sessions WHERE token = ?`), token); err != nil {
		return fmt.Errorf("falha ao remover sessão: %w", err)
	}
	return nil
}

// PurgeExpired remove as sessões vencidas e devolve quantas foram apagadas.
func (s *SQLStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("falha ao expurgar sessões: %w", err)
	}
	return res.RowsAffected()
}

const sessionCacheKey = "session:%s"

// CacheStore guarda as sessões no cache (Redis ou memória) com TTL até o vencimento.
type CacheStore struct {
	Cache cache.Client
	now   func() time.Time
}

// NewCacheStore cria um Store sobre o cache.Client.
func NewCacheStore(c cache.Client) *CacheStore {
	return &CacheStore{Cache: c, now: time.Now}
}

func (s *CacheStore) Save(ctx context.Context, sess domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("sessão já vencida")
	}
	data, err := json.Marshal(cachedSession{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Role:      sess.Role,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("falha ao codificar sessão: %w", err)
	}
	if err := s.Cache.Set(ctx, fmt.Sprintf(sessionCacheKey, sess.Token), data, ttl); err != nil {
		return fmt.Errorf("falha ao gravar sessão no cache: %w", err)
	}
	return nil
}

func (s *CacheStore) Find(ctx context.Context, token string) (domain.Session, error) {
	raw, err := s.Cache.Get(ctx, fmt.Sprintf(sessionCacheKey, token))
	if errors.Is(err, cache.ErrCacheMiss) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("falha ao ler sessão do cache: %w", err)
	}

	var cs cachedSession
	if err := json.Unmarshal([]byte(raw), &cs); err != nil {
		return domain.Session{}, fmt.Errorf("sessão corrompida no cache: %w", err)
	}
	return domain.Session{
		Token:     token,
		UserID:    cs.UserID,
		Email:     cs.Email,
		Role:      cs.Role,
		CreatedAt: cs.CreatedAt,
		ExpiresAt: cs.ExpiresAt,
	}, nil
}

func (s *CacheStore) Delete(ctx context.Context, token string) error {
	return s.Cache.Delete(ctx, fmt.Sprintf(sessionCacheKey, token))
}

// cachedSession existe porque domain.Session omite o token no JSON.
type cachedSession struct {
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}
