package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/logger"
)

const cookieName = "gocontrole_session"

// fakeSessions aceita apenas os tokens cadastrados no mapa.
type fakeSessions map[string]domain.Session

func (f fakeSessions) Validate(_ context.Context, tok string) (domain.Session, error) {
	sess, ok := f[tok]
	if !ok {
		return domain.Session{}, apperror.NewUnauthorizedError("Sessão inválida ou expirada.")
	}
	return sess, nil
}

var sessions = fakeSessions{
	"tok-user":  {UserID: "u-1", Email: "ana@example.com", Role: domain.RoleUser},
	"tok-admin": {UserID: "u-2", Email: "root@example.com", Role: domain.RoleAdmin},
}

// echoSession devolve o user id e o token vistos pelo handler.
var echoSession = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(sess.UserID + "|" + TokenFromContext(r.Context())))
})

func decodeError(t *testing.T, w *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Auth ---

func TestAuthMiddleware(t *testing.T) {
	auth := NewAuthMiddleware(sessions, cookieName, logger.Nop())(echoSession)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "cookie",
			prepare:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: "tok-user"}) },
			wantStatus: http.StatusOK,
			wantBody:   "u-1|tok-user",
		},
		{
			name:       "bearer",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer tok-admin") },
			wantStatus: http.StatusOK,
			wantBody:   "u-2|tok-admin",
		},
		{
			name: "cookie tem precedência",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookieName, Value: "tok-user"})
				r.Header.Set("Authorization", "Bearer tok-admin")
			},
			wantStatus: http.StatusOK,
			wantBody:   "u-1|tok-user",
		},
		{
			name:       "sem token",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token desconhecido",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer forjado") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "header malformado",
			prepare:    func(r *http.Request) { r.Header.Set("Authorization", "tok-user") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/movies", nil)
			tt.prepare(r)
			w := httptest.NewRecorder()

			auth.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, w.Body.String())
				return
			}
			assert.Equal(t, "UNAUTHENTICATED", decodeError(t, w).Category)
		})
	}
}

func TestPermissionMiddleware(t *testing.T) {
	log := logger.Nop()
	chain := NewAuthMiddleware(sessions, cookieName, log)(
		PermissionMiddleware(log, domain.RoleAdmin)(echoSession),
	)

	r := httptest.NewRequest(http.MethodDelete, "/movies/1", nil)
	r.Header.Set("Authorization", "Bearer tok-user")
	w := httptest.NewRecorder()
	chain.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, w).Category)

	r = httptest.NewRequest(http.MethodDelete, "/movies/1", nil)
	r.Header.Set("Authorization", "Bearer tok-admin")
	w = httptest.NewRecorder()
	chain.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPermissionMiddleware_WithoutSession(t *testing.T) {
	h := PermissionMiddleware(logger.Nop(), domain.RoleAdmin)(echoSession)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Rate limit ---

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RateLimiter(cache.NewMemoryClient(), 2, time.Minute, logger.Nop())(ok)

	do := func(remote string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := do("10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = do("10.0.0.1:5001")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decodeError(t, w).Category)

	// Outro IP tem contador próprio.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:5000").Code)
}

// --- CORS ---

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("origem permitida", func(t *testing.T) {
		h := CORS([]string{"http://localhost:5173"})(ok)
		r := httptest.NewRequest(http.MethodGet, "/movies", nil)
		r.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		h := CORS([]string{"http://localhost:5173"})(ok)
		r := httptest.NewRequest(http.MethodGet, "/movies", nil)
		r.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("curinga sem credenciais", func(t *testing.T) {
		h := CORS([]string{"*"})(ok)
		r := httptest.NewRequest(http.MethodGet, "/movies", nil)
		r.Header.Set("Origin", "http://qualquer.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		h := CORS([]string{"http://localhost:5173"})(ok)
		r := httptest.NewRequest(http.MethodOptions, "/movies", nil)
		r.Header.Set("Origin", "http://localhost:5173")
		r.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})
}

// --- Logging ---

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	h := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/movies", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Requisição concluída.", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/movies", entry["path"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}
