package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"gocontrole/internal/api/demo"
	"gocontrole/internal/api/movie"
	"gocontrole/internal/api/transaction"
	"gocontrole/internal/api/user"
	"gocontrole/internal/domain"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/password"
	"gocontrole/internal/pkg/token"
	"gocontrole/internal/repository/movierepo"
	"gocontrole/internal/repository/transactionrepo"
	"gocontrole/internal/repository/userrepo"
	"gocontrole/internal/service/movieservice"
	"gocontrole/internal/service/transactionservice"
	"gocontrole/internal/service/userservice"
	"gocontrole/internal/session"
)

const cookieName = "gocontrole_session"

type RouterSuite struct {
	suite.Suite
	db        *database.DB
	handler   http.Handler
	adminSvc  *userservice.UserService
	staticDir string
}

func (s *RouterSuite) SetupTest() {
	log := logger.Nop()

	db, err := database.NewSQLiteDB(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())
	s.db = db

	cacheClient := cache.NewMemoryClient()
	hasher := password.NewHasher(bcrypt.MinCost)
	sessions := session.NewManager(session.NewSQLStore(db, time.Second), token.RandomGenerator{}, time.Hour, log)

	userRepo := userrepo.NewUserRepository(db, time.Second, log)
	userSvc := userservice.NewService(userRepo, sessions, hasher, false, log)
	s.adminSvc = userservice.NewService(userRepo, sessions, hasher, true, log)

	movieSvc := movieservice.NewService(movierepo.NewMovieRepository(db, cacheClient, time.Second, time.Minute, log), log)
	txSvc := transactionservice.NewService(transactionrepo.NewTransactionRepository(db, time.Second, log), log)

	s.staticDir = s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(s.staticDir, "index.html"), []byte("<h1>GoControle</h1>"), 0o644))

	s.handler = NewRouter(Handlers{
		Users:        user.NewHandler(userSvc, user.CookieConfig{Name: cookieName}, log),
		Movies:       movie.NewHandler(movieSvc, log),
		Transactions: transaction.NewHandler(txSvc, log),
		Demo:         demo.NewHandler(log),
	}, sessions, cacheClient, Options{
		SessionCookie:   cookieName,
		RateLimit:       100,
		RateLimitPeriod: time.Minute,
		StaticDir:       s.staticDir,
	}, log)
}

func (s *RouterSuite) TearDownTest() {
	_ = s.db.Close()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

// do executa a requisição; token vazio significa anônimo.
func (s *RouterSuite) do(method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, dst interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func (s *RouterSuite) register(email, pass string) {
	w := s.do(http.MethodPost, "/register", "", map[string]string{"email": email, "password": pass})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *RouterSuite) login(email, pass string) string {
	w := s.do(http.MethodPost, "/login", "", map[string]string{"email": email, "password": pass})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp domain.LoginResponse
	s.decode(w, &resp)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *RouterSuite) TestPing() {
	w := s.do(http.MethodGet, "/ping", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("pong", w.Body.String())
}

func (s *RouterSuite) TestMovieFlow_EndToEnd() {
	// register -> login
	s.register("a@x.com", "p")
	tok := s.login("a@x.com", "p")

	// create
	w := s.do(http.MethodPost, "/movies", tok, map[string]interface{}{"title": "Matrix", "genre": "Ficção", "score": 9})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created domain.Movie
	s.decode(w, &created)
	s.Equal("Matrix", created.Title)

	// list
	w = s.do(http.MethodGet, "/movies", tok, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []domain.Movie
	s.decode(w, &list)
	s.Len(list, 1)

	path := "/movies/" + strconv.FormatInt(created.ID, 10)

	// usuário comum não remove: 403
	w = s.do(http.MethodDelete, path, tok, nil)
	s.Equal(http.StatusForbidden, w.Code)

	// admin remove: 204
	_, err := s.adminSvc.Register(context.Background(), domain.UserRegistration{
		Email: "root@example.com", Password: "segredo-admin", Role: domain.RoleAdmin,
	})
	s.Require().NoError(err)
	adminTok := s.login("root@example.com", "segredo-admin")

	w = s.do(http.MethodDelete, path, adminTok, nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())

	// depois: 404 no GET e no segundo DELETE
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, path, tok, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, adminTok, nil).Code)
}

func (s *RouterSuite) TestMovieValidation() {
	s.register("ana@example.com", "segredo123")
	tok := s.login("ana@example.com", "segredo123")

	w := s.do(http.MethodPost, "/movies", tok, map[string]interface{}{"title": "X", "genre": "Y", "score": 11})
	s.Equal(http.StatusBadRequest, w.Code)
	var body domain.ErrorResponse
	s.decode(w, &body)
	s.Equal("VALIDATION_ERROR", body.Category)

	w = s.do(http.MethodGet, "/movies", tok, nil)
	s.JSONEq(`[]`, w.Body.String())

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/movies/abc", tok, nil).Code)

	w = s.do(http.MethodPost, "/movies", tok, map[string]interface{}{"title": "X", "genre": "Y", "score": 5})
	s.Require().Equal(http.StatusCreated, w.Code)
	var m domain.Movie
	s.decode(w, &m)

	w = s.do(http.MethodPut, "/movies/"+strconv.FormatInt(m.ID, 10), tok, map[string]interface{}{})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/movies/"+strconv.FormatInt(m.ID, 10), tok, map[string]interface{}{"score": 7.5})
	s.Require().Equal(http.StatusOK, w.Code)
	var updated domain.Movie
	s.decode(w, &updated)
	s.Equal("X", updated.Title)
	s.Equal(7.5, updated.Score)
}

func (s *RouterSuite) TestAuthErrors() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/movies", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/movies", "forjado", nil).Code)

	s.register("ana@example.com", "segredo123")

	// email duplicado
	w := s.do(http.MethodPost, "/register", "", map[string]string{"email": "ANA@example.com", "password": "outra"})
	s.Equal(http.StatusConflict, w.Code)

	// papel admin no registro público
	w = s.do(http.MethodPost, "/register", "", map[string]string{"email": "eve@example.com", "password": "x", "role": "admin"})
	s.Equal(http.StatusForbidden, w.Code)

	// senha acima do limite do bcrypt é erro do cliente
	w = s.do(http.MethodPost, "/register", "", map[string]string{"email": "longa@example.com", "password": strings.Repeat("a", 73)})
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "INVALID_INPUT")

	// senha errada e email desconhecido respondem igual
	wrong := s.do(http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "errada"})
	unknown := s.do(http.MethodPost, "/login", "", map[string]string{"email": "ninguem@example.com", "password": "errada"})
	s.Equal(http.StatusUnauthorized, wrong.Code)
	s.Equal(wrong.Body.String(), unknown.Body.String())

	// payload malformado
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":`))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestCookieSessionAndLogout() {
	s.register("ana@example.com", "segredo123")

	w := s.do(http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "password": "segredo123"})
	s.Require().Equal(http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			sessionCookie = c
		}
	}
	s.Require().NotNil(sessionCookie)
	s.True(sessionCookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, sessionCookie.SameSite)

	withCookie := func(method, path string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(method, path, nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: sessionCookie.Value})
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, r)
		return rec
	}

	prof := withCookie(http.MethodGet, "/profile")
	s.Require().Equal(http.StatusOK, prof.Code)
	var p user.ProfileResponse
	s.decode(prof, &p)
	s.Equal("ana@example.com", p.User.Email)
	s.Equal(domain.RoleUser, p.User.Role)

	s.Equal(http.StatusOK, withCookie(http.MethodPost, "/logout").Code)
	s.Equal(http.StatusUnauthorized, withCookie(http.MethodGet, "/profile").Code)
}

func (s *RouterSuite) TestTransactions_OwnerIsolationAndSummary() {
	s.register("ana@example.com", "segredo123")
	s.register("bia@example.com", "segredo456")
	ana := s.login("ana@example.com", "segredo123")
	bia := s.login("bia@example.com", "segredo456")

	w := s.do(http.MethodPost, "/transactions", ana, map[string]interface{}{
		"type": "income", "amount": 1000, "category": "Salário", "date": "2025-03-01",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var tx domain.Transaction
	s.decode(w, &tx)

	w = s.do(http.MethodPost, "/transactions", ana, map[string]interface{}{
		"type": "expense", "amount": 250.5, "category": "Mercado", "date": "2025-03-02",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	// amount 0 rejeitado
	w = s.do(http.MethodPost, "/transactions", ana, map[string]interface{}{"type": "expense", "amount": 0, "category": "x"})
	s.Equal(http.StatusBadRequest, w.Code)

	// outra usuária não enxerga nem altera
	path := "/transactions/" + strconv.FormatInt(tx.ID, 10)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, path, bia, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, path, bia, map[string]interface{}{"amount": 1}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, bia, nil).Code)

	w = s.do(http.MethodGet, "/transactions", bia, nil)
	s.JSONEq(`[]`, w.Body.String())

	w = s.do(http.MethodGet, "/transactions?type=expense", ana, nil)
	var expenses []domain.Transaction
	s.decode(w, &expenses)
	s.Require().Len(expenses, 1)
	s.Equal("Mercado", expenses[0].Category)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/transactions?type=saida", ana, nil).Code)

	w = s.do(http.MethodGet, "/summary", ana, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var sum domain.Summary
	s.decode(w, &sum)
	s.InDelta(1000, sum.Income, 0.001)
	s.InDelta(250.5, sum.Expense, 0.001)
	s.InDelta(749.5, sum.Balance, 0.001)

	w = s.do(http.MethodGet, "/summary/categories?type=expense", ana, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var cats []domain.CategoryTotal
	s.decode(w, &cats)
	s.Require().Len(cats, 1)
	s.Equal("Mercado", cats[0].Category)

	w = s.do(http.MethodGet, "/summary/daily", ana, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var days []domain.DailyTotal
	s.decode(w, &days)
	s.Len(days, 2)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, path, ana, nil).Code)
}

func (s *RouterSuite) TestStaticAndDocs() {
	w := s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "GoControle")

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/nao-existe.js", "", nil).Code)

	w = s.do(http.MethodGet, "/swagger/doc.json", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "/movies/{id}")
}

func newRateLimitedRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	log := logger.Nop()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	sessions := session.NewManager(session.NewSQLStore(db, time.Second), token.RandomGenerator{}, time.Hour, log)
	userSvc := userservice.NewService(userrepo.NewUserRepository(db, time.Second, log), sessions, password.NewHasher(bcrypt.MinCost), false, log)

	opts.SessionCookie = cookieName
	opts.RateLimit = 2
	opts.RateLimitPeriod = time.Minute
	return NewRouter(Handlers{
		Users: user.NewHandler(userSvc, user.CookieConfig{Name: cookieName}, log),
		Demo:  demo.NewHandler(log),
	}, sessions, cache.NewMemoryClient(), opts, log)
}

func loginFrom(h http.Handler, remoteAddr, forwardedIP string) int {
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	r.RemoteAddr = remoteAddr
	if forwardedIP != "" {
		r.Header.Set("X-Real-IP", forwardedIP)
		r.Header.Set("X-Forwarded-For", forwardedIP)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w.Code
}

func TestRouter_RateLimitOnLogin(t *testing.T) {
	h := newRateLimitedRouter(t, Options{})

	var last int
	for i := 0; i < 3; i++ {
		last = loginFrom(h, "192.0.2.1:1234", "")
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestRouter_RateLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	h := newRateLimitedRouter(t, Options{})

	codes := map[int]int{}
	for i := 0; i < 20; i++ {
		codes[loginFrom(h, "192.0.2.1:1234", "10.0.0."+strconv.Itoa(i+1))]++
	}
	require.Equal(t, 2, codes[http.StatusUnauthorized])
	require.Equal(t, 18, codes[http.StatusTooManyRequests])
}

func TestRouter_RateLimitUsesForwardedIPBehindTrustedProxy(t *testing.T) {
	h := newRateLimitedRouter(t, Options{TrustProxy: true})

	require.Equal(t, http.StatusUnauthorized, loginFrom(h, "192.0.2.1:1234", "10.0.0.1"))
	require.Equal(t, http.StatusUnauthorized, loginFrom(h, "192.0.2.1:1234", "10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(h, "192.0.2.1:1234", "10.0.0.1"))
	// Outro cliente atrás do mesmo proxy tem o próprio contador.
	require.Equal(t, http.StatusUnauthorized, loginFrom(h, "192.0.2.1:1234", "10.0.0.2"))
}
