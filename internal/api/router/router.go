package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gocontrole/docs" // registra o documento OpenAPI servido em /swagger
	"gocontrole/internal/api/demo"
	"gocontrole/internal/api/movie"
	"gocontrole/internal/api/transaction"
	"gocontrole/internal/api/user"
	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/middleware"
	"gocontrole/internal/pkg/response"
)

// Options reúne as configurações de borda do roteador.
type Options struct {
	SessionCookie   string
	RateLimit       int
	RateLimitPeriod time.Duration
	CORSOrigins     []string
	// StaticDir, quando definido, serve o front-end em "/".
	StaticDir string
	// TrustProxy liga o chimw.RealIP. Sem proxy confiável os cabeçalhos
	// X-Real-IP/X-Forwarded-For são do cliente e burlariam o rate limit.
	TrustProxy bool
}

// Handlers são os handlers já montados por injeção de dependências no main.
type Handlers struct {
	Users        *user.Handler
	Movies       *movie.Handler
	Transactions *transaction.Handler
	Demo         *demo.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, sessions middleware.SessionValidator, cacheClient cache.Client, opts Options, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, log, apperror.NewNotFoundError("Rota não encontrada."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, http.StatusMethodNotAllowed, domain.ErrorResponse{
			Error:    "Método não permitido",
			Code:     http.StatusMethodNotAllowed,
			Category: "METHOD_NOT_ALLOWED",
		})
	})

	// --- 2. Rotas públicas ---
	r.Get("/ping", PingHandler)
	r.Get("/greet/{name}", h.Demo.GreetHandler)
	r.Get("/sum", h.Demo.SumHandler)
	r.Get("/product", h.Demo.ProductHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimiter(cacheClient, opts.RateLimit, opts.RateLimitPeriod, log))
		r.Post("/register", h.Users.RegisterUserHandler)
		r.Post("/login", h.Users.LoginUserHandler)
	})

	// --- 3. Rotas autenticadas ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(sessions, opts.SessionCookie, log))

		r.Post("/logout", h.Users.LogoutUserHandler)
		r.Get("/profile", h.Users.ProfileHandler)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.Movies.ListMoviesHandler)
			r.Post("/", h.Movies.CreateMovieHandler)
			r.Get("/{id}", h.Movies.GetMovieHandler)
			r.Put("/{id}", h.Movies.UpdateMovieHandler)
			r.With(middleware.PermissionMiddleware(log, domain.RoleAdmin)).
				Delete("/{id}", h.Movies.DeleteMovieHandler)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.ListTransactionsHandler)
			r.Post("/", h.Transactions.CreateTransactionHandler)
			r.Get("/{id}", h.Transactions.GetTransactionHandler)
			r.Put("/{id}", h.Transactions.UpdateTransactionHandler)
			r.Delete("/{id}", h.Transactions.DeleteTransactionHandler)
		})

		r.Route("/summary", func(r chi.Router) {
			r.Get("/", h.Transactions.SummaryHandler)
			r.Get("/categories", h.Transactions.CategoryTotalsHandler)
			r.Get("/daily", h.Transactions.DailyTotalsHandler)
		})
	})

	// --- 4. Front-end estático ---
	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
