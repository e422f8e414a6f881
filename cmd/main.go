package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gocontrole/config"
	"gocontrole/internal/api/demo"
	"gocontrole/internal/api/movie"
	"gocontrole/internal/api/router"
	"gocontrole/internal/api/transaction"
	"gocontrole/internal/api/user"
	"gocontrole/internal/domain"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/password"
	"gocontrole/internal/pkg/token"
	"gocontrole/internal/repository/moviefile"
	"gocontrole/internal/repository/movierepo"
	"gocontrole/internal/repository/transactionrepo"
	"gocontrole/internal/repository/userrepo"
	"gocontrole/internal/service/movieservice"
	"gocontrole/internal/service/transactionservice"
	"gocontrole/internal/service/userservice"
	"gocontrole/internal/session"
)

const sessionPurgeInterval = 10 * time.Minute

// @title GoControle API
// @version 1.0
// @description Filmes e controle financeiro com autenticação por sessão.
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Configuração inválida.", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log.Slog())
	log.Info("Inicializando serviço GoControle...", map[string]interface{}{
		"env":           cfg.Environment,
		"db_driver":     cfg.DBDriver,
		"movie_store":   cfg.MovieStore,
		"session_store": cfg.SessionStore,
	})

	// 2. Infraestrutura

	// A. Banco de Dados (SQLite ou PostgreSQL)
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			log.Fatal("Falha ao aplicar migrações.", err)
		}
		log.Info("Migrações aplicadas.", nil)
	}

	// B. Cache (Redis quando configurado, memória caso contrário)
	var cacheClient cache.Client
	if cfg.UseRedis() {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		cacheClient = cache.NewMemoryClient()
		log.Info("Usando cache em memória.", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Injeção de dependências: Repository -> Service -> Handler

	// A. Sessões
	var sessionStore session.Store
	switch cfg.SessionStore {
	case config.StoreCache:
		sessionStore = session.NewCacheStore(cacheClient)
	default:
		sqlStore := session.NewSQLStore(db, cfg.DBTimeout)
		go session.Janitor(ctx, sqlStore, sessionPurgeInterval, log)
		sessionStore = sqlStore
	}
	sessions := session.NewManager(sessionStore, token.RandomGenerator{}, cfg.SessionTTL, log)

	// B. Usuários
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, sessions, password.NewHasher(0), cfg.AllowRoleOnRegister, log)
	userHandler := user.NewHandler(userSvc, user.CookieConfig{
		Name:   cfg.SessionCookie,
		Secure: cfg.SecureCookie || cfg.IsProduction(),
	}, log)

	// C. Filmes (tabela SQL ou arquivo JSON)
	var movieRepo domain.MovieRepository
	switch cfg.MovieStore {
	case config.StoreFile:
		fileRepo, err := moviefile.NewMovieRepository(cfg.MovieFile, log)
		if err != nil {
			log.Fatal("Falha ao abrir o arquivo de filmes.", err)
		}
		movieRepo = fileRepo
	default:
		movieRepo = movierepo.NewMovieRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	}
	movieHandler := movie.NewHandler(movieservice.NewService(movieRepo, log), log)

	// D. Transações
	txRepo := transactionrepo.NewTransactionRepository(db, cfg.DBTimeout, log)
	txHandler := transaction.NewHandler(transactionservice.NewService(txRepo, log), log)

	// 4. Roteador e Servidor
	r := router.NewRouter(router.Handlers{
		Users:        userHandler,
		Movies:       movieHandler,
		Transactions: txHandler,
		Demo:         demo.NewHandler(log),
	}, sessions, cacheClient, router.Options{
		SessionCookie:   cfg.SessionCookie,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		CORSOrigins:     cfg.CORSOrigins,
		StaticDir:       cfg.StaticDir,
		TrustProxy:      cfg.TrustProxy,
	}, log)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoControle ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
