package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Drivers e backends suportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StoreSQL   = "sql"
	StoreFile  = "file"
	StoreCache = "cache"
)

// Config armazena todas as configurações do aplicativo GoControle.
// Cada campo é lido de uma variável de ambiente (ou do arquivo .env em desenvolvimento).
type Config struct {
	// Geral
	Port        string `env:"PORT" envDefault:"3001"`
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Banco de Dados (SQLite por padrão, PostgreSQL opcional)
	DBDriver    string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL string        `env:"DATABASE_URL" envDefault:"./gocontrole.db"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`
	AutoMigrate bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// Persistência dos filmes: tabela SQL ou arquivo JSON
	MovieStore string `env:"MOVIE_STORE" envDefault:"sql"`
	MovieFile  string `env:"MOVIE_FILE" envDefault:"./filmes.json"`

	// Sessões
	SessionStore  string        `env:"SESSION_STORE" envDefault:"sql"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"gocontrole_session"`
	SecureCookie  bool          `env:"SECURE_COOKIE" envDefault:"false"`

	// Cache (Redis). Vazio usa o cache em memória.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Rate Limiting em /register e /login
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"20"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD" envDefault:"1m"`

	// HTTP
	CORSOrigins         []string `env:"CORS_ORIGINS" envSeparator:","`
	StaticDir           string   `env:"STATIC_DIR"`
	AllowRoleOnRegister bool     `env:"ALLOW_ROLE_ON_REGISTER" envDefault:"false"`
	// TrustProxy aceita X-Forwarded-For/X-Real-IP como IP do cliente.
	// Só deve ser ligado atrás de um proxy reverso que sobrescreve esses cabeçalhos.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// DatabaseEnv é o subconjunto da configuração lido pelos binários auxiliares.
// Campos vazios significam "não definido"; o binário aplica o próprio padrão.
type DatabaseEnv struct {
	DBDriver    string `env:"DB_DRIVER"`
	DatabaseURL string `env:"DATABASE_URL"`
}

// LoadDatabaseEnv carrega o .env (se existir) e lê DB_DRIVER e DATABASE_URL.
func LoadDatabaseEnv() (DatabaseEnv, error) {
	_ = godotenv.Load()

	var dbEnv DatabaseEnv
	if err := env.Parse(&dbEnv); err != nil {
		return DatabaseEnv{}, fmt.Errorf("falha ao ler configuração do banco: %w", err)
	}
	dbEnv.DBDriver = strings.ToLower(strings.TrimSpace(dbEnv.DBDriver))
	return dbEnv, nil
}

// LoadConfig carrega o .env (se existir) e as variáveis de ambiente.
func LoadConfig() (*Config, error) {
	// Em produção não há .env; o erro de arquivo ausente é ignorado.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler configuração: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.MovieStore = strings.ToLower(strings.TrimSpace(c.MovieStore))
	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
}

// Validate rejeita combinações que impediriam o servidor de iniciar.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER inválido %q: use sqlite ou postgres", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL deve ser definida")
	}
	switch c.MovieStore {
	case StoreSQL:
	case StoreFile:
		if c.MovieFile == "" {
			return fmt.Errorf("MOVIE_FILE deve ser definido quando MOVIE_STORE=file")
		}
	default:
		return fmt.Errorf("MOVIE_STORE inválido %q: use sql ou file", c.MovieStore)
	}
	switch c.SessionStore {
	case StoreSQL, StoreCache:
	default:
		return fmt.Errorf("SESSION_STORE inválido %q: use sql ou cache", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL deve ser positivo")
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT deve ser positivo")
	}
	if c.RateLimitMaxRequests <= 0 || c.RateLimitPeriod <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS e RATE_LIMIT_PERIOD devem ser positivos")
	}
	return nil
}

// IsProduction indica se o servidor roda com ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UseRedis indica se um Redis foi configurado.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// Addr retorna o endereço de escuta do http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
