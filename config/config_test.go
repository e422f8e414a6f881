package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, StoreSQL, cfg.MovieStore)
	assert.Equal(t, StoreSQL, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.False(t, cfg.UseRedis())
	assert.False(t, cfg.AllowRoleOnRegister)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, ":3001", cfg.Addr())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/gocontrole")
	t.Setenv("SESSION_STORE", "cache")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, ,http://app.local")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, StoreCache, cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, []string{"http://localhost:5173", "http://app.local"}, cfg.CORSOrigins)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"driver desconhecido", "DB_DRIVER", "mysql"},
		{"movie store desconhecido", "MOVIE_STORE", "s3"},
		{"session store desconhecido", "SESSION_STORE", "jwt"},
		{"ttl zero", "SESSION_TTL", "0s"},
		{"duração malformada", "DB_TIMEOUT", "cinco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadDatabaseEnv_FromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_DRIVER=Postgres\nDATABASE_URL=postgres://localhost/gocontrole\n"), 0o600))
	chdir(t, dir)
	for _, k := range []string{"DB_DRIVER", "DATABASE_URL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	dbEnv, err := LoadDatabaseEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, dbEnv.DBDriver)
	assert.Equal(t, "postgres://localhost/gocontrole", dbEnv.DatabaseURL)
}

func TestLoadDatabaseEnv_Unset(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")

	dbEnv, err := LoadDatabaseEnv()
	require.NoError(t, err)
	assert.Empty(t, dbEnv.DBDriver)
	assert.Empty(t, dbEnv.DatabaseURL)
}
