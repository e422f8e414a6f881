package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Nomes de driver aceitos por Open.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// DB encapsula o pool *sql.DB e o dialeto em uso. Os repositórios escrevem as
// queries com placeholders "?" e chamam Rebind antes de executá-las.
type DB struct {
	*sql.DB
	Driver string
}

// Open abre a conexão para o driver configurado ("sqlite" ou "postgres").
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case SQLite:
		return NewSQLiteDB(dsn)
	case Postgres:
		return NewPostgresDB(dsn)
	default:
		return nil, fmt.Errorf("driver de banco desconhecido: %q", driver)
	}
}

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
func NewPostgresDB(dataSourceName string) (*DB, error) {
	// 1. Abrir a Conexão
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a Conexão Imediatamente
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Configuração do Connection Pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &DB{DB: db, Driver: Postgres}, nil
}

// NewSQLiteDB abre um arquivo SQLite (ou ":memory:") com chaves estrangeiras ativas.
// O pool fica limitado a uma conexão: SQLite aceita um único escritor e o banco
// em memória só existe enquanto a conexão viver.
func NewSQLiteDB(path string) (*DB, error) {
	dsn := path
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir o SQLite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no SQLite: %w", err)
	}

	return &DB{DB: db, Driver: SQLite}, nil
}

// Rebind converte placeholders "?" para "$n" quando o dialeto é PostgreSQL.
func (d *DB) Rebind(query string) string {
	if d.Driver != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) gooseDialect() string {
	if d.Driver == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

func (d *DB) migrationsDir() string {
	return "migrations/" + d.Driver
}

func (d *DB) setupGoose() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("falha ao definir dialeto do goose: %w", err)
	}
	return nil
}

// Migrate aplica todas as migrações embutidas pendentes.
func (d *DB) Migrate() error {
	if err := d.setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(d.DB, d.migrationsDir()); err != nil {
		return fmt.Errorf("falha ao aplicar migrações: %w", err)
	}
	return nil
}

// RunMigrationCommand executa um comando do goose (up, down, status, redo, version...)
// sobre as migrações embutidas. Usado por cmd/migrate.
func (d *DB) RunMigrationCommand(command string, args ...string) error {
	if err := d.setupGoose(); err != nil {
		return err
	}
	if err := goose.Run(command, d.DB, d.migrationsDir(), args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// IsUniqueViolation reporta se err é uma violação de UNIQUE/PRIMARY KEY no motor.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// IsCheckViolation reporta se err é uma violação de CHECK constraint.
func IsCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23514"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK
	}
	return false
}
