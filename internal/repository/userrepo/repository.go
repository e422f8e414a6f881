package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
)

const (
	insertUserSQL = `INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserSQL = `SELECT id, email, password_hash, role, created_at FROM users`
)

// UserRepository implementa a interface domain.UserRepository.
type UserRepository struct {
	DB        *database.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *database.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo usuário. O ID e o created_at são gerados aqui.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	// 3. Executa o INSERT
	_, err := r.DB.ExecContext(ctxTimeout, r.DB.Rebind(insertUserSQL),
		user.ID,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		// A unicidade do email é garantida pelo motor (UNIQUE), não por um SELECT prévio.
		if database.IsUniqueViolation(err) {
			r.logger.Info("Email já cadastrado.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "email", email)
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, "id", id)
}

// findOne executa o SELECT filtrando pela coluna informada (sempre uma constante do pacote).
func (r *UserRepository) findOne(ctx context.Context, column, value string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(selectUserSQL + " WHERE " + column + " = ?")
	row := r.DB.QueryRowContext(ctxTimeout, query, value)

	var (
		user domain.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		database.ScanTime(&user.CreatedAt),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Usuário não encontrado no DB.", map[string]interface{}{column: value})
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com %s '%s' não encontrado", column, value))
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao buscar usuário", err)
	}
	user.Role = domain.UserRole(role)

	return user, nil
}
