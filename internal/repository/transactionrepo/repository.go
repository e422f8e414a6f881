package transactionrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
)

const txColumns = `id, user_id, type, amount, category, description, date, created_at`

// TransactionRepository implementa domain.TransactionRepository. Toda query
// carrega "user_id = ?": um registro de outro dono é indistinguível de inexistente.
type TransactionRepository struct {
	DB        *database.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewTransactionRepository cria uma nova instância do repositório de transações.
func NewTransactionRepository(db *database.DB, dbTimeout time.Duration, log logger.Logger) *TransactionRepository {
	return &TransactionRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t      domain.Transaction
		txType string
	)
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&txType,
		&t.Amount,
		&t.Category,
		&t.Description,
		&t.Date,
		database.ScanTime(&t.CreatedAt),
	)
	t.Type = domain.TransactionType(txType)
	return t, err
}

func notFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Transação com ID %d não encontrada.", id))
}

// mapWriteError traduz falhas de escrita; violações de CHECK viram erro de validação.
func (r *TransactionRepository) mapWriteError(op string, err error) error {
	if database.IsCheckViolation(err) {
		return apperror.NewValidationError("Transação viola as regras de tipo ou valor.")
	}
	r.logger.Error("Falha ao "+op+" transação no DB.", err)
	return apperror.NewDBError("falha ao "+op+" transação", err)
}

// FindAll lista as transações do usuário, mais recentes primeiro.
func (r *TransactionRepository) FindAll(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		sb   strings.Builder
		args = []any{userID}
	)
	sb.WriteString(`SELECT ` + txColumns + ` FROM transactions WHERE user_id = ?`)
	if filter.Type != "" {
		sb.WriteString(` AND type = ?`)
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		sb.WriteString(` AND category = ?`)
		args = append(args, filter.Category)
	}
	sb.WriteString(` ORDER BY date DESC, id DESC`)

	rows, err := r.DB.QueryContext(ctxTimeout, r.DB.Rebind(sb.String()), args...)
	if err != nil {
		r.logger.Error("Falha ao listar transações no DB.", err)
		return nil, apperror.NewDBError("falha ao listar transações", err)
	}
	defer rows.Close()

	list := make([]domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperror.NewDBError("falha ao ler transação", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar transações", err)
	}
	return list, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, userID string, id int64) (domain.Transaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`SELECT ` + txColumns + ` FROM transactions WHERE id = ? AND user_id = ?`)
	t, err := scanTransaction(r.DB.QueryRowContext(ctxTimeout, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, notFound(id)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar transação no DB.", err)
		return domain.Transaction{}, apperror.NewDBError("falha ao buscar transação", err)
	}
	return t, nil
}

// Save insere a transação e devolve o registro armazenado com o novo ID.
func (r *TransactionRepository) Save(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	query := r.DB.Rebind(`INSERT INTO transactions (user_id, type, amount, category, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING ` + txColumns)
	saved, err := scanTransaction(r.DB.QueryRowContext(ctxTimeout, query,
		tx.UserID,
		string(tx.Type),
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.CreatedAt,
	))
	if err != nil {
		return domain.Transaction{}, r.mapWriteError("inserir", err)
	}

	r.logger.Info("Transação salva.", map[string]interface{}{"transaction_id": saved.ID, "user_id": saved.UserID})
	return saved, nil
}

// Update sobrescreve apenas os campos enviados, filtrando pelo dono.
func (r *TransactionRepository) Update(ctx context.Context, userID string, id int64, patch domain.TransactionInput) (domain.Transaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var txType *string
	if patch.Type != nil {
		s := string(*patch.Type)
		txType = &s
	}

	query := r.DB.Rebind(`UPDATE transactions SET
		type = COALESCE(?, type),
		amount = COALESCE(?, amount),
		category = COALESCE(?, category),
		description = COALESCE(?, description),
		date = COALESCE(?, date)
		WHERE id = ? AND user_id = ? RETURNING ` + txColumns)

	updated, err := scanTransaction(r.DB.QueryRowContext(ctxTimeout, query,
		txType,
		patch.Amount,
		patch.Category,
		patch.Description,
		patch.Date,
		id,
		userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, notFound(id)
	}
	if err != nil {
		return domain.Transaction{}, r.mapWriteError("atualizar", err)
	}
	return updated, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID string, id int64) (domain.Transaction, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`DELETE FROM transactions WHERE id = ? AND user_id = ? RETURNING ` + txColumns)
	deleted, err := scanTransaction(r.DB.QueryRowContext(ctxTimeout, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, notFound(id)
	}
	if err != nil {
		return domain.Transaction{}, r.mapWriteError("remover", err)
	}

	r.logger.Info("Transação removida.", map[string]interface{}{"transaction_id": id, "user_id": userID})
	return deleted, nil
}

// Summary soma entradas e saídas do usuário.
func (r *TransactionRepository) Summary(ctx context.Context, userID string) (domain.Summary, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`SELECT
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions WHERE user_id = ?`)

	var s domain.Summary
	if err := r.DB.QueryRowContext(ctxTimeout, query, userID).Scan(&s.Income, &s.Expense); err != nil {
		r.logger.Error("Falha ao calcular resumo no DB.", err)
		return domain.Summary{}, apperror.NewDBError("falha ao calcular resumo", err)
	}
	s.Balance = s.Income - s.Expense
	return s, nil
}

// CategoryTotals agrupa por categoria; txType vazio inclui os dois tipos.
func (r *TransactionRepository) CategoryTotals(ctx context.Context, userID string, txType domain.TransactionType) ([]domain.CategoryTotal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT category, type, SUM(amount) FROM transactions WHERE user_id = ?`
	args := []any{userID}
	if txType != "" {
		query += ` AND type = ?`
		args = append(args, string(txType))
	}
	query += ` GROUP BY category, type ORDER BY 3 DESC, category ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, r.DB.Rebind(query), args...)
	if err != nil {
		r.logger.Error("Falha ao agrupar por categoria no DB.", err)
		return nil, apperror.NewDBError("falha ao agrupar transações por categoria", err)
	}
	defer rows.Close()

	totals := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		var (
			ct domain.CategoryTotal
			t  string
		)
		if err := rows.Scan(&ct.Category, &t, &ct.Total); err != nil {
			return nil, apperror.NewDBError("falha ao ler total por categoria", err)
		}
		ct.Type = domain.TransactionType(t)
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar totais por categoria", err)
	}
	return totals, nil
}

// DailyTotals soma entradas e saídas por dia, em ordem cronológica.
func (r *TransactionRepository) DailyTotals(ctx context.Context, userID string) ([]domain.DailyTotal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`SELECT date,
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions WHERE user_id = ?
		GROUP BY date ORDER BY date ASC`)

	rows, err := r.DB.QueryContext(ctxTimeout, query, userID)
	if err != nil {
		r.logger.Error("Falha ao agrupar por data no DB.", err)
		return nil, apperror.NewDBError("falha ao agrupar transações por data", err)
	}
	defer rows.Close()

	totals := make([]domain.DailyTotal, 0)
	for rows.Next() {
		var d domain.DailyTotal
		if err := rows.Scan(&d.Date, &d.Income, &d.Expense); err != nil {
			return nil, apperror.NewDBError("falha ao ler total diário", err)
		}
		totals = append(totals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar totais diários", err)
	}
	return totals, nil
}
