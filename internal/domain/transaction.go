package domain

import (
	"context"
	"time"
)

// DateLayout é o formato das datas de transação (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TransactionType distingue entradas de saídas.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reporta se o tipo pertence a income|expense.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction é um lançamento financeiro pertencente a um único usuário.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionInput é o corpo de criação e de atualização parcial.
type TransactionInput struct {
	Type        *TransactionType `json:"type,omitempty" example:"expense"`
	Amount      *float64         `json:"amount,omitempty" example:"42.5"`
	Category    *string          `json:"category,omitempty" example:"Mercado"`
	Description *string          `json:"description,omitempty" example:"Feira da semana"`
	Date        *string          `json:"date,omitempty" example:"2025-03-14"`
}

// Empty reporta se nenhum campo foi enviado.
func (in TransactionInput) Empty() bool {
	return in.Type == nil && in.Amount == nil && in.Category == nil &&
		in.Description == nil && in.Date == nil
}

// TransactionFilter restringe a listagem. Campos vazios não filtram.
type TransactionFilter struct {
	Type     TransactionType
	Category string
}

// Summary totaliza as transações de um usuário.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// CategoryTotal agrega valores por categoria (gráfico de pizza).
type CategoryTotal struct {
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Total    float64         `json:"total"`
}

// DailyTotal agrega entradas e saídas por dia (gráfico de linha).
type DailyTotal struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// TransactionRepository sempre recebe o dono (userID) e filtra por ele.
type TransactionRepository interface {
	FindAll(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
	FindByID(ctx context.Context, userID string, id int64) (Transaction, error)
	Save(ctx context.Context, tx Transaction) (Transaction, error)
	Update(ctx context.Context, userID string, id int64, patch TransactionInput) (Transaction, error)
	Delete(ctx context.Context, userID string, id int64) (Transaction, error)
	Summary(ctx context.Context, userID string) (Summary, error)
	CategoryTotals(ctx context.Context, userID string, txType TransactionType) ([]CategoryTotal, error)
	DailyTotals(ctx context.Context, userID string) ([]DailyTotal, error)
}
