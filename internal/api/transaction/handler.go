package transaction

import (
	"context"
	"net/http"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/middleware"
	"gocontrole/internal/pkg/response"
)

// TransactionService define o contrato que o Handler espera da camada de Serviço.
type TransactionService interface {
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, userID string, id int64) (domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, in domain.TransactionInput) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, id int64, in domain.TransactionInput) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, id int64) (domain.Transaction, error)
	Summary(ctx context.Context, userID string) (domain.Summary, error)
	CategoryTotals(ctx context.Context, userID string, txType domain.TransactionType) ([]domain.CategoryTotal, error)
	DailyTotals(ctx context.Context, userID string) ([]domain.DailyTotal, error)
}

// Handler agrupa os handlers de transações e do painel financeiro.
// O dono de cada registro vem sempre da sessão.
type Handler struct {
	Service TransactionService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc TransactionService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
		return "", false
	}
	return sess.UserID, true
}

// ListTransactionsHandler lida com GET /transactions.
// @Summary Lista as transações do usuário
// @Tags transactions
// @Produce json
// @Security SessionAuth
// @Param type query string false "income ou expense"
// @Param category query string false "Categoria exata"
// @Success 200 {array} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /transactions [get]
func (h *Handler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := domain.TransactionFilter{
		Type:     domain.TransactionType(q.Get("type")),
		Category: q.Get("category"),
	}

	txs, err := h.Service.ListTransactions(r.Context(), userID, filter)
	response.Handle(w, r, h.Logger, txs, err, http.StatusOK)
}

// GetTransactionHandler lida com GET /transactions/{id}.
// @Summary Busca uma transação do usuário
// @Tags transactions
// @Produce json
// @Security SessionAuth
// @Param id path int true "ID da transação"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} domain.ErrorResponse "Transação não encontrada"
// @Router /transactions/{id} [get]
func (h *Handler) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	tx, err := h.Service.GetTransaction(r.Context(), userID, id)
	response.Handle(w, r, h.Logger, tx, err, http.StatusOK)
}

// CreateTransactionHandler lida com POST /transactions.
// @Summary Registra uma transação
// @Tags transactions
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param transaction body domain.TransactionInput true "Tipo, valor, categoria, descrição e data (AAAA-MM-DD)"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes ou inválidos"
// @Router /transactions [post]
func (h *Handler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var in domain.TransactionInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateTransaction(r.Context(), userID, in)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateTransactionHandler lida com PUT /transactions/{id}.
// @Summary Atualiza uma transação do usuário
// @Tags transactions
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "ID da transação"
// @Param transaction body domain.TransactionInput true "Campos a alterar"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse "Nada para atualizar ou valor inválido"
// @Failure 404 {object} domain.ErrorResponse "Transação não encontrada"
// @Router /transactions/{id} [put]
func (h *Handler) UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var in domain.TransactionInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateTransaction(r.Context(), userID, id, in)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteTransactionHandler lida com DELETE /transactions/{id}.
// @Summary Remove uma transação do usuário
// @Tags transactions
// @Security SessionAuth
// @Param id path int true "ID da transação"
// @Success 204 "Removida"
// @Failure 404 {object} domain.ErrorResponse "Transação não encontrada"
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err = h.Service.DeleteTransaction(r.Context(), userID, id)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// SummaryHandler lida com GET /summary.
// @Summary Entradas, saídas e saldo
// @Tags dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {object} domain.Summary
// @Router /summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	s, err := h.Service.Summary(r.Context(), userID)
	response.Handle(w, r, h.Logger, s, err, http.StatusOK)
}

// CategoryTotalsHandler lida com GET /summary/categories.
// @Summary Totais por categoria
// @Tags dashboard
// @Produce json
// @Security SessionAuth
// @Param type query string false "income ou expense"
// @Success 200 {array} domain.CategoryTotal
// @Failure 400 {object} domain.ErrorResponse "Tipo inválido"
// @Router /summary/categories [get]
func (h *Handler) CategoryTotalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	txType := domain.TransactionType(r.URL.Query().Get("type"))
	totals, err := h.Service.CategoryTotals(r.Context(), userID, txType)
	response.Handle(w, r, h.Logger, totals, err, http.StatusOK)
}

// DailyTotalsHandler lida com GET /summary/daily.
// @Summary Entradas e saídas por dia
// @Tags dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {array} domain.DailyTotal
// @Router /summary/daily [get]
func (h *Handler) DailyTotalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	totals, err := h.Service.DailyTotals(r.Context(), userID)
	response.Handle(w, r, h.Logger, totals, err, http.StatusOK)
}
