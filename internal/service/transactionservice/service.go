package transactionservice

import (
	"context"
	"strings"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
)

// Service implementa as regras das transações financeiras. Todo método recebe
// o ID do dono, vindo da sessão, e nunca do corpo da requisição.
type Service struct {
	repo   domain.TransactionRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Transações.
func NewService(repo domain.TransactionRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func validateType(t domain.TransactionType) error {
	if !t.Valid() {
		return apperror.NewValidationError("O tipo deve ser income ou expense.")
	}
	return nil
}

func validateAmount(a float64) error {
	// A comparação negada também rejeita NaN.
	if !(a > 0) {
		return apperror.NewValidationError("O valor deve ser maior que zero.")
	}
	return nil
}

func validateDate(d string) error {
	if _, err := time.Parse(domain.DateLayout, d); err != nil {
		return apperror.NewValidationError("A data deve estar no formato AAAA-MM-DD.")
	}
	return nil
}

// ListTransactions lista as transações do usuário com filtros opcionais.
func (s *Service) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Type != "" {
		if err := validateType(filter.Type); err != nil {
			return nil, err
		}
	}
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.FindAll(ctx, userID, filter)
}

// GetTransaction busca uma transação do usuário.
func (s *Service) GetTransaction(ctx context.Context, userID string, id int64) (domain.Transaction, error) {
	if id <= 0 {
		return domain.Transaction{}, apperror.NewInvalidInputError("O ID da transação deve ser um inteiro positivo.")
	}
	return s.repo.FindByID(ctx, userID, id)
}

// CreateTransaction valida e persiste uma nova transação para o usuário.
func (s *Service) CreateTransaction(ctx context.Context, userID string, in domain.TransactionInput) (domain.Transaction, error) {
	s.logger.Debug("Iniciando criação de transação no serviço.", map[string]interface{}{"user_id": userID})

	// 1. Presença
	if in.Type == nil || in.Amount == nil || in.Category == nil {
		return domain.Transaction{}, apperror.NewInvalidInputError("Tipo, valor e categoria são obrigatórios.")
	}

	tx := domain.Transaction{
		UserID:   userID,
		Type:     *in.Type,
		Amount:   *in.Amount,
		Category: strings.TrimSpace(*in.Category),
		Date:     s.now().Format(domain.DateLayout),
	}
	if in.Description != nil {
		tx.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil {
		tx.Date = strings.TrimSpace(*in.Date)
	}

	// 2. Regras de valor
	if tx.Category == "" {
		return domain.Transaction{}, apperror.NewInvalidInputError("A categoria não pode ser vazia.")
	}
	for _, err := range []error{validateType(tx.Type), validateAmount(tx.Amount), validateDate(tx.Date)} {
		if err != nil {
			s.logger.Warn("Falha na validação da transação.", map[string]interface{}{"user_id": userID, "error": err.Error()})
			return domain.Transaction{}, err
		}
	}

	// 3. Persistência
	created, err := s.repo.Save(ctx, tx)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.logger.Info("Transação criada com sucesso.", map[string]interface{}{"id": created.ID, "user_id": userID})
	return created, nil
}

// UpdateTransaction aplica uma atualização parcial; os campos enviados são revalidados.
func (s *Service) UpdateTransaction(ctx context.Context, userID string, id int64, in domain.TransactionInput) (domain.Transaction, error) {
	if id <= 0 {
		return domain.Transaction{}, apperror.NewInvalidInputError("O ID da transação deve ser um inteiro positivo.")
	}
	if in.Empty() {
		return domain.Transaction{}, apperror.NewValidationError("Nenhum campo para atualizar.")
	}

	patch := domain.TransactionInput{Type: in.Type, Amount: in.Amount}
	if in.Type != nil {
		if err := validateType(*in.Type); err != nil {
			return domain.Transaction{}, err
		}
	}
	if in.Amount != nil {
		if err := validateAmount(*in.Amount); err != nil {
			return domain.Transaction{}, err
		}
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			return domain.Transaction{}, apperror.NewInvalidInputError("A categoria não pode ser vazia.")
		}
		patch.Category = &c
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		patch.Description = &d
	}
	if in.Date != nil {
		d := strings.TrimSpace(*in.Date)
		if err := validateDate(d); err != nil {
			return domain.Transaction{}, err
		}
		patch.Date = &d
	}

	updated, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.logger.Info("Transação atualizada com sucesso.", map[string]interface{}{"id": id, "user_id": userID})
	return updated, nil
}

// DeleteTransaction remove a transação do usuário e devolve o registro removido.
func (s *Service) DeleteTransaction(ctx context.Context, userID string, id int64) (domain.Transaction, error) {
	if id <= 0 {
		return domain.Transaction{}, apperror.NewInvalidInputError("O ID da transação deve ser um inteiro positivo.")
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.logger.Info("Transação removida com sucesso.", map[string]interface{}{"id": id, "user_id": userID})
	return deleted, nil
}

// Summary devolve entradas, saídas e saldo do usuário.
func (s *Service) Summary(ctx context.Context, userID string) (domain.Summary, error) {
	return s.repo.Summary(ctx, userID)
}

// CategoryTotals agrega por categoria; txType vazio inclui os dois tipos.
func (s *Service) CategoryTotals(ctx context.Context, userID string, txType domain.TransactionType) ([]domain.CategoryTotal, error) {
	if txType != "" {
		if err := validateType(txType); err != nil {
			return nil, err
		}
	}
	return s.repo.CategoryTotals(ctx, userID, txType)
}

// DailyTotals agrega entradas e saídas por dia.
func (s *Service) DailyTotals(ctx context.Context, userID string) ([]domain.DailyTotal, error) {
	return s.repo.DailyTotals(ctx, userID)
}
