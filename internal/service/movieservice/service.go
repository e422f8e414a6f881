package movieservice

import (
	"context"
	"fmt"
	"strings"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
)

// Service implementa as regras de negócio do catálogo de filmes.
type Service struct {
	repo   domain.MovieRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Filmes.
func NewService(repo domain.MovieRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListMovies devolve o catálogo em ordem de inserção.
func (s *Service) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.FindAll(ctx)
}

// GetMovie busca um filme pelo ID.
func (s *Service) GetMovie(ctx context.Context, id int64) (domain.Movie, error) {
	if id <= 0 {
		return domain.Movie{}, apperror.NewInvalidInputError("O ID do filme deve ser um inteiro positivo.")
	}
	return s.repo.FindByID(ctx, id)
}

// CreateMovie valida título, gênero e nota antes de persistir.
func (s *Service) CreateMovie(ctx context.Context, in domain.MovieInput) (domain.Movie, error) {
	s.logger.Debug("Iniciando criação de filme no serviço.", nil)

	// 1. Presença (ponteiro nil = campo não enviado; nota 0 é válida)
	if in.Title == nil || in.Genre == nil || in.Score == nil {
		return domain.Movie{}, apperror.NewInvalidInputError("Título, gênero e nota são obrigatórios.")
	}

	// 2. Conteúdo
	movie := domain.Movie{
		Title: strings.TrimSpace(*in.Title),
		Genre: strings.TrimSpace(*in.Genre),
		Score: *in.Score,
	}
	if err := validateMovie(movie); err != nil {
		s.logger.Warn("Falha na validação do filme.", map[string]interface{}{"error": err.Error()})
		return domain.Movie{}, err
	}

	// 3. Persistência
	created, err := s.repo.Save(ctx, movie)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme criado com sucesso.", map[string]interface{}{"id": created.ID, "title": created.Title})
	return created, nil
}

// UpdateMovie aplica uma atualização parcial; os campos enviados são revalidados.
func (s *Service) UpdateMovie(ctx context.Context, id int64, in domain.MovieInput) (domain.Movie, error) {
	if id <= 0 {
		return domain.Movie{}, apperror.NewInvalidInputError("O ID do filme deve ser um inteiro positivo.")
	}
	if in.Empty() {
		return domain.Movie{}, apperror.NewValidationError("Nenhum campo para atualizar.")
	}

	patch := domain.MovieInput{Score: in.Score}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return domain.Movie{}, apperror.NewInvalidInputError("O título não pode ser vazio.")
		}
		patch.Title = &t
	}
	if in.Genre != nil {
		g := strings.TrimSpace(*in.Genre)
		if g == "" {
			return domain.Movie{}, apperror.NewInvalidInputError("O gênero não pode ser vazio.")
		}
		patch.Genre = &g
	}
	if in.Score != nil {
		if err := validateScore(*in.Score); err != nil {
			return domain.Movie{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme atualizado com sucesso.", map[string]interface{}{"id": id})
	return updated, nil
}

// DeleteMovie remove o filme e devolve o registro removido. O papel admin é
// exigido pela rota antes de chegar aqui.
func (s *Service) DeleteMovie(ctx context.Context, id int64) (domain.Movie, error) {
	if id <= 0 {
		return domain.Movie{}, apperror.NewInvalidInputError("O ID do filme deve ser um inteiro positivo.")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme removido com sucesso.", map[string]interface{}{"id": id})
	return deleted, nil
}

func validateMovie(m domain.Movie) error {
	if m.Title == "" {
		return apperror.NewInvalidInputError("O título não pode ser vazio.")
	}
	if m.Genre == "" {
		return apperror.NewInvalidInputError("O gênero não pode ser vazio.")
	}
	return validateScore(m.Score)
}

func validateScore(score float64) error {
	// A comparação negada também rejeita NaN.
	if !(score >= domain.MinScore && score <= domain.MaxScore) {
		return apperror.NewValidationError(fmt.Sprintf("A nota deve estar entre %g e %g.", domain.MinScore, domain.MaxScore))
	}
	return nil
}
