package movie

import (
	"context"
	"net/http"

	"gocontrole/internal/domain"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/response"
)

// MovieService define o contrato que o Handler espera da camada de Serviço.
type MovieService interface {
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id int64) (domain.Movie, error)
	CreateMovie(ctx context.Context, in domain.MovieInput) (domain.Movie, error)
	UpdateMovie(ctx context.Context, id int64, in domain.MovieInput) (domain.Movie, error)
	DeleteMovie(ctx context.Context, id int64) (domain.Movie, error)
}

// Handler agrupa todos os métodos de Handler dos filmes.
type Handler struct {
	Service MovieService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovieService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListMoviesHandler lida com GET /movies.
// @Summary Lista os filmes
// @Tags movies
// @Produce json
// @Security SessionAuth
// @Success 200 {array} domain.Movie
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /movies [get]
func (h *Handler) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Service.ListMovies(r.Context())
	response.Handle(w, r, h.Logger, movies, err, http.StatusOK)
}

// GetMovieHandler lida com GET /movies/{id}.
// @Summary Busca um filme por ID
// @Tags movies
// @Produce json
// @Security SessionAuth
// @Param id path int true "ID do filme"
// @Success 200 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [get]
func (h *Handler) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	m, err := h.Service.GetMovie(r.Context(), id)
	response.Handle(w, r, h.Logger, m, err, http.StatusOK)
}

// CreateMovieHandler lida com POST /movies.
// @Summary Cadastra um filme
// @Tags movies
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param movie body domain.MovieInput true "Título, gênero e nota (0 a 10)"
// @Success 201 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes ou nota fora do intervalo"
// @Router /movies [post]
func (h *Handler) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.MovieInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateMovie(r.Context(), in)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// UpdateMovieHandler lida com PUT /movies/{id}. Campos omitidos mantêm o valor atual.
// @Summary Atualiza um filme
// @Tags movies
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "ID do filme"
// @Param movie body domain.MovieInput true "Campos a alterar"
// @Success 200 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Nada para atualizar ou valor inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [put]
func (h *Handler) UpdateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var in domain.MovieInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateMovie(r.Context(), id, in)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteMovieHandler lida com DELETE /movies/{id} (somente admin).
// @Summary Remove um filme
// @Tags movies
// @Security SessionAuth
// @Param id path int true "ID do filme"
// @Success 204 "Removido"
// @Failure 403 {object} domain.ErrorResponse "Requer papel admin"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [delete]
func (h *Handler) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	_, err = h.Service.DeleteMovie(r.Context(), id)
	response.Handle(w, r, h.Logger, nil, err, http.StatusNoContent)
}
