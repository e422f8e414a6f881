package moviefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
)

// MovieRepository implementa domain.MovieRepository sobre um arquivo JSON
// contendo o array de filmes. Cada escrita regrava o arquivo inteiro.
type MovieRepository struct {
	path   string
	logger logger.Logger

	mu     sync.RWMutex
	movies []domain.Movie
	nextID int64
}

// NewMovieRepository carrega o arquivo (se existir) e calcula o próximo ID.
func NewMovieRepository(path string, log logger.Logger) (*MovieRepository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("caminho do arquivo de filmes é obrigatório")
	}

	r := &MovieRepository{
		path:   path,
		logger: log,
		movies: make([]domain.Movie, 0),
		nextID: 1,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MovieRepository) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("falha ao ler arquivo de filmes: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}

	var decoded []domain.Movie
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("falha ao decodificar arquivo de filmes: %w", err)
	}
	for _, m := range decoded {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	r.movies = decoded
	return nil
}

// persistLocked grava em um arquivo temporário e renomeia, para que um leitor
// nunca veja o JSON pela metade. Deve ser chamado com mu travado.
func (r *MovieRepository) persistLocked() error {
	b, err := json.MarshalIndent(r.movies, "", "  ")
	if err != nil {
		return fmt.Errorf("falha ao codificar filmes: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório de filmes: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".filmes-*.json")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo temporário: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("falha ao gravar arquivo temporário: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("falha ao fechar arquivo temporário: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("falha ao substituir arquivo de filmes: %w", err)
	}
	return nil
}

func (r *MovieRepository) indexOf(id int64) int {
	for i, m := range r.movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado.", id))
}

// FindAll devolve uma cópia da lista em ordem de inserção.
func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.NewInternalError("requisição cancelada", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Movie, len(r.movies))
	copy(out, r.movies)
	return out, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, apperror.NewInternalError("requisição cancelada", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Movie{}, notFound(id)
	}
	return r.movies[i], nil
}

func (r *MovieRepository) Save(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, apperror.NewInternalError("requisição cancelada", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	movie.ID = r.nextID
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}

	r.movies = append(r.movies, movie)
	if err := r.persistLocked(); err != nil {
		r.movies = r.movies[:len(r.movies)-1]
		r.logger.Error("Falha ao persistir arquivo de filmes.", err)
		return domain.Movie{}, apperror.NewInternalError("falha ao salvar filme", err)
	}
	r.nextID++

	r.logger.Info("Filme salvo no arquivo.", map[string]interface{}{"movie_id": movie.ID})
	return movie, nil
}

func (r *MovieRepository) Update(ctx context.Context, id int64, patch domain.MovieInput) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, apperror.NewInternalError("requisição cancelada", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Movie{}, notFound(id)
	}

	prev := r.movies[i]
	next := prev
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Genre != nil {
		next.Genre = *patch.Genre
	}
	if patch.Score != nil {
		next.Score = *patch.Score
	}

	r.movies[i] = next
	if err := r.persistLocked(); err != nil {
		r.movies[i] = prev
		r.logger.Error("Falha ao persistir arquivo de filmes.", err)
		return domain.Movie{}, apperror.NewInternalError("falha ao atualizar filme", err)
	}
	return next, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, apperror.NewInternalError("requisição cancelada", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Movie{}, notFound(id)
	}

	prev := r.movies
	deleted := r.movies[i]
	remaining := make([]domain.Movie, 0, len(r.movies)-1)
	remaining = append(remaining, r.movies[:i]...)
	remaining = append(remaining, r.movies[i+1:]...)

	r.movies = remaining
	if err := r.persistLocked(); err != nil {
		r.movies = prev
		r.logger.Error("Falha ao persistir arquivo de filmes.", err)
		return domain.Movie{}, apperror.NewInternalError("falha ao remover filme", err)
	}

	r.logger.Info("Filme removido do arquivo.", map[string]interface{}{"movie_id": id})
	return deleted, nil
}
