package movierepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
)

// Define a chave de cache para filmes.
const movieCacheKey = "movie:%d"

const movieColumns = `id, title, genre, score, created_at`

// MovieRepository implementa domain.MovieRepository sobre a tabela movies.
type MovieRepository struct {
	DB        *database.DB
	Cache     cache.Client // Cliente para operações de cache (Redis ou memória)
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewMovieRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewMovieRepository(db *database.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *MovieRepository {
	return &MovieRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.Score, database.ScanTime(&m.CreatedAt))
	return m, err
}

// FindAll lista os filmes em ordem de inserção.
func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+movieColumns+` FROM movies ORDER BY id ASC`)
	if err != nil {
		r.logger.Error("Falha ao listar filmes no DB.", err)
		return nil, apperror.NewDBError("falha ao listar filmes", err)
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, apperror.NewDBError("falha ao ler filme", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao iterar filmes", err)
	}
	return movies, nil
}

// FindByID busca um filme pelo ID, utilizando a estratégia Cache-Aside.
func (r *MovieRepository) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(movieCacheKey, id)
	var movie domain.Movie

	// 1. Tentar obter do Cache
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &movie) == nil {
			return movie, nil
		}
		r.logger.Warn("Entrada de cache corrompida; consultando o DB.", map[string]interface{}{"key": key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		// Falha real de cache não impede a leitura do DB.
		r.logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// 2. Busca no Banco de Dados
	row := r.DB.QueryRowContext(ctxTimeout, r.DB.Rebind(`SELECT `+movieColumns+` FROM movies WHERE id = ?`), id)
	movie, err = scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("falha ao buscar filme", err)
	}

	// 3. Popular o cache para as próximas leituras
	if data, marshalErr := json.Marshal(movie); marshalErr == nil {
		if err := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return movie, nil
}

// Save insere o filme e devolve o registro completo com o novo ID.
func (r *MovieRepository) Save(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}

	query := r.DB.Rebind(`INSERT INTO movies (title, genre, score, created_at) VALUES (?, ?, ?, ?) RETURNING ` + movieColumns)
	saved, err := scanMovie(r.DB.QueryRowContext(ctxTimeout, query, movie.Title, movie.Genre, movie.Score, movie.CreatedAt))
	if err != nil {
		if database.IsCheckViolation(err) {
			return domain.Movie{}, apperror.NewValidationError("A nota deve estar entre 0 e 10.")
		}
		r.logger.Error("Falha ao inserir filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("falha ao inserir filme", err)
	}

	r.logger.Info("Filme salvo.", map[string]interface{}{"movie_id": saved.ID})
	return saved, nil
}

// Update sobrescreve apenas os campos enviados, em um único UPDATE.
func (r *MovieRepository) Update(ctx context.Context, id int64, patch domain.MovieInput) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`UPDATE movies SET
		title = COALESCE(?, title),
		genre = COALESCE(?, genre),
		score = COALESCE(?, score)
		WHERE id = ? RETURNING ` + movieColumns)

	updated, err := scanMovie(r.DB.QueryRowContext(ctxTimeout, query, patch.Title, patch.Genre, patch.Score, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado.", id))
	}
	if err != nil {
		if database.IsCheckViolation(err) {
			return domain.Movie{}, apperror.NewValidationError("A nota deve estar entre 0 e 10.")
		}
		r.logger.Error("Falha ao atualizar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("falha ao atualizar filme", err)
	}

	r.invalidate(ctxTimeout, id)
	return updated, nil
}

// Delete remove o filme e devolve o registro removido.
func (r *MovieRepository) Delete(ctx context.Context, id int64) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.DB.Rebind(`DELETE FROM movies WHERE id = ? RETURNING ` + movieColumns)
	deleted, err := scanMovie(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao remover filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("falha ao remover filme", err)
	}

	r.invalidate(ctxTimeout, id)
	r.logger.Info("Filme removido.", map[string]interface{}{"movie_id": id})
	return deleted, nil
}

func (r *MovieRepository) invalidate(ctx context.Context, id int64) {
	key := fmt.Sprintf(movieCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
