package movierepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/cache"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
)

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }

type MovieRepositorySuite struct {
	suite.Suite
	db    *database.DB
	cache *cache.MemoryClient
	repo  *MovieRepository
	ctx   context.Context
}

func (s *MovieRepositorySuite) SetupTest() {
	db, err := database.NewSQLiteDB(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())

	s.db = db
	s.cache = cache.NewMemoryClient()
	s.repo = NewMovieRepository(db, s.cache, time.Second, time.Minute, logger.Nop())
	s.ctx = context.Background()
}

func (s *MovieRepositorySuite) TearDownTest() {
	s.db.Close()
}

func TestMovieRepositorySuite(t *testing.T) {
	suite.Run(t, new(MovieRepositorySuite))
}

func (s *MovieRepositorySuite) TestFindAll_EmptyIsNotNil() {
	movies, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.NotNil(movies)
	s.Empty(movies)
}

func (s *MovieRepositorySuite) TestSave_AssignsIncreasingIDs() {
	a, err := s.repo.Save(s.ctx, domain.Movie{Title: "Matrix", Genre: "Ficção", Score: 9})
	s.Require().NoError(err)
	b, err := s.repo.Save(s.ctx, domain.Movie{Title: "Up", Genre: "Animação", Score: 0})
	s.Require().NoError(err)

	s.Greater(b.ID, a.ID)
	s.Equal(0.0, b.Score)
	s.False(a.CreatedAt.IsZero())

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Matrix", all[0].Title)
	s.Equal("Up", all[1].Title)
}

func (s *MovieRepositorySuite) TestSave_CheckConstraint() {
	_, err := s.repo.Save(s.ctx, domain.Movie{Title: "Ruim", Genre: "Drama", Score: 11})

	var vErr *apperror.ValidationError
	s.ErrorAs(err, &vErr)

	all, _ := s.repo.FindAll(s.ctx)
	s.Empty(all)
}

func (s *MovieRepositorySuite) TestFindByID_PopulatesCache() {
	saved, err := s.repo.Save(s.ctx, domain.Movie{Title: "Matrix", Genre: "Ficção", Score: 9})
	s.Require().NoError(err)

	got, err := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.Title, got.Title)

	raw, err := s.cache.Get(s.ctx, fmt.Sprintf(movieCacheKey, saved.ID))
	s.Require().NoError(err)
	var cached domain.Movie
	s.Require().NoError(json.Unmarshal([]byte(raw), &cached))
	s.Equal(saved.ID, cached.ID)
}

func (s *MovieRepositorySuite) TestFindByID_NotFound() {
	_, err := s.repo.FindByID(s.ctx, 999)
	s.True(apperror.IsNotFound(err))
}

func (s *MovieRepositorySuite) TestUpdate_PartialAndInvalidatesCache() {
	saved, err := s.repo.Save(s.ctx, domain.Movie{Title: "Matrix", Genre: "Ficção", Score: 9})
	s.Require().NoError(err)
	_, err = s.repo.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, saved.ID, domain.MovieInput{Score: floatPtr(7.5)})
	s.Require().NoError(err)
	s.Equal("Matrix", updated.Title)
	s.Equal("Ficção", updated.Genre)
	s.Equal(7.5, updated.Score)

	_, err = s.cache.Get(s.ctx, fmt.Sprintf(movieCacheKey, saved.ID))
	s.ErrorIs(err, cache.ErrCacheMiss)

	got, err := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(7.5, got.Score)
}

func (s *MovieRepositorySuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, 42, domain.MovieInput{Title: strPtr("Novo")})
	s.True(apperror.IsNotFound(err))
}

func (s *MovieRepositorySuite) TestDelete_ReturnsRecordAndIsIdempotent() {
	saved, err := s.repo.Save(s.ctx, domain.Movie{Title: "Matrix", Genre: "Ficção", Score: 9})
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.ID, deleted.ID)
	s.Equal("Matrix", deleted.Title)

	_, err = s.repo.Delete(s.ctx, saved.ID)
	s.True(apperror.IsNotFound(err))

	_, err = s.repo.FindByID(s.ctx, saved.ID)
	s.True(apperror.IsNotFound(err))
}

func TestFindAll_EngineFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	repo := NewMovieRepository(&database.DB{DB: sqlDB, Driver: database.Postgres}, cache.NewMemoryClient(), time.Second, time.Minute, logger.Nop())
	mock.ExpectQuery("SELECT id, title, genre, score, created_at FROM movies").
		WillReturnError(errors.New("pq: relation \"movies\" does not exist"))

	_, err = repo.FindAll(context.Background())

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
