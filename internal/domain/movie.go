package domain

import (
	"context"
	"time"
)

// Limites da nota de um filme.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Movie é um filme do catálogo compartilhado.
type Movie struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// MovieInput é o corpo de criação e de atualização parcial. Campos nil não
// foram enviados; no update eles mantêm o valor armazenado.
type MovieInput struct {
	Title *string  `json:"title,omitempty" example:"Matrix"`
	Genre *string  `json:"genre,omitempty" example:"Ficção científica"`
	Score *float64 `json:"score,omitempty" example:"9.5"`
}

// Empty reporta se nenhum campo foi enviado.
func (in MovieInput) Empty() bool {
	return in.Title == nil && in.Genre == nil && in.Score == nil
}

// MovieRepository é implementado pelo backend SQL e pelo backend em arquivo JSON.
type MovieRepository interface {
	FindAll(ctx context.Context) ([]Movie, error)
	FindByID(ctx context.Context, id int64) (Movie, error)
	Save(ctx context.Context, movie Movie) (Movie, error)
	Update(ctx context.Context, id int64, patch MovieInput) (Movie, error)
	Delete(ctx context.Context, id int64) (Movie, error)
}
