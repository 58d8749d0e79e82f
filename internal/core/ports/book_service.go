package ports

import (
	"context"

	"github.com/geobooks/library-system/internal/core/domain"
)

// CreateBookInput carries all data needed to add a catalog entry.
type CreateBookInput struct {
	Name        string
	Code        string
	Author      string
	Category    string
	Description string
	Image       string
	Copies      int
}

// UpdateBookInput is a partial book update. Image left empty preserves the
// previously stored image URL (edit flows only replace it when a new upload
// was chosen).
type UpdateBookInput struct {
	Name        string
	Code        string
	Author      string
	Category    string
	Description string
	Image       string
	Copies      int
}

// BookService manages the catalog.
type BookService interface {
	Create(ctx context.Context, input CreateBookInput) (string, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, id string, input UpdateBookInput) (int64, error)
	Delete(ctx context.Context, id string) error
}
