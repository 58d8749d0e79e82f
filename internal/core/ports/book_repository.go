package ports

import (
	"context"

	"github.com/geobooks/library-system/internal/core/domain"
)

// BookRepository defines persistence operations for catalog entries.
type BookRepository interface {
	// Create inserts a book and returns the inserted id.
	Create(ctx context.Context, b *domain.Book) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	// Update applies a partial update and returns the modified count.
	// Zero-valued Image in the input means "leave the stored image alone".
	Update(ctx context.Context, id string, input UpdateBookInput) (int64, error)
	Delete(ctx context.Context, id string) error
	// DecrementCopies atomically takes one copy. The update is conditional on
	// copies > 0 and fails with ErrNoCopiesAvailable at zero.
	DecrementCopies(ctx context.Context, id string) error
	// IncrementCopiesByCode returns one copy to stock, matching by code.
	IncrementCopiesByCode(ctx context.Context, code string) error
}
