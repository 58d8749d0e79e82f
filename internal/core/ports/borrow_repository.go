package ports

import (
	"context"
	"time"

	"github.com/geobooks/library-system/internal/core/domain"
)

// BorrowRepository defines persistence for the borrow ledger.
type BorrowRepository interface {
	// Create inserts a borrow record and returns the inserted id.
	Create(ctx context.Context, rec *domain.BorrowRecord) (string, error)
	FindByID(ctx context.Context, id string) (*domain.BorrowRecord, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.BorrowRecord, error)
	ListAll(ctx context.Context) ([]*domain.BorrowRecord, error)
	// MarkReturned flips the returned flag and sets the return date,
	// returning the modified count. Already-returned records are not matched.
	MarkReturned(ctx context.Context, id string, at time.Time) (int64, error)
}
