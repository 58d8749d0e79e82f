package ports

import (
	"context"
	"time"

	"github.com/geobooks/library-system/internal/core/domain"
)

// BorrowInput carries all data for a borrow transaction. IdempotencyKey is
// optional; when set, a replayed submission is acknowledged without creating
// a second ledger entry or taking a second copy.
type BorrowInput struct {
	Email          string
	Roll           string
	BookID         string
	BookName       string
	BookCode       string
	Author         string
	BorrowDate     time.Time
	IdempotencyKey string
}

// BorrowResult is returned after a borrow transaction.
type BorrowResult struct {
	InsertedID string
	// AlreadyExisted is true when the idempotency key matched a previous
	// submission and no new record was created.
	AlreadyExisted bool
}

// BorrowService records borrow and return transactions against the ledger.
type BorrowService interface {
	Borrow(ctx context.Context, input BorrowInput) (*BorrowResult, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.BorrowRecord, error)
	ListAll(ctx context.Context) ([]*domain.BorrowRecord, error)
	// Return marks borrow id as returned and restores the copy to stock.
	// bookCode must match the record's code.
	Return(ctx context.Context, id, bookCode string) (int64, error)
}
