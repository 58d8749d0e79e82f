package ports

import (
	"context"
	"time"

	"github.com/geobooks/library-system/internal/core/domain"
)

// UserRepository defines persistence for library profile records.
type UserRepository interface {
	// Create inserts a profile record and returns the inserted id.
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRoll(ctx context.Context, roll string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// TouchLastLogin updates last_log_in; a missing profile is not an error.
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
}
