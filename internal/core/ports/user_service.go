package ports

import (
	"context"
	"time"

	"github.com/geobooks/library-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a profile record.
type CreateUserInput struct {
	Name      string
	Roll      string
	Email     string
	Role      string
	CreatedAt time.Time
	LastLogIn time.Time
}

// UserService manages library profile records and role lookups.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (string, error)
	// GetByEmail is the role lookup: the dashboard keys it by session email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
