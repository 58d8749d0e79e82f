package ports

import (
	"context"

	"github.com/geobooks/library-system/internal/core/domain"
)

// AuthService implements the identity-provider primitives: account creation,
// credential verification, and token issuance for session cookies.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, *domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
}
