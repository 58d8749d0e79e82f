package ports

import (
	"context"
)

// Credential is a stored identity: the thing a session token proves
// possession of. Profile data (name, roll, role) lives on domain.User.
type Credential struct {
	UID          string
	Email        string
	PasswordHash string
}

// AuthRepository defines persistence for identity credentials.
type AuthRepository interface {
	Create(ctx context.Context, cred *Credential) (*Credential, error)
	FindByEmail(ctx context.Context, email string) (*Credential, error)
}
