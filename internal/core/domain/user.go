package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// User is the library profile record stored alongside an identity,
// keyed by email. Role gates the dashboard actions.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogIn time.Time `json:"last_log_in"`
}

// ValidRole reports whether role is one of the two recognised roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
