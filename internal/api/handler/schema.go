package handler

import (
	"time"

	"github.com/geobooks/library-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// insertedResponse acknowledges a successful insert, mirroring the store's
// insert-one result shape the clients key on.
type insertedResponse struct {
	InsertedID string `json:"insertedId"`
}

// modifiedResponse acknowledges a successful update.
type modifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// deletedResponse acknowledges a successful delete.
type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User *domain.Identity `json:"user"`
}

// --- Users ---

type createUserRequest struct {
	Name      string    `json:"name"        validate:"required"`
	Roll      string    `json:"roll"        validate:"required"`
	Email     string    `json:"email"       validate:"required,email"`
	Role      string    `json:"role"        validate:"omitempty,oneof=admin user"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogIn time.Time `json:"last_log_in"`
}

// --- Books ---

type createBookRequest struct {
	Name        string `json:"name"        validate:"required"`
	Code        string `json:"code"        validate:"required"`
	Author      string `json:"author"      validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"       validate:"required,url"`
	Copies      int    `json:"copies"      validate:"required,gte=1"`
}

// updateBookRequest is a partial book update. Image is optional: when the
// edit flow keeps the existing cover it simply omits the field.
type updateBookRequest struct {
	Name        string `json:"name"        validate:"required"`
	Code        string `json:"code"        validate:"required"`
	Author      string `json:"author"      validate:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"       validate:"omitempty,url"`
	Copies      int    `json:"copies"      validate:"required,gte=1"`
}

// --- Borrows ---

type createBorrowRequest struct {
	Email      string    `json:"email"      validate:"required,email"`
	Roll       string    `json:"roll"       validate:"required"`
	BookID     string    `json:"bookId"     validate:"required"`
	BookName   string    `json:"bookName"   validate:"required"`
	BookCode   string    `json:"bookCode"   validate:"required"`
	Author     string    `json:"author"`
	BorrowDate time.Time `json:"borrowDate"`
}

type returnRequest struct {
	BookCode string `json:"bookCode" validate:"required"`
}
