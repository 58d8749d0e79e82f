package geobooks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var formValidator = validator.New()

// FormError carries per-field validation messages so callers can render them
// inline next to the offending inputs. It is always produced before any
// network call is attempted.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

// IsFormError reports whether err is a client-side validation failure and
// returns it when so.
func IsFormError(err error) (*FormError, bool) {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// SignUpForm holds account-creation input. The password rule matches the
// backend's so a short password never reaches the network.
type SignUpForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// SignInForm holds login input.
type SignInForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// BookForm holds a new catalog entry; Image is the hosted cover URL returned
// by the image uploader.
type BookForm struct {
	Name        string `validate:"required"`
	Code        string `validate:"required"`
	Author      string `validate:"required"`
	Category    string
	Description string
	Image       string `validate:"required,url"`
	Copies      int    `validate:"required,gte=1"`
}

// EditBookForm holds an edited catalog entry. An empty Image keeps the
// previously stored cover.
type EditBookForm struct {
	Name        string `validate:"required"`
	Code        string `validate:"required"`
	Author      string `validate:"required"`
	Category    string
	Description string
	Image       string `validate:"omitempty,url"`
	Copies      int    `validate:"required,gte=1"`
}

// BorrowForm holds a borrow transaction: the borrower plus a snapshot of the
// selected book.
type BorrowForm struct {
	Email    string `validate:"required,email"`
	Roll     string `validate:"required"`
	BookID   string `validate:"required"`
	BookName string `validate:"required"`
	BookCode string `validate:"required"`
	Author   string
	// Copies is the stock observed when the book was selected; the zero-stock
	// precondition is checked against it before submitting.
	Copies int
}

// ProfileForm holds a new library profile record.
type ProfileForm struct {
	Name  string `validate:"required"`
	Roll  string `validate:"required"`
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=admin user"`
}

func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &FormError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
