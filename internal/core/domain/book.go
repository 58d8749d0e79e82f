package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrNoCopiesAvailable = errors.New("no copies available")
var ErrForbidden = errors.New("access forbidden")

// Book is a catalog entry. Copies never goes below zero: the repository
// decrements it with a conditional update that fails at zero.
type Book struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Author      string    `json:"author"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Copies      int       `json:"copies"`
	AddedAt     time.Time `json:"addedAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Available reports whether at least one copy can still be borrowed.
func (b Book) Available() bool {
	return b.Copies > 0
}
