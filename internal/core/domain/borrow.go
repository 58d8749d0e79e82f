package domain

import (
	"errors"
	"time"
)

var ErrBorrowNotFound = errors.New("borrow record not found")
var ErrAlreadyReturned = errors.New("borrow already returned")
var ErrRollNotFound = errors.New("roll not found")
var ErrCodeMismatch = errors.New("book code does not match borrow record")

// BorrowRecord is a ledger entry linking a user to a book copy. Records are
// never deleted; a return flips Returned and sets ReturnDate.
type BorrowRecord struct {
	ID         string     `json:"_id,omitempty"`
	Email      string     `json:"email"`
	Roll       string     `json:"roll"`
	BookID     string     `json:"bookId"`
	BookName   string     `json:"bookName"`
	BookCode   string     `json:"bookCode"`
	Author     string     `json:"author"`
	BorrowDate time.Time  `json:"borrowDate"`
	Returned   bool       `json:"returned"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}
