package geobooks

import "time"

// Identity is the authenticated principal behind a session.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Book is a catalog entry as served by the backend.
type Book struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Author      string    `json:"author"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Copies      int       `json:"copies"`
	AddedAt     time.Time `json:"addedAt"`
}

// Available reports whether the book can currently be borrowed.
func (b Book) Available() bool {
	return b.Copies > 0
}

// User is a library profile record, keyed by email.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogIn time.Time `json:"last_log_in"`
}

// BorrowRecord is one ledger entry linking a borrower to a book copy.
type BorrowRecord struct {
	ID         string     `json:"_id"`
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

// Role names recognised by the dashboard.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
