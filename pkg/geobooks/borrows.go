package geobooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type borrowPayload struct {
	Email      string    `json:"email"`
	Roll       string    `json:"roll"`
	BookID     string    `json:"bookId"`
	BookName   string    `json:"bookName"`
	BookCode   string    `json:"bookCode"`
	Author     string    `json:"author,omitempty"`
	BorrowDate time.Time `json:"borrowDate"`
}

// Borrow validates the form, applies the zero-stock precondition, and
// submits the transaction with a generated idempotency key so an accidental
// resubmission cannot take a second copy.
func (c *Client) Borrow(ctx context.Context, form BorrowForm) (string, error) {
	if err := validateForm(form); err != nil {
		return "", err
	}
	if form.Copies <= 0 {
		return "", ErrBookUnavailable
	}

	payload := borrowPayload{
		Email:      form.Email,
		Roll:       form.Roll,
		BookID:     form.BookID,
		BookName:   form.BookName,
		BookCode:   form.BookCode,
		Author:     form.Author,
		BorrowDate: time.Now().UTC(),
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/borrows", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("POST /borrows: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", apiErrorFrom(res)
	}

	var out insertedResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.InsertedID, nil
}

// MyBorrows fetches the borrow history for one borrower.
func (c *Client) MyBorrows(ctx context.Context, email string) ([]BorrowRecord, error) {
	var recs []BorrowRecord
	path := "/borrows?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// AllBorrows fetches the full ledger (privileged).
func (c *Client) AllBorrows(ctx context.Context) ([]BorrowRecord, error) {
	var recs []BorrowRecord
	if err := c.do(ctx, http.MethodGet, "/borrowsall", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

type returnPayload struct {
	BookCode string `json:"bookCode"`
}

// Return marks borrow id as returned, restoring the copy to stock.
func (c *Client) Return(ctx context.Context, id, bookCode string) (int64, error) {
	var res modifiedResponse
	err := c.do(ctx, http.MethodPatch, "/borrows/return/"+id, returnPayload{BookCode: bookCode}, &res)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// NotReturned keeps only the open ledger entries.
func NotReturned(recs []BorrowRecord) []BorrowRecord {
	out := make([]BorrowRecord, 0, len(recs))
	for _, r := range recs {
		if !r.Returned {
			out = append(out, r)
		}
	}
	return out
}

// FilterBorrowsByRoll returns the records whose roll contains term,
// case-insensitively. An empty term returns the input unchanged.
func FilterBorrowsByRoll(recs []BorrowRecord, term string) []BorrowRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return recs
	}

	out := make([]BorrowRecord, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Roll), term) {
			out = append(out, r)
		}
	}
	return out
}
