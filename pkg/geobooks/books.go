package geobooks

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type bookPayload struct {
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Author      string    `json:"author"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Copies      int       `json:"copies"`
	AddedAt     time.Time `json:"addedAt,omitempty"`
}

type insertedResponse struct {
	InsertedID string `json:"insertedId"`
}

type modifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// Books fetches the whole catalog.
func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Book fetches a single catalog entry by id.
func (c *Client) Book(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, "/books/"+id, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// AddBook validates the form and creates a catalog entry, returning the
// inserted id.
func (c *Client) AddBook(ctx context.Context, form BookForm) (string, error) {
	if err := validateForm(form); err != nil {
		return "", err
	}

	var res insertedResponse
	err := c.do(ctx, http.MethodPost, "/books", bookPayload{
		Name:        form.Name,
		Code:        form.Code,
		Author:      form.Author,
		Category:    form.Category,
		Description: form.Description,
		Image:       form.Image,
		Copies:      form.Copies,
		AddedAt:     time.Now().UTC(),
	}, &res)
	if err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

// UpdateBook validates the form and applies a partial update. When the form
// carries no replacement image the stored cover URL is preserved.
func (c *Client) UpdateBook(ctx context.Context, id string, form EditBookForm) (int64, error) {
	if err := validateForm(form); err != nil {
		return 0, err
	}

	var res modifiedResponse
	err := c.do(ctx, http.MethodPatch, "/books/"+id, bookPayload{
		Name:        form.Name,
		Code:        form.Code,
		Author:      form.Author,
		Category:    form.Category,
		Description: form.Description,
		Image:       form.Image,
		Copies:      form.Copies,
	}, &res)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteBook removes a catalog entry.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+id, nil, nil)
}

// FilterBooks returns the books whose name or code contains term,
// case-insensitively. An empty term returns the input unchanged. Filtering
// happens entirely client-side over the already-fetched set.
func FilterBooks(books []Book, term string) []Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Name), term) ||
			strings.Contains(strings.ToLower(b.Code), term) {
			out = append(out, b)
		}
	}
	return out
}
