package geobooks

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type userPayload struct {
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogIn time.Time `json:"last_log_in"`
}

// UserByEmail fetches a single profile record — the role lookup.
func (c *Client) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	path := "/users?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users fetches all profile records (privileged, used by the borrow form's
// roll verification).
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser validates the form and creates a profile record, returning the
// inserted id. An empty role defaults server-side to the plain user role.
func (c *Client) CreateUser(ctx context.Context, form ProfileForm) (string, error) {
	if err := validateForm(form); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	var res insertedResponse
	err := c.do(ctx, http.MethodPost, "/users", userPayload{
		Name:      form.Name,
		Roll:      form.Roll,
		Email:     form.Email,
		Role:      form.Role,
		CreatedAt: now,
		LastLogIn: now,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.InsertedID, nil
}
