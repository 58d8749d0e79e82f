package geobooks

import (
	"context"
	"net/http"
	"net/url"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User *Identity `json:"user"`
}

// Register creates an account and opens a session. The session cookie is
// captured by the client's jar; the token is also attached as a bearer
// header for subsequent calls.
func (c *Client) Register(ctx context.Context, email, password string) (*Identity, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", credentialsRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// Login verifies credentials and opens a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	var res authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentialsRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// Logout terminates the session and drops the attached token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Me resolves the ambient session, if any.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var res authResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

// SessionCookie returns the current session cookie value, letting callers
// persist it across process restarts.
func (c *Client) SessionCookie() string {
	u, err := baseCookieURL(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == "geobooks_session" {
			return cookie.Value
		}
	}
	return ""
}

func baseCookieURL(base string) (*url.URL, error) {
	return url.Parse(base + "/")
}
