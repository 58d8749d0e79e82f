package geobooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrBookUnavailable rejects a borrow submission before any network call
// when the selected book has no copies left.
var ErrBookUnavailable = errors.New("book unavailable: no copies left")

// APIError is a non-2xx response from the backend, carrying the status code
// and the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// IsPreconditionFailed reports whether err is a server-signalled business
// rule failure, e.g. no copies available or roll not found.
func IsPreconditionFailed(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnprocessableEntity
}

// IsUnauthorized reports whether err means the session is missing or expired.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// IsConflict reports whether err is a duplicate-state failure such as an
// email already in use or a borrow already returned.
func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusConflict
}

func apiErrorFrom(res *http.Response) error {
	ae := &APIError{Status: res.StatusCode}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err == nil {
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			ae.Message = envelope.Error
		}
	}
	if ae.Message == "" {
		ae.Message = http.StatusText(res.StatusCode)
	}
	return ae
}
