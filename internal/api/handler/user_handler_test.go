package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/api"
	"github.com/geobooks/library-system/internal/api/handler"
	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

type stubProfileService struct {
	created []ports.CreateUserInput
}

func (s *stubProfileService) Create(_ context.Context, input ports.CreateUserInput) (string, error) {
	s.created = append(s.created, input)
	return "profile-1", nil
}

func (s *stubProfileService) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubProfileService) List(context.Context) ([]*domain.User, error) {
	return nil, nil
}

// claimsAs stands in for the auth and role middleware chain.
func claimsAs(email, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("email", email)
			c.Set("role", role)
			return next(c)
		}
	}
}

func userTestServer(callerRole string) (*echo.Echo, *stubProfileService) {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	svc := &stubProfileService{}
	h := handler.NewUserHandler(svc)
	e.POST("/users", h.Create, claimsAs("caller@example.com", callerRole))
	return e, svc
}

func postProfile(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserHandler_Create_NonAdminCannotGrantAdmin(t *testing.T) {
	e, svc := userTestServer(domain.RoleUser)

	rec := postProfile(e, `{"name":"Mallory","roll":"R-9","email":"mallory@example.com","role":"admin"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.created) != 0 {
		t.Fatalf("admin profile stored despite forbidden caller: %+v", svc.created)
	}
}

func TestUserHandler_Create_NonAdminPlainProfile(t *testing.T) {
	e, svc := userTestServer(domain.RoleUser)

	rec := postProfile(e, `{"name":"Alice","roll":"R-1","email":"alice@example.com"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.created) != 1 || svc.created[0].Role != "" {
		t.Fatalf("unexpected create input: %+v", svc.created)
	}
}

func TestUserHandler_Create_AdminGrantsAdmin(t *testing.T) {
	e, svc := userTestServer(domain.RoleAdmin)

	rec := postProfile(e, `{"name":"Bob","roll":"R-2","email":"bob@example.com","role":"admin"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.created) != 1 || svc.created[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected create input: %+v", svc.created)
	}
}
