package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// UserHandler handles HTTP requests for profile records and role lookups.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /users. With an email query parameter it is the role
// lookup for a single profile; without one it lists all profiles, which is
// restricted to admins by the router.
//
// @Summary      Look up profiles
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Profile email to look up"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) Get(c echo.Context) error {
	sessionEmail, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	email := c.QueryParam("email")
	if email == "" {
		// The full listing backs the borrow form's roll verification.
		if role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		users, err := h.service.List(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}

	// Non-admins may only look up their own record.
	if role != domain.RoleAdmin && !strings.EqualFold(email, sessionEmail) {
		return domain.ErrForbidden
	}

	user, err := h.service.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /users.
//
// @Summary      Create a profile record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Profile details"
// @Success      201   {object}  insertedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Only an admin may grant the admin role; everyone else creates plain
	// user profiles regardless of what the payload asks for.
	if req.Role == domain.RoleAdmin {
		_, role, err := ctxClaims(c)
		if err != nil {
			return err
		}
		if role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:      req.Name,
		Roll:      req.Roll,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: req.CreatedAt,
		LastLogIn: req.LastLogIn,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, insertedResponse{InsertedID: id})
}
