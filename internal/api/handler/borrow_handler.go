package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// BorrowHandler handles HTTP requests for the borrow ledger.
type BorrowHandler struct {
	service ports.BorrowService
}

func NewBorrowHandler(service ports.BorrowService) *BorrowHandler {
	return &BorrowHandler{service: service}
}

// Create handles POST /borrows. An optional Idempotency-Key header makes
// resubmissions of the same transaction safe.
//
// @Summary      Record a borrow transaction
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Client-generated submission key"
// @Param        body             body      createBorrowRequest  true   "Borrow details"
// @Success      201              {object}  insertedResponse
// @Failure      400              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /borrows [post]
func (h *BorrowHandler) Create(c echo.Context) error {
	var req createBorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Borrow(c.Request().Context(), ports.BorrowInput{
		Email:          req.Email,
		Roll:           req.Roll,
		BookID:         req.BookID,
		BookName:       req.BookName,
		BookCode:       req.BookCode,
		Author:         req.Author,
		BorrowDate:     req.BorrowDate,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, insertedResponse{InsertedID: result.InsertedID})
}

// ListByEmail handles GET /borrows?email=<email> — a borrower's own history.
//
// @Summary      List borrow records for one borrower
// @Tags         borrows
// @Produce      json
// @Security     BearerAuth
// @Param        email  query    string  true  "Borrower email"
// @Success      200    {array}  domain.BorrowRecord
// @Failure      403    {object} errorResponse
// @Router       /borrows [get]
func (h *BorrowHandler) ListByEmail(c echo.Context) error {
	sessionEmail, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if role != domain.RoleAdmin && !strings.EqualFold(email, sessionEmail) {
		return domain.ErrForbidden
	}

	recs, err := h.service.ListByEmail(c.Request().Context(), strings.ToLower(email))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// ListAll handles GET /borrowsall — the full ledger for the return desk.
//
// @Summary      List all borrow records
// @Tags         borrows
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BorrowRecord
// @Router       /borrowsall [get]
func (h *BorrowHandler) ListAll(c echo.Context) error {
	recs, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// Return handles PATCH /borrows/return/:id.
//
// @Summary      Mark a borrow record returned
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Borrow record id"
// @Param        body  body      returnRequest  true  "Book code of the returned copy"
// @Success      200   {object}  modifiedResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /borrows/return/{id} [patch]
func (h *BorrowHandler) Return(c echo.Context) error {
	var req returnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	modified, err := h.service.Return(c.Request().Context(), c.Param("id"), req.BookCode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{ModifiedCount: modified})
}
