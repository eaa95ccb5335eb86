package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// LoanHandler serves the loan screens. Members only ever see their own
// loans; staff see everything and run the issue/return/extend flows.
type LoanHandler struct {
	loans   ports.LoansAPI
	issuing ports.LoanService
}

func NewLoanHandler(loans ports.LoansAPI, issuing ports.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans, issuing: issuing}
}

type issueLoanRequest struct {
	Email   string    `json:"email" validate:"required,email"`
	ISBN    string    `json:"isbn" validate:"required"`
	DueDate time.Time `json:"dueDate" validate:"required"`
}

type returnLoanRequest struct {
	ReturnDate time.Time `json:"returnDate"`
}

type extendLoanRequest struct {
	NewDueDate time.Time `json:"newDueDate" validate:"required"`
}

type loanListResponse struct {
	Loans      []domain.Loan        `json:"loans"`
	Pagination *upstream.Pagination `json:"pagination,omitempty"`
}

// List serves loan history. Non-staff requests are always scoped to the
// caller, whatever the query says.
//
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Param        status  query     string  false  "Status filter"
// @Param        userId  query     string  false  "User filter (staff only)"
// @Param        page    query     int     false  "Page number"
// @Success      200     {object}  loanListResponse
// @Router       /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	params := upstream.LoanListParams{
		UserID: c.QueryParam("userId"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}
	if !user.IsStaff() {
		params.UserID = user.ID
	}

	loans, pagination, err := h.loans.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loanListResponse{Loans: loans, Pagination: pagination})
}

// Get serves one loan. Members may only see their own.
func (h *LoanHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	loan, err := h.loans.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !user.IsStaff() && loan.UserID != user.ID {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, loan)
}

// Overdue lists all overdue loans for the staff follow-up screen.
func (h *LoanHandler) Overdue(c echo.Context) error {
	loans, err := h.loans.Overdue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}

// Issue runs the member-by-email, book-by-ISBN loan flow.
//
// @Summary      Issue a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body      issueLoanRequest  true  "Member email, book ISBN and due date"
// @Success      201   {object}  domain.Loan
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /loans [post]
func (h *LoanHandler) Issue(c echo.Context) error {
	var req issueLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.issuing.Issue(c.Request().Context(), ports.IssueLoanInput{
		Email:   req.Email,
		ISBN:    req.ISBN,
		DueDate: req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, loan)
}

// Return records a book return. An omitted return date means now.
func (h *LoanHandler) Return(c echo.Context) error {
	var req returnLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReturnDate.IsZero() {
		req.ReturnDate = time.Now().UTC()
	}

	if err := h.ensureOpen(c, c.Param("id")); err != nil {
		return err
	}

	loan, err := h.loans.Return(c.Request().Context(), c.Param("id"), upstream.ReturnInput{ReturnDate: req.ReturnDate})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// Extend moves a loan's due date.
func (h *LoanHandler) Extend(c echo.Context) error {
	var req extendLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.ensureOpen(c, c.Param("id")); err != nil {
		return err
	}

	loan, err := h.loans.Extend(c.Request().Context(), c.Param("id"), upstream.ExtendInput{NewDueDate: req.NewDueDate})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// ensureOpen rejects return/extend attempts on loans that already reached a
// terminal state, before the mutation hits the backend.
func (h *LoanHandler) ensureOpen(c echo.Context, id string) error {
	loan, err := h.loans.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if loan.Status.Terminal() {
		return fmt.Errorf("%w: loan is already %s", domain.ErrConflict, loan.Status)
	}
	return nil
}
