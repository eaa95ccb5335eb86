package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Loans talks to the backend's book-loan lifecycle endpoints.
type Loans struct {
	c *Client
}

func NewLoans(c *Client) *Loans {
	return &Loans{c: c}
}

// LoanListParams filters and paginates loan listings.
type LoanListParams struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

func (p LoanListParams) values() url.Values {
	q := url.Values{}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// LoanInput creates a loan for a resolved user and book.
type LoanInput struct {
	UserID  string    `json:"userId"`
	BookID  string    `json:"bookId"`
	DueDate time.Time `json:"dueDate"`
}

// ReturnInput records a book return.
type ReturnInput struct {
	ReturnDate time.Time `json:"returnDate"`
}

// ExtendInput moves a loan's due date.
type ExtendInput struct {
	NewDueDate time.Time `json:"newDueDate"`
}

// List returns a page of loans.
func (l *Loans) List(ctx context.Context, params LoanListParams) ([]domain.Loan, *Pagination, error) {
	var loans []domain.Loan
	m, err := l.c.get(ctx, "/api/book-loans", params.values(), &loans)
	if err != nil {
		return nil, nil, err
	}
	return loans, m.Pagination, nil
}

// Get returns one loan.
func (l *Loans) Get(ctx context.Context, id string) (*domain.Loan, error) {
	var loan domain.Loan
	if _, err := l.c.get(ctx, "/api/book-loans/"+url.PathEscape(id), nil, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// Overdue returns all loans past their due date.
func (l *Loans) Overdue(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	if _, err := l.c.get(ctx, "/api/book-loans/overdue", nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Create issues a new loan. A 402 from the backend means the borrower owes
// a commitment fee first; it surfaces as a *Error with PaymentDetails.
func (l *Loans) Create(ctx context.Context, input LoanInput) (*domain.Loan, error) {
	var loan domain.Loan
	if _, err := l.c.post(ctx, "/api/book-loans", input, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// Return closes a loan with the given return date.
func (l *Loans) Return(ctx context.Context, id string, input ReturnInput) (*domain.Loan, error) {
	var loan domain.Loan
	if _, err := l.c.put(ctx, "/api/book-loans/"+url.PathEscape(id)+"/return", input, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// Extend moves a loan's due date forward.
func (l *Loans) Extend(ctx context.Context, id string, input ExtendInput) (*domain.Loan, error) {
	var loan domain.Loan
	if _, err := l.c.put(ctx, "/api/book-loans/"+url.PathEscape(id)+"/extend", input, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}
