package ports

import (
	"context"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// IssueLoanInput is the staff loan form: the member is identified by email
// and the book by ISBN, both resolved before the loan is created.
type IssueLoanInput struct {
	Email   string
	ISBN    string
	DueDate time.Time
}

// LoanService orchestrates the multi-step loan issue flow.
type LoanService interface {
	Issue(ctx context.Context, input IssueLoanInput) (*domain.Loan, error)
}
