package domain

import "time"

// LoanStatus is the lifecycle state of a book loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanOverdue  LoanStatus = "OVERDUE"
	LoanLost     LoanStatus = "LOST"
)

// Terminal reports whether the loan can no longer change state.
func (s LoanStatus) Terminal() bool {
	return s == LoanReturned || s == LoanLost
}

// Loan mirrors the backend loan record, created on borrow and mutated by
// return/extend operations. FineAmount is computed server-side.
type Loan struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	BookID     string     `json:"bookId"`
	User       *User      `json:"user,omitempty"`
	Book       *Book      `json:"book,omitempty"`
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     LoanStatus `json:"status"`
	FineAmount float64    `json:"fineAmount"`
}
