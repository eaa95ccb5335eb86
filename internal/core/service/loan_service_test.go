package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUsers struct {
	byEmail map[string]*domain.User
}

func (u *stubUsers) List(_ context.Context, _ upstream.UserListParams) ([]domain.User, *upstream.Pagination, error) {
	return nil, nil, nil
}

func (u *stubUsers) Get(_ context.Context, _ string) (*domain.User, error) { return nil, nil }

func (u *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := u.byEmail[email]
	if !ok {
		return nil, &upstream.Error{Status: 404, Message: "User not found"}
	}
	return user, nil
}

func (u *stubUsers) Me(_ context.Context) (*domain.User, error) { return nil, nil }

func (u *stubUsers) Update(_ context.Context, _ string, _ upstream.UserUpdate) (*domain.User, error) {
	return nil, nil
}

func (u *stubUsers) UpdateMembership(_ context.Context, _ string, _ upstream.MembershipUpdate) (*domain.User, error) {
	return nil, nil
}

func (u *stubUsers) DeleteMembership(_ context.Context, _ string) error { return nil }
func (u *stubUsers) Delete(_ context.Context, _ string) error           { return nil }

type stubBooks struct {
	catalogue []domain.Book
	searchErr error
}

func (b *stubBooks) List(_ context.Context, _ upstream.BookListParams) ([]domain.Book, *upstream.Pagination, error) {
	return nil, nil, nil
}

func (b *stubBooks) Get(_ context.Context, _ string) (*domain.Book, error) { return nil, nil }
func (b *stubBooks) Categories(_ context.Context) ([]string, error)        { return nil, nil }
func (b *stubBooks) New(_ context.Context, _ int) ([]domain.Book, error)   { return nil, nil }

func (b *stubBooks) Search(_ context.Context, query string) ([]domain.Book, error) {
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	var matches []domain.Book
	for _, book := range b.catalogue {
		if strings.Contains(book.ISBN, query) || strings.Contains(book.Title, query) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}

func (b *stubBooks) Create(_ context.Context, _ upstream.BookInput) (*domain.Book, error) {
	return nil, nil
}

func (b *stubBooks) Update(_ context.Context, _ string, _ upstream.BookInput) (*domain.Book, error) {
	return nil, nil
}

func (b *stubBooks) UpdateQuantity(_ context.Context, _ string, _ upstream.QuantityUpdate) (*domain.Book, error) {
	return nil, nil
}

func (b *stubBooks) Delete(_ context.Context, _ string) error { return nil }

type stubLoans struct {
	created []upstream.LoanInput
}

func (l *stubLoans) List(_ context.Context, _ upstream.LoanListParams) ([]domain.Loan, *upstream.Pagination, error) {
	return nil, nil, nil
}

func (l *stubLoans) Get(_ context.Context, _ string) (*domain.Loan, error) { return nil, nil }
func (l *stubLoans) Overdue(_ context.Context) ([]domain.Loan, error)      { return nil, nil }

func (l *stubLoans) Create(_ context.Context, input upstream.LoanInput) (*domain.Loan, error) {
	l.created = append(l.created, input)
	return &domain.Loan{
		ID:      "ln1",
		UserID:  input.UserID,
		BookID:  input.BookID,
		DueDate: input.DueDate,
		Status:  domain.LoanActive,
	}, nil
}

func (l *stubLoans) Return(_ context.Context, _ string, _ upstream.ReturnInput) (*domain.Loan, error) {
	return nil, nil
}

func (l *stubLoans) Extend(_ context.Context, _ string, _ upstream.ExtendInput) (*domain.Loan, error) {
	return nil, nil
}

func loanFixtures() (*stubUsers, *stubBooks, *stubLoans) {
	users := &stubUsers{byEmail: map[string]*domain.User{
		"sari@example.com": {ID: "u1", Name: "Sari", Email: "sari@example.com"},
	}}
	books := &stubBooks{catalogue: []domain.Book{
		{ID: "b1", Title: "The Hobbit", ISBN: "9780261103344", AvailableQuantity: 2},
		{ID: "b2", Title: "Dune", ISBN: "9780441013593", AvailableQuantity: 0},
	}}
	return users, books, &stubLoans{}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIssue_ResolvesEmailAndISBN(t *testing.T) {
	users, books, loans := loanFixtures()
	svc := NewLoanService(users, books, loans, zerolog.Nop())

	due := time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC)
	loan, err := svc.Issue(context.Background(), ports.IssueLoanInput{
		Email:   "sari@example.com",
		ISBN:    "9780261103344",
		DueDate: due,
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if len(loans.created) != 1 {
		t.Fatalf("Create called %d times, want 1", len(loans.created))
	}
	got := loans.created[0]
	if got.UserID != "u1" || got.BookID != "b1" {
		t.Errorf("loan created for (%q, %q), want (u1, b1)", got.UserID, got.BookID)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}
	if loan.Status != domain.LoanActive {
		t.Errorf("status = %q, want ACTIVE", loan.Status)
	}
}

func TestIssue_UnknownEmail(t *testing.T) {
	users, books, loans := loanFixtures()
	svc := NewLoanService(users, books, loans, zerolog.Nop())

	_, err := svc.Issue(context.Background(), ports.IssueLoanInput{
		Email: "nobody@example.com",
		ISBN:  "9780261103344",
	})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("error %v does not match ErrBadRequest", err)
	}
	if !strings.Contains(err.Error(), "nobody@example.com") {
		t.Errorf("message %q does not name the email", err.Error())
	}
	if len(loans.created) != 0 {
		t.Error("loan was created despite unknown email")
	}
}

func TestIssue_UnknownISBN(t *testing.T) {
	users, books, loans := loanFixtures()
	svc := NewLoanService(users, books, loans, zerolog.Nop())

	_, err := svc.Issue(context.Background(), ports.IssueLoanInput{
		Email: "sari@example.com",
		ISBN:  "0000000000000",
	})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("error %v does not match ErrBadRequest", err)
	}
	if !strings.Contains(err.Error(), "ISBN") {
		t.Errorf("message %q does not name the ISBN step", err.Error())
	}
	if len(loans.created) != 0 {
		t.Error("loan was created despite unknown ISBN")
	}
}

func TestIssue_NoAvailableCopies(t *testing.T) {
	users, books, loans := loanFixtures()
	svc := NewLoanService(users, books, loans, zerolog.Nop())

	_, err := svc.Issue(context.Background(), ports.IssueLoanInput{
		Email: "sari@example.com",
		ISBN:  "9780441013593", // Dune: zero copies available
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error %v does not match ErrConflict", err)
	}
	if len(loans.created) != 0 {
		t.Error("loan was created despite zero availability")
	}
}

func TestIssue_UpstreamFailurePropagates(t *testing.T) {
	users, books, loans := loanFixtures()
	books.searchErr = domain.ErrUpstreamUnavailable
	svc := NewLoanService(users, books, loans, zerolog.Nop())

	_, err := svc.Issue(context.Background(), ports.IssueLoanInput{
		Email: "sari@example.com",
		ISBN:  "9780261103344",
	})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error %v does not match ErrUpstreamUnavailable", err)
	}
}
