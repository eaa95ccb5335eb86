package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// LoanService issues loans from the staff form, where the member is given
// by email and the book by ISBN. Each resolution step has its own failure
// message so staff can tell which field was wrong.
type LoanService struct {
	users  ports.UsersAPI
	books  ports.BooksAPI
	loans  ports.LoansAPI
	logger zerolog.Logger
}

func NewLoanService(users ports.UsersAPI, books ports.BooksAPI, loans ports.LoansAPI, logger zerolog.Logger) *LoanService {
	return &LoanService{users: users, books: books, loans: loans, logger: logger}
}

// Issue resolves the member and the book, checks availability, then creates
// the loan. The first failing step aborts the flow.
func (s *LoanService) Issue(ctx context.Context, input ports.IssueLoanInput) (*domain.Loan, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no member registered with email %s", domain.ErrBadRequest, input.Email)
		}
		return nil, err
	}

	book, err := s.findByISBN(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	if !book.Available() {
		return nil, fmt.Errorf("%w: no available copies of %q", domain.ErrConflict, book.Title)
	}

	ctx = upstream.WithIdempotencyKey(ctx, uuid.NewString())
	loan, err := s.loans.Create(ctx, upstream.LoanInput{
		UserID:  user.ID,
		BookID:  book.ID,
		DueDate: input.DueDate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("loan_id", loan.ID).Str("user_id", user.ID).
		Str("book_id", book.ID).Msg("loan issued")
	return loan, nil
}

// findByISBN searches the catalogue with the ISBN as the query and picks
// the exact match. The backend has no dedicated ISBN lookup.
func (s *LoanService) findByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	matches, err := s.books.Search(ctx, isbn)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if strings.EqualFold(matches[i].ISBN, isbn) {
			return &matches[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no book found with ISBN %s", domain.ErrBadRequest, isbn)
}
