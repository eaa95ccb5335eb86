package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// DashboardService aggregates per-view upstream queries. Each view fans its
// fetches out concurrently and waits for all of them; the first error seen
// is the one returned.
type DashboardService struct {
	books  ports.BooksAPI
	users  ports.UsersAPI
	loans  ports.LoansAPI
	rooms  ports.RoomsAPI
	anns   ports.AnnouncementsAPI
	logger zerolog.Logger
}

func NewDashboardService(
	books ports.BooksAPI,
	users ports.UsersAPI,
	loans ports.LoansAPI,
	rooms ports.RoomsAPI,
	anns ports.AnnouncementsAPI,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{books: books, users: users, loans: loans, rooms: rooms, anns: anns, logger: logger}
}

// fanOut runs every task in its own goroutine and returns the first error.
func fanOut(tasks ...func() error) error {
	var wg sync.WaitGroup
	var once sync.Once
	var first error

	wg.Add(len(tasks))
	for _, task := range tasks {
		go func(t func() error) {
			defer wg.Done()
			if err := t(); err != nil {
				once.Do(func() { first = err })
			}
		}(task)
	}
	wg.Wait()
	return first
}

// Member returns the signed-in member's landing view.
func (s *DashboardService) Member(ctx context.Context, userID string) (*ports.MemberDashboard, error) {
	var view ports.MemberDashboard

	err := fanOut(
		func() error {
			loans, _, err := s.loans.List(ctx, upstream.LoanListParams{
				UserID: userID,
				Status: string(domain.LoanActive),
			})
			view.ActiveLoans = loans
			return err
		},
		func() error {
			bookings, _, err := s.rooms.Bookings(ctx, upstream.BookingListParams{UserID: userID})
			view.Bookings = bookings
			return err
		},
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("member dashboard fetch failed")
		return nil, err
	}
	return &view, nil
}

// Admin returns the staff overview counters. Totals come from list
// pagination with limit 1, so no payload pages are transferred.
func (s *DashboardService) Admin(ctx context.Context) (*ports.AdminStats, error) {
	var stats ports.AdminStats

	err := fanOut(
		func() error {
			_, p, err := s.books.List(ctx, upstream.BookListParams{Limit: 1})
			stats.TotalBooks = total(p)
			return err
		},
		func() error {
			_, p, err := s.users.List(ctx, upstream.UserListParams{Limit: 1})
			stats.TotalUsers = total(p)
			return err
		},
		func() error {
			_, p, err := s.loans.List(ctx, upstream.LoanListParams{Status: string(domain.LoanActive), Limit: 1})
			stats.ActiveLoans = total(p)
			return err
		},
		func() error {
			overdue, err := s.loans.Overdue(ctx)
			stats.OverdueLoans = len(overdue)
			return err
		},
		func() error {
			_, p, err := s.rooms.Bookings(ctx, upstream.BookingListParams{Limit: 1})
			stats.TotalBookings = total(p)
			return err
		},
		func() error {
			_, p, err := s.rooms.Bookings(ctx, upstream.BookingListParams{
				Status: string(domain.BookingPending),
				Limit:  1,
			})
			stats.PendingBookings = total(p)
			return err
		},
		func() error {
			_, p, err := s.anns.List(ctx, upstream.AnnouncementListParams{Limit: 1})
			stats.Announcements = total(p)
			return err
		},
		func() error {
			books, err := s.books.New(ctx, 5)
			stats.NewBooks = len(books)
			return err
		},
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("admin dashboard fetch failed")
		return nil, err
	}
	return &stats, nil
}

func total(p *upstream.Pagination) int {
	if p == nil {
		return 0
	}
	return p.Total
}
