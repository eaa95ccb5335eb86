package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// ---------------------------------------------------------------------------
// Stat-returning stubs, layered over the basic stubs
// ---------------------------------------------------------------------------

type statBooks struct {
	stubBooks
	total int
	fresh int
}

func (b *statBooks) List(_ context.Context, _ upstream.BookListParams) ([]domain.Book, *upstream.Pagination, error) {
	return nil, &upstream.Pagination{Total: b.total}, nil
}

func (b *statBooks) New(_ context.Context, _ int) ([]domain.Book, error) {
	return make([]domain.Book, b.fresh), nil
}

type statUsers struct {
	stubUsers
	total int
}

func (u *statUsers) List(_ context.Context, _ upstream.UserListParams) ([]domain.User, *upstream.Pagination, error) {
	return nil, &upstream.Pagination{Total: u.total}, nil
}

type statLoans struct {
	stubLoans
	mu         sync.Mutex
	lastParams upstream.LoanListParams
	active     []domain.Loan
	activeN    int
	overdueN   int
	listErr    error
}

func (l *statLoans) List(_ context.Context, params upstream.LoanListParams) ([]domain.Loan, *upstream.Pagination, error) {
	if l.listErr != nil {
		return nil, nil, l.listErr
	}
	l.mu.Lock()
	l.lastParams = params
	l.mu.Unlock()
	return l.active, &upstream.Pagination{Total: l.activeN}, nil
}

func (l *statLoans) Overdue(_ context.Context) ([]domain.Loan, error) {
	return make([]domain.Loan, l.overdueN), nil
}

type statRooms struct {
	stubRooms
	mu         sync.Mutex
	lastParams upstream.BookingListParams
	bookings   []domain.RoomBooking
	totals     map[string]int // keyed by requested status, "" = all
}

func (r *statRooms) Bookings(_ context.Context, params upstream.BookingListParams) ([]domain.RoomBooking, *upstream.Pagination, error) {
	r.mu.Lock()
	r.lastParams = params
	r.mu.Unlock()
	return r.bookings, &upstream.Pagination{Total: r.totals[params.Status]}, nil
}

type stubAnnouncements struct {
	total int
}

func (a *stubAnnouncements) List(_ context.Context, _ upstream.AnnouncementListParams) ([]domain.Announcement, *upstream.Pagination, error) {
	return nil, &upstream.Pagination{Total: a.total}, nil
}

func (a *stubAnnouncements) Get(_ context.Context, _ string) (*domain.Announcement, error) {
	return nil, nil
}

func (a *stubAnnouncements) Create(_ context.Context, _ upstream.AnnouncementInput) (*domain.Announcement, error) {
	return nil, nil
}

func (a *stubAnnouncements) Update(_ context.Context, _ string, _ upstream.AnnouncementInput) (*domain.Announcement, error) {
	return nil, nil
}

func (a *stubAnnouncements) Delete(_ context.Context, _ string) error { return nil }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMember_FetchesOwnLoansAndBookings(t *testing.T) {
	loans := &statLoans{active: []domain.Loan{{ID: "ln1"}, {ID: "ln2"}}}
	rooms := &statRooms{bookings: []domain.RoomBooking{{ID: "bk1"}}, totals: map[string]int{}}
	svc := NewDashboardService(&statBooks{}, &statUsers{}, loans, rooms, &stubAnnouncements{}, zerolog.Nop())

	view, err := svc.Member(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Member returned error: %v", err)
	}
	if len(view.ActiveLoans) != 2 || len(view.Bookings) != 1 {
		t.Errorf("view = %d loans / %d bookings, want 2 / 1", len(view.ActiveLoans), len(view.Bookings))
	}

	if loans.lastParams.UserID != "u1" || loans.lastParams.Status != string(domain.LoanActive) {
		t.Errorf("loan params = %+v, want scoped to u1 / ACTIVE", loans.lastParams)
	}
	if rooms.lastParams.UserID != "u1" {
		t.Errorf("booking params = %+v, want scoped to u1", rooms.lastParams)
	}
}

func TestMember_FirstErrorWins(t *testing.T) {
	loans := &statLoans{listErr: domain.ErrUpstreamUnavailable}
	rooms := &statRooms{totals: map[string]int{}}
	svc := NewDashboardService(&statBooks{}, &statUsers{}, loans, rooms, &stubAnnouncements{}, zerolog.Nop())

	_, err := svc.Member(context.Background(), "u1")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error %v does not match ErrUpstreamUnavailable", err)
	}
}

func TestAdmin_AggregatesAllCounters(t *testing.T) {
	books := &statBooks{total: 120, fresh: 5}
	users := &statUsers{total: 48}
	loans := &statLoans{activeN: 17, overdueN: 3}
	rooms := &statRooms{totals: map[string]int{"": 9, string(domain.BookingPending): 2}}
	anns := &stubAnnouncements{total: 4}
	svc := NewDashboardService(books, users, loans, rooms, anns, zerolog.Nop())

	stats, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin returned error: %v", err)
	}

	if stats.TotalBooks != 120 {
		t.Errorf("TotalBooks = %d, want 120", stats.TotalBooks)
	}
	if stats.TotalUsers != 48 {
		t.Errorf("TotalUsers = %d, want 48", stats.TotalUsers)
	}
	if stats.ActiveLoans != 17 {
		t.Errorf("ActiveLoans = %d, want 17", stats.ActiveLoans)
	}
	if stats.OverdueLoans != 3 {
		t.Errorf("OverdueLoans = %d, want 3", stats.OverdueLoans)
	}
	if stats.TotalBookings != 9 {
		t.Errorf("TotalBookings = %d, want 9", stats.TotalBookings)
	}
	if stats.PendingBookings != 2 {
		t.Errorf("PendingBookings = %d, want 2", stats.PendingBookings)
	}
	if stats.Announcements != 4 {
		t.Errorf("Announcements = %d, want 4", stats.Announcements)
	}
	if stats.NewBooks != 5 {
		t.Errorf("NewBooks = %d, want 5", stats.NewBooks)
	}
}

func TestAdmin_FailingCounterFailsTheView(t *testing.T) {
	loans := &statLoans{listErr: domain.ErrUpstreamUnavailable}
	rooms := &statRooms{totals: map[string]int{}}
	svc := NewDashboardService(&statBooks{}, &statUsers{}, loans, rooms, &stubAnnouncements{}, zerolog.Nop())

	_, err := svc.Admin(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error %v does not match ErrUpstreamUnavailable", err)
	}
}
