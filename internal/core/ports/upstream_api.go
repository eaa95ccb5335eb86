package ports

import (
	"context"
	"net/http"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// The *API interfaces mirror the upstream service objects so handlers and
// services can be tested against stubs. The DTOs stay in the upstream
// package because their JSON tags are dictated by the backend's wire format.

// AuthAPI covers session lifecycle and password management.
type AuthAPI interface {
	Login(ctx context.Context, creds upstream.Credentials) (*domain.User, []*http.Cookie, error)
	Register(ctx context.Context, reg upstream.Registration) (*domain.User, []*http.Cookie, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
	ChangePassword(ctx context.Context, change upstream.PasswordChange) error
	SetPassword(ctx context.Context, set upstream.PasswordSet) error
	GoogleLoginURL() string
}

// BooksAPI covers the book catalogue.
type BooksAPI interface {
	List(ctx context.Context, params upstream.BookListParams) ([]domain.Book, *upstream.Pagination, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Categories(ctx context.Context) ([]string, error)
	New(ctx context.Context, limit int) ([]domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	Create(ctx context.Context, input upstream.BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input upstream.BookInput) (*domain.Book, error)
	UpdateQuantity(ctx context.Context, id string, update upstream.QuantityUpdate) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

// LoansAPI covers loan records.
type LoansAPI interface {
	List(ctx context.Context, params upstream.LoanListParams) ([]domain.Loan, *upstream.Pagination, error)
	Get(ctx context.Context, id string) (*domain.Loan, error)
	Overdue(ctx context.Context) ([]domain.Loan, error)
	Create(ctx context.Context, input upstream.LoanInput) (*domain.Loan, error)
	Return(ctx context.Context, id string, input upstream.ReturnInput) (*domain.Loan, error)
	Extend(ctx context.Context, id string, input upstream.ExtendInput) (*domain.Loan, error)
}

// RoomsAPI covers rooms and room bookings.
type RoomsAPI interface {
	List(ctx context.Context, params upstream.RoomListParams) ([]domain.Room, error)
	Availability(ctx context.Context, roomID, date string) ([]domain.TimeSlot, error)
	Bookings(ctx context.Context, params upstream.BookingListParams) ([]domain.RoomBooking, *upstream.Pagination, error)
	Booking(ctx context.Context, id string) (*domain.RoomBooking, error)
	CreateBooking(ctx context.Context, input upstream.BookingInput) (*domain.RoomBooking, error)
	UpdateBookingStatus(ctx context.Context, id string, update upstream.StatusUpdate) (*domain.RoomBooking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// UsersAPI covers member accounts and membership records.
type UsersAPI interface {
	List(ctx context.Context, params upstream.UserListParams) ([]domain.User, *upstream.Pagination, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Me(ctx context.Context) (*domain.User, error)
	Update(ctx context.Context, id string, update upstream.UserUpdate) (*domain.User, error)
	UpdateMembership(ctx context.Context, id string, update upstream.MembershipUpdate) (*domain.User, error)
	DeleteMembership(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementsAPI covers announcements.
type AnnouncementsAPI interface {
	List(ctx context.Context, params upstream.AnnouncementListParams) ([]domain.Announcement, *upstream.Pagination, error)
	Get(ctx context.Context, id string) (*domain.Announcement, error)
	Create(ctx context.Context, input upstream.AnnouncementInput) (*domain.Announcement, error)
	Update(ctx context.Context, id string, input upstream.AnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// PaymentsAPI covers Midtrans Snap checkout endpoints.
type PaymentsAPI interface {
	CreateMembership(ctx context.Context, checkout upstream.MembershipCheckout) (*domain.PaymentToken, *domain.PaymentDetails, error)
	FinishMembership(ctx context.Context, finish upstream.MembershipFinish) error
	CreateRoom(ctx context.Context, checkout upstream.RoomCheckout) (*domain.PaymentToken, *domain.PaymentDetails, error)
}
