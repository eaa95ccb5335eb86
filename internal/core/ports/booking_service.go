package ports

import (
	"context"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// BookRoomInput carries the booking form as submitted: date and clock
// fields stay strings until the validator has accepted them.
type BookRoomInput struct {
	UserID          string
	RoomID          string
	BookingDate     string // YYYY-MM-DD
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	Purpose         string
	SpecialRequests string
}

// BookingService validates and submits room bookings. Validation failures
// never reach the backend.
type BookingService interface {
	Book(ctx context.Context, input BookRoomInput) (*domain.RoomBooking, error)
}
