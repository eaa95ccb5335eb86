package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/api/metrics"
	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// BookingService runs every booking through the local rule set before it is
// allowed to reach the backend.
type BookingService struct {
	rooms  ports.RoomsAPI
	logger zerolog.Logger
	now    func() time.Time
}

func NewBookingService(rooms ports.RoomsAPI, logger zerolog.Logger) *BookingService {
	return &BookingService{rooms: rooms, logger: logger, now: time.Now}
}

// Book validates the form fields and, only when all rules pass, submits the
// booking upstream. A rule failure is returned as-is and nothing is sent.
func (s *BookingService) Book(ctx context.Context, input ports.BookRoomInput) (*domain.RoomBooking, error) {
	req := domain.BookingRequest{
		BookingDate: input.BookingDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if err := domain.ValidateBookingRequest(req, s.now()); err != nil {
		var ruleErr *domain.BookingRuleError
		if errors.As(err, &ruleErr) {
			metrics.BookingRejectionsTotal.WithLabelValues(ruleErr.Rule).Inc()
		}
		s.logger.Debug().Str("room_id", input.RoomID).Err(err).Msg("booking rejected by validation")
		return nil, err
	}

	booking, err := s.rooms.CreateBooking(ctx, upstream.BookingInput{
		UserID:          input.UserID,
		RoomID:          input.RoomID,
		BookingDate:     bookingInstant(input.BookingDate, "00:00"),
		StartTime:       bookingInstant(input.BookingDate, input.StartTime),
		EndTime:         bookingInstant(input.BookingDate, input.EndTime),
		Purpose:         input.Purpose,
		SpecialRequests: input.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsSubmittedTotal.Inc()
	s.logger.Info().Str("booking_id", booking.ID).Str("room_id", input.RoomID).Msg("booking submitted")
	return booking, nil
}

// bookingInstant combines validated date and clock fields into one instant.
// Both fields have already been parsed by the validator, so errors are
// impossible here.
func bookingInstant(date, clock string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", date+" "+clock)
	return t
}
