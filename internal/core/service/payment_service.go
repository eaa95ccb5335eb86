package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/api/metrics"
	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

var membershipTypes = map[string]bool{
	"REGULAR": true,
	"PREMIUM": true,
	"STUDENT": true,
}

// PaymentService brokers Snap checkouts against the backend's payment
// endpoints. Checkout POSTs carry a fresh idempotency key.
type PaymentService struct {
	payments ports.PaymentsAPI
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPaymentService(payments ports.PaymentsAPI, logger zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, logger: logger, now: time.Now}
}

// StartMembership obtains a Snap token for a membership purchase.
func (s *PaymentService) StartMembership(ctx context.Context, membershipType string) (*ports.CheckoutResult, error) {
	if !membershipTypes[membershipType] {
		return nil, fmt.Errorf("%w: unknown membership type %q", domain.ErrBadRequest, membershipType)
	}

	ctx = upstream.WithIdempotencyKey(ctx, uuid.NewString())
	token, details, err := s.payments.CreateMembership(ctx, upstream.MembershipCheckout{MembershipType: membershipType})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsInitiatedTotal.WithLabelValues("membership").Inc()
	s.logger.Info().Str("membership_type", membershipType).Msg("membership checkout started")
	return &ports.CheckoutResult{Token: token.Token, RedirectURL: token.RedirectURL, Details: details}, nil
}

// FinishMembership confirms a settled payment so the backend activates the
// membership.
func (s *PaymentService) FinishMembership(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return fmt.Errorf("%w: paymentId is required", domain.ErrBadRequest)
	}
	if err := s.payments.FinishMembership(ctx, upstream.MembershipFinish{PaymentID: paymentID}); err != nil {
		return err
	}
	s.logger.Info().Str("payment_id", paymentID).Msg("membership payment confirmed")
	return nil
}

// StartRoomCheckout obtains a Snap token for a room commitment fee. The
// booking fields go through the same rule set as a direct booking, so an
// invalid slot can never be paid for.
func (s *PaymentService) StartRoomCheckout(ctx context.Context, input ports.BookRoomInput) (*ports.CheckoutResult, error) {
	req := domain.BookingRequest{
		BookingDate: input.BookingDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
	}
	if err := domain.ValidateBookingRequest(req, s.now()); err != nil {
		return nil, err
	}

	ctx = upstream.WithIdempotencyKey(ctx, uuid.NewString())
	token, details, err := s.payments.CreateRoom(ctx, upstream.RoomCheckout{
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

	metrics.PaymentsInitiatedTotal.WithLabelValues("room").Inc()
	s.logger.Info().Str("room_id", input.RoomID).Msg("room checkout started")
	return &ports.CheckoutResult{Token: token.Token, RedirectURL: token.RedirectURL, Details: details}, nil
}
