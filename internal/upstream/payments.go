package upstream

import (
	"context"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Payments talks to the backend's payment-gateway endpoints. The backend
// brokers Midtrans Snap: it issues widget tokens and confirms settled
// payments; the portal never sees card or wallet data.
type Payments struct {
	c *Client
}

func NewPayments(c *Client) *Payments {
	return &Payments{c: c}
}

// MembershipCheckout requests a Snap token for a membership purchase.
type MembershipCheckout struct {
	MembershipType string `json:"membershipType"`
}

// MembershipFinish confirms a settled membership payment server-side.
type MembershipFinish struct {
	PaymentID string `json:"paymentId"`
}

// RoomCheckout requests a Snap token for a room commitment fee. It carries
// the full booking so the backend can create booking and charge atomically.
type RoomCheckout struct {
	RoomID          string    `json:"roomId"`
	BookingDate     time.Time `json:"bookingDate"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Purpose         string    `json:"purpose"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

// CreateMembership obtains a Snap token for a membership purchase.
func (p *Payments) CreateMembership(ctx context.Context, checkout MembershipCheckout) (*domain.PaymentToken, *domain.PaymentDetails, error) {
	var details domain.PaymentDetails
	m, err := p.c.post(ctx, "/api/payment/membership", checkout, &details)
	if err != nil {
		return nil, nil, err
	}
	return &domain.PaymentToken{Token: m.Token, RedirectURL: m.RedirectURL}, &details, nil
}

// FinishMembership confirms a settled membership payment.
func (p *Payments) FinishMembership(ctx context.Context, finish MembershipFinish) error {
	_, err := p.c.post(ctx, "/api/payment/membership/finish", finish, nil)
	return err
}

// CreateRoom obtains a Snap token for a room commitment fee.
func (p *Payments) CreateRoom(ctx context.Context, checkout RoomCheckout) (*domain.PaymentToken, *domain.PaymentDetails, error) {
	var details domain.PaymentDetails
	m, err := p.c.post(ctx, "/api/payment/room", checkout, &details)
	if err != nil {
		return nil, nil, err
	}
	return &domain.PaymentToken{Token: m.Token, RedirectURL: m.RedirectURL}, &details, nil
}
