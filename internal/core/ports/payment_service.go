package ports

import (
	"context"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// CheckoutResult is what the browser needs to open the Snap payment widget.
type CheckoutResult struct {
	Token       string                 `json:"token"`
	RedirectURL string                 `json:"redirectUrl,omitempty"`
	Details     *domain.PaymentDetails `json:"details,omitempty"`
}

// PaymentService starts and finishes gateway checkouts. Every checkout
// carries a fresh idempotency key so a double submit cannot charge twice.
type PaymentService interface {
	StartMembership(ctx context.Context, membershipType string) (*CheckoutResult, error)
	FinishMembership(ctx context.Context, paymentID string) error
	StartRoomCheckout(ctx context.Context, input BookRoomInput) (*CheckoutResult, error)
}
