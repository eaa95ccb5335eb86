package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/ports"
)

// PaymentHandler serves the checkout endpoints behind the Snap widget.
type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type membershipCheckoutRequest struct {
	MembershipType string `json:"membershipType" validate:"required,oneof=REGULAR PREMIUM STUDENT"`
}

type membershipFinishRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

// MembershipCheckout obtains a Snap token for a membership purchase.
//
// @Summary      Start a membership checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      membershipCheckoutRequest  true  "Membership type"
// @Success      200   {object}  ports.CheckoutResult
// @Failure      400   {object}  map[string]string
// @Router       /membership/checkout [post]
func (h *PaymentHandler) MembershipCheckout(c echo.Context) error {
	var req membershipCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.payments.StartMembership(c.Request().Context(), req.MembershipType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// MembershipFinish confirms a settled payment so the membership activates.
//
// @Summary      Finish a membership checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      membershipFinishRequest  true  "Settled payment ID"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /membership/finish [post]
func (h *PaymentHandler) MembershipFinish(c echo.Context) error {
	var req membershipFinishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.payments.FinishMembership(c.Request().Context(), req.PaymentID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "membership activated"})
}

// RoomCheckout obtains a Snap token for a room commitment fee. Used after
// a booking attempt came back 402.
//
// @Summary      Start a room commitment-fee checkout
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Booking details"
// @Success      200   {object}  ports.CheckoutResult
// @Failure      400   {object}  map[string]string
// @Router       /rooms/bookings/checkout [post]
func (h *PaymentHandler) RoomCheckout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.payments.StartRoomCheckout(c.Request().Context(), ports.BookRoomInput{
		UserID:          user.ID,
		RoomID:          req.RoomID,
		BookingDate:     req.BookingDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Purpose:         req.Purpose,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
