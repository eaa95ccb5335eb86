package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// RoomHandler serves the discussion-room screens: room listing, slot
// availability and the booking lifecycle.
type RoomHandler struct {
	rooms   ports.RoomsAPI
	booking ports.BookingService
}

func NewRoomHandler(rooms ports.RoomsAPI, booking ports.BookingService) *RoomHandler {
	return &RoomHandler{rooms: rooms, booking: booking}
}

type bookingRequest struct {
	RoomID          string `json:"roomId" validate:"required"`
	BookingDate     string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"startTime" validate:"required"`
	EndTime         string `json:"endTime" validate:"required"`
	Purpose         string `json:"purpose" validate:"required"`
	SpecialRequests string `json:"specialRequests"`
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type bookingListResponse struct {
	Bookings   []domain.RoomBooking `json:"bookings"`
	Pagination *upstream.Pagination `json:"pagination,omitempty"`
}

// List serves the room catalogue.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        type       query     string  false  "Room type filter"
// @Param        available  query     bool    false  "Only available rooms"
// @Success      200        {array}   domain.Room
// @Router       /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.rooms.List(c.Request().Context(), upstream.RoomListParams{
		AvailableOnly: c.QueryParam("available") == "true",
		Type:          c.QueryParam("type"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Availability serves a room's free slots for one date.
//
// @Summary      Room availability
// @Tags         rooms
// @Produce      json
// @Param        id    path      string  true  "Room ID"
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   domain.TimeSlot
// @Failure      400   {object}  map[string]string
// @Router       /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	slots, err := h.rooms.Availability(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

// Bookings lists room bookings. Non-staff requests are scoped to the
// caller.
func (h *RoomHandler) Bookings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	params := upstream.BookingListParams{
		UserID: c.QueryParam("userId"),
		RoomID: c.QueryParam("roomId"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}
	if !user.IsStaff() {
		params.UserID = user.ID
	}

	bookings, pagination, err := h.rooms.Bookings(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingListResponse{Bookings: bookings, Pagination: pagination})
}

// CreateBooking validates and submits a booking for the caller. A 402 from
// the backend surfaces with the commitment-fee details attached.
//
// @Summary      Book a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Booking details"
// @Success      201   {object}  domain.RoomBooking
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /rooms/bookings [post]
func (h *RoomHandler) CreateBooking(c echo.Context) error {
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

	booking, err := h.booking.Book(c.Request().Context(), ports.BookRoomInput{
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
	return c.JSON(http.StatusCreated, booking)
}

// UpdateBookingStatus transitions a booking. Members may only cancel their
// own bookings; the remaining transitions are staff routes.
func (h *RoomHandler) UpdateBookingStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req bookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.BookingStatus(req.Status)
	if !user.IsStaff() && status != domain.BookingCancelled {
		return domain.ErrForbidden
	}

	current, err := h.rooms.Booking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !user.IsStaff() && current.UserID != user.ID {
		return domain.ErrForbidden
	}
	if !current.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: booking is %s and cannot move to %s", domain.ErrConflict, current.Status, status)
	}

	booking, err := h.rooms.UpdateBookingStatus(c.Request().Context(), c.Param("id"), upstream.StatusUpdate{Status: status})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking record outright.
func (h *RoomHandler) DeleteBooking(c echo.Context) error {
	if err := h.rooms.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
