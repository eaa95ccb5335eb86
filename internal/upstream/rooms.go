package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Rooms talks to the backend's room and room-booking endpoints.
type Rooms struct {
	c *Client
}

func NewRooms(c *Client) *Rooms {
	return &Rooms{c: c}
}

// RoomListParams filters room listings.
type RoomListParams struct {
	AvailableOnly bool
	Type          string
}

func (p RoomListParams) values() url.Values {
	q := url.Values{}
	if p.AvailableOnly {
		q.Set("available", "true")
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	return q
}

// BookingListParams filters and paginates booking listings.
type BookingListParams struct {
	UserID string
	RoomID string
	Status string
	Page   int
	Limit  int
}

func (p BookingListParams) values() url.Values {
	q := url.Values{}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	if p.RoomID != "" {
		q.Set("roomId", p.RoomID)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// BookingInput creates a room booking. Times are full instants derived from
// the validated form fields (date + HH:MM in the library's timezone).
type BookingInput struct {
	UserID          string    `json:"userId"`
	RoomID          string    `json:"roomId"`
	BookingDate     time.Time `json:"bookingDate"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Purpose         string    `json:"purpose"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

// StatusUpdate moves a booking through its lifecycle.
type StatusUpdate struct {
	Status domain.BookingStatus `json:"status"`
}

// List returns rooms matching the filter.
func (r *Rooms) List(ctx context.Context, params RoomListParams) ([]domain.Room, error) {
	var rooms []domain.Room
	if _, err := r.c.get(ctx, "/api/rooms", params.values(), &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Availability returns the bookable slots for a room on a given date
// (YYYY-MM-DD).
func (r *Rooms) Availability(ctx context.Context, roomID, date string) ([]domain.TimeSlot, error) {
	q := url.Values{}
	q.Set("date", date)
	var slots []domain.TimeSlot
	if _, err := r.c.get(ctx, "/api/rooms/availability/"+url.PathEscape(roomID), q, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Bookings returns a page of room bookings.
func (r *Rooms) Bookings(ctx context.Context, params BookingListParams) ([]domain.RoomBooking, *Pagination, error) {
	var bookings []domain.RoomBooking
	m, err := r.c.get(ctx, "/api/rooms/bookings", params.values(), &bookings)
	if err != nil {
		return nil, nil, err
	}
	return bookings, m.Pagination, nil
}

// Booking returns one booking record.
func (r *Rooms) Booking(ctx context.Context, id string) (*domain.RoomBooking, error) {
	var booking domain.RoomBooking
	if _, err := r.c.get(ctx, "/api/rooms/bookings/"+url.PathEscape(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateBooking submits a booking request. A 402 response carries the
// commitment-fee details for non-members.
func (r *Rooms) CreateBooking(ctx context.Context, input BookingInput) (*domain.RoomBooking, error) {
	var booking domain.RoomBooking
	if _, err := r.c.post(ctx, "/api/rooms/bookings", input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus transitions a booking (confirm, cancel, complete).
func (r *Rooms) UpdateBookingStatus(ctx context.Context, id string, update StatusUpdate) (*domain.RoomBooking, error) {
	var booking domain.RoomBooking
	if _, err := r.c.put(ctx, "/api/rooms/bookings/"+url.PathEscape(id)+"/status", update, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking removes a booking outright.
func (r *Rooms) DeleteBooking(ctx context.Context, id string) error {
	_, err := r.c.delete(ctx, "/api/rooms/bookings/" + url.PathEscape(id))
	return err
}
