package domain

import "time"

// Room types offered by the library.
const (
	RoomSmallDiscussion = "SMALL_DISCUSSION"
	RoomLargeMeeting    = "LARGE_MEETING"
)

// Room mirrors a backend study-room record.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Facilities  []string `json:"facilities,omitempty"`
	IsAvailable bool     `json:"isAvailable"`
}

// BookingStatus is the lifecycle state of a room booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// bookingTransitions defines the allowed status transitions.
// PENDING → CONFIRMED | CANCELLED; CONFIRMED → COMPLETED | CANCELLED.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether moving from s to next is a valid transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RoomBooking mirrors a backend room reservation.
type RoomBooking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	RoomID          string        `json:"roomId"`
	User            *User         `json:"user,omitempty"`
	Room            *Room         `json:"room,omitempty"`
	BookingDate     time.Time     `json:"bookingDate"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         time.Time     `json:"endTime"`
	Purpose         string        `json:"purpose"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// TimeSlot is one bookable window returned by the availability endpoint.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}
