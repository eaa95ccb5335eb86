package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operating window for room bookings, in whole hours.
const (
	bookingOpenHour  = 8
	bookingCloseHour = 20
	minBookingLength = 60 * time.Minute
)

// Booking rule identifiers, used as metric labels and stable error keys.
const (
	RuleRequiredFields = "required_fields"
	RuleInvalidDate    = "invalid_date"
	RuleWeekdayOnly    = "weekday_only"
	RuleDateInPast     = "date_in_past"
	RuleInvalidTime    = "invalid_time"
	RuleOperatingHours = "operating_hours"
	RuleStartBeforeEnd = "start_before_end"
	RuleMinDuration    = "min_duration"
	RuleStartInFuture  = "start_in_future"
)

// BookingRuleError reports which booking rule a candidate request violated.
// Message is user-facing; Rule is stable for metrics and tests.
type BookingRuleError struct {
	Rule    string
	Message string
}

func (e *BookingRuleError) Error() string { return e.Message }

// Is lets callers treat any rule failure as a bad request.
func (e *BookingRuleError) Is(target error) bool { return target == ErrBadRequest }

func ruleErr(rule, message string) *BookingRuleError {
	return &BookingRuleError{Rule: rule, Message: message}
}

// BookingRequest is a candidate room booking as entered in the form:
// a calendar date plus wall-clock start and end times.
type BookingRequest struct {
	BookingDate string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
}

// ValidateBookingRequest checks a candidate booking against the library's
// rules before it is sent upstream, so client-detectable mistakes never
// cost a network round trip. Rules are applied in order and the first
// failure wins:
//
//  1. date, start and end must all be present
//  2. the date must fall on a weekday (Monday–Friday)
//  3. the date must not be before today
//  4. start and end must parse as HH:MM inside operating hours
//     (start hour in [8, 20), end hour in [8, 20])
//  5. start must be strictly before end
//  6. the booking must last at least one hour
//  7. a booking for today must start after the current time
//
// The function is pure: the clock is injected via now and repeated calls
// on the same input return the same verdict.
func ValidateBookingRequest(req BookingRequest, now time.Time) error {
	if req.BookingDate == "" || req.StartTime == "" || req.EndTime == "" {
		return ruleErr(RuleRequiredFields, "booking date, start time and end time are required")
	}

	date, err := time.ParseInLocation("2006-01-02", req.BookingDate, now.Location())
	if err != nil {
		return ruleErr(RuleInvalidDate, "booking date must be in YYYY-MM-DD format")
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return ruleErr(RuleWeekdayOnly, "rooms can only be booked Monday through Friday")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return ruleErr(RuleDateInPast, "booking date cannot be in the past")
	}

	startMin, err := parseClock(req.StartTime)
	if err != nil {
		return ruleErr(RuleInvalidTime, "start time must be in HH:MM format")
	}
	endMin, err := parseClock(req.EndTime)
	if err != nil {
		return ruleErr(RuleInvalidTime, "end time must be in HH:MM format")
	}

	startHour := startMin / 60
	endHour := endMin / 60
	if startHour < bookingOpenHour || startHour >= bookingCloseHour ||
		endHour < bookingOpenHour || endHour > bookingCloseHour {
		return ruleErr(RuleOperatingHours, fmt.Sprintf(
			"bookings are available between %02d:00 and %02d:00", bookingOpenHour, bookingCloseHour))
	}

	if startMin >= endMin {
		return ruleErr(RuleStartBeforeEnd, "start time must be before end time")
	}

	if time.Duration(endMin-startMin)*time.Minute < minBookingLength {
		return ruleErr(RuleMinDuration, "bookings must be at least one hour long")
	}

	if date.Equal(today) {
		nowMin := now.Hour()*60 + now.Minute()
		if startMin <= nowMin {
			return ruleErr(RuleStartInFuture, "start time must be later than the current time")
		}
	}

	return nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour*60 + minute, nil
}
