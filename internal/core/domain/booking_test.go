package domain

import (
	"errors"
	"testing"
	"time"
)

// Reference clock: Wednesday 2026-03-11 10:30 local time.
var refNow = time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)

func candidate(date, start, end string) BookingRequest {
	return BookingRequest{BookingDate: date, StartTime: start, EndTime: end}
}

func assertRule(t *testing.T, err error, wantRule string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected rule %q to fail, got nil", wantRule)
	}
	var re *BookingRuleError
	if !errors.As(err, &re) {
		t.Fatalf("expected *BookingRuleError, got %T: %v", err, err)
	}
	if re.Rule != wantRule {
		t.Fatalf("expected rule %q, got %q (%s)", wantRule, re.Rule, re.Message)
	}
}

func TestValidateBooking_Accepts(t *testing.T) {
	cases := []struct {
		name string
		req  BookingRequest
	}{
		{"next monday morning", candidate("2026-03-16", "09:00", "10:00")},
		{"today later slot", candidate("2026-03-11", "11:00", "12:30")},
		{"full day edge", candidate("2026-03-13", "08:00", "20:00")},
		{"end within closing hour", candidate("2026-03-13", "19:00", "20:30")},
		{"friday afternoon", candidate("2026-03-13", "14:15", "16:45")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateBookingRequest(tc.req, refNow); err != nil {
				t.Fatalf("expected valid booking, got: %v", err)
			}
		})
	}
}

func TestValidateBooking_RequiredFields(t *testing.T) {
	cases := []BookingRequest{
		candidate("", "09:00", "10:00"),
		candidate("2026-03-16", "", "10:00"),
		candidate("2026-03-16", "09:00", ""),
		candidate("", "", ""),
	}
	for _, req := range cases {
		assertRule(t, ValidateBookingRequest(req, refNow), RuleRequiredFields)
	}
}

func TestValidateBooking_WeekendRejected(t *testing.T) {
	// 2026-03-14 is a Saturday, 2026-03-15 a Sunday.
	assertRule(t, ValidateBookingRequest(candidate("2026-03-14", "09:00", "10:00"), refNow), RuleWeekdayOnly)
	assertRule(t, ValidateBookingRequest(candidate("2026-03-15", "09:00", "10:00"), refNow), RuleWeekdayOnly)
}

func TestValidateBooking_PastDateRejected(t *testing.T) {
	assertRule(t, ValidateBookingRequest(candidate("2026-03-10", "09:00", "10:00"), refNow), RuleDateInPast)
}

func TestValidateBooking_OperatingHours(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"before opening", "07:00", "09:00"},
		{"start at close", "20:00", "21:00"},
		{"start just before open", "07:59", "09:30"},
		{"end past close", "18:00", "21:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBookingRequest(candidate("2026-03-16", tc.start, tc.end), refNow)
			assertRule(t, err, RuleOperatingHours)
		})
	}
}

func TestValidateBooking_StartBeforeEnd(t *testing.T) {
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "12:00", "10:00"), refNow), RuleStartBeforeEnd)
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "12:00", "12:00"), refNow), RuleStartBeforeEnd)
}

func TestValidateBooking_MinimumDuration(t *testing.T) {
	// 30 minutes, everything else valid.
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "08:00", "08:30"), refNow), RuleMinDuration)
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "09:00", "09:59"), refNow), RuleMinDuration)
}

func TestValidateBooking_SameDayMustStartInFuture(t *testing.T) {
	// Clock is 10:30; same-day bookings at or before that are rejected.
	assertRule(t, ValidateBookingRequest(candidate("2026-03-11", "09:00", "10:00"), refNow), RuleStartInFuture)

	err := ValidateBookingRequest(candidate("2026-03-11", "10:30", "11:30"), refNow)
	if err != nil {
		// 10:30 sharp equals the current minute: must be rejected.
		assertRule(t, err, RuleStartInFuture)
	} else {
		t.Fatal("expected same-day booking at the current minute to be rejected")
	}

	// The identical time on a future weekday passes.
	if err := ValidateBookingRequest(candidate("2026-03-12", "10:30", "11:30"), refNow); err != nil {
		t.Fatalf("future-day booking at same time should pass, got: %v", err)
	}
}

func TestValidateBooking_MalformedInput(t *testing.T) {
	assertRule(t, ValidateBookingRequest(candidate("16-03-2026", "09:00", "10:00"), refNow), RuleInvalidDate)
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "9am", "10:00"), refNow), RuleInvalidTime)
	assertRule(t, ValidateBookingRequest(candidate("2026-03-16", "09:00", "25:00"), refNow), RuleInvalidTime)
}

func TestValidateBooking_Idempotent(t *testing.T) {
	req := candidate("2026-03-14", "09:00", "10:00")
	first := ValidateBookingRequest(req, refNow)
	second := ValidateBookingRequest(req, refNow)
	if first == nil || second == nil {
		t.Fatal("expected both calls to reject")
	}
	var a, b *BookingRuleError
	errors.As(first, &a)
	errors.As(second, &b)
	if a.Rule != b.Rule || a.Message != b.Message {
		t.Fatalf("verdicts differ across calls: %v vs %v", first, second)
	}
}

func TestValidateBooking_RuleErrorIsBadRequest(t *testing.T) {
	err := ValidateBookingRequest(candidate("2026-03-14", "09:00", "10:00"), refNow)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("rule errors must match ErrBadRequest, got %v", err)
	}
}
