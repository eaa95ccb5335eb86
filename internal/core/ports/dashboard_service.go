package ports

import (
	"context"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// MemberDashboard is the landing view for a signed-in member.
type MemberDashboard struct {
	ActiveLoans []domain.Loan        `json:"activeLoans"`
	Bookings    []domain.RoomBooking `json:"bookings"`
}

// AdminStats is the staff overview: one counter per collection, each backed
// by its own upstream query.
type AdminStats struct {
	TotalBooks      int `json:"totalBooks"`
	TotalUsers      int `json:"totalUsers"`
	ActiveLoans     int `json:"activeLoans"`
	OverdueLoans    int `json:"overdueLoans"`
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	Announcements   int `json:"announcements"`
	NewBooks        int `json:"newBooks"`
}

// DashboardService aggregates the dashboard views. Fetches within a view
// run concurrently; the first failure fails the view.
type DashboardService interface {
	Member(ctx context.Context, userID string) (*MemberDashboard, error)
	Admin(ctx context.Context) (*AdminStats, error)
}
