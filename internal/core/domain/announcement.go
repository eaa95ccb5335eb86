package domain

import "time"

// Announcement categories.
const (
	AnnouncementNewBooks    = "NEW_BOOKS"
	AnnouncementEvent       = "EVENT"
	AnnouncementMaintenance = "MAINTENANCE"
	AnnouncementPolicy      = "POLICY"
	AnnouncementGeneral     = "GENERAL"
)

// Announcement priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Announcement audiences.
const (
	AudienceAll         = "ALL"
	AudienceMembersOnly = "MEMBERS_ONLY"
	AudienceStaff       = "STAFF"
)

// Announcement mirrors a backend announcement. ViewCount is incremented
// server-side on reads.
type Announcement struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	PublishDate    time.Time  `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	ViewCount      int        `json:"viewCount"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Expired reports whether the announcement is past its expiry date.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiryDate != nil && a.ExpiryDate.Before(now)
}
