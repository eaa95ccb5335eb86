package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Announcements talks to the backend's announcement endpoints.
type Announcements struct {
	c *Client
}

func NewAnnouncements(c *Client) *Announcements {
	return &Announcements{c: c}
}

// AnnouncementListParams filters and paginates announcement listings.
type AnnouncementListParams struct {
	Type     string
	Priority string
	Audience string
	Page     int
	Limit    int
}

func (p AnnouncementListParams) values() url.Values {
	q := url.Values{}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Priority != "" {
		q.Set("priority", p.Priority)
	}
	if p.Audience != "" {
		q.Set("targetAudience", p.Audience)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// AnnouncementInput is the create/update payload.
type AnnouncementInput struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	PublishDate    time.Time  `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
}

// List returns a page of announcements.
func (a *Announcements) List(ctx context.Context, params AnnouncementListParams) ([]domain.Announcement, *Pagination, error) {
	var items []domain.Announcement
	m, err := a.c.get(ctx, "/api/announcements", params.values(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, m.Pagination, nil
}

// Get returns one announcement. The backend counts the view.
func (a *Announcements) Get(ctx context.Context, id string) (*domain.Announcement, error) {
	var item domain.Announcement
	if _, err := a.c.get(ctx, "/api/announcements/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create publishes an announcement.
func (a *Announcements) Create(ctx context.Context, input AnnouncementInput) (*domain.Announcement, error) {
	var item domain.Announcement
	if _, err := a.c.post(ctx, "/api/announcements", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update edits an announcement.
func (a *Announcements) Update(ctx context.Context, id string, input AnnouncementInput) (*domain.Announcement, error) {
	var item domain.Announcement
	if _, err := a.c.put(ctx, "/api/announcements/"+url.PathEscape(id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an announcement.
func (a *Announcements) Delete(ctx context.Context, id string) error {
	_, err := a.c.delete(ctx, "/api/announcements/" + url.PathEscape(id))
	return err
}
