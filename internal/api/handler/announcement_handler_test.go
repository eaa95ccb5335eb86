package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// ---------------------------------------------------------------------------
// In-memory stub announcements API
// ---------------------------------------------------------------------------

type stubAnnouncementsAPI struct {
	items   []domain.Announcement
	created []upstream.AnnouncementInput
}

func (a *stubAnnouncementsAPI) List(_ context.Context, _ upstream.AnnouncementListParams) ([]domain.Announcement, *upstream.Pagination, error) {
	return a.items, nil, nil
}

func (a *stubAnnouncementsAPI) Get(_ context.Context, _ string) (*domain.Announcement, error) {
	return nil, &upstream.Error{Status: http.StatusNotFound, Message: "Announcement not found"}
}

func (a *stubAnnouncementsAPI) Create(_ context.Context, input upstream.AnnouncementInput) (*domain.Announcement, error) {
	a.created = append(a.created, input)
	return &domain.Announcement{ID: "a1", Title: input.Title, Type: input.Type}, nil
}

func (a *stubAnnouncementsAPI) Update(_ context.Context, _ string, input upstream.AnnouncementInput) (*domain.Announcement, error) {
	return &domain.Announcement{ID: "a1", Title: input.Title, Type: input.Type}, nil
}

func (a *stubAnnouncementsAPI) Delete(_ context.Context, _ string) error { return nil }

func announcementContext(t *testing.T, method, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, "/announcements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}
	return c, rec
}

func TestAnnouncementHandler_CreateAcceptsAllCategories(t *testing.T) {
	cases := []struct {
		name                 string
		typ, priority, audience string
	}{
		{"new books urgent members", domain.AnnouncementNewBooks, domain.PriorityUrgent, domain.AudienceMembersOnly},
		{"policy high staff", domain.AnnouncementPolicy, domain.PriorityHigh, domain.AudienceStaff},
		{"general low all", domain.AnnouncementGeneral, domain.PriorityLow, domain.AudienceAll},
		{"event medium all", domain.AnnouncementEvent, domain.PriorityMedium, domain.AudienceAll},
		{"maintenance urgent all", domain.AnnouncementMaintenance, domain.PriorityUrgent, domain.AudienceAll},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anns := &stubAnnouncementsAPI{}
			h := NewAnnouncementHandler(anns)

			body := `{"title": "T", "content": "C", "type": "` + tc.typ +
				`", "priority": "` + tc.priority + `", "targetAudience": "` + tc.audience + `"}`
			c, rec := announcementContext(t, http.MethodPost, body, &domain.User{ID: "s1", Role: domain.RoleStaff})
			if err := h.Create(c); err != nil {
				t.Fatalf("valid announcement rejected: %v", err)
			}
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", rec.Code)
			}
			if len(anns.created) != 1 || anns.created[0].Type != tc.typ {
				t.Fatalf("unexpected forwarded input: %+v", anns.created)
			}
		})
	}
}

func TestAnnouncementHandler_CreateRejectsUnknownValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown type", `{"title": "T", "content": "C", "type": "INFO", "priority": "LOW", "targetAudience": "ALL"}`},
		{"unknown priority", `{"title": "T", "content": "C", "type": "EVENT", "priority": "CRITICAL", "targetAudience": "ALL"}`},
		{"unknown audience", `{"title": "T", "content": "C", "type": "EVENT", "priority": "LOW", "targetAudience": "MEMBERS"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anns := &stubAnnouncementsAPI{}
			h := NewAnnouncementHandler(anns)

			c, _ := announcementContext(t, http.MethodPost, tc.body, &domain.User{ID: "s1", Role: domain.RoleStaff})
			if err := h.Create(c); err == nil {
				t.Fatal("handler accepted an unknown enum value")
			}
			if len(anns.created) != 0 {
				t.Fatal("invalid announcement reached the backend")
			}
		})
	}
}

func TestAnnouncementHandler_ListHidesExpiredFromMembers(t *testing.T) {
	past := time.Now().UTC().Add(-24 * time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)
	anns := &stubAnnouncementsAPI{items: []domain.Announcement{
		{ID: "a1", Title: "Current", ExpiryDate: &future},
		{ID: "a2", Title: "Stale", ExpiryDate: &past},
		{ID: "a3", Title: "Evergreen"},
	}}
	h := NewAnnouncementHandler(anns)

	c, rec := announcementContext(t, http.MethodGet, "", &domain.User{ID: "u1", Role: domain.RoleUser})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Stale") {
		t.Error("expired announcement served to a member")
	}
	if !strings.Contains(body, "Current") || !strings.Contains(body, "Evergreen") {
		t.Errorf("live announcements missing from response: %s", body)
	}
}

func TestAnnouncementHandler_ListKeepsExpiredForStaff(t *testing.T) {
	past := time.Now().UTC().Add(-24 * time.Hour)
	anns := &stubAnnouncementsAPI{items: []domain.Announcement{
		{ID: "a2", Title: "Stale", ExpiryDate: &past},
	}}
	h := NewAnnouncementHandler(anns)

	c, rec := announcementContext(t, http.MethodGet, "", &domain.User{ID: "s1", Role: domain.RoleStaff})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Stale") {
		t.Error("staff should still see expired announcements")
	}
}
