package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// AnnouncementHandler serves the announcement board. Reads are open to
// every signed-in user; mutations are staff routes.
type AnnouncementHandler struct {
	anns ports.AnnouncementsAPI
}

func NewAnnouncementHandler(anns ports.AnnouncementsAPI) *AnnouncementHandler {
	return &AnnouncementHandler{anns: anns}
}

type announcementRequest struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	Type           string     `json:"type" validate:"required,oneof=NEW_BOOKS EVENT MAINTENANCE POLICY GENERAL"`
	Priority       string     `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	TargetAudience string     `json:"targetAudience" validate:"required,oneof=ALL MEMBERS_ONLY STAFF"`
	PublishDate    time.Time  `json:"publishDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
}

type announcementListResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
	Pagination    *upstream.Pagination  `json:"pagination,omitempty"`
}

func (r announcementRequest) toInput() upstream.AnnouncementInput {
	publish := r.PublishDate
	if publish.IsZero() {
		publish = time.Now().UTC()
	}
	return upstream.AnnouncementInput{
		Title:          r.Title,
		Content:        r.Content,
		Type:           r.Type,
		Priority:       r.Priority,
		TargetAudience: r.TargetAudience,
		PublishDate:    publish,
		ExpiryDate:     r.ExpiryDate,
	}
}

// List serves the board with type and priority filters.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Param        type      query     string  false  "Type filter"
// @Param        priority  query     string  false  "Priority filter"
// @Success      200       {object}  announcementListResponse
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	anns, pagination, err := h.anns.List(c.Request().Context(), upstream.AnnouncementListParams{
		Type:     c.QueryParam("type"),
		Priority: c.QueryParam("priority"),
		Audience: c.QueryParam("audience"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	if !isStaff(c) {
		anns = dropExpired(anns, time.Now().UTC())
	}
	return c.JSON(http.StatusOK, announcementListResponse{Announcements: anns, Pagination: pagination})
}

// dropExpired removes announcements past their expiry date. Staff keep
// seeing them so the board can be cleaned up.
func dropExpired(anns []domain.Announcement, now time.Time) []domain.Announcement {
	kept := anns[:0]
	for _, a := range anns {
		if !a.Expired(now) {
			kept = append(kept, a)
		}
	}
	return kept
}

// Get serves one announcement.
func (h *AnnouncementHandler) Get(c echo.Context) error {
	ann, err := h.anns.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ann)
}

// Create posts an announcement.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ann, err := h.anns.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ann)
}

// Update replaces an announcement.
func (h *AnnouncementHandler) Update(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ann, err := h.anns.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ann)
}

// Delete removes an announcement.
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	if err := h.anns.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
