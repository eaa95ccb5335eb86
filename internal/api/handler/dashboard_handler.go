package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/ports"
)

// DashboardHandler serves the landing views.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Member serves the caller's own dashboard.
//
// @Summary      Member dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.MemberDashboard
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Member(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.dashboard.Member(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Admin serves the staff overview counters.
//
// @Summary      Admin dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	stats, err := h.dashboard.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
