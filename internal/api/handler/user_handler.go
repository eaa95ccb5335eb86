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

// UserHandler serves the member-management screens. Everything here except
// profile self-service is staff-only, enforced at the router.
type UserHandler struct {
	users ports.UsersAPI
}

func NewUserHandler(users ports.UsersAPI) *UserHandler {
	return &UserHandler{users: users}
}

type userUpdateRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role" validate:"omitempty,oneof=USER STAFF ADMIN"`
	IsActive    *bool  `json:"isActive"`
}

type membershipRequest struct {
	MembershipType string    `json:"membershipType" validate:"required,oneof=REGULAR PREMIUM STUDENT"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	ExpiryDate     time.Time `json:"expiryDate" validate:"required,gtfield=StartDate"`
}

type userListResponse struct {
	Users      []domain.User        `json:"users"`
	Pagination *upstream.Pagination `json:"pagination,omitempty"`
}

// List serves the member directory with search and role filters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        q     query     string  false  "Search term"
// @Param        role  query     string  false  "Role filter"
// @Param        page  query     int     false  "Page number"
// @Success      200   {object}  userListResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, pagination, err := h.users.List(c.Request().Context(), upstream.UserListParams{
		Search:      c.QueryParam("q"),
		Role:        c.QueryParam("role"),
		MembersOnly: c.QueryParam("isMember") == "true",
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users, Pagination: pagination})
}

// Me serves the signed-in user's own record from the users endpoint. The
// session middleware has already resolved the profile, but this route
// always reads fresh so membership changes show up immediately.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.Me(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get serves one user record.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits a user record.
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), upstream.UserUpdate{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMembership grants or adjusts a membership window by hand, outside
// the paid checkout flow.
func (h *UserHandler) UpdateMembership(c echo.Context) error {
	var req membershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateMembership(c.Request().Context(), c.Param("id"), upstream.MembershipUpdate{
		MembershipType: req.MembershipType,
		StartDate:      req.StartDate,
		ExpiryDate:     req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMembership revokes a membership.
func (h *UserHandler) DeleteMembership(c echo.Context) error {
	if err := h.users.DeleteMembership(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user account.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
