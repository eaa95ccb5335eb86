package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// currentUser returns the profile placed on the context by the Session
// middleware. Its absence means the middleware did not run on this route.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// isStaff reports whether the request is made by staff. Anonymous reads as
// not staff.
func isStaff(c echo.Context) bool {
	user, _ := c.Get("user").(*domain.User)
	return user != nil && user.IsStaff()
}
