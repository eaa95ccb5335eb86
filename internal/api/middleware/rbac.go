package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// RBAC restricts a route group to the given roles. It relies on Session
// having resolved the profile first; an absent role reads as empty and is
// always refused.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// Staff is the guard for management screens.
func Staff() echo.MiddlewareFunc {
	return RBAC(domain.RoleStaff, domain.RoleAdmin)
}
