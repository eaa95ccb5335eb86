package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/api/middleware"
	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/ports"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// AuthHandler relays the session lifecycle between browser and backend.
type AuthHandler struct {
	auth       ports.AuthAPI
	profiles   middleware.ProfileStore
	cookieName string
	log        zerolog.Logger
}

func NewAuthHandler(auth ports.AuthAPI, profiles middleware.ProfileStore, cookieName string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, profiles: profiles, cookieName: cookieName, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type setPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type authResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates against the backend and relays its session cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, cookies, err := h.auth.Login(c.Request().Context(), upstream.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	for _, cookie := range cookies {
		c.SetCookie(cookie)
	}
	h.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// Register creates an account and relays the fresh session cookie.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, cookies, err := h.auth.Register(c.Request().Context(), upstream.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	for _, cookie := range cookies {
		c.SetCookie(cookie)
	}
	h.log.Info().Str("user_id", user.ID).Msg("user registered")
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Logout ends the backend session, evicts the cached profile and expires
// the browser cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.auth.Logout(ctx); err != nil {
		// The browser cookie is cleared regardless, so a failed backend
		// call only means the session dies by expiry instead.
		h.log.Warn().Err(err).Msg("backend logout failed")
	}

	if cookie, err := c.Cookie(h.cookieName); err == nil && h.profiles != nil {
		if err := h.profiles.Drop(ctx, cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("profile cache eviction failed")
		}
	}

	c.SetCookie(&http.Cookie{Name: h.cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the signed-in user's profile.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// ChangePassword rotates the current password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Passwords"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), upstream.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// SetPassword sets an initial password on an OAuth-created account.
//
// @Summary      Set password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      setPasswordRequest  true  "New password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/password [post]
func (h *AuthHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.SetPassword(c.Request().Context(), upstream.PasswordSet{
		NewPassword: req.NewPassword,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password set"})
}

// GoogleLogin bounces the browser to the backend's OAuth entry point.
//
// @Summary      Log in with Google
// @Tags         auth
// @Success      302
// @Router       /auth/google [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.auth.GoogleLoginURL())
}
