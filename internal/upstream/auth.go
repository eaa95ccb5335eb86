package upstream

import (
	"context"
	"net/http"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Auth talks to the backend's session-lifecycle endpoints. The backend owns
// credential verification and issues the session cookie; the portal only
// relays it to and from the browser.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// PasswordChange rotates the current user's credentials.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PasswordSet sets an initial password for OAuth-created accounts.
type PasswordSet struct {
	NewPassword string `json:"newPassword"`
}

// Login authenticates against the backend. The returned cookies are the
// backend's Set-Cookie headers (the session), which the caller relays to
// the browser.
func (a *Auth) Login(ctx context.Context, creds Credentials) (*domain.User, []*http.Cookie, error) {
	var user domain.User
	m, err := a.c.post(ctx, "/api/auth/login", creds, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, m.Cookies, nil
}

// Register creates an account and, like Login, returns the session cookies
// the backend issues on successful registration.
func (a *Auth) Register(ctx context.Context, reg Registration) (*domain.User, []*http.Cookie, error) {
	var user domain.User
	m, err := a.c.post(ctx, "/api/auth/register", reg, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, m.Cookies, nil
}

// Logout invalidates the backend session carried on ctx.
func (a *Auth) Logout(ctx context.Context) error {
	_, err := a.c.post(ctx, "/api/auth/logout", nil, nil)
	return err
}

// Me returns the profile for the session carried on ctx.
func (a *Auth) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if _, err := a.c.get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the session user's password.
func (a *Auth) ChangePassword(ctx context.Context, change PasswordChange) error {
	_, err := a.c.post(ctx, "/api/auth/change-password", change, nil)
	return err
}

// SetPassword sets a password on an account created through OAuth.
func (a *Auth) SetPassword(ctx context.Context, set PasswordSet) error {
	_, err := a.c.post(ctx, "/api/auth/set-password", set, nil)
	return err
}

// GoogleLoginURL is where the browser must be redirected to start the
// Google OAuth handoff. This is a navigation, not an API call.
func (a *Auth) GoogleLoginURL() string {
	return a.c.BaseURL() + "/api/auth/google"
}
