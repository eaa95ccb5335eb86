package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

// Users talks to the backend's user and membership endpoints.
type Users struct {
	c *Client
}

func NewUsers(c *Client) *Users {
	return &Users{c: c}
}

// UserListParams filters and paginates user listings.
type UserListParams struct {
	Search      string
	Role        string
	MembersOnly bool
	Page        int
	Limit       int
}

func (p UserListParams) values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	if p.Role != "" {
		q.Set("role", p.Role)
	}
	if p.MembersOnly {
		q.Set("isMember", "true")
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// UserUpdate is the staff-editable subset of a user record.
type UserUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// MembershipUpdate grants or adjusts a user's membership window.
type MembershipUpdate struct {
	MembershipType string    `json:"membershipType"`
	StartDate      time.Time `json:"startDate"`
	ExpiryDate     time.Time `json:"expiryDate"`
}

// List returns a page of users.
func (u *Users) List(ctx context.Context, params UserListParams) ([]domain.User, *Pagination, error) {
	var users []domain.User
	m, err := u.c.get(ctx, "/api/users", params.values(), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, m.Pagination, nil
}

// Get returns one user.
func (u *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if _, err := u.c.get(ctx, "/api/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail resolves a user by their email address.
func (u *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if _, err := u.c.get(ctx, "/api/users/email/"+url.PathEscape(email), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the session user's own record, including membership details.
func (u *Users) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if _, err := u.c.get(ctx, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update edits a user record.
func (u *Users) Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	var user domain.User
	if _, err := u.c.put(ctx, "/api/users/"+url.PathEscape(id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMembership grants or extends a membership.
func (u *Users) UpdateMembership(ctx context.Context, id string, update MembershipUpdate) (*domain.User, error) {
	var user domain.User
	if _, err := u.c.put(ctx, "/api/users/"+url.PathEscape(id)+"/membership", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteMembership revokes a membership.
func (u *Users) DeleteMembership(ctx context.Context, id string) error {
	_, err := u.c.delete(ctx, "/api/users/"+url.PathEscape(id)+"/membership")
	return err
}

// Delete removes a user account.
func (u *Users) Delete(ctx context.Context, id string) error {
	_, err := u.c.delete(ctx, "/api/users/" + url.PathEscape(id))
	return err
}
