package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// ProfileStore caches session-to-profile resolutions. A nil store disables
// caching; every request then resolves against the backend.
type ProfileStore interface {
	Get(ctx context.Context, session string) (*domain.User, error)
	Put(ctx context.Context, session string, user *domain.User) error
	Drop(ctx context.Context, session string) error
}

// ProfileResolver resolves the profile behind a session cookie.
type ProfileResolver interface {
	Me(ctx context.Context) (*domain.User, error)
}

// Session authenticates requests by their backend session cookie. The
// resolved profile is placed on the echo context ("user", "role") and the
// cookie itself on the request context for the upstream client. Cache
// failures fall back to the backend rather than failing the request.
func Session(cookieName string, store ProfileStore, resolver ProfileResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return domain.ErrUnauthorized
			}

			ctx := upstream.WithSession(c.Request().Context(), cookie)
			c.SetRequest(c.Request().WithContext(ctx))

			user, err := resolveProfile(ctx, cookie.Value, store, resolver, log)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
					return domain.ErrUnauthorized
				}
				return err
			}

			c.Set("user", user)
			c.Set("role", user.Role)
			return next(c)
		}
	}
}

func resolveProfile(ctx context.Context, session string, store ProfileStore, resolver ProfileResolver, log zerolog.Logger) (*domain.User, error) {
	if store != nil {
		user, err := store.Get(ctx, session)
		if err != nil {
			log.Warn().Err(err).Msg("profile cache unavailable")
		} else if user != nil {
			return user, nil
		}
	}

	user, err := resolver.Me(ctx)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Put(ctx, session, user); err != nil {
			log.Warn().Err(err).Msg("profile cache write failed")
		}
	}
	return user, nil
}
