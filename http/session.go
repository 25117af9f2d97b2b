package http

import (
	"context"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"wemender/entity"
)

const (
	cookieName  = "sid"
	identityKey = "identity"
)

// identityMiddleware resolves the session cookie once per request. Handlers
// read the result with identityFrom and pass it on explicitly.
func (h handler) identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := entity.AnonymousIdentity()

		if cookie, err := c.Cookie(cookieName); err == nil {
			resolved, err := h.sessions.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				log.FromContext(c.Request().Context()).WithError(err).Warn("Session lookup failed, continuing anonymously")
			}
			identity = resolved
		}

		c.Set(identityKey, identity)
		return next(c)
	}
}

func identityFrom(c echo.Context) entity.Identity {
	identity, ok := c.Get(identityKey).(entity.Identity)
	if !ok {
		return entity.AnonymousIdentity()
	}
	return identity
}

func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !identityFrom(c).IsUser() {
			return newHTTPError(http.StatusUnauthorized, msgLoginRequired, nil)
		}
		return next(c)
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !identityFrom(c).IsAdmin() {
			return newHTTPError(http.StatusUnauthorized, msgAdminRequired, nil)
		}
		return next(c)
	}
}

// replaceSession destroys whatever session the request carried and sets a
// cookie for the one returned by start.
func (h handler) replaceSession(c echo.Context, start func(ctx context.Context) (string, error)) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(cookieName); err == nil {
		if err := h.sessions.Destroy(ctx, cookie.Value); err != nil {
			log.FromContext(ctx).WithError(err).Warn("Failed to destroy previous session")
		}
	}

	token, err := start(ctx)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (h handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
