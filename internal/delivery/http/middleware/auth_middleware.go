package middleware

import (
	"net/http"

	"portal/internal/domain/entity"
	"portal/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// sessionContextKey is where the guard stores the session for handlers.
const sessionContextKey = "session"

// AuthMiddleware is the navigation guard for protected views.
type AuthMiddleware struct {
	sessions service.SessionStore
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession redirects to the login view when no session token is
// present. Protected content is never rendered without one. Presence is
// the only check; the backend stays authoritative for token validity.
func (m *AuthMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, ok := m.sessions.Session(c.Request())
		if !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(sessionContextKey, session)

		return next(c)
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(c echo.Context) (entity.Session, bool) {
	session, ok := c.Get(sessionContextKey).(entity.Session)

	return session, ok
}
