package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portal/config"
	"portal/internal/infra/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddleware() *AuthMiddleware {
	cfg := &config.Config{
		Session: &config.SessionConfig{
			CookieName:      "authToken",
			AuthFlagCookie:  "isAuthenticated",
			ResetCookieName: "reset_token",
			TTL:             time.Hour,
		},
	}

	return NewAuthMiddleware(session.NewCookieStore(cfg))
}

func TestRequireSessionRedirectsWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(echo.Context) error {
		called = true

		return nil
	}

	require.NoError(t, newMiddleware().RequireSession(next)(c))
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireSessionExposesSessionToHandlers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: "session-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		session, ok := SessionFromContext(c)
		require.True(t, ok)
		assert.Equal(t, "session-token", session.Token)
		assert.True(t, session.IsAuthenticated)

		return nil
	}

	require.NoError(t, newMiddleware().RequireSession(next)(c))
}

func TestSessionFromContextWithoutGuard(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := SessionFromContext(c)
	assert.False(t, ok)
}
