// Package session implements the cookie-backed session store.
package session

import (
	"net/http"
	"time"

	"portal/config"
	"portal/internal/domain/entity"
	"portal/internal/domain/service"
)

// cookieStore keeps the session token, the authenticated flag and the
// transient reset token in HttpOnly cookies. The cookie names mirror the
// keys the flows have always used (authToken, isAuthenticated,
// reset_token).
type cookieStore struct {
	cfg *config.SessionConfig
}

// NewCookieStore is the constructor for the cookie-backed SessionStore.
func NewCookieStore(cfg *config.Config) service.SessionStore {
	return &cookieStore{cfg: cfg.Session}
}

func (s *cookieStore) Session(r *http.Request) (entity.Session, bool) {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return entity.Session{}, false
	}

	return entity.Session{Token: cookie.Value, IsAuthenticated: true}, true
}

func (s *cookieStore) SetSession(w http.ResponseWriter, token string) {
	s.set(w, s.cfg.CookieName, token, s.cfg.TTL)
	s.set(w, s.cfg.AuthFlagCookie, "true", s.cfg.TTL)
}

func (s *cookieStore) Clear(w http.ResponseWriter) {
	s.expire(w, s.cfg.CookieName)
	s.expire(w, s.cfg.AuthFlagCookie)
}

func (s *cookieStore) ResetToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.cfg.ResetCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

func (s *cookieStore) SetResetToken(w http.ResponseWriter, token string) {
	s.set(w, s.cfg.ResetCookieName, token, s.cfg.TTL)
}

func (s *cookieStore) ClearResetToken(w http.ResponseWriter) {
	s.expire(w, s.cfg.ResetCookieName)
}

func (s *cookieStore) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *cookieStore) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
