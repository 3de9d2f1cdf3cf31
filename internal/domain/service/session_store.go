// Package service defines the interfaces for domain-level capabilities
// that are implemented by the infra layer.
package service

import (
	"net/http"

	"portal/internal/domain/entity"
)

// SessionStore persists the authentication state of a browser across
// page loads. It is injected wherever session access is needed so views
// can be tested against a fake provider.
//
// Presence is the only check performed here; an expired token simply
// causes later backend requests to fail.
type SessionStore interface {
	// Session returns the current session, if any.
	Session(r *http.Request) (entity.Session, bool)
	// SetSession stores the bearer token and marks the browser authenticated.
	SetSession(w http.ResponseWriter, token string)
	// Clear removes the session.
	Clear(w http.ResponseWriter)

	// ResetToken returns the transient password-reset credential, if held.
	// At most one reset token is held at a time.
	ResetToken(r *http.Request) (string, bool)
	// SetResetToken stores the reset credential.
	SetResetToken(w http.ResponseWriter, token string)
	// ClearResetToken discards the reset credential.
	ClearResetToken(w http.ResponseWriter)
}
