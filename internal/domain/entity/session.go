// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Session represents the authenticated state carried by a browser.
// The token is the bearer credential issued by the remote backend; the
// portal never inspects it beyond presence, the backend stays
// authoritative for validity.
type Session struct {
	Token           string
	IsAuthenticated bool
}

// VerificationStatus is the terminal state of the email-verification view.
type VerificationStatus string

const (
	VerificationSuccess         VerificationStatus = "success"
	VerificationAlreadyVerified VerificationStatus = "already-verified"
	VerificationError           VerificationStatus = "error"
)
