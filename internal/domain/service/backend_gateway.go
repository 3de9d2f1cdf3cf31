package service

import "context"

// SignupParams is the payload of the signup endpoint.
type SignupParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// BackendGateway is the typed surface of the remote API the portal
// fronts. Implementations attach bearer credentials where required and
// normalize failures into errors carrying a user-facing message.
//
// There are deliberately no retries and no backoff anywhere behind this
// interface; every failure surfaces immediately to the calling view.
type BackendGateway interface {
	Signup(ctx context.Context, params SignupParams) error
	Login(ctx context.Context, email, password string) (token string, err error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
	// VerifyEmail returns the optional session token issued on first
	// verification together with the backend's message.
	VerifyEmail(ctx context.Context, token string) (sessionToken, message string, err error)
	// SendChat posts a message on behalf of an authenticated session and
	// returns the assistant's reply.
	SendChat(ctx context.Context, sessionToken, message string) (reply string, err error)
}
