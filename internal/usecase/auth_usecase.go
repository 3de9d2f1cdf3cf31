// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"portal/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
// Validation tags cover presence; trimming and lowercasing happen in the
// usecase before the backend sees the values.
type SignupInput struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required"`
	Password  string `form:"password" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ResetPasswordInput defines the data required to reset a password.
// The token comes from the session store, not from the form.
type ResetPasswordInput struct {
	Token           string
	NewPassword     string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the session token issued on a successful login.
type LoginOutput struct {
	Token string
}

// VerifyEmailOutput is the terminal state of an email verification
// attempt. Failures are folded into the status; there is no separate
// error path because every outcome is a renderable page.
type VerifyEmailOutput struct {
	Status entity.VerificationStatus
	// SessionToken is set when the backend issues a session on first
	// verification, enabling immediate login.
	SessionToken string
	Message      string
}

// AuthUsecase defines the authentication flows of the portal.
// This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	VerifyEmail(ctx context.Context, token string) *VerifyEmailOutput
}
