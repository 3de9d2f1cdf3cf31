// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 6

// authService implements the AuthUsecase interface.
type authService struct {
	gateway service.BackendGateway
	logger  *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Gateway service.BackendGateway
	Logger  *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		gateway: params.Gateway,
		logger:  params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates an account. Fields are trimmed and the email lowercased
// before the backend sees them.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) error {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := strings.TrimSpace(input.Password)

	if firstName == "" || lastName == "" || email == "" || password == "" {
		return domainerrors.NewValidation("All fields are required")
	}

	if err := srv.gateway.Signup(ctx, service.SignupParams{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}); err != nil {
		srv.log(ctx).Info("signup rejected", slog.String("email", email), slog.Any("error", err))

		return errors.WithStack(err)
	}

	srv.log(ctx).Info("signup accepted", slog.String("email", email))

	return nil
}

// Login exchanges credentials for a session token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, domainerrors.NewValidation("Email and password are required")
	}

	token, err := srv.gateway.Login(ctx, email, password)
	if err != nil {
		srv.log(ctx).Info("login rejected", slog.String("email", email), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	srv.log(ctx).Info("login accepted", slog.String("email", email))

	return &usecase.LoginOutput{Token: token}, nil
}

// ForgotPassword asks the backend to mail reset instructions.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domainerrors.NewValidation("Please enter your email address")
	}

	if err := srv.gateway.ForgotPassword(ctx, email); err != nil {
		return errors.WithStack(err)
	}

	srv.log(ctx).Info("reset instructions requested", slog.String("email", email))

	return nil
}

// VerifyResetToken checks a tokenized reset link with the backend.
func (srv *authService) VerifyResetToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return domainerrors.NewValidation("Invalid reset password link")
	}

	return errors.WithStack(srv.gateway.VerifyResetToken(ctx, token))
}

// ResetPassword applies a new password. All local checks run before any
// network call.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" {
		return domainerrors.NewFlow(domainerrors.KindTokenInvalid, "Invalid or expired reset token")
	}

	password := strings.TrimSpace(input.NewPassword)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if password == "" || confirm == "" {
		return domainerrors.NewValidation("Both password fields are required")
	}
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.NewValidation("Passwords do not match")
	}
	if len(input.NewPassword) < minPasswordLength {
		return domainerrors.NewValidation("Password must be at least 6 characters long")
	}

	if err := srv.gateway.ResetPassword(ctx, input.Token, input.NewPassword, input.ConfirmPassword); err != nil {
		srv.log(ctx).Info("password reset rejected", slog.Any("error", err))

		return errors.WithStack(err)
	}

	srv.log(ctx).Info("password reset accepted")

	return nil
}

// VerifyEmail resolves a verification link to one of its terminal
// states. Every outcome is a renderable page, so failures are folded
// into the returned status instead of an error.
func (srv *authService) VerifyEmail(ctx context.Context, token string) *usecase.VerifyEmailOutput {
	if strings.TrimSpace(token) == "" {
		return &usecase.VerifyEmailOutput{
			Status:  entity.VerificationError,
			Message: "No verification token provided.",
		}
	}

	sessionToken, message, err := srv.gateway.VerifyEmail(ctx, token)
	if err != nil {
		msg := domainerrors.MessageFor(err, "Verification failed. Please try again.")
		if domainerrors.ClassifyVerification(msg) == domainerrors.KindAlreadyVerified {
			return &usecase.VerifyEmailOutput{
				Status:  entity.VerificationAlreadyVerified,
				Message: "Your email is already verified.",
			}
		}

		srv.log(ctx).Info("email verification failed", slog.Any("error", err))

		return &usecase.VerifyEmailOutput{
			Status:  entity.VerificationError,
			Message: msg,
		}
	}

	if message == "" {
		message = "Email verified successfully!"
	}
	srv.log(ctx).Info("email verified")

	return &usecase.VerifyEmailOutput{
		Status:       entity.VerificationSuccess,
		SessionToken: sessionToken,
		Message:      message,
	}
}
