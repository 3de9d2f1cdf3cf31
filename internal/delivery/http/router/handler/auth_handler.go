// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"portal/internal/delivery/http/middleware"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Success pages of the reset flows display for two seconds before the
// timed transition navigates on (rendered as a meta refresh so tearing
// the page down cancels it).
const redirectDelaySeconds = 2

// loginPage is the view model of the login template.
type loginPage struct {
	Title string
	Error string
	Email string
}

// signupPage is the view model of the signup template.
type signupPage struct {
	Title string
	Error string
	Form  usecase.SignupInput
}

// forgotPasswordPage is the view model of the forgot-password template.
type forgotPasswordPage struct {
	Title   string
	Error   string
	Message string
	Email   string
	// Redirect, when set, auto-advances there after the display delay.
	Redirect string
	Delay    int
}

// resetPasswordPage is the view model of the reset-password template.
type resetPasswordPage struct {
	Title    string
	Error    string
	Success  bool
	Redirect string
	Delay    int
}

// resetLinkErrorPage is the terminal state of an unusable reset link.
type resetLinkErrorPage struct {
	Title string
	Error string
}

// verifyEmailPage is the view model of the email-verification template.
type verifyEmailPage struct {
	Title   string
	Status  entity.VerificationStatus
	Message string
}

// AuthHandler holds dependencies for the authentication flow handlers.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	chat     usecase.ChatUsecase
	sessions service.SessionStore
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, chat usecase.ChatUsecase, sessions service.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		chat:     chat,
		sessions: sessions,
		logger:   logger,
	}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{Title: "Welcome Back"})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return c.Render(http.StatusOK, "login.html", loginPage{
			Title: "Welcome Back",
			Error: domainerrors.GenericMessage,
		})
	}
	if err := c.Validate(&input); err != nil {
		return c.Render(http.StatusOK, "login.html", loginPage{
			Title: "Welcome Back",
			Error: "Email and password are required",
			Email: input.Email,
		})
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return c.Render(http.StatusOK, "login.html", loginPage{
			Title: "Welcome Back",
			Error: domainerrors.MessageFor(err, "Invalid credentials"),
			Email: input.Email,
		})
	}

	h.sessions.SetSession(c.Response(), output.Token)

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ShowSignup renders the signup form.
func (h *AuthHandler) ShowSignup(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", signupPage{Title: "Create Account"})
}

// Signup handles the signup form submission.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return c.Render(http.StatusOK, "signup.html", signupPage{
			Title: "Create Account",
			Error: domainerrors.GenericMessage,
		})
	}
	if err := c.Validate(&input); err != nil {
		return c.Render(http.StatusOK, "signup.html", signupPage{
			Title: "Create Account",
			Error: "All fields are required",
			Form:  input,
		})
	}

	if err := h.uc.Signup(c.Request().Context(), &input); err != nil {
		return c.Render(http.StatusOK, "signup.html", signupPage{
			Title: "Create Account",
			Error: domainerrors.MessageFor(err, "Failed to create account"),
			Form:  input,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/check-email")
}

// ShowForgotPassword renders the forgot-password form.
func (h *AuthHandler) ShowForgotPassword(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password.html", forgotPasswordPage{Title: "Forgot Password"})
}

// ForgotPassword handles the forgot-password form submission.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	email := c.FormValue("email")

	if err := h.uc.ForgotPassword(c.Request().Context(), email); err != nil {
		return c.Render(http.StatusOK, "forgot_password.html", forgotPasswordPage{
			Title: "Forgot Password",
			Error: domainerrors.MessageFor(err, "Failed to send reset instructions"),
			Email: email,
		})
	}

	return c.Render(http.StatusOK, "forgot_password.html", forgotPasswordPage{
		Title:    "Forgot Password",
		Message:  "Password reset instructions have been sent to your email",
		Redirect: "/check-reset-email",
		Delay:    redirectDelaySeconds,
	})
}

// ShowResetPassword renders the reset-password form, or the terminal
// "no token" state when no reset token is held.
func (h *AuthHandler) ShowResetPassword(c echo.Context) error {
	if _, ok := h.sessions.ResetToken(c.Request()); !ok {
		return c.Render(http.StatusOK, "reset_password.html", resetPasswordPage{
			Title:    "Reset Password",
			Error:    "No reset token found. Please request a new password reset.",
			Redirect: "/forgot-password",
			Delay:    redirectDelaySeconds,
		})
	}

	return c.Render(http.StatusOK, "reset_password.html", resetPasswordPage{Title: "Reset Password"})
}

// ResetPassword handles the reset-password form submission.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	input := usecase.ResetPasswordInput{
		NewPassword:     c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}
	input.Token, _ = h.sessions.ResetToken(c.Request())

	if err := h.uc.ResetPassword(c.Request().Context(), &input); err != nil {
		if domainerrors.ClassifyReset(err) == domainerrors.KindTokenInvalid {
			// The held reset token is unusable; discard it and send the
			// user back to request a fresh link.
			h.sessions.ClearResetToken(c.Response())

			return c.Render(http.StatusOK, "reset_password.html", resetPasswordPage{
				Title:    "Reset Password",
				Error:    domainerrors.MessageFor(err, "Failed to reset password"),
				Redirect: "/forgot-password",
				Delay:    redirectDelaySeconds,
			})
		}

		return c.Render(http.StatusOK, "reset_password.html", resetPasswordPage{
			Title: "Reset Password",
			Error: domainerrors.MessageFor(err, "Failed to reset password"),
		})
	}

	h.sessions.ClearResetToken(c.Response())

	return c.Render(http.StatusOK, "reset_password.html", resetPasswordPage{
		Title:    "Reset Password",
		Success:  true,
		Redirect: "/login",
		Delay:    redirectDelaySeconds,
	})
}

// ResetRedirect resolves a tokenized reset link: it verifies the token
// with the backend, stores it as the active reset token and forwards to
// the reset form.
func (h *AuthHandler) ResetRedirect(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.Render(http.StatusOK, "reset_link_error.html", resetLinkErrorPage{
			Title: "Invalid Link",
			Error: "Invalid reset password link",
		})
	}

	if err := h.uc.VerifyResetToken(c.Request().Context(), token); err != nil {
		return c.Render(http.StatusOK, "reset_link_error.html", resetLinkErrorPage{
			Title: "Invalid Link",
			Error: domainerrors.MessageFor(err, "Invalid or expired reset token"),
		})
	}

	h.sessions.SetResetToken(c.Response(), token)

	return c.Redirect(http.StatusSeeOther, "/reset-password")
}

// VerifyEmail resolves a verification link to its terminal page.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	output := h.uc.VerifyEmail(c.Request().Context(), c.Param("token"))

	// A token issued on first verification logs the browser in directly.
	if output.Status == entity.VerificationSuccess && output.SessionToken != "" {
		h.sessions.SetSession(c.Response(), output.SessionToken)
	}

	return c.Render(http.StatusOK, "email_verified.html", verifyEmailPage{
		Title:   "Email Verification",
		Status:  output.Status,
		Message: output.Message,
	})
}

// Logout clears the session and its transcript.
func (h *AuthHandler) Logout(c echo.Context) error {
	if session, ok := h.sessions.Session(c.Request()); ok {
		if err := h.chat.EndSession(c.Request().Context(), session.Token); err != nil {
			h.logger.Warn("failed to clear transcript on logout", slog.Any("error", err))
		}
	}
	h.sessions.Clear(c.Response())

	return c.Redirect(http.StatusSeeOther, "/login")
}

// sessionFromContext is a convenience wrapper for handlers behind the guard.
func sessionFromContext(c echo.Context) (entity.Session, bool) {
	return middleware.SessionFromContext(c)
}
