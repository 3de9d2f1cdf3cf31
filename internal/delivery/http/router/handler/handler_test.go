package handler

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"portal/config"
	httpvalidator "portal/internal/delivery/http/validator"
	"portal/internal/domain/entity"
	"portal/internal/domain/service"
	"portal/internal/infra/session"
	"portal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// renderCapture records the template and view model a handler rendered
// so tests assert on view state instead of HTML output.
type renderCapture struct {
	name string
	data any
}

func (r *renderCapture) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data = data

	return nil
}

func newTestEcho() (*echo.Echo, *renderCapture) {
	e := echo.New()
	capture := &renderCapture{}
	e.Renderer = capture
	e.Validator = httpvalidator.New()

	return e, capture
}

func newTestSessionStore() service.SessionStore {
	cfg := &config.Config{
		Session: &config.SessionConfig{
			CookieName:      "authToken",
			AuthFlagCookie:  "isAuthenticated",
			ResetCookieName: "reset_token",
			TTL:             time.Hour,
		},
	}

	return session.NewCookieStore(cfg)
}

func cookieValue(cookies []*http.Cookie, name string) (string, bool) {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value, cookie.MaxAge >= 0
		}
	}

	return "", false
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if output := args.Get(0); output != nil {
		return output.(*usecase.LoginOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}

func (m *mockAuthUsecase) VerifyResetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *mockAuthUsecase) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *mockAuthUsecase) VerifyEmail(ctx context.Context, token string) *usecase.VerifyEmailOutput {
	args := m.Called(ctx, token)

	return args.Get(0).(*usecase.VerifyEmailOutput)
}

type mockChatUsecase struct {
	mock.Mock
}

func (m *mockChatUsecase) Transcript(ctx context.Context, sessionToken string) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, sessionToken)
	if messages := args.Get(0); messages != nil {
		return messages.([]*entity.ChatMessage), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockChatUsecase) Send(ctx context.Context, input *usecase.SendInput) (*usecase.SendOutput, error) {
	args := m.Called(ctx, input)
	if output := args.Get(0); output != nil {
		return output.(*usecase.SendOutput), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockChatUsecase) EndSession(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)

	return args.Error(0)
}

func run(t *testing.T, handlerFunc echo.HandlerFunc, c echo.Context) {
	t.Helper()

	if err := handlerFunc(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
}
