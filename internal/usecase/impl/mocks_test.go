package impl

import (
	"context"

	"portal/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// mockGateway is a testify mock of service.BackendGateway.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Signup(ctx context.Context, params service.SignupParams) error {
	args := m.Called(ctx, params)

	return args.Error(0)
}

func (m *mockGateway) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)

	return args.String(0), args.Error(1)
}

func (m *mockGateway) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}

func (m *mockGateway) VerifyResetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *mockGateway) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	args := m.Called(ctx, token, newPassword, confirmPassword)

	return args.Error(0)
}

func (m *mockGateway) VerifyEmail(ctx context.Context, token string) (string, string, error) {
	args := m.Called(ctx, token)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockGateway) SendChat(ctx context.Context, sessionToken, message string) (string, error) {
	args := m.Called(ctx, sessionToken, message)

	return args.String(0), args.Error(1)
}
