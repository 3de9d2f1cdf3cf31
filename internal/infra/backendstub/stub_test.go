package backendstub_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"portal/config"
	"portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/infra/backend"
	"portal/internal/infra/backendstub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T) (service.BackendGateway, *backendstub.Stub) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	stub := backendstub.New("test-secret", logger)

	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL

	gateway, err := backend.New(cfg, logger)
	require.NoError(t, err)

	return gateway, stub
}

func signupParams(email string) service.SignupParams {
	return service.SignupParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "secret123",
	}
}

func TestSignupVerifyLoginChat(t *testing.T) {
	gateway, stub := newGateway(t)
	ctx := context.Background()

	require.NoError(t, gateway.Signup(ctx, signupParams("ada@example.com")))

	// Login before verification is refused.
	_, err := gateway.Login(ctx, "ada@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "Please verify your email before logging in", errors.MessageFor(err, ""))

	verifyToken, ok := stub.VerificationToken("ada@example.com")
	require.True(t, ok)

	sessionToken, message, err := gateway.VerifyEmail(ctx, verifyToken)
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully!", message)
	assert.NotEmpty(t, sessionToken)

	// Revisiting the same link reports the already-verified state.
	_, _, err = gateway.VerifyEmail(ctx, verifyToken)
	require.Error(t, err)
	assert.Equal(t, errors.KindAlreadyVerified, errors.ClassifyVerification(errors.MessageFor(err, "")))

	loginToken, err := gateway.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	reply, err := gateway.SendChat(ctx, loginToken, "hello there")
	require.NoError(t, err)
	assert.Equal(t, "You said: hello there", reply)
}

func TestSignupDuplicateEmail(t *testing.T) {
	gateway, _ := newGateway(t)
	ctx := context.Background()

	require.NoError(t, gateway.Signup(ctx, signupParams("dup@example.com")))

	err := gateway.Signup(ctx, signupParams("dup@example.com"))
	require.Error(t, err)
	assert.Equal(t, "Email already registered", errors.MessageFor(err, ""))
}

func TestLoginWrongPassword(t *testing.T) {
	gateway, stub := newGateway(t)
	ctx := context.Background()

	require.NoError(t, gateway.Signup(ctx, signupParams("eve@example.com")))
	verifyToken, _ := stub.VerificationToken("eve@example.com")
	_, _, err := gateway.VerifyEmail(ctx, verifyToken)
	require.NoError(t, err)

	_, err = gateway.Login(ctx, "eve@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", errors.MessageFor(err, ""))
}

func TestPasswordResetFlow(t *testing.T) {
	gateway, stub := newGateway(t)
	ctx := context.Background()

	require.NoError(t, gateway.Signup(ctx, signupParams("resetme@example.com")))
	verifyToken, _ := stub.VerificationToken("resetme@example.com")
	_, _, err := gateway.VerifyEmail(ctx, verifyToken)
	require.NoError(t, err)

	require.NoError(t, gateway.ForgotPassword(ctx, "resetme@example.com"))

	resetToken, ok := stub.ResetTokenFor("resetme@example.com")
	require.True(t, ok)

	require.NoError(t, gateway.VerifyResetToken(ctx, resetToken))
	require.NoError(t, gateway.ResetPassword(ctx, resetToken, "newsecret", "newsecret"))

	// The grant is single-use.
	err = gateway.VerifyResetToken(ctx, resetToken)
	require.Error(t, err)
	assert.Equal(t, errors.KindTokenInvalid, errors.ClassifyReset(err))

	_, err = gateway.Login(ctx, "resetme@example.com", "secret123")
	require.Error(t, err)

	token, err := gateway.Login(ctx, "resetme@example.com", "newsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestForgotPasswordUnknownEmailStillSucceeds(t *testing.T) {
	gateway, stub := newGateway(t)

	require.NoError(t, gateway.ForgotPassword(context.Background(), "ghost@example.com"))

	_, ok := stub.ResetTokenFor("ghost@example.com")
	assert.False(t, ok)
}

func TestChatRejectsBadToken(t *testing.T) {
	gateway, _ := newGateway(t)

	_, err := gateway.SendChat(context.Background(), "not-a-jwt", "hi")
	require.Error(t, err)
	assert.Equal(t, errors.KindBackend, errors.KindOf(err))
}
