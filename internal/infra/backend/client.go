// Package backend implements the HTTP client wrapper for the remote API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"portal/config"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"

	"github.com/pkg/errors"
)

// Client talks to the fixed backend origin. Failures are normalized into
// domain errors carrying a user-facing message: the body's message field
// when present, a per-endpoint fallback otherwise.
//
// The underlying http.Client carries no timeout and the wrapper performs
// no retries; both are deliberate (every failure surfaces immediately to
// the calling view).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New is the constructor for Client.
func New(cfg *config.Config, logger *slog.Logger) (service.BackendGateway, error) {
	baseURL := strings.TrimRight(cfg.Backend.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("backend base URL must be provided")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "invalid backend base URL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// apiResponse is the common envelope of the backend's user endpoints.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (c *Client) Signup(ctx context.Context, params service.SignupParams) error {
	body := map[string]string{
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"email":     params.Email,
		"password":  params.Password,
	}
	_, err := c.do(ctx, http.MethodPost, "/api/users/signup", body, "", "Failed to create account")

	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/login", body, "", "Invalid credentials")
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/api/users/forgot-password", body, "", "Failed to send reset instructions")

	return err
}

func (c *Client) VerifyResetToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodGet, "/api/users/verify-reset-token/"+url.PathEscape(token), nil, "", "Invalid or expired reset token")

	return err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	body := map[string]string{
		"token":           token,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	_, err := c.do(ctx, http.MethodPost, "/api/users/reset-password", body, "", "Failed to reset password")

	return err
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (string, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/verify-email/"+url.PathEscape(token), nil, "", "Verification failed. Please try again.")
	if err != nil {
		return "", "", err
	}

	return resp.Token, resp.Message, nil
}

func (c *Client) SendChat(ctx context.Context, sessionToken, message string) (string, error) {
	body := map[string]string{"message": message}

	// The chat endpoint replies {message} without a success envelope.
	raw, statusCode, err := c.roundTrip(ctx, http.MethodPost, "/api/chat", body, sessionToken)
	if err != nil {
		return "", err
	}

	var reply struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &reply)

	if statusCode < 200 || statusCode >= 300 {
		return "", errors.WithStack(domainerrors.NewAPIError(statusCode, reply.Message, "An error occurred while sending the message"))
	}
	if reply.Message == "" {
		return "", errors.WithStack(domainerrors.NewFlow(domainerrors.KindTransport, "Invalid response from server"))
	}

	return reply.Message, nil
}

// do issues a request and applies the {success, message?} envelope rule:
// non-2xx or success:false maps to an APIError with the body's message.
func (c *Client) do(ctx context.Context, method, path string, payload any, bearer, fallback string) (*apiResponse, error) {
	raw, statusCode, err := c.roundTrip(ctx, method, path, payload, bearer)
	if err != nil {
		return nil, err
	}

	resp := &apiResponse{}
	// A body that fails to decode is treated the same as an empty one.
	_ = json.Unmarshal(raw, resp)

	if statusCode < 200 || statusCode >= 300 || !resp.Success {
		return nil, errors.WithStack(domainerrors.NewAPIError(statusCode, resp.Message, fallback))
	}

	return resp, nil
}

// roundTrip performs the bare HTTP exchange. Transport failures map to
// ErrBackendUnreachable so views show the generic message.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload any, bearer string) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return nil, 0, errors.Wrapf(domainerrors.ErrBackendUnreachable, "%s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, errors.Wrapf(domainerrors.ErrBackendUnreachable, "read response of %s %s", method, path)
	}

	return raw, res.StatusCode, nil
}
