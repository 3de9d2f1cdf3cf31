// Package backendstub is an in-memory rendition of the remote user API,
// used for local development and tests. It speaks the same envelope as
// the real backend: {success, message, token?}.
package backendstub

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL = 24 * time.Hour
	resetTTL   = time.Hour
)

type user struct {
	firstName    string
	lastName     string
	email        string
	passwordHash []byte
	verified     bool
}

type resetGrant struct {
	email     string
	expiresAt time.Time
}

// Stub holds the whole backend state in memory. Verification and reset
// tokens are surfaced through accessors instead of email delivery.
type Stub struct {
	mu           sync.Mutex
	users        map[string]*user
	verifyTokens map[string]string
	usedVerify   map[string]string
	resetTokens  map[string]resetGrant
	secret       []byte
	logger       *slog.Logger
	now          func() time.Time
}

// New is the constructor for Stub. The secret signs session tokens.
func New(secret string, logger *slog.Logger) *Stub {
	return &Stub{
		users:        make(map[string]*user),
		verifyTokens: make(map[string]string),
		usedVerify:   make(map[string]string),
		resetTokens:  make(map[string]resetGrant),
		secret:       []byte(secret),
		logger:       logger,
		now:          time.Now,
	}
}

// Handler returns the stub's HTTP surface.
func (s *Stub) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.POST("/api/users/signup", s.signup)
	e.POST("/api/users/login", s.login)
	e.POST("/api/users/forgot-password", s.forgotPassword)
	e.GET("/api/users/verify-reset-token/:token", s.verifyResetToken)
	e.POST("/api/users/reset-password", s.resetPassword)
	e.GET("/api/users/verify-email/:token", s.verifyEmail)
	e.POST("/api/chat", s.chat)

	return e
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

func failure(c echo.Context, code int, message string) error {
	return c.JSON(code, envelope{Success: false, Message: message})
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *Stub) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return failure(c, http.StatusBadRequest, "All fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "Failed to create account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return failure(c, http.StatusConflict, "Email already registered")
	}

	s.users[email] = &user{
		firstName:    req.FirstName,
		lastName:     req.LastName,
		email:        email,
		passwordHash: hash,
	}

	token := uuid.New().String()
	s.verifyTokens[token] = email
	// No mail delivery here; the link is logged for manual use.
	s.logger.Info("verification link issued",
		slog.String("email", email),
		slog.String("token", token),
	)

	return c.JSON(http.StatusCreated, envelope{
		Success: true,
		Message: "Account created. Please check your email to verify your account.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Stub) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request body")
	}

	s.mu.Lock()
	account, exists := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()

	if !exists || bcrypt.CompareHashAndPassword(account.passwordHash, []byte(req.Password)) != nil {
		return failure(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !account.verified {
		return failure(c, http.StatusForbidden, "Please verify your email before logging in")
	}

	token, err := s.issueSession(account.email)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Token: token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *Stub) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	if _, exists := s.users[email]; exists {
		token := uuid.New().String()
		s.resetTokens[token] = resetGrant{email: email, expiresAt: s.now().Add(resetTTL)}
		s.logger.Info("reset link issued",
			slog.String("email", email),
			slog.String("token", token),
		)
	}
	s.mu.Unlock()

	// Unknown addresses get the same reply so the endpoint does not
	// reveal which emails have accounts.
	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Password reset instructions have been sent to your email",
	})
}

func (s *Stub) verifyResetToken(c echo.Context) error {
	s.mu.Lock()
	grant, exists := s.resetTokens[c.Param("token")]
	s.mu.Unlock()

	if !exists || s.now().After(grant.expiresAt) {
		return failure(c, http.StatusBadRequest, "Invalid or expired reset token")
	}

	return c.JSON(http.StatusOK, envelope{Success: true})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Stub) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		return failure(c, http.StatusBadRequest, "Passwords do not match")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grant, exists := s.resetTokens[req.Token]
	if !exists || s.now().After(grant.expiresAt) {
		return failure(c, http.StatusBadRequest, "Invalid or expired reset token")
	}

	account, exists := s.users[grant.email]
	if !exists {
		return failure(c, http.StatusBadRequest, "Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "Failed to reset password")
	}

	account.passwordHash = hash
	delete(s.resetTokens, req.Token)

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Password has been reset successfully",
	})
}

func (s *Stub) verifyEmail(c echo.Context) error {
	token := c.Param("token")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, used := s.usedVerify[token]; used {
		return failure(c, http.StatusConflict, "Email is already verified")
	}

	email, exists := s.verifyTokens[token]
	if !exists {
		return failure(c, http.StatusBadRequest, "Invalid verification token")
	}

	account, exists := s.users[email]
	if !exists {
		return failure(c, http.StatusBadRequest, "Invalid verification token")
	}

	account.verified = true
	delete(s.verifyTokens, token)
	s.usedVerify[token] = email

	session, err := s.issueSession(email)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "Verification failed. Please try again.")
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Email verified successfully!",
		Token:   session,
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Message string `json:"message"`
}

func (s *Stub) chat(c echo.Context) error {
	email, ok := s.authorize(c.Request().Header.Get("Authorization"))
	if !ok {
		return c.JSON(http.StatusUnauthorized, chatResponse{Message: "Unauthorized"})
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, chatResponse{Message: "Message is required"})
	}

	s.logger.Debug("chat message received",
		slog.String("email", email),
		slog.Int("length", len(req.Message)),
	)

	return c.JSON(http.StatusOK, chatResponse{Message: "You said: " + req.Message})
}

// issueSession signs a session token for the account. Callers hold the lock
// or are otherwise safe; signing itself touches no shared state.
func (s *Stub) issueSession(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// authorize validates a "Bearer <jwt>" header and returns the subject.
func (s *Stub) authorize(header string) (string, bool) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", false
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", false
	}

	return claims.Subject, true
}

// VerificationToken returns the pending verification token of an email,
// for tests and manual poking.
func (s *Stub) VerificationToken(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, holder := range s.verifyTokens {
		if holder == email {
			return token, true
		}
	}

	return "", false
}

// ResetTokenFor returns the newest pending reset token of an email.
func (s *Stub) ResetTokenFor(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		best   string
		latest time.Time
	)
	for token, grant := range s.resetTokens {
		if grant.email == email && grant.expiresAt.After(latest) {
			best = token
			latest = grant.expiresAt
		}
	}

	return best, best != ""
}
