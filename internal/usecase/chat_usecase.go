package usecase

import (
	"context"

	"portal/internal/domain/entity"
)

// SendInput carries one chat submission.
type SendInput struct {
	SessionToken string
	Message      string `form:"message" validate:"required,max=500"`
}

// SendOutput reports the transcript entries produced by one submission.
// Exactly one user entry and one assistant entry are appended per send;
// when the backend call fails the assistant entry carries a fixed error
// text and FlowErr holds the underlying error for separate display.
type SendOutput struct {
	User      *entity.ChatMessage
	Assistant *entity.ChatMessage
	FlowErr   error
}

// ChatUsecase defines the chat view operations.
type ChatUsecase interface {
	// Transcript returns the session's transcript, seeding the assistant
	// greeting on first access.
	Transcript(ctx context.Context, sessionToken string) ([]*entity.ChatMessage, error)
	// Send appends the user message, forwards it to the backend and
	// appends the assistant reply (or the fixed error text on failure).
	// The returned error is non-nil only for local validation failures,
	// in which case nothing was appended.
	Send(ctx context.Context, input *SendInput) (*SendOutput, error)
	// EndSession discards the session's transcript.
	EndSession(ctx context.Context, sessionToken string) error
}
