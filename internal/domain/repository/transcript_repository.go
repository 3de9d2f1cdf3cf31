// Package repository defines persistence interfaces for the domain layer.
package repository

import (
	"context"

	"portal/internal/domain/entity"
)

// TranscriptRepository holds the chat transcript of each session.
// Transcripts are keyed by session token, never persisted beyond process
// memory, and cleared on logout.
type TranscriptRepository interface {
	Messages(ctx context.Context, sessionToken string) ([]*entity.ChatMessage, error)
	Append(ctx context.Context, sessionToken string, messages ...*entity.ChatMessage) error
	Clear(ctx context.Context, sessionToken string) error
}
