// Package transcript implements the in-memory chat transcript store.
package transcript

import (
	"context"
	"sync"

	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
)

// memoryRepository keys transcripts by session token. Nothing is ever
// written to disk; a restart starts every conversation over.
type memoryRepository struct {
	mu          sync.RWMutex
	transcripts map[string][]*entity.ChatMessage
}

// NewMemoryRepository is the constructor for the in-memory TranscriptRepository.
func NewMemoryRepository() repository.TranscriptRepository {
	return &memoryRepository{
		transcripts: make(map[string][]*entity.ChatMessage),
	}
}

func (r *memoryRepository) Messages(_ context.Context, sessionToken string) ([]*entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.transcripts[sessionToken]
	messages := make([]*entity.ChatMessage, len(stored))
	copy(messages, stored)

	return messages, nil
}

func (r *memoryRepository) Append(_ context.Context, sessionToken string, messages ...*entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transcripts[sessionToken] = append(r.transcripts[sessionToken], messages...)

	return nil
}

func (r *memoryRepository) Clear(_ context.Context, sessionToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transcripts, sessionToken)

	return nil
}
