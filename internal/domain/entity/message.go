package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a chat transcript. Messages are never
// mutated after creation.
type ChatMessage struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
}

// NewChatMessage creates a transcript entry stamped with the current time.
func NewChatMessage(role Role, content string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.New().String(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now(),
	}
}
