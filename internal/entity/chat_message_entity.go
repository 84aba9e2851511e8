package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// ChatMessage is one transcript entry. Messages are immutable once appended.
type ChatMessage struct {
	Id        uuid.UUID
	Role      string
	Chat      string
	CreatedAt time.Time
}
