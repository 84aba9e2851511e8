package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}

// UploadFile is one uploaded file, already read off the wire.
type UploadFile struct {
	Filename string
	Data     []byte
}

type UploadResponse struct {
	AcceptedFiles int `json:"accepted_files"`
}

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}
