package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-chatbot-be/internal/entity"
)

func newSession() *entity.ChatSession {
	return &entity.ChatSession{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewSessionRepository()
	session := newSession()

	created := repo.Create(session)
	require.NotNil(t, created)

	got, found := repo.Get(session.Id)
	require.True(t, found)
	assert.Same(t, created, got)
	assert.Empty(t, got.Messages)
	assert.Nil(t, got.Index)
}

func TestGetUnknownSession(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get(uuid.New())
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	session := newSession()
	repo.Create(session)

	assert.True(t, repo.Delete(session.Id))

	_, found := repo.Get(session.Id)
	assert.False(t, found)

	// Deletion is not idempotent: the second call reports a miss.
	assert.False(t, repo.Delete(session.Id))
}

func TestRecordsAreIndependent(t *testing.T) {
	repo := NewSessionRepository()
	first := newSession()
	second := newSession()

	recA := repo.Create(first)
	repo.Create(second)

	recA.Messages = append(recA.Messages, &entity.ChatMessage{
		Id:   uuid.New(),
		Role: entity.ChatMessageRoleUser,
		Chat: "hello",
	})

	recB, _ := repo.Get(second.Id)
	assert.Empty(t, recB.Messages)
}
