package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pdf-chatbot-be/internal/entity"
	"pdf-chatbot-be/pkg/rag/index"
)

// SessionRecord is the full in-memory state of one session: its transcript,
// its ingested documents and the vector index built over them. All mutation
// happens under the record's lock so concurrent uploads or chats against the
// same session cannot interleave.
type SessionRecord struct {
	mu sync.Mutex

	Session   *entity.ChatSession
	Messages  []*entity.ChatMessage
	Documents []string
	Passages  []index.Passage
	Index     *index.Index
}

func (r *SessionRecord) Lock() {
	r.mu.Lock()
}

func (r *SessionRecord) Unlock() {
	r.mu.Unlock()
}

// SessionRepository maps session ids to records. Sessions live until they
// are explicitly deleted; a process restart loses everything.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Create(session *entity.ChatSession) *SessionRecord {
	record := &SessionRecord{
		Session:  session,
		Messages: make([]*entity.ChatMessage, 0),
	}
	r.cache.Set(session.Id.String(), record, cache.NoExpiration)
	return record
}

func (r *SessionRepository) Get(sessionId uuid.UUID) (*SessionRecord, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*SessionRecord), true
	}
	return nil, false
}

// Delete removes the record and reports whether it existed. A second delete
// of the same id returns false.
func (r *SessionRepository) Delete(sessionId uuid.UUID) bool {
	key := sessionId.String()
	if _, found := r.cache.Get(key); !found {
		return false
	}
	r.cache.Delete(key)
	return true
}
