package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdf-chatbot-be/internal/dto"
	"pdf-chatbot-be/internal/entity"
	"pdf-chatbot-be/internal/pkg/logger"
	"pdf-chatbot-be/internal/pkg/serverutils"
	"pdf-chatbot-be/internal/repository/memory"
	"pdf-chatbot-be/pkg/chunker"
	"pdf-chatbot-be/pkg/embedding"
	"pdf-chatbot-be/pkg/ingest"
	"pdf-chatbot-be/pkg/rag/index"
	"pdf-chatbot-be/pkg/rag/pipeline"
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	Upload(ctx context.Context, sessionId uuid.UUID, files []dto.UploadFile) (*dto.UploadResponse, error)
	SendChat(ctx context.Context, sessionId uuid.UUID, chat string) (*dto.ChatMessageResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type chatbotService struct {
	sessionRepo *memory.SessionRepository
	ingestor    ingest.Ingestor
	embedder    embedding.EmbeddingProvider
	ragPipeline *pipeline.RAGPipeline
	logger      logger.ILogger
	uploadDir   string
}

func NewChatbotService(
	sessionRepo *memory.SessionRepository,
	ingestor ingest.Ingestor,
	embedder embedding.EmbeddingProvider,
	ragPipeline *pipeline.RAGPipeline,
	sysLogger logger.ILogger,
	uploadDir string,
) IChatbotService {
	return &chatbotService{
		sessionRepo: sessionRepo,
		ingestor:    ingestor,
		embedder:    embedder,
		ragPipeline: ragPipeline,
		logger:      sysLogger,
		uploadDir:   uploadDir,
	}
}

func (cs *chatbotService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
	}
	cs.sessionRepo.Create(session)

	cs.logger.Info("chatbot", "session created", map[string]interface{}{
		"session_id": session.Id.String(),
	})

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
	}, nil
}

// Upload filters, persists and indexes one batch of files. Files without the
// accepted extension are skipped silently; files that fail to parse are
// excluded without aborting their siblings. The session's index is rebuilt
// over every passage ingested so far, so earlier uploads stay retrievable.
func (cs *chatbotService) Upload(ctx context.Context, sessionId uuid.UUID, files []dto.UploadFile) (*dto.UploadResponse, error) {
	record, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return nil, serverutils.NewSessionNotFound()
	}

	record.Lock()
	defer record.Unlock()

	sessionDir := filepath.Join(cs.uploadDir, sessionId.String())
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, serverutils.NewInternal("failed to prepare upload directory", err)
	}

	accepted := 0
	var newChunks []index.Chunk
	for _, file := range files {
		if !ingest.Accepted(file.Filename) {
			continue
		}
		accepted++

		name := filepath.Base(file.Filename)
		if err := os.WriteFile(filepath.Join(sessionDir, name), file.Data, 0o644); err != nil {
			return nil, serverutils.NewInternal("failed to persist uploaded file", err)
		}

		segments, err := cs.ingestor.Ingest(ctx, name, file.Data)
		if err != nil {
			cs.logger.Warn("chatbot", "skipping unreadable document", map[string]interface{}{
				"session_id": sessionId.String(),
				"filename":   name,
				"error":      err.Error(),
			})
			continue
		}

		record.Documents = append(record.Documents, name)
		for _, segment := range segments {
			for _, piece := range chunker.Split(segment.Text) {
				newChunks = append(newChunks, index.Chunk{
					Text:   piece,
					Source: name,
					Page:   segment.Page,
				})
			}
		}
	}

	if len(newChunks) > 0 {
		passages, err := index.Embed(ctx, cs.embedder, newChunks)
		if err != nil {
			return nil, serverutils.NewInternal("failed to index documents", err)
		}
		record.Passages = append(record.Passages, passages...)
		record.Index = index.New(record.Passages)
	}

	cs.logger.Info("chatbot", "upload processed", map[string]interface{}{
		"session_id":     sessionId.String(),
		"accepted_files": accepted,
		"new_chunks":     len(newChunks),
		"index_size":     record.Index.Len(),
	})

	return &dto.UploadResponse{
		AcceptedFiles: accepted,
	}, nil
}

// SendChat answers a question from the session's index and appends the user
// and assistant messages to the transcript. The transcript is only touched
// after generation succeeds.
func (cs *chatbotService) SendChat(ctx context.Context, sessionId uuid.UUID, chat string) (*dto.ChatMessageResponse, error) {
	record, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return nil, serverutils.NewSessionNotFound()
	}

	record.Lock()
	defer record.Unlock()

	if record.Index == nil {
		return nil, serverutils.NewNoDocuments()
	}

	answer, _, err := cs.ragPipeline.Answer(ctx, record.Index, chat)
	if err != nil {
		return nil, serverutils.NewAnswerGeneration(err)
	}

	userMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.ChatMessageRoleUser,
		Chat:      chat,
		CreatedAt: time.Now(),
	}
	record.Messages = append(record.Messages, userMessage)

	assistantMessage := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.ChatMessageRoleAssistant,
		Chat:      answer,
		CreatedAt: time.Now(),
	}
	record.Messages = append(record.Messages, assistantMessage)

	return &dto.ChatMessageResponse{
		Id:        assistantMessage.Id,
		Role:      assistantMessage.Role,
		Chat:      assistantMessage.Chat,
		CreatedAt: assistantMessage.CreatedAt,
	}, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	record, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return nil, serverutils.NewSessionNotFound()
	}

	record.Lock()
	defer record.Unlock()

	history := make([]*dto.ChatMessageResponse, 0, len(record.Messages))
	for _, message := range record.Messages {
		history = append(history, &dto.ChatMessageResponse{
			Id:        message.Id,
			Role:      message.Role,
			Chat:      message.Chat,
			CreatedAt: message.CreatedAt,
		})
	}
	return history, nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	record, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return serverutils.NewSessionNotFound()
	}

	record.Lock()
	defer record.Unlock()

	if !cs.sessionRepo.Delete(sessionId) {
		return serverutils.NewSessionNotFound()
	}

	sessionDir := filepath.Join(cs.uploadDir, sessionId.String())
	if err := os.RemoveAll(sessionDir); err != nil {
		cs.logger.Warn("chatbot", "failed to remove session files", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	cs.logger.Info("chatbot", "session deleted", map[string]interface{}{
		"session_id": sessionId.String(),
	})
	return nil
}
