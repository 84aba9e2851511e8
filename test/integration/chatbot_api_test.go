package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-chatbot-be/internal/bootstrap"
	"pdf-chatbot-be/internal/config"
	"pdf-chatbot-be/internal/controller"
	"pdf-chatbot-be/internal/pkg/logger"
	"pdf-chatbot-be/internal/repository/memory"
	"pdf-chatbot-be/internal/server"
	"pdf-chatbot-be/internal/service"
	"pdf-chatbot-be/pkg/ingest"
	"pdf-chatbot-be/pkg/llm"
	"pdf-chatbot-be/pkg/rag/pipeline"
)

// plainTextIngestor treats uploaded bytes as the document's text so the API
// flow can run without real PDFs or providers.
type plainTextIngestor struct{}

func (plainTextIngestor) Ingest(ctx context.Context, filename string, data []byte) ([]ingest.Segment, error) {
	return []ingest.Segment{{Text: string(data), Page: 1}}, nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type cannedLLM struct{ answer string }

func (c cannedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return c.answer, nil
}

func (c cannedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.answer, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.CorsAllowedOrigins = "*"
	cfg.App.UploadDir = t.TempDir()

	sysLogger := logger.NewZapLogger(filepath.Join(t.TempDir(), "app.log"), true)
	embedder := fixedEmbedder{}

	chatbotService := service.NewChatbotService(
		memory.NewSessionRepository(),
		plainTextIngestor{},
		embedder,
		pipeline.NewRAGPipeline(embedder, cannedLLM{answer: "Paris."}),
		sysLogger,
		cfg.App.UploadDir,
	)

	container := &bootstrap.Container{
		ChatbotController: controller.NewChatbotController(chatbotService),
		Logger:            sysLogger,
	}
	return server.New(cfg, container).GetApp()
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body []byte, contentType string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", string(raw))
	return res.StatusCode, env
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, env := doJSON(t, app, http.MethodPost, "/api/chatbot/v1/sessions", nil, "")
	require.Equal(t, http.StatusOK, status)

	var data struct {
		SessionId string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.SessionId)
	return data.SessionId
}

func uploadFiles(t *testing.T, app *fiber.App, sessionId string, files map[string]string) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return doJSON(t, app,
		http.MethodPost,
		"/api/chatbot/v1/sessions/"+sessionId+"/upload",
		buf.Bytes(),
		writer.FormDataContentType(),
	)
}

func TestChatbotAPIFlow(t *testing.T) {
	app := newTestApp(t)
	sessionId := createSession(t, app)

	// Upload one document.
	status, env := uploadFiles(t, app, sessionId, map[string]string{
		"facts.pdf": "Paris is the capital of France.",
	})
	require.Equal(t, http.StatusOK, status)

	var uploadRes struct {
		AcceptedFiles int `json:"accepted_files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploadRes))
	assert.Equal(t, 1, uploadRes.AcceptedFiles)

	// Ask a question.
	chatBody, _ := json.Marshal(map[string]string{"chat": "What is the capital of France?"})
	status, env = doJSON(t, app,
		http.MethodPost,
		"/api/chatbot/v1/sessions/"+sessionId+"/chat",
		chatBody,
		fiber.MIMEApplicationJSON,
	)
	require.Equal(t, http.StatusOK, status)

	var chatRes struct {
		Role string `json:"role"`
		Chat string `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chatRes))
	assert.Equal(t, "assistant", chatRes.Role)
	assert.Equal(t, "Paris.", chatRes.Chat)

	// Transcript holds both turns in order.
	status, env = doJSON(t, app, http.MethodGet, "/api/chatbot/v1/sessions/"+sessionId+"/history", nil, "")
	require.Equal(t, http.StatusOK, status)

	var history []struct {
		Role string `json:"role"`
		Chat string `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)

	// Delete, then everything 404s.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/chatbot/v1/sessions/"+sessionId, nil, "")
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, app, http.MethodGet, "/api/chatbot/v1/sessions/"+sessionId+"/history", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Kind)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/chatbot/v1/sessions/"+sessionId, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUploadRejectsUnknownSession(t *testing.T) {
	app := newTestApp(t)

	status, env := uploadFiles(t, app, uuid.NewString(), map[string]string{
		"facts.pdf": "content",
	})
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Kind)
}

func TestChatWithoutDocuments(t *testing.T) {
	app := newTestApp(t)
	sessionId := createSession(t, app)

	// notes.txt is silently skipped, so nothing gets indexed.
	status, env := uploadFiles(t, app, sessionId, map[string]string{
		"notes.txt": "plain text notes",
	})
	require.Equal(t, http.StatusOK, status)

	var uploadRes struct {
		AcceptedFiles int `json:"accepted_files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploadRes))
	assert.Equal(t, 0, uploadRes.AcceptedFiles)

	chatBody, _ := json.Marshal(map[string]string{"chat": "anything?"})
	status, env = doJSON(t, app,
		http.MethodPost,
		"/api/chatbot/v1/sessions/"+sessionId+"/chat",
		chatBody,
		fiber.MIMEApplicationJSON,
	)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_DOCUMENTS", env.Error.Kind)
}
