package bootstrap

import (
	"log"

	"pdf-chatbot-be/internal/config"
	"pdf-chatbot-be/internal/controller"
	"pdf-chatbot-be/internal/pkg/logger"
	"pdf-chatbot-be/internal/repository/memory"
	"pdf-chatbot-be/internal/service"
	"pdf-chatbot-be/pkg/embedding"
	"pdf-chatbot-be/pkg/ingest"
	"pdf-chatbot-be/pkg/llm/factory"
	"pdf-chatbot-be/pkg/rag/pipeline"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Providers
	embedder := newEmbeddingProvider(cfg)

	llmModel := cfg.Ai.LLMModel
	if llmModel == "" && cfg.Ai.LLMProvider == "gemini" {
		llmModel = cfg.Ai.GeminiChatModel
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		llmModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}

	// 3. Services
	sessionRepo := memory.NewSessionRepository()
	chatbotService := service.NewChatbotService(
		sessionRepo,
		ingest.NewPDFIngestor(),
		embedder,
		pipeline.NewRAGPipeline(embedder, llmProvider),
		sysLogger,
		cfg.App.UploadDir,
	)

	// 4. Controllers
	chatbotController := controller.NewChatbotController(chatbotService)

	return &Container{
		ChatbotController: chatbotController,
		Logger:            sysLogger,
	}
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	default:
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.GeminiEmbeddingModel)
	}
}
