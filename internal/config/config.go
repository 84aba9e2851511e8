package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadDir          string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	GeminiEmbeddingModel string
	GeminiChatModel      string
	OllamaBaseURL        string
	OllamaModel          string
	LLMProvider          string // "gemini" or "ollama"
	LLMModel             string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:          getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:             getEnv("LLM_MODEL", ""),
		},
	}
}

// Validate enforces startup requirements. A Gemini-backed provider without a
// key is fatal at boot, not a per-request error.
func (c *Config) Validate() error {
	usesGemini := c.Ai.EmbeddingProvider == "gemini" || c.Ai.LLMProvider == "gemini"
	if usesGemini && c.Keys.GoogleGemini == "" {
		return errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
