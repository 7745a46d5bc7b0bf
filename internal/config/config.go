package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
	// Plaintext shared password; used only when PasswordHash is unset.
	Password     string
	PasswordHash string // bcrypt hash of the shared password
}

type AIConfig struct {
	EmbeddingProvider string // "openai", "gemini" or "ollama"
	LLMProvider       string // "openai" or "ollama"

	OpenAIAPIKey         string
	OpenAIEmbeddingModel string
	OpenAIChatModel      string

	GoogleGeminiAPIKey string

	OllamaBaseURL        string
	OllamaEmbeddingModel string
	OllamaChatModel      string

	ChunkSize    int // token budget per chunk
	ChunkOverlap int // token overlap between adjacent chunks
	TopK         int // default retrieval depth
	EmbedWorkers int // concurrent embedding calls during ingestion
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			Password:     getEnv("ACCESS_PASSWORD", ""),
			PasswordHash: getEnv("ACCESS_PASSWORD_HASH", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "openai"),
			LLMProvider:          getEnv("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
			OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			OpenAIChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			GoogleGeminiAPIKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaChatModel:      getEnv("OLLAMA_CHAT_MODEL", "llama3"),
			ChunkSize:            getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:         getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:                 getEnvAsInt("RETRIEVAL_TOP_K", 5),
			EmbedWorkers:         getEnvAsInt("EMBED_WORKERS", 4),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
