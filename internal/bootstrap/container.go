package bootstrap

import (
	"log"
	"time"

	"github.com/CRautomation-ai/showcase-agent/internal/config"
	"github.com/CRautomation-ai/showcase-agent/internal/controller"
	"github.com/CRautomation-ai/showcase-agent/internal/pkg/logger"
	"github.com/CRautomation-ai/showcase-agent/internal/repository/unitofwork"
	"github.com/CRautomation-ai/showcase-agent/internal/service"
	"github.com/CRautomation-ai/showcase-agent/pkg/embedding"
	"github.com/CRautomation-ai/showcase-agent/pkg/extract"
	"github.com/CRautomation-ai/showcase-agent/pkg/llm/factory"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/answer"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/rewrite"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	DocumentController controller.IDocumentController
	QueryController    controller.IQueryController

	// Exposed for shutdown flushing
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbeddingModel)
	}
	// Repeated queries within the TTL skip the embedding round trip. Ingestion
	// keeps the raw provider, document chunks are embedded once.
	queryEmbedder := embedding.NewCachedProvider(embeddingProvider, 15*time.Minute)

	// 3. LLM Provider based on Config
	chatModel := cfg.Ai.OpenAIChatModel
	if cfg.Ai.LLMProvider == "ollama" {
		chatModel = cfg.Ai.OllamaChatModel
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		chatModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, chatModel)

	// 4. RAG Pipeline
	extractor := extract.NewTabulaExtractor()
	rewriter := rewrite.NewRewriter(llmProvider)
	searcher := service.NewChunkSearcher(uowFactory)
	answerer := answer.NewAnswerer(rewriter, queryEmbedder, searcher, llmProvider)

	// 5. Services
	authService := service.NewAuthService(cfg.Auth, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		extractor,
		embeddingProvider,
		cfg.Ai.ChunkSize,
		cfg.Ai.ChunkOverlap,
		cfg.Ai.EmbedWorkers,
		sysLogger,
	)
	queryService := service.NewQueryService(answerer, cfg.Ai.TopK, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		DocumentController: controller.NewDocumentController(documentService),
		QueryController:    controller.NewQueryController(queryService),
		Logger:             sysLogger,
	}
}
