package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/team-assistant/pkg/validator"

	"github.com/johnquangdev/team-assistant/internal/adapter/handler"
	"github.com/johnquangdev/team-assistant/internal/adapter/repository"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/notify"
	"github.com/johnquangdev/team-assistant/internal/infrastructure/storage"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
	"github.com/johnquangdev/team-assistant/internal/usecase/archive"
	"github.com/johnquangdev/team-assistant/internal/usecase/assign"
	"github.com/johnquangdev/team-assistant/internal/usecase/assistant"
	"github.com/johnquangdev/team-assistant/internal/usecase/deadline"
	"github.com/johnquangdev/team-assistant/internal/usecase/extract"
	"github.com/johnquangdev/team-assistant/internal/usecase/ingest"
	"github.com/johnquangdev/team-assistant/internal/usecase/workflow"
	"github.com/johnquangdev/team-assistant/pkg/config"
	"github.com/johnquangdev/team-assistant/pkg/jwt"
	"github.com/johnquangdev/team-assistant/pkg/llm"
	"github.com/johnquangdev/team-assistant/pkg/trace"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Embedding cache: Redis when reachable, in-memory otherwise. Losing
	// the cache only costs repeat embedding calls.
	log.Println("📦 Connecting to Redis...")
	var embeddingCache retrieval.EmbeddingCache
	redisStore, err := cache.NewRedisStore(cfg, logger)
	if err != nil {
		logger.Warn("⚠️ Redis unavailable, using in-memory embedding cache", zap.Error(err))
		embeddingCache = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		embeddingCache = redisStore
	}

	// Object storage holds raw transcript copies for archived meetings
	var uploader archive.Uploader
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Warn("⚠️ Object storage unavailable, transcript copies disabled", zap.Error(err))
		} else {
			uploader = minioClient
		}
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	teamRepo := repository.NewTeamRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	runRepo := repository.NewRunRepository(db)

	// Initialize model clients
	log.Println("🤖 Initializing model clients...")
	chatClient := llm.NewClient(&cfg.LLM)
	embeddingsClient := llm.NewEmbeddingsClient(&cfg.Embedding)
	embedder := retrieval.NewCachedEmbedder(embeddingsClient, embeddingCache, cfg.Embedding.Model, cfg.Embedding.CacheTTL, logger)

	// Build retrieval indices and load both corpora
	log.Println("📚 Building retrieval indices...")
	teamIndex := retrieval.NewIndex(retrieval.NamespaceTeamDirectory, embedder, logger)
	meetingIndex := retrieval.NewIndex(retrieval.NamespaceMeetingHistory, embedder, logger)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := bootstrapIndices(bootstrapCtx, teamRepo, meetingRepo, teamIndex, meetingIndex, logger); err != nil {
		log.Fatalf("Failed to bootstrap retrieval indices: %v", err)
	}
	cancelBootstrap()

	// Wire the workflow engine
	log.Println("⚙️  Initializing workflow engine...")
	extractor := extract.NewExtractor(chatClient, logger)
	assigner := assign.NewResolver(teamIndex, extractor, teamRepo, cfg.Workflow.ConfidenceThreshold, cfg.Workflow.RetrievalTopK, logger)
	deadliner := deadline.NewResolver(extractor, cfg.Workflow.FallbackOffsetDays, logger)
	notifier := notify.NewSink(notificationRepo, logger)
	archiver := archive.NewService(meetingRepo, meetingIndex, uploader, logger)
	tracer := trace.NewZapSink(logger)

	engine := workflow.NewEngine(extractor, assigner, deadliner, notifier, archiver, runRepo, tracer, cfg.Workflow.RunTimeout, logger)

	// Initialize assistant
	log.Println("💬 Initializing assistant...")
	history := cache.NewHistoryStore(0)
	assistantService := assistant.NewService(extractor, teamIndex, meetingIndex, history, cfg.Workflow.RetrievalTopK, logger)

	// Audio ingest is optional; it needs an AssemblyAI key
	var transcriber handler.Transcriber
	if ingestService := ingest.NewService(&cfg.Assembly, logger); ingestService != nil {
		log.Println("🎙️ Audio ingest enabled")
		transcriber = ingestService
	}

	// Initialize JWT manager
	var jwtManager *jwt.Manager
	if !cfg.Auth.Disabled {
		log.Println("🔑 Initializing JWT manager...")
		jwtManager = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeetingHandler(engine, transcriber, runRepo, logger)
	assistantHandler := handler.NewAssistantHandler(assistantService, logger)

	router := handler.NewRouter(cfg, meetingHandler, assistantHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// bootstrapIndices loads the team directory and meeting history corpora into
// their indices. An empty directory is tolerated at startup (the seed script
// may not have run yet) but logged loudly, since assignment cannot work
// without it.
func bootstrapIndices(
	ctx context.Context,
	teamRepo *repository.TeamRepository,
	meetingRepo *repository.MeetingRepository,
	teamIndex, meetingIndex *retrieval.Index,
	logger *zap.Logger,
) error {
	members, err := teamRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		logger.Warn("⚠️ Team directory is empty, action items will stay unassigned")
	} else {
		if _, err := teamIndex.BulkInsert(ctx, retrieval.TeamDocuments(members)); err != nil {
			return err
		}
	}

	records, err := meetingRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		if _, err := meetingIndex.BulkInsert(ctx, retrieval.MeetingDocuments(records)); err != nil {
			return err
		}
	}

	logger.Info("📚 Retrieval indices ready",
		zap.Int("team_members", len(members)),
		zap.Int("meeting_records", len(records)),
	)
	return nil
}
