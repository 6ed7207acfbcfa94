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

	_ "github.com/johnquangdev/meeting-facilitator/docs"
	pkgvalidator "github.com/johnquangdev/meeting-facilitator/pkg/validator"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/handler"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	httpmw "github.com/johnquangdev/meeting-facilitator/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/facilitation"
	meetingUsecase "github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/transcription"
	pkgai "github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
	pkglogger "github.com/johnquangdev/meeting-facilitator/pkg/logger"
)

// @title           Meeting Facilitator API
// @version         1.0
// @description     AI meeting facilitator: comment log, facilitator feedback, interventions and live minutes.

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	e.Use(httpmw.Metrics())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	log.Printf("📦 Connecting to database (%s)...", cfg.Database.Driver)
	repos, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repos.Close()

	// Intervention checks are serialised per meeting; Redis shares the lock between replicas
	var locker cache.Locker
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		locker = cache.NewRedisLocker(redisClient)
	} else {
		log.Println("⚠️  Redis disabled, intervention locks are process-local")
		locker = cache.NewMemoryStore()
	}
	defer locker.Close()

	// Object storage is optional: minutes export and audio archiving need it
	var (
		minutesStore minutes.ObjectStore
		audioStore   transcription.AudioStore
	)
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(context.Background(), &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		minutesStore = minioClient
		audioStore = minioClient
	} else {
		log.Println("⚠️  Object storage disabled, minutes export is unavailable")
	}

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	aiManager := pkgai.NewManager()
	if err := aiManager.RegisterClient(cfg.LLM.Provider, pkgai.Config{
		Provider:        cfg.LLM.Provider,
		Model:           cfg.ModelName(),
		APIKey:          cfg.APIKey(),
		BaseURL:         cfg.BaseURL(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	}); err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	defer aiManager.Close()

	baseClient, err := aiManager.GetClient(cfg.LLM.Provider)
	if err != nil {
		log.Fatalf("Failed to get LLM client: %v", err)
	}
	llm := pkgai.NewRetryingClient(baseClient, cfg.LLM.MaxRetries, cfg.LLM.Timeout,
		func(provider, task string, took time.Duration, err error) {
			metrics.RecordLLMRequest(provider, task, took, err == nil)
		})
	log.Printf("✅ LLM ready: %s (%s)", cfg.LLM.Provider, cfg.ModelName())

	var transcriber pkgai.Transcriber
	if client := pkgai.NewAssemblyAIClient(&cfg.Assembly); client != nil {
		transcriber = client
		log.Println("🎙️  AssemblyAI transcription enabled")
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, transcription disabled")
	}

	loc := cfg.Location()

	// Minutes
	log.Println("📝 Initializing minutes service...")
	minutesService := minutes.NewService(repos.Meetings, repos.Minutes, minutesStore, loc, logger)
	reconciler := minutes.NewReconciler(minutesService, repos.Messages, repos.Minutes, llm, locker, cfg.Agent.MinutesHistoryWindow, logger)

	// Facilitator
	log.Println("🧑‍🏫 Initializing facilitator...")
	loader := facilitation.NewInputLoader(repos.Meetings, repos.Messages, loc)
	pipeline := facilitation.NewPipeline(llm, cfg.Agent.Language, logger)
	feedbackService := facilitation.NewFeedbackService(loader, repos.Meetings, repos.Messages, repos.Feedbacks,
		pipeline, minutesService, cfg.Agent.FacilitatorName, logger)
	interventionService := facilitation.NewInterventionService(loader, repos.Meetings,
		facilitation.NewInterventionChecker(llm, cfg.Agent.Language, logger),
		feedbackService, locker, cfg.InterventionSpan(), logger)

	// Post-message analysis
	log.Printf("⚙️  Initializing analysis worker (%s mode)...", cfg.Analysis.Mode)
	worker := analysis.NewWorker(reconciler, interventionService, analysis.Options{
		Async:     cfg.Analysis.Mode == config.AnalysisModeAsync,
		Workers:   cfg.Analysis.Workers,
		QueueSize: cfg.Analysis.QueueSize,
		Job: jobcontext.Options{
			Timeout:    cfg.Analysis.JobTimeout,
			MaxRetries: cfg.Analysis.MaxRetries,
			RetryDelay: cfg.Analysis.RetryDelay,
		},
	}, logger)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := worker.Start(workerCtx); err != nil {
		log.Fatalf("Failed to start analysis worker: %v", err)
	}

	meetingService := meetingUsecase.NewService(repos.Meetings, repos.Messages, worker, loc, logger)
	transcriptionService := transcription.NewService(repos.Meetings, repos.Messages, transcriber, audioStore, worker, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewFacilitationHandler(feedbackService, interventionService, logger),
		handler.NewMinutesHandler(minutesService, logger),
		handler.NewTranscriptionHandler(transcriptionService, cfg.Assembly.MaxUploadBytes, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)
		log.Printf("📚 API docs: http://%s/swagger/index.html", addr)

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
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	// drain queued analysis before the repositories close
	if err := worker.Stop(ctx); err != nil {
		logger.Warn("Analysis worker did not drain in time", zap.Error(err))
	}

	log.Println("✅ Server stopped gracefully")
}
