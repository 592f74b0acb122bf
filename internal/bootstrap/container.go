package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ai-docgen-be/internal/config"
	"ai-docgen-be/internal/controller"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/internal/repository/implementation"
	"ai-docgen-be/internal/repository/memory"
	"ai-docgen-be/internal/repository/redisstore"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/internal/websocket"
	"ai-docgen-be/pkg/ai"
	"ai-docgen-be/pkg/ai/gemini"
	"ai-docgen-be/pkg/export"
	"ai-docgen-be/pkg/extract"
)

const sessionEventsTopic = "SESSION_EVENTS"

type Container struct {
	// Controllers
	HealthController     controller.IHealthController
	TemplateController   controller.ITemplateController
	UploadController     controller.IUploadController
	GenerationController controller.IGenerationController
	ExportController     controller.IExportController
	SessionController    controller.ISessionController

	// Background Services (Exposed for main.go to run)
	BroadcastService service.IBroadcastService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Core Facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// Redis (optional, enables cross-instance fanout and durable sessions)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
			rdb = nil
		}
	}

	sessionTTL := time.Duration(cfg.Limits.SessionTTLMins) * time.Minute

	var sessionRepo contract.SessionRepository
	if rdb != nil {
		sessionRepo = redisstore.NewSessionRepository(rdb, sessionTTL, sysLogger)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// Template library: postgres when configured, otherwise in-process
	var templateRepo contract.TemplateRepository
	if db != nil {
		templateRepo = implementation.NewTemplateRepository(db)
		log.Printf("[INFO] Using Template Library: POSTGRES")
	} else {
		templateRepo = memory.NewTemplateRepository()
		log.Printf("[INFO] Using Template Library: MEMORY")
	}

	// File extraction: remote sidecar when configured
	var processor extract.Processor
	if cfg.Ai.ProcessorURL != "" {
		processor = extract.NewRemoteProcessor(cfg.Ai.ProcessorURL)
		log.Printf("[INFO] Using File Processor: REMOTE (%s)", cfg.Ai.ProcessorURL)
	} else {
		processor = extract.LocalProcessor{}
		log.Printf("[INFO] Using File Processor: LOCAL (text only)")
	}

	// Document rendering sidecar
	renderer := export.NewRemoteRenderer(cfg.Ai.RendererURL)

	// Generation backend
	generator := gemini.NewProvider(cfg.Keys.GoogleGemini, cfg.Ai.GeminiModel,
		ai.WithTemperature(cfg.Ai.Temperature))
	log.Printf("[INFO] Using Generator: GEMINI (%s)", cfg.Ai.GeminiModel)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(sessionEventsTopic, pubSub)
	broadcastService := service.NewBroadcastService(pubSub, sessionEventsTopic, wsHub, wsLogger)

	sessionService := service.NewSessionService(sessionRepo, publisherService, sysLogger)
	templateService := service.NewTemplateService(sessionService, templateRepo, publisherService, sysLogger)
	uploadService := service.NewUploadService(sessionService, processor, publisherService, cfg.App.UploadDir, sysLogger)
	generationService := service.NewGenerationService(sessionService, generator, publisherService, sysLogger)
	exportService := service.NewExportService(sessionService, renderer, sysLogger)

	// 4. Controllers
	return &Container{
		HealthController:     controller.NewHealthController(),
		TemplateController:   controller.NewTemplateController(templateService),
		UploadController:     controller.NewUploadController(uploadService),
		GenerationController: controller.NewGenerationController(generationService),
		ExportController:     controller.NewExportController(exportService),
		SessionController:    controller.NewSessionController(sessionService),

		BroadcastService: broadcastService,
		WebSocketHub:     wsHub,
		Logger:           sysLogger,
	}
}
