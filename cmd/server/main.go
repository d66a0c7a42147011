package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/crisp-hire/interview-service/internal/cache"
	"github.com/crisp-hire/interview-service/internal/config"
	"github.com/crisp-hire/interview-service/internal/events"
	"github.com/crisp-hire/interview-service/internal/handlers"
	"github.com/crisp-hire/interview-service/internal/repositories/postgres"
	"github.com/crisp-hire/interview-service/internal/services"
	"github.com/crisp-hire/interview-service/internal/utils"
	"github.com/crisp-hire/interview-service/pkg"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	// 2. Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	repo := postgres.NewRepository(db)

	// 3. Initialize redis session store
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	sessions := cache.NewRedisSessionStore(redisClient, 0)

	// 4. Create event publisher
	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		publisher = events.NewMockPublisher(utils.ToSlogLogger(logger))
	}

	// 5. Wire services
	validator := utils.NewValidator()
	bank := services.NewQuestionBankService()
	scoring := services.NewScoringService()
	resumes := services.NewResumeService(services.DocxTextExtractor{}, logger)
	sessionService := services.NewSessionService(repo, sessions, bank, scoring, resumes, publisher, validator, logger)
	candidateService := services.NewCandidateService(repo, logger)
	exportService := services.NewExportService(repo, logger)

	// 6. HTTP server
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(sessionService, candidateService, exportService, logger)
	handlerManager.SetupRoutes(router)

	defer func() {
		sessionService.Shutdown()
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close redis client", "error", err)
		}
	}()

	logger.Info("Starting interview service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
