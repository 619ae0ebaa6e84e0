package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/0xSujith18/Talkit/internal/handlers"
	"github.com/0xSujith18/Talkit/internal/jobs"
	"github.com/0xSujith18/Talkit/internal/messaging"
	"github.com/0xSujith18/Talkit/internal/middleware"
	"github.com/0xSujith18/Talkit/internal/models"
	"github.com/0xSujith18/Talkit/internal/repositories"
	"github.com/0xSujith18/Talkit/internal/services"
	"github.com/0xSujith18/Talkit/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// Workers bundles the background loops started during setup so main can
// stop them on shutdown
type Workers struct {
	Sweeper      *jobs.AccountSweeper
	OutboxWorker *messaging.OutboxWorker
	Broker       *messaging.RabbitMQ
}

// Stop shuts down the background loops
func (w *Workers) Stop() {
	if w.Sweeper != nil {
		w.Sweeper.Stop()
	}
	if w.OutboxWorker != nil {
		w.OutboxWorker.Stop()
	}
	if w.Broker != nil {
		w.Broker.Close()
	}
}

// SetupRoutes configures all application routes, wires dependencies, and
// starts the background workers
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) *Workers {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Comment{},
		&models.Notification{},
		&models.ModerationReport{},
		&models.VerificationRequest{},
		&models.OutboxMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	moderationRepo := repositories.NewPostgresModerationRepository(pgdb)
	verificationRepo := repositories.NewPostgresVerificationRepository(pgdb)

	// --- Notification sink and broker outbox ---
	workers := &Workers{}
	var outboxRepo repositories.OutboxRepository
	if cfg.RabbitMQURL != "" {
		rmq, err := messaging.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		pgOutbox := repositories.NewPostgresOutboxRepository(pgdb)
		outboxRepo = pgOutbox
		workers.Broker = rmq
		workers.OutboxWorker = messaging.NewOutboxWorker(pgOutbox, rmq)
		workers.OutboxWorker.Start()
	} else {
		log.Println("RABBITMQ_URL not set, broker delivery disabled.")
	}
	notificationService := services.NewNotificationService(pgdb, outboxRepo)

	// --- Services ---
	reportService := services.NewReportService(reportRepo, postRepo, commentRepo, notificationService)
	feedService := services.NewFeedService(postRepo, commentRepo, notificationService)
	moderationService := services.NewModerationService(moderationRepo, postRepo, commentRepo)
	verificationService := services.NewVerificationService(verificationRepo, userRepo)
	accountService := services.NewAccountService(userRepo, reportRepo, postRepo, commentRepo, notificationRepo)

	// --- Unprotected routes for registration ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, accountService, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a resolved identity) ---
	api := e.Group("/api/v1")
	api.Use(middleware.IdentityMiddleware(firebaseAuthClient, userRepo))
	log.Println("Identity middleware applied to /api/v1 group.")

	authHandler.RegisterAccountRoutes(api)

	createLimiter := middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)

	reportHandler := handlers.NewReportHandler(reportService)
	reportHandler.RegisterReportRoutes(api, createLimiter)
	log.Println("Report routes configured.")

	postHandler := handlers.NewPostHandler(feedService)
	postHandler.RegisterPostRoutes(api, createLimiter)
	log.Println("Post routes configured.")

	moderationHandler := handlers.NewModerationHandler(moderationService)
	moderationHandler.RegisterModerationRoutes(api)
	log.Println("Moderation routes configured.")

	verificationHandler := handlers.NewVerificationHandler(verificationService)
	verificationHandler.RegisterVerificationRoutes(api)
	log.Println("Verification routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Scheduled deletion sweep ---
	workers.Sweeper = jobs.NewAccountSweeper(accountService, cfg.SweepInterval)
	workers.Sweeper.Start()

	log.Println("All routes configured.")
	return workers
}
