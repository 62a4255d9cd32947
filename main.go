package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/cache"
	"github.com/nextstep-app/career-service/internal/config"
	"github.com/nextstep-app/career-service/internal/events"
	"github.com/nextstep-app/career-service/internal/handlers"
	"github.com/nextstep-app/career-service/internal/mailer"
	"github.com/nextstep-app/career-service/internal/recommend"
	"github.com/nextstep-app/career-service/internal/repositories/postgres"
	"github.com/nextstep-app/career-service/internal/services"
	"github.com/nextstep-app/career-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Failed to initialize Redis, continuing without cache", "error", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Token infrastructure: redis blacklist when available, in-memory otherwise
	var blacklist auth.Blacklist
	if redisClient != nil {
		blacklist = cache.NewRedisBlacklist(redisClient)
	} else {
		blacklist = cache.NewMemoryBlacklist()
	}
	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry, blacklist)
	resetTokens := auth.NewResetTokens(cfg.JWT.Secret, cfg.JWT.ResetExpiry)

	// Password-reset mail: real SMTP when configured, log-only otherwise
	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(mailer.Config{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			From:        cfg.Email.From,
			FrontendURL: cfg.Email.FrontendURL,
		}, logger)
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	// Interaction event stream: kafka when brokers are configured
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatalf("Failed to initialize kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewMockEventPublisher(logger)
	}

	// Gemini client is constructed here and injected; nothing below main
	// talks to the provider SDK directly.
	var recommender recommend.Recommender
	if cfg.AI.GeminiAPIKey != "" {
		genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.AI.GeminiAPIKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		recommender = recommend.NewGeminiRecommender(genaiClient, cfg.AI.GeminiModel, logger)
	} else {
		logger.Warn("GEMINI_API_KEY not set, recommendations disabled")
		recommender = recommend.NewDisabledRecommender(logger)
	}

	// Initialize services
	serviceManager, err := services.NewServiceManager(services.Dependencies{
		Repository:  repoManager.GetRepository(),
		Issuer:      issuer,
		ResetTokens: resetTokens,
		Mailer:      mail,
		Publisher:   publisher,
		Recommender: recommender,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create service manager: %v", err)
	}
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, handlers.CookieConfig{
		MaxAge: int(cfg.JWT.RefreshExpiry.Seconds()),
		Secure: cfg.IsProduction(),
	}, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown repositories", "error", err)
	}

	logger.Info("Server exited")
}
