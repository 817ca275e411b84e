package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hearthside/hearthside-api/config"
	"github.com/hearthside/hearthside-api/internal/cache"
	"github.com/hearthside/hearthside-api/internal/dispatch"
	"github.com/hearthside/hearthside-api/internal/email"
	"github.com/hearthside/hearthside-api/internal/handlers"
	"github.com/hearthside/hearthside-api/internal/middleware"
	"github.com/hearthside/hearthside-api/internal/repository"
	"github.com/hearthside/hearthside-api/internal/services"
	"github.com/hearthside/hearthside-api/pkg/db"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"github.com/hearthside/hearthside-api/pkg/profiling"
	"github.com/hearthside/hearthside-api/pkg/storage"
	"github.com/hearthside/hearthside-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Hearthside API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (opt-in)
	if cfg.Profiling.Enabled {
		stopProfiler, err := profiling.InitProfiler(
			cfg.Profiling,
			cfg.Observability.ServiceName,
			cfg.Observability.ServiceNamespace,
			cfg.Observability.ServiceVersion,
			cfg.Observability.ServiceInstanceID,
			cfg.Server.AppEnv,
		)
		if err != nil {
			logger.Error("Failed to initialize profiler", zap.Error(err))
		} else {
			defer stopProfiler()
		}
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: Database migrations run separately via the migrate command

	// Object storage for quote photos
	storageClient, err := storage.NewClient(storage.Config{
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.BucketName,
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		PresignTTL:      time.Duration(cfg.Storage.PresignTTLMinutes) * time.Minute,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize object storage client", zap.Error(err))
	}

	// Repositories
	quoteRepo := repository.NewQuoteRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	// Email delivery and notification dispatch
	sender := email.NewSMTPSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})

	linkCache := cache.NewLinkCache(storageClient.PresignTTL())
	notificationService := services.NewNotificationService(
		quoteRepo, storageClient, linkCache, sender, cfg.Notification.BusinessEmail)

	queue := dispatch.NewQueue(
		cfg.Notification.QueueSize,
		cfg.Notification.MaxAttempts,
		func(ctx context.Context, job dispatch.Job) error {
			_, err := notificationService.DispatchByID(ctx, job.QuoteID)
			return err
		},
	)
	queue.Start(context.Background())
	defer queue.Stop()

	// Services
	quoteService := services.NewQuoteService(quoteRepo, queue)
	contactService := services.NewContactService(contactRepo, sender, cfg.Notification.BusinessEmail)

	// Handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	contactHandler := handlers.NewContactHandler(contactService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	healthHandler := handlers.NewHealthHandler(pool.Ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: fixed allow-list only; disallowed origins get a plain refusal
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Rate limiters: the intake endpoints are unauthenticated form targets
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	intakeRateLimiter := middleware.NewRateLimiter(5, 10)     // 5 req/sec, burst of 10 (form spam)

	// Utility endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// Public intake endpoints
	v1 := router.Group("/api/v1")
	v1.POST("/submit-quote", intakeRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), quoteHandler.SubmitQuote)
	v1.POST("/submit-contact", intakeRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), contactHandler.SubmitContact)
	v1.GET("/quote/:id", generalRateLimiter.Middleware(), quoteHandler.GetQuote)

	// Internal endpoints (office dashboard)
	internal := router.Group("/api/internal")
	internal.Use(middleware.InternalAuthMiddleware(cfg.Notification.InternalAPIToken))
	internal.POST("/send-notification", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), notificationHandler.SendNotification)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
