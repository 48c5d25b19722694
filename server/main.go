package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boxoffice/api/routes"
	"boxoffice/internal/jobs"
	"boxoffice/internal/notifications"
	"boxoffice/internal/seats"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/shared/middleware"
	"boxoffice/pkg/logger"
	"boxoffice/pkg/ratelimit"
	"boxoffice/pkg/redislock"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title Box Office API
// @version 1.0
// @description Seat holds, checkout and door check-in for reserved-seating events.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Smart environment loading
	envErr := godotenv.Load()

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release) before the logger picks its output format
	gin.SetMode(cfg.GinMode)

	appLogger := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.SetDefault(appLogger)
	if envErr != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}
	appLogger.Info("Starting box office API", "version", Version, "build_time", BuildTime, "commit", GitCommit)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully")
}

// run owns every resource it opens, so a failed boot still closes what came up before it
func run(cfg *config.Config, appLogger *logger.Logger) error {
	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	publisher := newPublisher(cfg, appLogger)
	defer publisher.Close()

	clock := clockwork.NewRealClock()
	appRouter := routes.NewRouter(cfg, db, publisher, clock)

	if cfg.SeedOnBoot {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := appRouter.Seeder().SeedAll(ctx); err != nil {
			appLogger.Error("Failed to seed demo data", slog.Any("error", err))
		}
		cancel()
	}

	// Expiry reaper: once now, then every interval
	jobProcessor, err := startReaper(cfg.Reaper, appRouter.Reaper(), db.GetRedisClient())
	if err != nil {
		return fmt.Errorf("schedule background jobs: %w", err)
	}
	if jobProcessor == nil {
		appLogger.Warn("Hold reaper disabled, expired holds are only reclaimed by new holds")
	}

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedisClient() != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			HoldRequests:    cfg.RateLimit.HoldRequests,
			OrderRequests:   cfg.RateLimit.OrderRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}, clock)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(appRouter, appLogger, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s/status", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.Bool("redis_cache", db.GetRedisClient() != nil),
			slog.Bool("kafka_events", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var listenErr error
	select {
	case <-quit:
		appLogger.Info("Shutting down server...")
	case listenErr = <-serverErr:
		appLogger.Error("Server failed", slog.Any("error", listenErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	if jobProcessor != nil {
		if err := jobProcessor.Stop(); err != nil {
			appLogger.Error("Failed to stop background jobs", slog.Any("error", err))
		}
	}

	if listenErr != nil {
		return fmt.Errorf("serve http: %w", listenErr)
	}
	return nil
}

// startReaper schedules the expiry sweep and starts it. It returns nil when the
// reaper is disabled. With Redis available, sweeps are serialized across instances.
func startReaper(cfg config.ReaperConfig, sweeper seats.Sweeper, redisClient *redis.Client) (*jobs.JobProcessor, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	jobConfig := jobs.DefaultJobConfig()
	jobConfig.ReaperInterval = cfg.Interval
	if redisClient != nil {
		jobConfig.Locker = redislock.NewLocker(redisClient, cfg.LockTTL)
	}

	jobProcessor, err := jobs.NewJobProcessor(sweeper, jobConfig)
	if err != nil {
		return nil, err
	}
	jobProcessor.Start()
	return jobProcessor, nil
}

// newPublisher connects to Kafka when enabled and falls back to dropping events
func newPublisher(cfg *config.Config, appLogger *logger.Logger) notifications.Publisher {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, domain events are not published")
		return notifications.NewNoopPublisher()
	}

	producerConfig := notifications.DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.Topic
	producerConfig.ClientID = cfg.Kafka.ClientID

	publisher, err := notifications.NewKafkaPublisher(producerConfig)
	if err != nil {
		appLogger.Error("Failed to connect Kafka publisher, continuing without domain events", slog.Any("error", err))
		return notifications.NewNoopPublisher()
	}
	appLogger.Info("Kafka publisher connected", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return publisher
}

func setupRouter(appRouter *routes.Router, appLogger *logger.Logger, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()

	// Logs requests and recovers from panics
	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)
	return engine
}
