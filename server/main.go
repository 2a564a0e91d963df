// @title           Venuebook API
// @version         1.0
// @description     Venue and meal booking backend with simulated payments.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"venuebook/api/routes"
	"venuebook/internal/notifications"
	"venuebook/internal/organizers"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/database"
	"venuebook/internal/shared/middleware"
	"venuebook/pkg/logger"
	"venuebook/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	bootLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			bootLogger.Info("Production environment: using container environment variables")
		} else {
			bootLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		bootLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	appLogger := logger.NewWithLevel(cfg.LogLevel)
	logger.SetDefault(appLogger)
	appLogger.Info("Starting venuebook",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
	)

	gin.SetMode(cfg.GinMode)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.InitDB(startupCtx, cfg, appLogger)
	if err != nil {
		startupCancel()
		appLogger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := organizers.EnsureDefaultAdmin(startupCtx, organizers.NewRepository(db.GetPostgreSQL()), cfg.Admin, appLogger); err != nil {
		appLogger.Error("failed to bootstrap admin account", slog.Any("error", err))
	}
	startupCancel()

	// Notifications go to the configured broker. Without one they are dropped.
	publisher, err := notifications.NewPublisher(cfg.Broker)
	if err != nil {
		appLogger.Error("Failed to initialize notification publisher", slog.Any("error", err))
		appLogger.Info("Continuing without notification broker")
		publisher = notifications.NoopPublisher{}
	} else {
		appLogger.Info("Notification publisher initialized", slog.String("driver", cfg.Broker.Driver))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing notification publisher", slog.Any("error", err))
		}
	}()
	notifier := notifications.NewService(publisher, appLogger)

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			PublicRequests:    cfg.RateLimit.PublicRequests,
			AuthRequests:      cfg.RateLimit.AuthRequests,
			PaymentRequests:   cfg.RateLimit.PaymentRequests,
			WebhookRequests:   cfg.RateLimit.WebhookRequests,
			AdminRequests:     cfg.RateLimit.AdminRequests,
			AnalyticsRequests: cfg.RateLimit.AnalyticsRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Bool("redis_backed", db.GetRedis() != nil),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(cfg, db, notifier, rateLimiter, appLogger)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("api_base", cfg.GetAPIBasePath()),
			slog.Bool("redis_cache", db.GetRedis() != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, notifier notifications.Service, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestLogger(appLogger), middleware.Recovery(appLogger))

	engine.Use(cors.New(corsConfig(cfg.CORS)))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger))
	}

	// Errors are rendered after the handlers run, so it wraps everything below
	engine.Use(middleware.ErrorHandler(appLogger, !cfg.IsProduction()))

	routes.NewRouter(cfg, db, notifier, appLogger).SetupRoutes(engine)

	return engine
}

func corsConfig(c config.CORSConfig) cors.Config {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 || (len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*") {
		conf.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		conf.AllowOrigins = c.AllowedOrigins
	}
	return conf
}
