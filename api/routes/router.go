package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "venuebook/docs"
	"venuebook/internal/analytics"
	"venuebook/internal/auth"
	"venuebook/internal/events"
	"venuebook/internal/meals"
	"venuebook/internal/notifications"
	"venuebook/internal/organizers"
	"venuebook/internal/payments"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/database"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Service
	log      *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
		log:      log,
	}
}

// SetupRoutes builds every service once and registers all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pg := r.db.GetPostgreSQL()
	cacheService := cache.NewService(r.db.GetRedis())
	tokens := auth.NewTokenManager(r.config.JWT)

	// Repositories
	userRepo := users.NewRepository(pg)
	organizerRepo := organizers.NewRepository(pg)
	venueRepo := venues.NewRepository(pg)
	mealRepo := meals.NewRepository(pg)
	eventRepo := events.NewRepository(pg)
	paymentRepo := payments.NewRepository(pg)
	analyticsRepo := analytics.NewRepository(pg)

	// Services
	authService := auth.NewService(userRepo, organizerRepo, tokens, r.log)
	venueService := venues.NewService(venueRepo, cacheService, r.log)
	mealService := meals.NewService(mealRepo, cacheService, r.log)
	eventService := events.NewService(eventRepo, venueRepo, r.notifier, r.log)
	gateway := payments.NewSimulator(r.config.Payment.SimulatedSuccessRate, r.config.Payment.AsyncWallets)
	paymentService := payments.NewService(paymentRepo, venueRepo, mealRepo, eventService, gateway, r.notifier, r.config.Payment, r.log)
	analyticsService := analytics.NewService(analyticsRepo, userRepo, paymentRepo, cacheService)

	basePath := r.config.GetAPIBasePath()
	api := engine.Group(basePath)
	api.Use(middleware.Guard(tokens, Policies(basePath)))

	auth.NewRouter(auth.NewController(authService)).SetupRoutes(api)
	venues.NewRouter(venues.NewController(venueService)).SetupRoutes(api)
	meals.NewRouter(meals.NewController(mealService)).SetupRoutes(api)
	events.NewRouter(events.NewController(eventService)).SetupRoutes(api)
	payments.NewRouter(payments.NewController(paymentService)).SetupRoutes(api)
	analytics.NewRouter(analytics.NewController(analyticsService)).SetupRoutes(api)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "venuebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "venuebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}
