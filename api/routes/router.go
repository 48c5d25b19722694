// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "boxoffice/docs"
	"boxoffice/internal/coupons"
	"boxoffice/internal/events"
	"boxoffice/internal/notifications"
	"boxoffice/internal/orders"
	"boxoffice/internal/seats"
	"boxoffice/internal/seed"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	clock     clockwork.Clock
	publisher notifications.Publisher
	cache     cache.Service

	theaterService venues.Service
	eventService   events.Service
	couponService  coupons.Service
	seatService    seats.Service
	orderService   orders.Service
	reaper         *seats.Reaper
}

// NewRouter wires every domain against one database, cache, clock and publisher
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, clock clockwork.Clock) *Router {
	r := &Router{
		config:    cfg,
		db:        db,
		clock:     clock,
		publisher: publisher,
		cache:     cache.NewService(db.GetRedisClient()),
	}

	pg := db.GetPostgreSQL()
	seatRepo := seats.NewRepository(pg)
	eventRepo := events.NewRepository(pg)

	r.theaterService = venues.NewService(venues.NewRepository(pg), r.cache)
	r.eventService = events.NewService(eventRepo, r.theaterService, seatRepo, r.cache)
	r.couponService = coupons.NewService(coupons.NewRepository(pg), clock)
	r.seatService = seats.NewService(seatRepo, eventRepo, r.cache, publisher, clock, cfg.Holds)
	r.orderService = orders.NewService(
		orders.NewRepository(pg),
		seatRepo,
		eventRepo,
		r.couponService,
		r.seatService,
		publisher,
		clock,
		cfg.Pricing,
	)
	r.reaper = seats.NewReaper(seatRepo, r.cache, publisher, clock, cfg.Reaper.BatchSize)

	return r
}

// Reaper returns the expiry reaper for the background scheduler
func (r *Router) Reaper() *seats.Reaper {
	return r.reaper
}

// Seeder returns a demo data seeder over the wired services
func (r *Router) Seeder() *seed.Seeder {
	return seed.NewSeeder(r.theaterService, r.eventService, r.couponService, r.clock)
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		venues.SetupTheaterRoutes(api, venues.NewController(r.theaterService), r.config.JWT.Secret)
		events.SetupEventRoutes(api, events.NewController(r.eventService), r.config.JWT.Secret)
		seats.SetupSeatRoutes(api, seats.NewController(r.seatService, r.reaper), r.config.JWT.Secret)
		orders.SetupOrderRoutes(api, orders.NewController(r.orderService), r.config.JWT.Secret)
		coupons.SetupCouponRoutes(api, coupons.NewController(r.couponService), r.config.JWT.Secret)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "boxoffice-api",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "boxoffice-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
			"reaper":      r.reaper.Stats(),
		})
	})
}
