package api

import (
	"context"
	"net/http"
	"time"

	"github.com/darisadam/bankist-server/internal/api/handlers"
	"github.com/darisadam/bankist-server/internal/api/middleware"
	"github.com/darisadam/bankist-server/internal/pkg/jwt"
	"github.com/darisadam/bankist-server/internal/pkg/ratelimit"
	"github.com/darisadam/bankist-server/internal/repository"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const Version = "1.0.0"

type Dependencies struct {
	SessionService    service.SessionService
	AuditRepository   repository.AuditRepository
	JWTService        *jwt.JWTService
	Redis             *redis.Client // optional
	CORSOrigins       []string
	MaintenanceBypass string
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.AuditRepository == nil {
		deps.AuditRepository = repository.NewAuditRepository(repository.DefaultAuditCapacity)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(deps.CORSOrigins...))

	var limiter *ratelimit.RateLimiter
	if deps.Redis != nil {
		limiter = ratelimit.NewRateLimiter(deps.Redis)
		router.Use(middleware.MaintenanceMiddleware(deps.Redis, deps.MaintenanceBypass))
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Bankist API",
			"version": Version,
			"status":  "operational",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.SessionService, deps.JWTService)
	accountHandler := handlers.NewAccountHandler(deps.SessionService)
	activityHandler := handlers.NewActivityHandler(deps.SessionService, deps.AuditRepository)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/session", authHandler.Session)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTService))
		if limiter != nil {
			protected.Use(middleware.UserRateLimitMiddleware(limiter))
		}
		{
			protected.GET("/dashboard", accountHandler.Dashboard)
			protected.POST("/transfers", accountHandler.Transfer)
			protected.POST("/loans", accountHandler.RequestLoan)
			protected.POST("/account/close", accountHandler.CloseAccount)
			protected.POST("/movements/sort", accountHandler.ToggleSort)
			protected.GET("/activity", activityHandler.List)
		}
	}

	return router
}
