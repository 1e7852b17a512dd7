package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/darisadam/bankist-server/internal/api"
	"github.com/darisadam/bankist-server/internal/config"
	"github.com/darisadam/bankist-server/internal/domain/account"
	"github.com/darisadam/bankist-server/internal/pkg/clock"
	"github.com/darisadam/bankist-server/internal/pkg/jwt"
	"github.com/darisadam/bankist-server/internal/pkg/logger"
	"github.com/darisadam/bankist-server/internal/pkg/metrics"
	"github.com/darisadam/bankist-server/internal/repository"
	"github.com/darisadam/bankist-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var commitSHA = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	seeds := account.DefaultSeeds()
	if cfg.SeedFile != "" {
		seeds, err = account.LoadSeeds(cfg.SeedFile)
		if err != nil {
			logger.Fatal("Failed to load seed accounts", zap.Error(err))
		}
	}
	accounts, err := account.NewAccounts(seeds, cfg.PINHashCost)
	if err != nil {
		logger.Fatal("Failed to build accounts", zap.Error(err))
	}

	repo := repository.NewAccountRepository(accounts)
	metrics.UpdateAccountMetrics(repo.Count())
	metrics.SetSystemInfo(api.Version, commitSHA, runtime.Version())

	svc := service.NewSessionService(repo, clock.New(), service.SessionOptions{
		Timeout:   cfg.SessionTimeout,
		LoanDelay: cfg.LoanDelay,
	})
	audits := repository.NewAuditRepository(repository.DefaultAuditCapacity)
	svc.Subscribe(service.LoggingListener(), service.MetricsListener(), service.AuditListener(audits))

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis not reachable, rate limiting fails open", zap.Error(err))
		}
		cancel()
	}

	router := api.NewRouter(api.Dependencies{
		SessionService:    svc,
		AuditRepository:   audits,
		JWTService:        jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		Redis:             redisClient,
		CORSOrigins:       cfg.CORSOrigins,
		MaintenanceBypass: cfg.MaintenanceBypass,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Int("accounts", repo.Count()),
		zap.Duration("session_timeout", cfg.SessionTimeout),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	svc.Shutdown()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}
