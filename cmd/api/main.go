package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/cabinetx/front-office/internal/api/router"
	"github.com/cabinetx/front-office/internal/chatbot"
	appconfig "github.com/cabinetx/front-office/internal/config"
	"github.com/cabinetx/front-office/internal/content"
	"github.com/cabinetx/front-office/internal/directory"
	"github.com/cabinetx/front-office/internal/gateway"
	"github.com/cabinetx/front-office/internal/observability/metrics"
	"github.com/cabinetx/front-office/internal/registration"
	"github.com/cabinetx/front-office/internal/scheduling"
	"github.com/cabinetx/front-office/internal/wizard"
	"github.com/cabinetx/front-office/pkg/logging"
)

func main() {
	// Load .env in development; ignore absence in deployed environments.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	var logger *logging.Logger
	if cfg.LogFormat == "text" {
		logger = logging.NewText(cfg.LogLevel)
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	logger.Info("starting front-office API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"gateway", cfg.GatewayBaseURL,
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis unreachable, sessions will be memory-only", "error", err)
			redisClient = nil
		}
	}

	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL, logger, gateway.WithTimeout(cfg.GatewayTimeout))

	directoryService := directory.NewService(gatewayClient, logger, m)
	directoryService.WarmUp(context.Background(), cfg.GatewayTimeout)

	registrationService := registration.NewService(gatewayClient, logger, m)
	schedulingService := scheduling.NewService(gatewayClient, logger)

	snapshotStore := wizard.NewSnapshotStore(redisClient, cfg.SessionTTL)
	registry := wizard.NewRegistry(func() *wizard.Controller {
		return wizard.NewController(registrationService, schedulingService, logger, m)
	}, snapshotStore, cfg.SessionTTL, logger)

	chatClient := chatbot.NewClient(cfg.GatewayBaseURL, logger, chatbot.WithTimeout(cfg.GatewayTimeout))
	chatService := chatbot.NewService(chatClient, logger, m)

	r := router.New(&router.Config{
		Logger:             logger,
		DirectoryHandler:   directory.NewHandler(directoryService, logger),
		WizardHandler:      wizard.NewHandler(registry, schedulingService, logger),
		ChatHandler:        chatbot.NewHandler(chatService, logger),
		ContentHandler:     content.NewHandler(),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped")
}
