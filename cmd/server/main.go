package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/docs"
	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/database"
	"github.com/muhajir-foundation/muhajir-api/internal/metrics"
	"github.com/muhajir-foundation/muhajir-api/internal/router"
	"github.com/muhajir-foundation/muhajir-api/internal/services"
	"github.com/muhajir-foundation/muhajir-api/internal/services/auth"
	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	configureLogging(cfg.Logging)
	docs.SwaggerInfo.BasePath = cfg.App.BasePath
	docs.SwaggerInfo.Version = cfg.App.Version

	sentryEnabled, err := utils.InitSentry(cfg.Sentry, cfg.App.Version)
	if err != nil {
		logrus.Warnf("Failed to initialize Sentry: %v", err)
	}
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	opts := router.Options{Metrics: metrics.New()}
	if cfg.RabbitMQ.URL != "" {
		rabbitMQService, err := services.NewRabbitMQService(cfg.RabbitMQ)
		if err != nil {
			logrus.Warnf("Failed to initialize RabbitMQ, feedback notifications are disabled: %v", err)
		} else {
			defer rabbitMQService.Close()
			opts.Publisher = rabbitMQService
		}
	} else {
		logrus.Info("RABBITMQ_URL is not set, feedback notifications are disabled")
	}

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		authService := auth.NewAuthService(db, cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdminUser(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logrus.Warnf("Failed to create admin user: %v", err)
		}
		cancel()
	}

	r := router.SetupRouter(cfg, db, opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("%s %s starting on port %s", cfg.App.Name, cfg.App.Version, cfg.App.Port)
		logrus.Infof("API Health Check: http://localhost:%s%s/health", cfg.App.Port, cfg.App.APIPrefix)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logrus.Info("Server exited properly")
}

func configureLogging(cfg config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
