package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/cache"
	"devevent/internal/adapters/email"
	"devevent/internal/adapters/storage"
	deliveryhttp "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/domain"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

// formOverheadBytes is the room left for text fields on top of the image size limit.
const formOverheadBytes = 1 << 20

// @title DevEvent API
// @version 1.0
// @description Developer event listings and bookings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	// No connection is made until the first request needs one.
	connector := postgres.NewConnector(postgres.ConnectorConfig{
		URL:            cfg.DBUrl,
		MaxOpenConns:   cfg.DBMaxOpenConns,
		ConnectTimeout: cfg.DBConnectTimeout,
		AutoMigrate:    cfg.AutoMigrate,
	})
	defer func() {
		if err := connector.Close(); err != nil {
			logger.Error("failed to close database", "err", err)
		}
	}()

	eventRepo := postgres.NewEventRepository(connector)
	bookingRepo := postgres.NewBookingRepository(connector)

	var eventCache domain.EventCache
	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		eventCache = cache.NewEventCache(rdb, cfg.Redis.TTL)
		logger.Info("event cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	uploader := newUploader(cfg.Assets, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to load email templates: %v", err)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	eventService := services.NewEventService(eventRepo, bookingRepo, eventCache, logger, cfg.RequestTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, emailService, logger, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:             logger,
		Events:             controllers.NewEventController(logger, eventService, uploader, cfg.Assets.MaxBytes+formOverheadBytes),
		Bookings:           controllers.NewBookingController(logger, bookingService),
		Health:             controllers.NewHealthController(logger, connector),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
}

// newUploader connects to the image host, falling back to an uploader that
// rejects every image when none is configured or it cannot be reached.
func newUploader(cfg config.AssetConfig, logger *slog.Logger) domain.ImageUploader {
	if !cfg.Enabled() {
		logger.Warn("no image host configured; event creation will fail at upload")
		return storage.Disabled()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	uploader, err := storage.NewImageUploader(ctx, storage.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		Folder:    cfg.Folder,
		PublicURL: cfg.PublicURL,
		MaxBytes:  cfg.MaxBytes,
	})
	if err != nil {
		logger.Error("image host unavailable", "endpoint", cfg.Endpoint, "err", err)
		return storage.Disabled()
	}
	return uploader
}
