package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/adapters/storage"
	"eventregistration/internal/clock"
	transporthttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
	"eventregistration/migrations"
)

const (
	startupTimeout    = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	submissionTimeout = 30 * time.Second
)

// @title Event Registration API
// @version 1.0
// @description Church event registration: event catalog, registration submission and WhatsApp handoff.
// @BasePath /
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(startupCtx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewObserver("", registry)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	blobStore, err := storage.NewBlobStore(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	mailer, err := email.NewMailer(cfg.Mailer, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}

	clk := clock.NewSystem()
	locale := services.BrazilianPortuguese(cfg.EventLocation())

	eventRepo := postgres.NewCachedEventConfigRepository(postgres.NewEventConfigRepository(db), cfg.EventCacheTTL)
	registrationRepo := postgres.NewRegistrationRepository(db)

	catalog := services.NewEventCatalog(eventRepo, logger, observer)
	registrationSvc := services.NewRegistrationService(services.RegistrationDeps{
		Catalog:    catalog,
		Uploader:   services.NewReceiptUploader(blobStore, clk),
		Persister:  services.NewRegistrationPersister(registrationRepo, clk),
		Composer:   services.NewMessageComposer(locale, cfg.DefaultPixKey),
		Links:      services.NewHandoffLinkBuilder(cfg.WhatsAppChannelID),
		Dispatcher: services.NewLogDispatcher(logger),
		Notifier:   services.NewEmailNotifier(mailer, renderer, locale, cfg.Mailer.OrganizerEmail, logger),
		Observer:   observer,
		Policy: domain.ReceiptPolicy{
			MaxBytes:          cfg.ReceiptMaxBytes,
			AllowedExtensions: cfg.ReceiptAllowedExtensions,
		},
		Logger:  logger,
		Timeout: submissionTimeout,
	})

	mux := transporthttp.NewRouter(
		controllers.NewEventController(logger, catalog, locale),
		controllers.NewRegistrationController(logger, registrationSvc, cfg.ReceiptMaxBytes),
		metrics.Handler(registry),
	)
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSOrigins,
			observer.InstrumentHandler(
				middleware.Session(mux))))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.Storage.Provider, "mailer", cfg.Mailer.Provider)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
	return nil
}
