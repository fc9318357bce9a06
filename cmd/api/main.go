// Package main FreelanceHub API
//
// @title           FreelanceHub API
// @version         1.0
// @description     Client, project, invoice and time tracking backend for freelancers.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/api/handlers"
	"github.com/pratik-mahalle/freelancehub/internal/api/router"
	"github.com/pratik-mahalle/freelancehub/internal/cache"
	"github.com/pratik-mahalle/freelancehub/internal/config"
	"github.com/pratik-mahalle/freelancehub/internal/db"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
	"github.com/pratik-mahalle/freelancehub/internal/repository"
	"github.com/pratik-mahalle/freelancehub/internal/services"
	"github.com/pratik-mahalle/freelancehub/internal/worker"
	"github.com/pratik-mahalle/freelancehub/migrations"
)

// dataGateway is what the services need from a backend
type dataGateway interface {
	gateway.DataStore
	gateway.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorWithErr(err, "Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"backend":     cfg.Gateway.Backend,
	}).Info("Starting FreelanceHub API")

	store, authProvider, closeStore, err := openGateway(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Redis.Enabled {
		redisCache, err := cache.Connect(ctx, cache.Config{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
			Timeout:     time.Second,
		})
		if err != nil {
			// sessions still verify against the gateway without the cache
			log.WarnWithErr(err, "Redis unavailable, session cache disabled")
		} else {
			defer redisCache.Close()
			authProvider = gateway.NewCachedAuthProvider(authProvider, redisCache, cfg.Auth.TokenCacheTTL, log)
			log.Info("Session cache enabled")
		}
	}

	// Repositories
	profileRepo := repository.NewProfileRepository(store)
	clientRepo := repository.NewClientRepository(store)
	projectRepo := repository.NewProjectRepository(store)
	invoiceRepo := repository.NewInvoiceRepository(store)
	timeEntryRepo := repository.NewTimeEntryRepository(store)

	// Services
	entitlementService := services.NewEntitlementService(profileRepo, authProvider, log,
		services.WithTrialLength(cfg.Entitlement.TrialLength))
	insightLocation, err := cfg.Insights.Location()
	if err != nil {
		return fmt.Errorf("insight timezone: %w", err)
	}
	summarizer := services.NewSummarizer(cfg.AI.OpenAIAPIKey, cfg.AI.Model)
	log.Infof("Insight summaries use the %s summarizer", summarizer.Source())
	insightService := services.NewInsightService(timeEntryRepo, invoiceRepo, projectRepo, clientRepo, summarizer,
		services.InsightConfig{
			CurrencySymbol: cfg.Insights.CurrencySymbol,
			Timeout:        cfg.Insights.Timeout,
			Location:       insightLocation,
		}, log)
	clientService := services.NewClientService(clientRepo, entitlementService, log)
	projectService := services.NewProjectService(projectRepo, entitlementService, log)
	invoiceService := services.NewInvoiceService(invoiceRepo, entitlementService, log, nil)
	timeEntryService := services.NewTimeEntryService(timeEntryRepo, entitlementService, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(cfg.Gateway.Backend, store, log),
		Auth:        handlers.NewAuthHandler(authProvider, log),
		Entitlement: handlers.NewEntitlementHandler(entitlementService, log),
		Insight:     handlers.NewInsightHandler(insightService, entitlementService, log),
		Client:      handlers.NewClientHandler(clientService, log, val),
		Project:     handlers.NewProjectHandler(projectService, log, val),
		Invoice:     handlers.NewInvoiceHandler(invoiceService, log, val),
		TimeEntry:   handlers.NewTimeEntryHandler(timeEntryService, log, val),
	}

	if cfg.Worker.Enabled {
		sweeper, err := worker.NewInvoiceSweeper(invoiceService, cfg.Worker.OverdueSweepSpec, log)
		if err != nil {
			return err
		}
		go sweeper.Start(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(ctx, cfg, log, authProvider, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openGateway builds the data store and session verifier for the configured backend
func openGateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (dataGateway, gateway.AuthProvider, func(), error) {
	if cfg.Gateway.Backend == config.BackendREST {
		client := gateway.NewRESTClient(gateway.RESTConfig{
			URL:     cfg.Gateway.URL,
			AnonKey: cfg.Gateway.AnonKey,
			Timeout: cfg.Gateway.RequestTimeout,
		}, log)
		log.Infof("Using hosted backend at %s", cfg.Gateway.URL)
		return client, client, func() {}, nil
	}

	database, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	store := gateway.NewSQLStore(database, cfg.Database.Driver, log)
	closeFn := func() {
		if err := database.Close(); err != nil {
			log.WarnWithErr(err, "Failed to close database")
		}
	}
	return store, gateway.NewJWTAuthProvider(cfg.Auth.JWTSecret, log), closeFn, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	applied, err := db.Migrate(ctx, database, cfg.Database.Driver, migrations.GetFS(), log)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  cfg.Database.Driver,
		"applied": applied,
	}).Info("Database ready")
	return database, nil
}
