package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sherpa-labs/sherpa/internal/api"
	"github.com/sherpa-labs/sherpa/internal/catalog"
	"github.com/sherpa-labs/sherpa/internal/config"
	"github.com/sherpa-labs/sherpa/internal/events"
	"github.com/sherpa-labs/sherpa/internal/flatfile"
	"github.com/sherpa-labs/sherpa/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store
	files, err := store.NewFileStore(cfg.Storage.DataDir, cfg.Storage.BackupDir, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	if err := files.SeedBackups(); err != nil {
		logger.Warn("failed to seed backups", "error", err)
	}

	// The built-in framework is written on first start so a fresh
	// deployment has something to evaluate against.
	if err := ensureDefaultFramework(files, logger); err != nil {
		logger.Warn("failed to seed default framework", "error", err)
	}

	// Subnet record backend: Postgres when configured, embedded SQLite
	// otherwise.
	var records store.SubnetStore
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		records = pg
		logger.Info("connected to postgres")
	} else {
		sq, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err)
			os.Exit(1)
		}
		records = sq
		logger.Info("opened sqlite store", "path", cfg.Storage.SQLitePath)
	}
	defer records.Close()

	// Flat subnet table
	table := flatfile.NewFile(cfg.Storage.TablePath, backupTablePath(cfg), logger)

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.Enabled && cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	// API server
	router := api.NewRouter(api.Deps{
		Frameworks: files,
		Compasses:  files,
		Subnets:    records,
		Table:      table,
		Events:     eventsClient,
		Seeder:     files,
		AdminToken: cfg.Server.AdminToken,
		Logger:     logger,
	})
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func ensureDefaultFramework(files *store.FileStore, logger *slog.Logger) error {
	existing, err := files.GetFramework(catalog.DefaultFrameworkName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if _, err := files.SaveFramework(catalog.DefaultFramework()); err != nil {
		return err
	}
	logger.Info("seeded default framework", "name", catalog.DefaultFrameworkName)
	return nil
}

func backupTablePath(cfg *config.Config) string {
	if cfg.Storage.BackupDir == "" {
		return ""
	}
	return cfg.Storage.BackupDir + "/subnets.csv"
}
