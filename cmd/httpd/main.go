// Command httpd runs the opinion-pulse HTTP service: the analysis API plus
// the scheduled per-subject runner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/api"
	"github.com/jonesrussell/opinion-pulse/internal/cache"
	"github.com/jonesrussell/opinion-pulse/internal/config"
	"github.com/jonesrussell/opinion-pulse/internal/database"
	"github.com/jonesrussell/opinion-pulse/internal/fetch"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
	"github.com/jonesrussell/opinion-pulse/internal/processor"
	"github.com/jonesrussell/opinion-pulse/internal/sentiment"
	"github.com/jonesrussell/opinion-pulse/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting opinion-pulse",
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
		logging.Bool("debug", cfg.Service.Debug),
	)

	tp := telemetry.NewProvider()

	pipeline, err := analyzer.New(sentiment.NewVaderEngine(), analyzer.Config{
		TargetLanguage: cfg.Analysis.TargetLanguage,
		MinTextLength:  cfg.Analysis.MinTextLength,
		NewsMarkers:    cfg.Analysis.NewsMarkers,
		OpinionTerms:   cfg.Analysis.OpinionTerms,
		OpinionBand:    cfg.Analysis.OpinionBand,
		NonOpinionBand: cfg.Analysis.NonOpinionBand,
	}, tp, logger)
	if err != nil {
		logger.Fatal("Failed to build analyzer", logging.Error(err))
	}

	batchProcessor := processor.NewBatchProcessor(pipeline, cfg.Service.Concurrency, logger)

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Error(err))
	}
	defer db.Close()

	runsRepo := database.NewRunsRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	summaryCache, err := cache.New(ctx, cache.Config{
		URL:      cfg.Redis.URL,
		Password: cfg.Redis.Password,
		Database: cfg.Redis.Database,
		TTL:      cfg.Redis.SummaryCacheTTL,
	})
	if err != nil {
		logger.Fatal("Failed to connect to redis", logging.Error(err))
	}
	defer summaryCache.Close()

	fetcher := fetch.NewTwitterClient(fetch.TwitterConfig{
		BaseURL:      cfg.Twitter.BaseURL,
		BearerToken:  cfg.Twitter.BearerToken,
		OpinionTerms: cfg.Analysis.OpinionTerms,
		Language:     cfg.Analysis.TargetLanguage,
		RPS:          cfg.Twitter.RPS,
		Burst:        cfg.Twitter.Burst,
	}, logger)

	runner := processor.NewRunner(fetcher, batchProcessor, runsRepo, summaryCache, tp, processor.RunnerConfig{
		Subjects:   cfg.Service.Subjects,
		FetchLimit: cfg.Service.FetchLimit,
		Interval:   cfg.Service.RunInterval,
	}, logger)

	if len(cfg.Service.Subjects) > 0 {
		if err := runner.Start(ctx); err != nil {
			logger.Fatal("Failed to start runner", logging.Error(err))
		}
		defer runner.Stop()
	}

	handler := api.NewHandler(runner, batchProcessor, runsRepo, summaryCache, logger)
	server := api.NewServer(handler, tp.Handler(), api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", logging.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", logging.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("Server stopped gracefully")
	}
}
