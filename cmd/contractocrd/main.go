// Command contractocrd serves the extraction pipeline over HTTP, with a
// background queue for document submissions and an optional Postgres store.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"contractocr/internal/artifacts"
	"contractocr/internal/async"
	"contractocr/internal/common"
	"contractocr/internal/ocr"
	"contractocr/internal/pipeline"
	"contractocr/internal/repository"
	"contractocr/internal/server"
)

// queueRunner adapts the pipeline to the queue's per-document contract.
type queueRunner struct {
	proc *pipeline.Processor
}

func (r *queueRunner) RunDocument(ctx context.Context, path string) error {
	_, err := r.proc.Run(ctx, []string{path})
	return err
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo *repository.ExtractionRepository
	if cfg.Database.DSN != "" {
		pool, err := repository.Open(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("open database", "error", err)
			os.Exit(1)
		}
		defer repository.Close(pool, logger)

		if err := repository.HealthCheck(ctx, pool, 3*time.Second, logger); err != nil {
			logger.Error("database health check failed", "error", err)
			os.Exit(1)
		}
		repo = repository.NewExtractionRepository(pool, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("DB_URL not set, persistence disabled")
	}

	client := ocr.NewClient(ocr.Config{
		BaseURL:                cfg.OCR.BaseURL,
		Timeout:                cfg.OCR.Timeout,
		UseOrientationClassify: cfg.OCR.UseOrientationClassify,
		UseDocUnwarping:        cfg.OCR.UseDocUnwarping,
		UseLayoutDetection:     cfg.OCR.UseLayoutDetection,
		UseChartRecognition:    cfg.OCR.UseChartRecognition,
		FormatBlockContent:     cfg.OCR.FormatBlockContent,
		MaxConcurrency:         cfg.OCR.MaxConcurrency,
	}, logger)

	proc := &pipeline.Processor{Logger: logger, Parser: client}
	if cfg.Output.ArtifactDir != "" {
		proc.Artifacts = artifacts.NewWriter(cfg.Output.ArtifactDir, logger)
	}
	if repo != nil {
		proc.Store = repo
	}

	queue := async.NewDocumentQueue(&queueRunner{proc: proc}, logger,
		async.WithProcessTimeout(cfg.OCR.Timeout+time.Minute),
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	server.NewHandler(queue, repo).Register(r)

	srv := &http.Server{Addr: cfg.Server.HTTPAddr, Handler: r}
	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
