package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"imgtext/internal/config"
	"imgtext/internal/extractor"
	"imgtext/internal/fetcher"
	"imgtext/internal/handler"
	"imgtext/internal/normalizer"
	"imgtext/internal/recognizer"
	"imgtext/internal/recognizer/claude"
	"imgtext/internal/recognizer/gemini"
	"imgtext/internal/recognizer/openai"
	"imgtext/internal/router"
	"imgtext/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyLogging(&cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register recognition providers
	recognizer.RegisterProvider("gemini", gemini.New)
	recognizer.RegisterProvider("claude", claude.New)
	recognizer.RegisterProvider("openai", openai.New)
	if !recognizer.HasProvider(cfg.Recognizer.Provider) {
		return fmt.Errorf("unknown recognizer provider %q", cfg.Recognizer.Provider)
	}

	// Initialize pipeline components
	httpClient := fetcher.NewClient(&cfg.Fetch)
	imageNormalizer := normalizer.New(&cfg.Normalizer)
	orchestrator := service.NewOrchestrator(httpClient, imageNormalizer, cfg.Batch.Concurrency)
	recognizers := recognizer.NewFactory(&cfg.Recognizer)

	// Initialize services
	extractionSvc := service.NewExtractionService(httpClient, extractor.New(), orchestrator, recognizers, &cfg.Batch)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractionSvc)
	exportH := handler.NewExportHandler(&cfg.Export)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(extractionH, exportH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":        cfg.Server.Port,
			"provider":    cfg.Recognizer.Provider,
			"concurrency": cfg.Batch.Concurrency,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
