package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vokinneberg/handwritten-math-solver/internal/config"
	"github.com/vokinneberg/handwritten-math-solver/internal/extract"
	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
	"github.com/vokinneberg/handwritten-math-solver/internal/llm"
	"github.com/vokinneberg/handwritten-math-solver/internal/solver"

	httphandler "github.com/vokinneberg/handwritten-math-solver/internal/http"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Initialize model clients
	var (
		gemini *llm.Gemini
		openai *llm.Client
	)
	if cfg.Uses(config.ProviderGemini) {
		gemini, err = llm.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		slog.Info("Initialized Gemini client", "model", cfg.GeminiModel)
	}
	if cfg.Uses(config.ProviderOpenAI) {
		openai = llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("Initialized OpenAI client", "model", cfg.OpenAIModel)
	}

	var answerer solver.Answerer = gemini
	if cfg.AnswerProvider == config.ProviderOpenAI {
		answerer = openai
	}

	var captioner extract.Captioner = extract.NoopCaptioner{}
	switch cfg.CaptionProvider {
	case config.ProviderGemini:
		captioner = gemini
	case config.ProviderOpenAI:
		captioner = openai
	}
	slog.Info("Initialized captioner", "provider", captioner.Name())

	// Initialize OCR engine
	tesseract := extract.NewTesseract(cfg.OCRLanguages...)
	slog.Info("Initialized Tesseract OCR", "version", tesseract.Version(), "languages", cfg.OCRLanguages)

	// Initialize pipeline
	extractor := extract.NewExtractor(tesseract, captioner, cfg.OCRTimeout, cfg.CaptionTimeout)
	pipeline := solver.NewPipeline(
		imaging.NewDecoder(cfg.MaxImagePixels),
		extractor,
		answerer,
		solver.WithAnswerTimeout(cfg.AnswerTimeout),
		solver.WithSkipBlank(cfg.SkipBlankExtraction),
	)
	slog.Info("Initialized pipeline", "answer_provider", cfg.AnswerProvider, "skip_blank", cfg.SkipBlankExtraction)

	// Initialize HTTP handlers
	handler := httphandler.NewHandlers(pipeline)

	// Create router
	r := httphandler.NewRouter(handler, httphandler.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server running", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
