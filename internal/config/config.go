package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted for the answer and caption backends
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort         string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	LogLevel           slog.Level

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Pipeline configuration
	AnswerProvider      string
	CaptionProvider     string
	OCRLanguages        []string
	OCRTimeout          time.Duration
	CaptionTimeout      time.Duration
	AnswerTimeout       time.Duration
	MaxImagePixels      int
	SkipBlankExtraction bool
}

// LoadConfig loads configuration from environment variables and command-line flags
// Flags take precedence over environment variables
func LoadConfig() (*Config, error) {
	return loadConfig(flag.CommandLine, os.Args[1:])
}

func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// Define flags
	serverPort := fs.String("server-port", getEnv("SERVER_PORT", "8000"), "Server port")
	corsOrigins := fs.String("cors-origins", getEnv("CORS_ALLOWED_ORIGINS", "*"), "Comma-separated list of allowed CORS origins")
	maxBodyBytes := fs.Int64("max-body-bytes", getEnvAsInt64("MAX_BODY_BYTES", 20<<20), "Maximum request body size in bytes")
	logLevel := fs.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	geminiKey := fs.String("gemini-key", getEnv("GEMINI_API_KEY", ""), "Gemini API key")
	geminiModel := fs.String("gemini-model", getEnv("GEMINI_MODEL", "gemini-2.5-flash"), "Gemini model for answers and captions")
	openAIKey := fs.String("openai-key", getEnv("OPENAI_API_KEY", ""), "OpenAI API key")
	openAIModel := fs.String("openai-model", getEnv("OPENAI_MODEL", "gpt-4.1-mini"), "OpenAI model for answers and captions")
	answerProvider := fs.String("answer-provider", getEnv("ANSWER_PROVIDER", ProviderGemini), "Answer backend (gemini, openai)")
	captionProvider := fs.String("caption-provider", getEnv("CAPTION_PROVIDER", ProviderGemini), "Caption backend (gemini, openai, none)")
	ocrLanguages := fs.String("ocr-languages", getEnv("OCR_LANGUAGES", "eng"), "Comma-separated Tesseract languages")
	ocrTimeout := fs.Duration("ocr-timeout", getEnvAsDuration("OCR_TIMEOUT", 30*time.Second), "Timeout for a single OCR call")
	captionTimeout := fs.Duration("caption-timeout", getEnvAsDuration("CAPTION_TIMEOUT", 30*time.Second), "Timeout for a single caption call")
	answerTimeout := fs.Duration("answer-timeout", getEnvAsDuration("ANSWER_TIMEOUT", 60*time.Second), "Timeout for a single answer call")
	maxImagePixels := fs.Int("max-image-pixels", getEnvAsInt("MAX_IMAGE_PIXELS", 40_000_000), "Maximum decoded image area in pixels")
	skipBlank := fs.Bool("skip-blank-extraction", getEnvAsBool("SKIP_BLANK_EXTRACTION", false), "Skip OCR and captioning for blank images")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Set config values
	cfg.ServerPort = *serverPort
	cfg.CORSAllowedOrigins = splitList(*corsOrigins)
	cfg.MaxBodyBytes = *maxBodyBytes
	cfg.GeminiAPIKey = *geminiKey
	cfg.GeminiModel = *geminiModel
	cfg.OpenAIAPIKey = *openAIKey
	cfg.OpenAIModel = *openAIModel
	cfg.AnswerProvider = strings.ToLower(strings.TrimSpace(*answerProvider))
	cfg.CaptionProvider = strings.ToLower(strings.TrimSpace(*captionProvider))
	cfg.OCRLanguages = splitList(*ocrLanguages)
	cfg.OCRTimeout = *ocrTimeout
	cfg.CaptionTimeout = *captionTimeout
	cfg.AnswerTimeout = *answerTimeout
	cfg.MaxImagePixels = *maxImagePixels
	cfg.SkipBlankExtraction = *skipBlank

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks provider names and that every selected provider has a credential
func (c *Config) validate() error {
	switch c.AnswerProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown answer provider %q (want %s or %s)", c.AnswerProvider, ProviderGemini, ProviderOpenAI)
	}

	switch c.CaptionProvider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return fmt.Errorf("unknown caption provider %q (want %s, %s or %s)", c.CaptionProvider, ProviderGemini, ProviderOpenAI, ProviderNone)
	}

	if c.Uses(ProviderGemini) && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (set via environment variable or -gemini-key flag)")
	}
	if c.Uses(ProviderOpenAI) && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required (set via environment variable or -openai-key flag)")
	}

	return nil
}

// Uses reports whether the answer or caption backend is the given provider
func (c *Config) Uses(provider string) bool {
	return c.AnswerProvider == provider || c.CaptionProvider == provider
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// splitList splits a comma-separated value, dropping empty items
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
