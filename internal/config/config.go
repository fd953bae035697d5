package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Fetch      FetchConfig
	Recognizer RecognizerConfig
	Batch      BatchConfig
	Normalizer NormalizerConfig
	CORS       CORSConfig
	Export     ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FetchConfig holds the outbound HTTP policy shared by page and image fetches.
type FetchConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRedirects   int           `mapstructure:"max_redirects"`
	UserAgent      string        `mapstructure:"user_agent"`
	AcceptLanguage string        `mapstructure:"accept_language"`
	MaxBodyMB      int64         `mapstructure:"max_body_mb"`
}

// MaxBodyBytes returns the response size cap in bytes.
func (f *FetchConfig) MaxBodyBytes() int64 {
	return f.MaxBodyMB << 20
}

// RecognizerConfig holds settings for the text recognition provider.
// The API key is never configured here; it arrives with each request.
type RecognizerConfig struct {
	Provider     string `mapstructure:"provider"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// BatchConfig holds orchestrator settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxImages   int `mapstructure:"max_images"`
}

// NormalizerConfig holds SVG transcoding settings.
type NormalizerConfig struct {
	JPEGQuality    int `mapstructure:"jpeg_quality"`
	SVGDefaultSize int `mapstructure:"svg_default_size"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExportConfig holds result export settings.
type ExportConfig struct {
	SheetName string `mapstructure:"sheet_name"`
}

// DefaultUserAgent mimics a desktop Chrome browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with the IMGTEXT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IMGTEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Fetch defaults
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.max_redirects", 5)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.accept_language", "ja,en-US;q=0.9,en;q=0.8")
	v.SetDefault("fetch.max_body_mb", 20)

	// Recognizer defaults
	v.SetDefault("recognizer.provider", "gemini")
	v.SetDefault("recognizer.default_model", "")
	v.SetDefault("recognizer.timeout_secs", 60)

	// Batch defaults (sequential)
	v.SetDefault("batch.concurrency", 1)
	v.SetDefault("batch.max_images", 0)

	// Normalizer defaults
	v.SetDefault("normalizer.jpeg_quality", 90)
	v.SetDefault("normalizer.svg_default_size", 512)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	v.SetDefault("export.sheet_name", "Results")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "IMGTEXT_SERVER_PORT",
		"server.read_timeout":         "IMGTEXT_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "IMGTEXT_SERVER_WRITE_TIMEOUT",
		"server.environment":          "IMGTEXT_SERVER_ENVIRONMENT",
		"log.level":                   "IMGTEXT_LOG_LEVEL",
		"log.format":                  "IMGTEXT_LOG_FORMAT",
		"fetch.timeout":               "IMGTEXT_FETCH_TIMEOUT",
		"fetch.max_redirects":         "IMGTEXT_FETCH_MAX_REDIRECTS",
		"fetch.user_agent":            "IMGTEXT_FETCH_USER_AGENT",
		"fetch.accept_language":       "IMGTEXT_FETCH_ACCEPT_LANGUAGE",
		"fetch.max_body_mb":           "IMGTEXT_FETCH_MAX_BODY_MB",
		"recognizer.provider":         "IMGTEXT_RECOGNIZER_PROVIDER",
		"recognizer.default_model":    "IMGTEXT_RECOGNIZER_DEFAULT_MODEL",
		"recognizer.timeout_secs":     "IMGTEXT_RECOGNIZER_TIMEOUT_SECS",
		"batch.concurrency":           "IMGTEXT_BATCH_CONCURRENCY",
		"batch.max_images":            "IMGTEXT_BATCH_MAX_IMAGES",
		"normalizer.jpeg_quality":     "IMGTEXT_NORMALIZER_JPEG_QUALITY",
		"normalizer.svg_default_size": "IMGTEXT_NORMALIZER_SVG_DEFAULT_SIZE",
		"cors.allowed_origins":        "IMGTEXT_CORS_ALLOWED_ORIGINS",
		"export.sheet_name":           "IMGTEXT_EXPORT_SHEET_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if IMGTEXT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("IMGTEXT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Fetch = FetchConfig{
		Timeout:        v.GetDuration("fetch.timeout"),
		MaxRedirects:   v.GetInt("fetch.max_redirects"),
		UserAgent:      v.GetString("fetch.user_agent"),
		AcceptLanguage: v.GetString("fetch.accept_language"),
		MaxBodyMB:      v.GetInt64("fetch.max_body_mb"),
	}
	cfg.Recognizer = RecognizerConfig{
		Provider:     v.GetString("recognizer.provider"),
		DefaultModel: v.GetString("recognizer.default_model"),
		TimeoutSecs:  v.GetInt("recognizer.timeout_secs"),
	}

	concurrency := v.GetInt("batch.concurrency")
	if concurrency < 1 {
		concurrency = 1
	}
	cfg.Batch = BatchConfig{
		Concurrency: concurrency,
		MaxImages:   v.GetInt("batch.max_images"),
	}
	cfg.Normalizer = NormalizerConfig{
		JPEGQuality:    v.GetInt("normalizer.jpeg_quality"),
		SVGDefaultSize: v.GetInt("normalizer.svg_default_size"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Export = ExportConfig{
		SheetName: v.GetString("export.sheet_name"),
	}

	return cfg, nil
}
