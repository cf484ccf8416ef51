package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the text-to-speech desk
type Config struct {
	// Output configuration
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"` // Directory audio files are written to

	// Google Translate TTS configuration
	TTSTLD     string `envconfig:"TTS_TLD" default:"com"`   // Top-level domain, e.g. com, co.uk, com.au
	TTSBaseURL string `envconfig:"TTS_BASE_URL" default:""` // Full batchexecute endpoint override

	// Language catalog configuration.
	// An empty catalog URL means the built-in language table is used.
	CatalogURL      string `envconfig:"TTS_CATALOG_URL" default:""`
	DefaultLanguage string `envconfig:"TTS_DEFAULT_LANGUAGE" default:""` // Preferred language code when present in the catalog

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`        // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`      // Pretty print logs (for development)
	LogFile        string `envconfig:"LOG_FILE" default:"ttsdesk.log"`  // Log destination; the terminal belongs to the UI
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"false"` // Serve Prometheus metrics and health endpoints
	MetricsPort    string `envconfig:"METRICS_PORT" default:"9464"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
	"panic": true,
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field values that envconfig cannot express as tags
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.LogLevel)
	}
	if c.TTSTLD == "" && c.TTSBaseURL == "" {
		return fmt.Errorf("one of TTS_TLD or TTS_BASE_URL is required")
	}
	if c.MetricsEnabled {
		if _, err := strconv.Atoi(c.MetricsPort); err != nil {
			return fmt.Errorf("METRICS_PORT %q is not a number", c.MetricsPort)
		}
	}
	return nil
}
