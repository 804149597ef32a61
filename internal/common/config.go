package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Markets     MarketsConfig   `toml:"markets"`
	EODHD       EODHDConfig     `toml:"eodhd"`
	Analysis    AnalysisConfig  `toml:"analysis"`
	Output      OutputConfig    `toml:"output"`
	Cache       CacheConfig     `toml:"cache"`
	Schedule    ScheduleConfig  `toml:"schedule"`
	Logging     LoggingConfig   `toml:"logging"`
}

// PortfolioConfig names the ticker universe to scan.
type PortfolioConfig struct {
	Name    string   `toml:"name"`
	Tickers []string `toml:"tickers" validate:"required,min=1"`
}

// MarketsConfig controls ticker parsing.
type MarketsConfig struct {
	DefaultExchange string `toml:"default_exchange"` // Exchange assumed for bare ticker symbols
}

// EODHDConfig configures the fundamentals data source.
type EODHDConfig struct {
	APIKey         string `toml:"api_key"` // EODHD API token (or AESTIMO_EODHD_API_KEY)
	BaseURL        string `toml:"base_url" validate:"omitempty,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=1,lte=300"`
	RateLimit      int    `toml:"rate_limit" validate:"gte=1"` // Requests per second
	MaxRetries     int    `toml:"max_retries" validate:"gte=0,lte=10"`
	Offline        bool   `toml:"offline"` // Use the bundled sample provider instead of the API
}

// AnalysisConfig controls the scan fan-out.
type AnalysisConfig struct {
	Concurrency int `toml:"concurrency" validate:"gte=1,lte=64"` // Parallel fundamentals fetches
}

// OutputConfig controls report artifacts.
type OutputConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats" validate:"dive,oneof=console markdown html json pdf"`
}

// CacheConfig configures the snapshot cache.
type CacheConfig struct {
	Enabled        bool   `toml:"enabled"`
	Path           string `toml:"path"`                       // Database directory path
	TTLHours       int    `toml:"ttl_hours" validate:"gte=0"` // 0 = records never expire
	ResetOnStartup bool   `toml:"reset_on_startup"`           // Delete database on startup for clean runs
}

// ScheduleConfig enables watch mode: re-run the scan on a cron schedule.
type ScheduleConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // Cron schedule format
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DefaultTickers is the universe scanned when no config file, flag, or
// watchlist supplies one.
var DefaultTickers = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "META", "NVDA", "JPM", "BAC", "WMT"}

// NewDefaultConfig returns the baseline configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Portfolio: PortfolioConfig{
			Name:    "US Large Caps",
			Tickers: append([]string(nil), DefaultTickers...),
		},
		Markets: MarketsConfig{
			DefaultExchange: "NYSE",
		},
		EODHD: EODHDConfig{
			BaseURL:        "https://eodhd.com/api",
			TimeoutSeconds: 30,
			RateLimit:      10,
			MaxRetries:     3,
		},
		Analysis: AnalysisConfig{
			Concurrency: 4,
		},
		Output: OutputConfig{
			Dir:     "./reports",
			Formats: []string{"console", "markdown", "html", "json", "pdf"},
		},
		Cache: CacheConfig{
			Enabled:  true,
			Path:     "./data/aestimo",
			TTLHours: 24,
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * MON-FRI",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFile loads configuration from a single file.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> environment variables. Later files override earlier ones.
// Callers apply CLI flag overrides afterwards and then Validate.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks field constraints and the schedule cron expression.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Schedule.Enabled {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("invalid schedule cron %q: %w", c.Schedule.Cron, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AESTIMO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if apiKey := os.Getenv("AESTIMO_EODHD_API_KEY"); apiKey != "" {
		config.EODHD.APIKey = apiKey
	}
	if baseURL := os.Getenv("AESTIMO_EODHD_BASE_URL"); baseURL != "" {
		config.EODHD.BaseURL = baseURL
	}
	if offline := os.Getenv("AESTIMO_OFFLINE"); offline != "" {
		if b, err := strconv.ParseBool(offline); err == nil {
			config.EODHD.Offline = b
		}
	}
	if tickers := os.Getenv("AESTIMO_TICKERS"); tickers != "" {
		if parsed := SplitTickerList(tickers); len(parsed) > 0 {
			config.Portfolio.Tickers = parsed
		}
	}
	if dir := os.Getenv("AESTIMO_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}
	if path := os.Getenv("AESTIMO_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}
	if level := os.Getenv("AESTIMO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("AESTIMO_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		outputs := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority).
func ApplyFlagOverrides(config *Config, tickers, outputDir string, offline, watch bool) {
	if tickers != "" {
		if parsed := SplitTickerList(tickers); len(parsed) > 0 {
			config.Portfolio.Tickers = parsed
		}
	}
	if outputDir != "" {
		config.Output.Dir = outputDir
	}
	if offline {
		config.EODHD.Offline = true
	}
	if watch {
		config.Schedule.Enabled = true
	}
}
