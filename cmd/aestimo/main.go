package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ternarybob/aestimo/internal/app"
	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/arbor"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles   configPaths // Multiple -config flags supported
	tickerList    = flag.String("tickers", "", "Comma-separated tickers to scan (overrides config)")
	watchlistPath = flag.String("watchlist", "", "YAML watchlist file providing the ticker universe")
	outputDir     = flag.String("out", "", "Output directory for report artifacts (overrides config)")
	offline       = flag.Bool("offline", false, "Use bundled sample fundamentals instead of the EODHD API")
	watch         = flag.Bool("watch", false, "Keep running and rescan on the configured cron schedule")
	showVersion   = flag.Bool("version", false, "Print version information")
	showVersionV  = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	// Parse command-line flags
	flag.Parse()

	// Handle version flag
	if *showVersion || *showVersionV {
		fmt.Printf("Aestimo version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// A .env file may carry AESTIMO_EODHD_API_KEY; a missing file is fine
	_ = godotenv.Load()

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner
	var err error

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		// Check current directory first
		if _, err := os.Stat("aestimo.toml"); err == nil {
			configFiles = append(configFiles, "aestimo.toml")
		} else if _, err := os.Stat("deployments/local/aestimo.toml"); err == nil {
			// Fallback: check deployments/local for users running from project root
			configFiles = append(configFiles, "deployments/local/aestimo.toml")
		}
	}

	// 1. Load configuration (default -> file1 -> file2 -> ... -> env -> CLI)
	// Later config files override earlier ones
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		// Use temporary logger for startup errors
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	// 2. Apply command-line flag overrides (highest priority)
	common.ApplyFlagOverrides(config, *tickerList, *outputDir, *offline, *watch)

	// A watchlist file replaces the configured ticker universe
	if *watchlistPath != "" {
		watchlist, err := common.LoadWatchlist(*watchlistPath)
		if err != nil {
			tempLogger := arbor.NewLogger()
			tempLogger.Fatal().Str("path", *watchlistPath).Err(err).Msg("Failed to load watchlist")
			os.Exit(1)
		}
		config.Portfolio.Name = watchlist.Name
		config.Portfolio.Tickers = watchlist.Tickers
	}

	if err := config.Validate(); err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	// 3. Initialize logger with final configuration
	logger = common.InitLogger(config)

	// 4. Print banner
	common.PrintBanner(common.GetVersion())

	// Bare ticker symbols resolve against the configured default exchange
	common.SetDefaultExchange(config.Markets.DefaultExchange)

	logger.Info().
		Strs("config_files", configFiles).
		Str("portfolio", config.Portfolio.Name).
		Int("tickers", len(config.Portfolio.Tickers)).
		Bool("offline", config.EODHD.Offline).
		Str("log_level", config.Logging.Level).
		Msg("Application configuration loaded")

	// Initialize application
	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()

	// Single scan unless watch mode is enabled
	if !config.Schedule.Enabled {
		if _, err := application.RunScan(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Scan failed")
			os.Exit(1)
		}
		return
	}

	// Watch mode: run an initial scan, then rescan on the cron schedule
	if _, err := application.RunScan(ctx); err != nil {
		logger.Error().Err(err).Msg("Initial scan failed")
	}

	scanTask := func() {
		if _, err := application.RunScan(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Scheduled scan failed")
		}
	}

	if err := application.SchedulerService.Start(config.Schedule.Cron, scanTask); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start scheduler")
		os.Exit(1)
	}

	logger.Info().
		Str("cron_expr", config.Schedule.Cron).
		Msg("Watch mode active - Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received")
}
