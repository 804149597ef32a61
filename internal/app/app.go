// Package app wires the application components together.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/eodhd"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/analysis"
	"github.com/ternarybob/aestimo/internal/services/charts"
	"github.com/ternarybob/aestimo/internal/services/fundamentals"
	"github.com/ternarybob/aestimo/internal/services/report"
	"github.com/ternarybob/aestimo/internal/services/scheduler"
	"github.com/ternarybob/aestimo/internal/storage/badger"
	"github.com/ternarybob/arbor"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Snapshot cache, nil when caching is disabled or running offline
	DB            *badger.BadgerDB
	SnapshotCache interfaces.SnapshotStorage

	// Fundamentals provider (EODHD client or bundled sample data)
	Provider interfaces.SnapshotProvider

	AnalysisService  *analysis.Service
	ReportService    *report.Service
	ChartService     *charts.Service
	SchedulerService interfaces.SchedulerService
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initServices()

	logger.Info().
		Str("provider", app.Provider.Name()).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage opens the snapshot cache. Offline runs serve bundled data and
// never touch the cache.
func (a *App) initStorage() error {
	if a.Config.EODHD.Offline || !a.Config.Cache.Enabled {
		a.Logger.Debug().Msg("Snapshot cache disabled")
		return nil
	}

	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Cache)
	if err != nil {
		return fmt.Errorf("failed to open snapshot cache: %w", err)
	}

	a.DB = db
	a.SnapshotCache = badger.NewSnapshotStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Cache.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices builds the provider chain and the scan services.
func (a *App) initServices() {
	if a.Config.EODHD.Offline {
		a.Provider = fundamentals.NewSampleProvider(a.Logger)
	} else {
		client := eodhd.NewClient(a.Config.EODHD.APIKey,
			eodhd.WithBaseURL(a.Config.EODHD.BaseURL),
			eodhd.WithHTTPClient(&http.Client{Timeout: time.Duration(a.Config.EODHD.TimeoutSeconds) * time.Second}),
			eodhd.WithRateLimit(a.Config.EODHD.RateLimit),
			eodhd.WithMaxRetries(a.Config.EODHD.MaxRetries),
			eodhd.WithLogger(a.Logger),
		)
		ttl := time.Duration(a.Config.Cache.TTLHours) * time.Hour
		a.Provider = fundamentals.NewService(client, a.SnapshotCache, ttl, a.Logger)
	}

	a.AnalysisService = analysis.NewService(a.Provider, a.Config.Analysis.Concurrency, a.Logger)
	a.ReportService = report.NewService(a.Logger)
	a.ChartService = charts.NewService(a.Logger)
	a.SchedulerService = scheduler.NewService(a.Logger)
}

// RunScan executes one full portfolio scan and writes every configured
// output artifact.
func (a *App) RunScan(ctx context.Context) (*models.PortfolioReport, error) {
	portfolioReport, err := a.AnalysisService.Run(ctx, a.Config.Portfolio.Name, a.Config.Portfolio.Tickers)
	if err != nil {
		return nil, err
	}

	a.writeOutputs(portfolioReport)

	return portfolioReport, nil
}

// writeOutputs renders the report in every configured format. Artifact
// failures are logged, not fatal: the remaining formats still get written.
func (a *App) writeOutputs(portfolioReport *models.PortfolioReport) {
	formats := a.Config.Output.Formats

	if hasFormat(formats, "console") {
		a.ReportService.WriteConsole(os.Stdout, portfolioReport)
	}

	if _, err := a.ReportService.WriteFiles(portfolioReport, a.Config.Output.Dir, formats); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to write report files")
	}

	if hasFormat(formats, "pdf") {
		if len(portfolioReport.Assessments) == 0 {
			a.Logger.Warn().Msg("Skipping chart PDF, no companies were assessed")
			return
		}
		if _, err := a.ChartService.WriteFile(portfolioReport, a.Config.Output.Dir); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to write chart PDF")
		}
	}
}

// Close releases application resources.
func (a *App) Close() {
	if a.SchedulerService != nil && a.SchedulerService.IsRunning() {
		a.SchedulerService.Stop()
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close snapshot cache")
		}
	}
}

func hasFormat(formats []string, want string) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}
