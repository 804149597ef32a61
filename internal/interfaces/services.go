package interfaces

import (
	"context"
	"io"

	"github.com/ternarybob/aestimo/internal/models"
)

// AnalysisService runs the credit scan over a list of tickers and yields
// the ordered report. Per-ticker fetch failures are recorded as skips and
// never abort the batch.
type AnalysisService interface {
	// Run analyzes every ticker and returns the report with assessments
	// sorted by composite score, descending
	Run(ctx context.Context, portfolioName string, tickers []string) (*models.PortfolioReport, error)
}

// ReportService renders a portfolio report for people and machines.
type ReportService interface {
	// RenderMarkdown builds the full markdown report
	RenderMarkdown(report *models.PortfolioReport) string

	// RenderHTML renders the markdown report into a standalone HTML document
	RenderHTML(report *models.PortfolioReport) (string, error)

	// RenderJSON marshals the full-fidelity report
	RenderJSON(report *models.PortfolioReport) ([]byte, error)

	// WriteConsole prints the ranked table, summary, and insights
	WriteConsole(w io.Writer, report *models.PortfolioReport)

	// WriteFiles writes the requested formats under dir and returns the
	// paths written
	WriteFiles(report *models.PortfolioReport, dir string, formats []string) ([]string, error)
}

// ChartService renders the report charts as a single PDF document.
type ChartService interface {
	// Render draws the chart pages; rendering an empty report is an error
	Render(report *models.PortfolioReport) ([]byte, error)

	// WriteFile renders and writes the chart PDF under dir, returning the path
	WriteFile(report *models.PortfolioReport, dir string) (string, error)
}
