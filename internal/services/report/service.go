// Package report renders portfolio reports to console, markdown, HTML,
// and JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Service renders reports. Markdown is the canonical representation;
// HTML is converted from it.
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.ReportService = (*Service)(nil)

// NewService creates a report service.
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// RenderMarkdown builds the markdown report.
func (s *Service) RenderMarkdown(report *models.PortfolioReport) string {
	var b strings.Builder

	title := "Credit Risk Report"
	if report.PortfolioName != "" {
		title = fmt.Sprintf("%s: %s", title, report.PortfolioName)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s  \n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Report ID: %s\n\n", report.ID)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Companies | Mean Z-Score | Median Composite | Safe | Grey | Distress |\n")
	b.WriteString("|-----------|--------------|------------------|------|------|----------|\n")
	fmt.Fprintf(&b, "| %d | %.2f | %.1f | %d | %d | %d |\n\n",
		report.Summary.Companies,
		report.Summary.MeanZScore,
		report.Summary.MedianComposite,
		report.Summary.SafeCount,
		report.Summary.GreyCount,
		report.Summary.DistressCount)

	if len(report.Assessments) > 0 {
		b.WriteString("## Rankings\n\n")
		b.WriteString("| # | Ticker | Company | Z-Score | Zone | Composite | D/E | Coverage | ROA % | WC/Assets | Turnover |\n")
		b.WriteString("|---|--------|---------|---------|------|-----------|-----|----------|-------|-----------|----------|\n")
		for i, a := range report.Assessments {
			row := a.DisplayRow()
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				i+1, row.Ticker, a.Name, row.ZScore, row.Zone, row.Composite,
				row.DebtToEquity, row.InterestCoverage, row.ROAPercent,
				row.WorkingCapital, row.AssetTurnover)
		}
		b.WriteString("\n")
	}

	if len(report.Strongest) > 0 {
		b.WriteString("## Strongest Balance Sheets\n\n")
		for i, rec := range report.Strongest {
			fmt.Fprintf(&b, "%d. **%s** composite %.1f (%s)\n", i+1, rec.Ticker, rec.CompositeScore, rec.Zone)
		}
		b.WriteString("\n")
	}

	if len(report.Weakest) > 0 {
		b.WriteString("## Highest Risk\n\n")
		for i, rec := range report.Weakest {
			fmt.Fprintf(&b, "%d. **%s** composite %.1f (%s)\n", i+1, rec.Ticker, rec.CompositeScore, rec.Zone)
		}
		b.WriteString("\n")
	}

	if len(report.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
		b.WriteString("\n")
	}

	if len(report.Skipped) > 0 {
		b.WriteString("## Skipped Tickers\n\n")
		b.WriteString("| Ticker | Reason |\n")
		b.WriteString("|--------|--------|\n")
		for _, skip := range report.Skipped {
			fmt.Fprintf(&b, "| %s | %s |\n", skip.Ticker, skip.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts the markdown report to a styled standalone page.
func (s *Service) RenderHTML(report *models.PortfolioReport) (string, error) {
	markdown := s.RenderMarkdown(report)

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report to HTML: %w", err)
	}

	return wrapInPageTemplate(buf.String()), nil
}

// RenderJSON serializes the full report.
func (s *Service) RenderJSON(report *models.PortfolioReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return data, nil
}

// WriteConsole prints the fixed-width report table.
func (s *Service) WriteConsole(w io.Writer, report *models.PortfolioReport) {
	line := strings.Repeat("=", 100)

	fmt.Fprintln(w, line)
	title := "CORPORATE CREDIT RISK REPORT"
	if report.PortfolioName != "" {
		title += " - " + strings.ToUpper(report.PortfolioName)
	}
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintf(w, " Generated %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, line)

	if len(report.Assessments) == 0 {
		fmt.Fprintln(w, " No companies analyzed.")
	} else {
		fmt.Fprintf(w, " %-14s %-26s %8s  %-13s %6s %7s %9s\n",
			"Ticker", "Company", "Z-Score", "Zone", "Score", "D/E", "Coverage")
		fmt.Fprintf(w, " %s\n", strings.Repeat("-", 92))
		for _, a := range report.Assessments {
			row := a.DisplayRow()
			fmt.Fprintf(w, " %-14s %-26s %8s  %-13s %6s %7s %9s\n",
				row.Ticker, truncate(a.Name, 26), row.ZScore, row.Zone,
				row.Composite, row.DebtToEquity, row.InterestCoverage)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, " Safe Zone: %d   Grey Zone: %d   Distress Zone: %d\n",
		report.Summary.SafeCount, report.Summary.GreyCount, report.Summary.DistressCount)
	fmt.Fprintf(w, " Mean Z-Score: %.2f   Median Composite: %.1f\n",
		report.Summary.MeanZScore, report.Summary.MedianComposite)

	if len(report.Insights) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, " Insights:")
		for _, insight := range report.Insights {
			fmt.Fprintf(w, "  - %s\n", insight)
		}
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintln(w)
		for _, skip := range report.Skipped {
			fmt.Fprintf(w, " Skipped %s: %s\n", skip.Ticker, skip.Reason)
		}
	}

	fmt.Fprintln(w, line)
}

// WriteFiles writes the requested formats into dir and returns the paths
// written. The "console" and "pdf" formats are handled elsewhere and
// ignored here.
func (s *Service) WriteFiles(report *models.PortfolioReport, dir string, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := fmt.Sprintf("risk-report-%s", report.GeneratedAt.Format("20060102-150405"))
	var written []string

	for _, format := range formats {
		var path string
		switch strings.ToLower(format) {
		case "markdown", "md":
			path = filepath.Join(dir, base+".md")
			if err := os.WriteFile(path, []byte(s.RenderMarkdown(report)), 0644); err != nil {
				return written, fmt.Errorf("failed to write markdown report: %w", err)
			}
		case "html":
			content, err := s.RenderHTML(report)
			if err != nil {
				return written, err
			}
			path = filepath.Join(dir, base+".html")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return written, fmt.Errorf("failed to write HTML report: %w", err)
			}
		case "json":
			data, err := s.RenderJSON(report)
			if err != nil {
				return written, err
			}
			path = filepath.Join(dir, base+".json")
			if err := os.WriteFile(path, data, 0644); err != nil {
				return written, fmt.Errorf("failed to write JSON report: %w", err)
			}
		case "console", "pdf":
			continue
		default:
			s.logger.Warn().Str("format", format).Msg("Unknown report format, skipping")
			continue
		}

		s.logger.Info().Str("path", path).Msg("Report written")
		written = append(written, path)
	}

	return written, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func wrapInPageTemplate(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Credit Risk Report</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      line-height: 1.6;
      color: #333;
      max-width: 1100px;
      margin: 0 auto;
      padding: 20px;
      background-color: #f9f9f9;
    }
    .content {
      background-color: #fff;
      padding: 30px;
      border-radius: 8px;
      box-shadow: 0 1px 3px rgba(0,0,0,0.1);
    }
    h1 { color: #1a1a1a; font-size: 24px; margin-top: 0; border-bottom: 2px solid #eee; padding-bottom: 10px; }
    h2 { color: #2a2a2a; font-size: 20px; margin-top: 24px; }
    p { margin: 12px 0; }
    ul, ol { padding-left: 24px; margin: 12px 0; }
    li { margin: 6px 0; }
    strong { color: #1a1a1a; }
    table { border-collapse: collapse; width: 100%; margin: 16px 0; font-size: 14px; }
    th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
    th { background: #f4f4f4; font-weight: 600; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #888; }
  </style>
</head>
<body>
  <div class="content">
    ` + content + `
  </div>
  <div class="footer">
    <p>This report was automatically generated by Aestimo.</p>
  </div>
</body>
</html>`
}
