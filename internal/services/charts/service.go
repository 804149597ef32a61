// Package charts renders a report's chart pages to PDF: composite score
// distribution, Z-Score comparison, zone split, and the risk map.
package charts

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

const histogramBins = 8

// Landscape A4 chart layout in millimeters.
const (
	pageWidth  = 297.0
	pageHeight = 210.0
	plotLeft   = 35.0
	plotRight  = 262.0
	plotTop    = 40.0
	plotBottom = 175.0
)

// Zone palette mirrors the report wording: green, orange, red.
var (
	colorSafe     = rgb{46, 125, 50}
	colorGrey     = rgb{255, 152, 0}
	colorDistress = rgb{211, 47, 47}
	colorBars     = rgb{135, 206, 235} // sky blue
	colorAxis     = rgb{60, 60, 60}
	colorGridline = rgb{215, 215, 215}
)

type rgb struct {
	r, g, b int
}

// Service implements interfaces.ChartService
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.ChartService = (*Service)(nil)

// NewService creates a new chart service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// Render draws the four chart pages and returns the PDF bytes. A report
// without assessments has nothing to chart and is an error.
func (s *Service) Render(report *models.PortfolioReport) ([]byte, error) {
	if report == nil || len(report.Assessments) == 0 {
		return nil, fmt.Errorf("no assessments to chart")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	c := &chartRenderer{pdf: pdf}
	c.scoreDistributionPage(report)
	c.zScorePage(report)
	c.zoneDistributionPage(report)
	c.riskMapPage(report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Int("pages", pdf.PageCount()).Msg("Chart PDF generated")
	return buf.Bytes(), nil
}

// WriteFile renders the charts and writes the PDF into dir, returning
// the written path.
func (s *Service) WriteFile(report *models.PortfolioReport, dir string) (string, error) {
	data, err := s.Render(report)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("risk-charts-%s.pdf", report.GeneratedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write chart PDF: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("Chart PDF written")
	return path, nil
}

// chartRenderer draws one chart per landscape page.
type chartRenderer struct {
	pdf *fpdf.Fpdf
}

func (c *chartRenderer) newPage(title string) {
	c.pdf.AddPage()
	c.pdf.SetFont("Arial", "B", 14)
	c.pdf.SetTextColor(26, 26, 26)
	c.pdf.SetXY(0, 15)
	c.pdf.CellFormat(pageWidth, 10, title, "", 0, "C", false, 0, "")
}

// frame draws the plot axes.
func (c *chartRenderer) frame() {
	c.setDraw(colorAxis)
	c.pdf.SetLineWidth(0.4)
	c.pdf.Line(plotLeft, plotTop, plotLeft, plotBottom)
	c.pdf.Line(plotLeft, plotBottom, plotRight, plotBottom)
}

func (c *chartRenderer) xLabel(label string) {
	c.pdf.SetFont("Arial", "", 10)
	c.pdf.SetTextColor(60, 60, 60)
	c.pdf.SetXY(0, plotBottom+14)
	c.pdf.CellFormat(pageWidth, 6, label, "", 0, "C", false, 0, "")
}

func (c *chartRenderer) yLabel(label string) {
	c.pdf.SetFont("Arial", "", 10)
	c.pdf.SetTextColor(60, 60, 60)
	c.pdf.TransformBegin()
	c.pdf.TransformRotate(90, 12, (plotTop+plotBottom)/2)
	c.pdf.Text(12-c.pdf.GetStringWidth(label)/2, (plotTop+plotBottom)/2, label)
	c.pdf.TransformEnd()
}

func (c *chartRenderer) setFill(color rgb) {
	c.pdf.SetFillColor(color.r, color.g, color.b)
}

func (c *chartRenderer) setDraw(color rgb) {
	c.pdf.SetDrawColor(color.r, color.g, color.b)
}

func zoneColor(zone models.RiskZone) rgb {
	switch zone {
	case models.ZoneSafe:
		return colorSafe
	case models.ZoneGrey:
		return colorGrey
	default:
		return colorDistress
	}
}

// tickerCode strips the exchange prefix for compact chart labels.
func tickerCode(ticker string) string {
	if idx := strings.LastIndex(ticker, ":"); idx >= 0 {
		return ticker[idx+1:]
	}
	return ticker
}

// scoreDistributionPage draws the composite score histogram.
func (c *chartRenderer) scoreDistributionPage(report *models.PortfolioReport) {
	c.newPage("Distribution of Credit Risk Scores")
	c.frame()
	c.xLabel("Risk Score (Higher is Better)")
	c.yLabel("Number of Companies")

	bins := make([]int, histogramBins)
	binWidth := 100.0 / histogramBins
	for _, a := range report.Assessments {
		idx := int(a.CompositeScore / binWidth)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx]++
	}

	maxCount := 1
	for _, n := range bins {
		if n > maxCount {
			maxCount = n
		}
	}

	plotW := plotRight - plotLeft
	plotH := plotBottom - plotTop
	barW := plotW / histogramBins

	// Horizontal gridlines with count labels
	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(90, 90, 90)
	step := 1
	if maxCount > 5 {
		step = (maxCount + 4) / 5
	}
	for n := 0; n <= maxCount; n += step {
		y := plotBottom - float64(n)/float64(maxCount)*plotH
		if n > 0 {
			c.setDraw(colorGridline)
			c.pdf.SetLineWidth(0.2)
			c.pdf.Line(plotLeft, y, plotRight, y)
		}
		label := fmt.Sprintf("%d", n)
		c.pdf.Text(plotLeft-c.pdf.GetStringWidth(label)-2, y+1.2, label)
	}

	// Bars
	c.setFill(colorBars)
	c.setDraw(colorAxis)
	c.pdf.SetLineWidth(0.3)
	for i, count := range bins {
		if count == 0 {
			continue
		}
		h := float64(count) / float64(maxCount) * plotH
		x := plotLeft + float64(i)*barW
		c.pdf.Rect(x, plotBottom-h, barW, h, "FD")

		label := fmt.Sprintf("%d", count)
		c.pdf.SetFont("Arial", "", 8)
		c.pdf.SetTextColor(40, 40, 40)
		c.pdf.Text(x+barW/2-c.pdf.GetStringWidth(label)/2, plotBottom-h-1.5, label)
	}

	// Score scale under the axis
	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(90, 90, 90)
	for score := 0.0; score <= 100.0; score += 25 {
		x := plotLeft + score/100.0*plotW
		label := fmt.Sprintf("%.0f", score)
		c.pdf.Text(x-c.pdf.GetStringWidth(label)/2, plotBottom+5, label)
	}
}

// zScorePage draws the per-company Z-Score bars with the zone
// threshold lines.
func (c *chartRenderer) zScorePage(report *models.PortfolioReport) {
	c.newPage("Altman Z-Score by Company")
	c.frame()
	c.xLabel("Company")
	c.yLabel("Z-Score")

	sorted := make([]models.Assessment, len(report.Assessments))
	copy(sorted, report.Assessments)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].ZScore > sorted[b].ZScore
	})

	minZ, maxZ := 0.0, 4.0
	for _, a := range sorted {
		if a.ZScore < minZ {
			minZ = a.ZScore
		}
		if a.ZScore > maxZ {
			maxZ = a.ZScore
		}
	}

	plotW := plotRight - plotLeft
	plotH := plotBottom - plotTop
	yFor := func(z float64) float64 {
		return plotBottom - (z-minZ)/(maxZ-minZ)*plotH
	}

	// Bars colored by zone, drawn from the zero baseline
	slotW := plotW / float64(len(sorted))
	barW := slotW * 0.7
	yZero := yFor(0)
	for i, a := range sorted {
		x := plotLeft + float64(i)*slotW + (slotW-barW)/2
		yVal := yFor(a.ZScore)

		color := zoneColor(a.Zone)
		c.setFill(color)
		c.setDraw(colorAxis)
		c.pdf.SetLineWidth(0.3)
		top := math.Min(yVal, yZero)
		height := math.Abs(yZero - yVal)
		if height < 0.1 {
			height = 0.1
		}
		c.pdf.Rect(x, top, barW, height, "FD")

		c.pdf.SetFont("Arial", "", 7)
		c.pdf.SetTextColor(40, 40, 40)
		value := fmt.Sprintf("%.1f", a.ZScore)
		c.pdf.Text(x+barW/2-c.pdf.GetStringWidth(value)/2, top-1.5, value)

		code := tickerCode(a.Ticker)
		c.pdf.Text(x+barW/2-c.pdf.GetStringWidth(code)/2, plotBottom+5, code)
	}

	// Zone threshold lines
	c.pdf.SetLineWidth(0.4)
	c.pdf.SetDashPattern([]float64{3, 2}, 0)

	c.setDraw(colorSafe)
	ySafe := yFor(2.99)
	c.pdf.Line(plotLeft, ySafe, plotRight, ySafe)

	c.setDraw(colorGrey)
	yGrey := yFor(1.8)
	c.pdf.Line(plotLeft, yGrey, plotRight, yGrey)

	c.pdf.SetDashPattern([]float64{}, 0)

	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(colorSafe.r, colorSafe.g, colorSafe.b)
	c.pdf.Text(plotRight+2, ySafe+1, "Safe 2.99")
	c.pdf.SetTextColor(colorGrey.r, colorGrey.g, colorGrey.b)
	c.pdf.Text(plotRight+2, yGrey+1, "Grey 1.80")
}

// zoneDistributionPage draws the zone split as a pie with a legend.
func (c *chartRenderer) zoneDistributionPage(report *models.PortfolioReport) {
	c.newPage("Credit Risk Category Distribution")

	type slice struct {
		zone  models.RiskZone
		count int
	}
	slices := []slice{
		{models.ZoneSafe, report.Summary.SafeCount},
		{models.ZoneGrey, report.Summary.GreyCount},
		{models.ZoneDistress, report.Summary.DistressCount},
	}

	total := 0
	for _, sl := range slices {
		total += sl.count
	}
	if total == 0 {
		return
	}

	const (
		cx     = 120.0
		cy     = 112.0
		radius = 58.0
	)

	c.setDraw(colorAxis)
	c.pdf.SetLineWidth(0.3)

	angle := -90.0 // start at 12 o'clock
	for _, sl := range slices {
		if sl.count == 0 {
			continue
		}
		sweep := 360.0 * float64(sl.count) / float64(total)
		c.setFill(zoneColor(sl.zone))
		c.pieSlice(cx, cy, radius, angle, angle+sweep)

		// Percentage label at the slice midpoint
		mid := (angle + angle + sweep) / 2 * math.Pi / 180
		label := fmt.Sprintf("%.1f%%", 100*float64(sl.count)/float64(total))
		lx := cx + radius*0.6*math.Cos(mid)
		ly := cy + radius*0.6*math.Sin(mid)
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.SetTextColor(255, 255, 255)
		c.pdf.Text(lx-c.pdf.GetStringWidth(label)/2, ly+1.5, label)

		angle += sweep
	}

	// Legend
	legendX := 205.0
	legendY := 85.0
	c.pdf.SetFont("Arial", "", 10)
	for _, sl := range slices {
		c.setFill(zoneColor(sl.zone))
		c.pdf.Rect(legendX, legendY, 6, 6, "F")
		c.pdf.SetTextColor(40, 40, 40)
		c.pdf.Text(legendX+9, legendY+4.5, fmt.Sprintf("%s (%d)", sl.zone, sl.count))
		legendY += 11
	}
}

// pieSlice fills a circular sector as a polygon fan.
func (c *chartRenderer) pieSlice(cx, cy, r, fromDeg, toDeg float64) {
	points := []fpdf.PointType{{X: cx, Y: cy}}
	for deg := fromDeg; deg < toDeg; deg += 2 {
		rad := deg * math.Pi / 180
		points = append(points, fpdf.PointType{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)})
	}
	rad := toDeg * math.Pi / 180
	points = append(points, fpdf.PointType{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)})
	c.pdf.Polygon(points, "FD")
}

// riskMapPage draws composite score against Z-Score with one labeled
// point per company.
func (c *chartRenderer) riskMapPage(report *models.PortfolioReport) {
	c.newPage("Risk Score vs Altman Z-Score")
	c.frame()
	c.xLabel("Altman Z-Score")
	c.yLabel("Comprehensive Risk Score")

	minZ, maxZ := 0.0, 4.0
	for _, a := range report.Assessments {
		if a.ZScore < minZ {
			minZ = a.ZScore
		}
		if a.ZScore > maxZ {
			maxZ = a.ZScore
		}
	}

	plotW := plotRight - plotLeft
	plotH := plotBottom - plotTop
	xFor := func(z float64) float64 {
		return plotLeft + (z-minZ)/(maxZ-minZ)*plotW
	}
	yFor := func(score float64) float64 {
		return plotBottom - score/100.0*plotH
	}

	// Score gridlines
	c.pdf.SetFont("Arial", "", 8)
	c.pdf.SetTextColor(90, 90, 90)
	for score := 0.0; score <= 100.0; score += 25 {
		y := yFor(score)
		if score > 0 {
			c.setDraw(colorGridline)
			c.pdf.SetLineWidth(0.2)
			c.pdf.Line(plotLeft, y, plotRight, y)
		}
		label := fmt.Sprintf("%.0f", score)
		c.pdf.Text(plotLeft-c.pdf.GetStringWidth(label)-2, y+1.2, label)
	}

	// Z-Score scale
	zStep := niceStep(maxZ - minZ)
	for z := math.Ceil(minZ/zStep) * zStep; z <= maxZ+1e-9; z += zStep {
		x := xFor(z)
		label := fmt.Sprintf("%.1f", z)
		c.pdf.Text(x-c.pdf.GetStringWidth(label)/2, plotBottom+5, label)
	}

	// Company points
	for _, a := range report.Assessments {
		x := xFor(a.ZScore)
		y := yFor(a.CompositeScore)

		c.setFill(zoneColor(a.Zone))
		c.setDraw(colorAxis)
		c.pdf.SetLineWidth(0.3)
		c.pdf.Circle(x, y, 2.2, "FD")

		c.pdf.SetFont("Arial", "", 7)
		c.pdf.SetTextColor(40, 40, 40)
		c.pdf.Text(x+3, y-2, tickerCode(a.Ticker))
	}
}

// niceStep picks a readable tick interval for a Z-Score range.
func niceStep(span float64) float64 {
	switch {
	case span <= 5:
		return 0.5
	case span <= 10:
		return 1
	case span <= 20:
		return 2
	default:
		return 5
	}
}
