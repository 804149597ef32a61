package eodhd

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ternarybob/aestimo/internal/models"
)

// ErrNoStatements indicates the fundamentals payload carried no usable
// balance sheet or income statement history.
var ErrNoStatements = errors.New("fundamentals response contains no statement data")

// ExtractInput maps the latest yearly statements of a fundamentals
// response onto a snapshot input. Line items that are missing or
// unparseable stay nil so snapshot construction can apply its defaults.
func ExtractInput(resp *FundamentalsResponse) (*models.SnapshotInput, error) {
	if resp == nil {
		return nil, ErrNoStatements
	}

	balanceDate, balance, hasBalance := latestPeriod(resp.Financials.BalanceSheet)
	incomeDate, income, hasIncome := latestPeriod(resp.Financials.IncomeStatement)
	if !hasBalance && !hasIncome {
		return nil, ErrNoStatements
	}

	input := &models.SnapshotInput{
		Ticker:   resp.General.Code,
		Name:     resp.General.Name,
		Currency: resp.General.CurrencyCode,
	}
	if input.Currency == "" {
		input.Currency = resp.Financials.BalanceSheet.CurrencySymbol
	}

	input.PeriodEnd = balanceDate
	if input.PeriodEnd == "" {
		input.PeriodEnd = incomeDate
	}

	if hasBalance {
		input.TotalAssets = balance.Float("totalAssets")
		input.CurrentAssets = balance.Float("totalCurrentAssets")
		input.CurrentLiabilities = balance.Float("totalCurrentLiabilities")
		input.TotalEquity = balance.Float("totalStockholderEquity")
		input.RetainedEarnings = balance.Float("retainedEarnings")
		input.TotalDebt = extractTotalDebt(balance)
	}

	if hasIncome {
		input.Revenue = income.Float("totalRevenue")
		input.EBIT = income.Float("ebit", "operatingIncome")
		input.NetIncome = income.Float("netIncome")
		input.InterestExpense = income.Float("interestExpense")
	}

	input.MarketCap = resp.Highlights.MarketCapitalization

	return input, nil
}

// extractTotalDebt prefers the combined line item and falls back to
// summing the short and long term components when only those exist.
func extractTotalDebt(entry StatementEntry) *float64 {
	if debt := entry.Float("shortLongTermDebtTotal"); debt != nil {
		return debt
	}

	shortTerm := entry.Float("shortTermDebt")
	longTerm := entry.Float("longTermDebtTotal", "longTermDebt")
	if shortTerm == nil && longTerm == nil {
		return nil
	}

	total := 0.0
	if shortTerm != nil {
		total += *shortTerm
	}
	if longTerm != nil {
		total += *longTerm
	}
	return &total
}

// latestPeriod returns the most recent yearly entry of a statement.
// Period keys are ISO dates, so lexicographic order is date order.
func latestPeriod(stmt FinancialStatement) (string, StatementEntry, bool) {
	var latest string
	for date := range stmt.Yearly {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return "", nil, false
	}
	return latest, stmt.Yearly[latest], true
}

// Float returns the first parseable value among the given line item
// keys, or nil when none parse.
func (e StatementEntry) Float(keys ...string) *float64 {
	for _, key := range keys {
		raw, ok := e[key]
		if !ok {
			continue
		}
		if v := parseLineItem(raw); v != nil {
			return v
		}
	}
	return nil
}

// parseLineItem converts an untyped statement value to a float. EODHD
// encodes values as JSON numbers or decimal strings; null, empty, and
// non-numeric markers yield nil.
func parseLineItem(raw interface{}) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "null") {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}
