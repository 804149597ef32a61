package eodhd

// FundamentalsResponse is the subset of the EODHD fundamentals payload
// needed for solvency scoring. The full payload carries dozens of
// sections; everything else is ignored during decoding.
type FundamentalsResponse struct {
	General    General    `json:"General"`
	Highlights Highlights `json:"Highlights"`
	Financials Financials `json:"Financials"`
}

// General identifies the instrument.
type General struct {
	Code         string `json:"Code"`
	Name         string `json:"Name"`
	Exchange     string `json:"Exchange"`
	CurrencyCode string `json:"CurrencyCode"`
}

// Highlights contains key market-level aggregates.
type Highlights struct {
	// MarketCapitalization is null for unlisted or thinly covered symbols.
	MarketCapitalization *float64 `json:"MarketCapitalization"`
}

// Financials groups the statement histories.
type Financials struct {
	BalanceSheet    FinancialStatement `json:"Balance_Sheet"`
	IncomeStatement FinancialStatement `json:"Income_Statement"`
}

// FinancialStatement is one statement's history keyed by period end date
// (e.g. "2024-09-30"). EODHD reports line items as strings, numbers, or
// null depending on the symbol, so entries stay untyped until extraction.
type FinancialStatement struct {
	CurrencySymbol string                    `json:"currency_symbol"`
	Yearly         map[string]StatementEntry `json:"yearly"`
	Quarterly      map[string]StatementEntry `json:"quarterly"`
}

// StatementEntry holds a single reporting period's line items.
type StatementEntry map[string]interface{}
