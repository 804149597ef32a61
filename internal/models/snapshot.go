package models

import "math"

// SnapshotInput carries raw financial-statement figures for one company
// before defaulting. A nil field means the line item was absent from the
// source filing.
type SnapshotInput struct {
	Ticker    string
	Name      string
	Currency  string
	PeriodEnd string

	TotalAssets        *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	TotalDebt          *float64
	TotalEquity        *float64
	RetainedEarnings   *float64
	Revenue            *float64
	EBIT               *float64
	NetIncome          *float64
	InterestExpense    *float64
	MarketCap          *float64
}

// FinancialSnapshot holds normalized per-company financial figures for the
// most recent reporting period, in the currency unit of the source filing.
// Every field is always defined: defaulting happens once, in
// NewFinancialSnapshot, never at point of use. Snapshots are passed by
// value and never modified after construction.
type FinancialSnapshot struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name,omitempty"`
	Currency  string `json:"currency,omitempty"`
	PeriodEnd string `json:"period_end,omitempty"`

	TotalAssets        float64 `json:"total_assets"`
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	TotalDebt          float64 `json:"total_debt"`
	TotalEquity        float64 `json:"total_equity"`
	RetainedEarnings   float64 `json:"retained_earnings"`
	Revenue            float64 `json:"revenue"`
	EBIT               float64 `json:"ebit"`
	NetIncome          float64 `json:"net_income"`

	// InterestExpense is stored as a positive magnitude (filings report it
	// with inconsistent sign). Absent values default to 1 so a missing line
	// item is never conflated with a true zero-interest company.
	InterestExpense float64 `json:"interest_expense"`

	// MarketCap falls back to total equity when no market quote is
	// available (book value as a proxy for market value of equity).
	MarketCap float64 `json:"market_cap"`
}

// NewFinancialSnapshot builds a snapshot from raw statement figures,
// applying all absence defaults at construction time.
func NewFinancialSnapshot(in SnapshotInput) FinancialSnapshot {
	s := FinancialSnapshot{
		Ticker:    in.Ticker,
		Name:      in.Name,
		Currency:  in.Currency,
		PeriodEnd: in.PeriodEnd,

		TotalAssets:        orZero(in.TotalAssets),
		CurrentAssets:      orZero(in.CurrentAssets),
		CurrentLiabilities: orZero(in.CurrentLiabilities),
		TotalDebt:          orZero(in.TotalDebt),
		TotalEquity:        orZero(in.TotalEquity),
		RetainedEarnings:   orZero(in.RetainedEarnings),
		Revenue:            orZero(in.Revenue),
		EBIT:               orZero(in.EBIT),
		NetIncome:          orZero(in.NetIncome),
	}

	if in.InterestExpense != nil {
		s.InterestExpense = math.Abs(*in.InterestExpense)
	} else {
		s.InterestExpense = 1
	}

	if in.MarketCap != nil {
		s.MarketCap = *in.MarketCap
	} else {
		s.MarketCap = s.TotalEquity
	}

	return s
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float64Ptr returns a pointer to v. Convenience for building SnapshotInput values.
func Float64Ptr(v float64) *float64 {
	return &v
}
