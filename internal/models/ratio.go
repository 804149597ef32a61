package models

import (
	"encoding/json"
	"strconv"
)

// Ratio is a financial ratio that is either a finite value or undefined.
// A ratio is undefined when its denominator is not positive (interest
// coverage with no interest expense, debt-to-equity with no equity).
// Undefined is a real business state, not an error: it formats as "N/A"
// and marshals as JSON null, and downstream scoring handles it explicitly
// instead of leaning on floating-point infinities.
type Ratio struct {
	value   float64
	defined bool
}

// FiniteRatio returns a defined ratio holding v.
func FiniteRatio(v float64) Ratio {
	return Ratio{value: v, defined: true}
}

// UndefinedRatio returns the undefined sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Defined reports whether the ratio holds a finite value.
func (r Ratio) Defined() bool {
	return r.defined
}

// Value returns the finite value and true, or 0 and false when undefined.
func (r Ratio) Value() (float64, bool) {
	return r.value, r.defined
}

// Or returns the finite value, or alt when the ratio is undefined.
func (r Ratio) Or(alt float64) float64 {
	if !r.defined {
		return alt
	}
	return r.value
}

// Format renders the ratio with the given number of decimals, or "N/A"
// when undefined.
func (r Ratio) Format(decimals int) string {
	if !r.defined {
		return "N/A"
	}
	return strconv.FormatFloat(r.value, 'f', decimals, 64)
}

// String implements fmt.Stringer with two decimals.
func (r Ratio) String() string {
	return r.Format(2)
}

// MarshalJSON writes the finite value, or null when undefined.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON reads a number or null.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{value: v, defined: true}
	return nil
}

// RatioSet holds the derived ratios for one company. Asset-scaled ratios
// are 0 when total assets are not positive; the guarded ratios are
// undefined when their denominators are not positive. Every ratio is a
// pure function of exactly one snapshot.
type RatioSet struct {
	WorkingCapitalToAssets   float64 `json:"working_capital_to_assets"`
	RetainedEarningsToAssets float64 `json:"retained_earnings_to_assets"`
	EBITToAssets             float64 `json:"ebit_to_assets"`
	SalesToAssets            float64 `json:"sales_to_assets"`
	ReturnOnAssets           float64 `json:"return_on_assets"`

	EquityToDebt     Ratio `json:"equity_to_debt"`
	DebtToEquity     Ratio `json:"debt_to_equity"`
	InterestCoverage Ratio `json:"interest_coverage"`
}
