// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NYSE:JPM", "NASDAQ:AAPL")
type Ticker struct {
	// Exchange is the exchange code (e.g., "NYSE", "NASDAQ")
	Exchange string
	// Code is the stock/security code (e.g., "JPM", "AAPL")
	Code string
	// Raw is the original ticker string
	Raw string
}

// ExchangeToSuffix maps exchange codes to EODHD API suffixes.
var ExchangeToSuffix = map[string]string{
	"NYSE":   ".US",
	"NASDAQ": ".US",
	"AMEX":   ".US",
	"ASX":    ".AU",
	"LSE":    ".LSE",
	"TSX":    ".TO",
	"XETRA":  ".XETRA",
}

// DefaultExchange is the default exchange used when parsing tickers without an exchange prefix.
// Can be overridden via [markets] default config in TOML.
var DefaultExchange = "NYSE"

// SetDefaultExchange sets the default exchange for parsing tickers.
// Called during app initialization from config.
func SetDefaultExchange(exchange string) {
	if exchange != "" {
		DefaultExchange = strings.ToUpper(exchange)
	}
}

// ParseTicker parses an exchange-qualified ticker string.
// Supports formats:
//   - "NYSE:JPM" -> Exchange="NYSE", Code="JPM" (colon separator)
//   - "NYSE.JPM" -> Exchange="NYSE", Code="JPM" (dot separator)
//   - "JPM" -> Exchange=DefaultExchange (default), Code="JPM"
//   - "jpm" -> Exchange=DefaultExchange, Code="JPM" (normalized to uppercase)
//
// Note: EODHD uses CODE.EXCHANGE (e.g., "JPM.US"), while our format uses EXCHANGE.CODE.
// Use EODHDSymbol() to convert to EODHD format.
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	// Check for exchange prefix with colon separator (EXCHANGE:CODE)
	if idx := strings.Index(ticker, ":"); idx > 0 {
		exchange := strings.ToUpper(ticker[:idx])
		code := strings.ToUpper(ticker[idx+1:])
		return Ticker{
			Exchange: exchange,
			Code:     code,
			Raw:      ticker,
		}
	}

	// Check for exchange prefix with dot separator (EXCHANGE.CODE)
	// Only match if the prefix is a known exchange to avoid conflicts with codes containing dots
	if idx := strings.Index(ticker, "."); idx > 0 {
		possibleExchange := strings.ToUpper(ticker[:idx])
		// Check if this is a known exchange
		if _, ok := ExchangeToSuffix[possibleExchange]; ok {
			code := strings.ToUpper(ticker[idx+1:])
			return Ticker{
				Exchange: possibleExchange,
				Code:     code,
				Raw:      ticker,
			}
		}
	}

	// No exchange prefix - use default exchange
	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// EODHDSymbol returns the EODHD API symbol format.
// Example: "NYSE:JPM" -> "JPM.US"
func (t Ticker) EODHDSymbol() string {
	if t.Code == "" {
		return ""
	}
	suffix, ok := ExchangeToSuffix[t.Exchange]
	if !ok {
		// Default to US for unknown exchanges
		suffix = ".US"
	}
	return t.Code + suffix
}

// ParseTickers parses a list of ticker strings.
func ParseTickers(tickers []string) []Ticker {
	result := make([]Ticker, 0, len(tickers))
	for _, t := range tickers {
		if parsed := ParseTicker(t); parsed.Code != "" {
			result = append(result, parsed)
		}
	}
	return result
}

// SplitTickerList splits a comma or whitespace separated ticker list
// into trimmed, non-empty symbols. Used for the -tickers flag and the
// AESTIMO_TICKERS environment variable.
func SplitTickerList(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
