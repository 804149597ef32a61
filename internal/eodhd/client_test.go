package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const fundamentalsPayload = `{
	"General": {"Code": "AAPL", "Name": "Apple Inc", "Exchange": "NASDAQ", "CurrencyCode": "USD"},
	"Highlights": {"MarketCapitalization": 2850000000000},
	"Financials": {
		"Balance_Sheet": {
			"currency_symbol": "USD",
			"yearly": {
				"2024-09-30": {"totalAssets": "364980000000.00", "totalStockholderEquity": "56950000000.00"}
			}
		},
		"Income_Statement": {
			"currency_symbol": "USD",
			"yearly": {
				"2024-09-30": {"totalRevenue": "391035000000.00", "ebit": "123216000000.00"}
			}
		}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []ClientOption{
		WithBaseURL(server.URL),
		WithRateLimit(1000),
	}
	return NewClient("test-token", append(base, opts...)...), server
}

func TestGetFundamentals(t *testing.T) {
	var gotPath, gotToken, gotFormat string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		gotFormat = r.URL.Query().Get("fmt")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fundamentalsPayload))
	})

	resp, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetFundamentals failed: %v", err)
	}

	if gotPath != "/fundamentals/AAPL.US" {
		t.Errorf("path = %q, want %q", gotPath, "/fundamentals/AAPL.US")
	}
	if gotToken != "test-token" {
		t.Errorf("api_token = %q, want %q", gotToken, "test-token")
	}
	if gotFormat != "json" {
		t.Errorf("fmt = %q, want %q", gotFormat, "json")
	}

	if resp.General.Code != "AAPL" {
		t.Errorf("General.Code = %q, want %q", resp.General.Code, "AAPL")
	}
	if resp.Highlights.MarketCapitalization == nil || *resp.Highlights.MarketCapitalization != 2.85e12 {
		t.Errorf("MarketCapitalization = %v, want 2.85e12", resp.Highlights.MarketCapitalization)
	}
	if len(resp.Financials.BalanceSheet.Yearly) != 1 {
		t.Errorf("got %d balance sheet periods, want 1", len(resp.Financials.BalanceSheet.Yearly))
	}
	entry := resp.Financials.BalanceSheet.Yearly["2024-09-30"]
	if v := entry.Float("totalAssets"); v == nil || *v != 364980000000.00 {
		t.Errorf("totalAssets = %v, want 364980000000.00", v)
	}
}

func TestGetFundamentalsAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "symbol not found", http.StatusNotFound)
	})

	_, err := client.GetFundamentals(context.Background(), "NOPE.US")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Endpoint != "/fundamentals/NOPE.US" {
		t.Errorf("Endpoint = %q, want %q", apiErr.Endpoint, "/fundamentals/NOPE.US")
	}
}

func TestGetFundamentalsRetriesServerError(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(fundamentalsPayload))
	}, WithMaxRetries(2))

	resp, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetFundamentals failed after retry: %v", err)
	}
	if resp.General.Code != "AAPL" {
		t.Errorf("General.Code = %q, want %q", resp.General.Code, "AAPL")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d calls, want 2", got)
	}
}

func TestGetFundamentalsRetriesExhausted(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "still broken", http.StatusInternalServerError)
	}, WithMaxRetries(1))

	_, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d calls, want 2 (initial + 1 retry)", got)
	}
}

func TestGetFundamentalsRateLimitRetry(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(fundamentalsPayload))
	}, WithMaxRetries(1))

	resp, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetFundamentals failed after rate limit retry: %v", err)
	}
	if resp.General.Name != "Apple Inc" {
		t.Errorf("General.Name = %q, want %q", resp.General.Name, "Apple Inc")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d calls, want 2", got)
	}
}

func TestGetFundamentalsNoRetryOnClientError(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad token", http.StatusForbidden)
	}, WithMaxRetries(3))

	_, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1 (4xx is not retried)", got)
	}
}
