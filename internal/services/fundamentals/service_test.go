package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ternarybob/aestimo/internal/eodhd"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

type stubAPI struct {
	resp  *eodhd.FundamentalsResponse
	err   error
	calls int
}

func (s *stubAPI) GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type memStorage struct {
	recs    map[string]*models.SnapshotRecord
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{recs: make(map[string]*models.SnapshotRecord)}
}

func (m *memStorage) Save(rec *models.SnapshotRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.recs[rec.Ticker] = rec
	return nil
}

func (m *memStorage) Get(ticker string) (*models.SnapshotRecord, error) {
	rec, ok := m.recs[ticker]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return rec, nil
}

func (m *memStorage) Delete(ticker string) error {
	delete(m.recs, ticker)
	return nil
}

func (m *memStorage) Close() error { return nil }

func apiResponse() *eodhd.FundamentalsResponse {
	marketCap := 180000000000.0
	return &eodhd.FundamentalsResponse{
		General: eodhd.General{Code: "TK", Name: "Test Korp", CurrencyCode: "USD"},
		Highlights: eodhd.Highlights{
			MarketCapitalization: &marketCap,
		},
		Financials: eodhd.Financials{
			BalanceSheet: eodhd.FinancialStatement{
				Yearly: map[string]eodhd.StatementEntry{
					"2024-12-31": {
						"totalAssets":             "1000.00",
						"totalCurrentAssets":      "500.00",
						"totalCurrentLiabilities": "200.00",
						"totalStockholderEquity":  "400.00",
						"retainedEarnings":        "100.00",
						"shortLongTermDebtTotal":  "300.00",
					},
				},
			},
			IncomeStatement: eodhd.FinancialStatement{
				Yearly: map[string]eodhd.StatementEntry{
					"2024-12-31": {
						"totalRevenue":    "900.00",
						"ebit":            "150.00",
						"netIncome":       "80.00",
						"interestExpense": "20.00",
					},
				},
			},
		},
	}
}

func TestSnapshotFetchesAndCaches(t *testing.T) {
	api := &stubAPI{resp: apiResponse()}
	cache := newMemStorage()
	svc := NewService(api, cache, 24*time.Hour, arbor.NewLogger())

	snapshot, err := svc.Snapshot(context.Background(), "NYSE:TK")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snapshot.Ticker != "NYSE:TK" {
		t.Errorf("Ticker = %q, want %q", snapshot.Ticker, "NYSE:TK")
	}
	if snapshot.TotalAssets != 1000 {
		t.Errorf("TotalAssets = %v, want 1000", snapshot.TotalAssets)
	}
	if snapshot.InterestExpense != 20 {
		t.Errorf("InterestExpense = %v, want 20", snapshot.InterestExpense)
	}

	rec, ok := cache.recs["NYSE:TK"]
	if !ok {
		t.Fatal("snapshot was not written through to the cache")
	}
	if rec.Source != "eodhd" {
		t.Errorf("cached Source = %q, want %q", rec.Source, "eodhd")
	}

	// Second call is served from cache
	if _, err := svc.Snapshot(context.Background(), "NYSE:TK"); err != nil {
		t.Fatalf("second Snapshot failed: %v", err)
	}
	if api.calls != 1 {
		t.Errorf("api calls = %d, want 1 (cache hit expected)", api.calls)
	}
}

func TestSnapshotStaleCacheRefetches(t *testing.T) {
	api := &stubAPI{resp: apiResponse()}
	cache := newMemStorage()
	svc := NewService(api, cache, 24*time.Hour, arbor.NewLogger())

	stale := models.NewFinancialSnapshot(models.SnapshotInput{Ticker: "NYSE:TK"})
	cache.recs["NYSE:TK"] = &models.SnapshotRecord{
		Ticker:    "NYSE:TK",
		Snapshot:  stale,
		Source:    "eodhd",
		FetchedAt: time.Now().Add(-25 * time.Hour),
	}

	snapshot, err := svc.Snapshot(context.Background(), "NYSE:TK")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if api.calls != 1 {
		t.Errorf("api calls = %d, want 1 (stale record must refetch)", api.calls)
	}
	if snapshot.TotalAssets != 1000 {
		t.Errorf("TotalAssets = %v, want refreshed 1000", snapshot.TotalAssets)
	}
	if cache.recs["NYSE:TK"].FetchedAt.Before(time.Now().Add(-time.Minute)) {
		t.Error("cache record was not refreshed")
	}
}

func TestSnapshotZeroTTLNeverExpires(t *testing.T) {
	api := &stubAPI{resp: apiResponse()}
	cache := newMemStorage()
	svc := NewService(api, cache, 0, arbor.NewLogger())

	old := models.NewFinancialSnapshot(models.SnapshotInput{
		Ticker:      "NYSE:TK",
		TotalAssets: models.Float64Ptr(777),
	})
	cache.recs["NYSE:TK"] = &models.SnapshotRecord{
		Ticker:    "NYSE:TK",
		Snapshot:  old,
		Source:    "eodhd",
		FetchedAt: time.Now().Add(-1000 * time.Hour),
	}

	snapshot, err := svc.Snapshot(context.Background(), "NYSE:TK")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if api.calls != 0 {
		t.Errorf("api calls = %d, want 0 (zero ttl keeps records forever)", api.calls)
	}
	if snapshot.TotalAssets != 777 {
		t.Errorf("TotalAssets = %v, want cached 777", snapshot.TotalAssets)
	}
}

func TestSnapshotWithoutCache(t *testing.T) {
	api := &stubAPI{resp: apiResponse()}
	svc := NewService(api, nil, 24*time.Hour, arbor.NewLogger())

	if _, err := svc.Snapshot(context.Background(), "TK"); err != nil {
		t.Fatalf("Snapshot without cache failed: %v", err)
	}
	if _, err := svc.Snapshot(context.Background(), "TK"); err != nil {
		t.Fatalf("second Snapshot without cache failed: %v", err)
	}
	if api.calls != 2 {
		t.Errorf("api calls = %d, want 2 (no cache means fetch every time)", api.calls)
	}
}

func TestSnapshotNoStatements(t *testing.T) {
	api := &stubAPI{resp: &eodhd.FundamentalsResponse{
		General: eodhd.General{Code: "EMPTY"},
	}}
	svc := NewService(api, newMemStorage(), 24*time.Hour, arbor.NewLogger())

	_, err := svc.Snapshot(context.Background(), "EMPTY")
	if !errors.Is(err, interfaces.ErrNotAvailable) {
		t.Errorf("error = %v, want interfaces.ErrNotAvailable", err)
	}
}

func TestSnapshotAPIFailure(t *testing.T) {
	api := &stubAPI{err: fmt.Errorf("connection refused")}
	cache := newMemStorage()
	svc := NewService(api, cache, 24*time.Hour, arbor.NewLogger())

	if _, err := svc.Snapshot(context.Background(), "TK"); err == nil {
		t.Error("expected error when the API fails")
	}
	if len(cache.recs) != 0 {
		t.Error("nothing should be cached after a failed fetch")
	}
}

func TestSnapshotCacheWriteFailureIsNonFatal(t *testing.T) {
	api := &stubAPI{resp: apiResponse()}
	cache := newMemStorage()
	cache.saveErr = fmt.Errorf("disk full")
	svc := NewService(api, cache, 24*time.Hour, arbor.NewLogger())

	snapshot, err := svc.Snapshot(context.Background(), "TK")
	if err != nil {
		t.Fatalf("Snapshot should succeed despite cache write failure: %v", err)
	}
	if snapshot.TotalAssets != 1000 {
		t.Errorf("TotalAssets = %v, want 1000", snapshot.TotalAssets)
	}
}

func TestSnapshotInvalidTicker(t *testing.T) {
	svc := NewService(&stubAPI{}, nil, 0, arbor.NewLogger())

	if _, err := svc.Snapshot(context.Background(), "  "); err == nil {
		t.Error("expected error for blank ticker")
	}
}

func TestSampleProvider(t *testing.T) {
	provider := NewSampleProvider(arbor.NewLogger())

	if provider.Name() != "sample" {
		t.Errorf("Name() = %q, want %q", provider.Name(), "sample")
	}

	snapshot, err := provider.Snapshot(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snapshot.Ticker != "NYSE:AAPL" {
		t.Errorf("Ticker = %q, want %q", snapshot.Ticker, "NYSE:AAPL")
	}
	if snapshot.Name != "Apple Inc" {
		t.Errorf("Name = %q, want %q", snapshot.Name, "Apple Inc")
	}
	if snapshot.TotalAssets <= 0 {
		t.Errorf("TotalAssets = %v, want positive", snapshot.TotalAssets)
	}

	if _, err := provider.Snapshot(context.Background(), "ZZZT"); !errors.Is(err, interfaces.ErrNotAvailable) {
		t.Errorf("error = %v, want interfaces.ErrNotAvailable for unknown symbol", err)
	}
}

func TestSampleUniverseCoversDefaults(t *testing.T) {
	provider := NewSampleProvider(arbor.NewLogger())

	for _, ticker := range []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "META", "NVDA", "JPM", "BAC", "WMT"} {
		if _, err := provider.Snapshot(context.Background(), ticker); err != nil {
			t.Errorf("Snapshot(%s) failed: %v", ticker, err)
		}
	}
}
