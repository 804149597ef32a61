package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Watchlist is a named ticker list loaded from a YAML file. It overrides
// the configured portfolio when passed via the -watchlist flag.
type Watchlist struct {
	Name    string   `yaml:"name"`
	Tickers []string `yaml:"tickers"`
}

// LoadWatchlist reads a watchlist from a YAML file.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist %s: %w", path, err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist %s: %w", path, err)
	}

	tickers := make([]string, 0, len(wl.Tickers))
	for _, t := range wl.Tickers {
		if parsed := ParseTicker(t); parsed.Code != "" {
			tickers = append(tickers, t)
		}
	}
	wl.Tickers = tickers

	if len(wl.Tickers) == 0 {
		return nil, fmt.Errorf("watchlist %s contains no tickers", path)
	}
	if wl.Name == "" {
		wl.Name = "Watchlist"
	}

	return &wl, nil
}
