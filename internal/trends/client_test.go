package trends

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gapscout/internal/gap"
	"gapscout/internal/store"
)

// offlineTransport fails every request so a test can prove no network
// round trip happened.
type offlineTransport struct{}

func (offlineTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network disabled in test")
}

func newOfflineClient(t *testing.T, cache *store.Store) *Client {
	t.Helper()
	c := NewClient(cache, nil, "")
	c.client = &http.Client{Transport: offlineTransport{}}
	return c
}

func TestInterestServesCachedSignal(t *testing.T) {
	cache, err := store.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer cache.Close()

	seeded := &gap.TrendSignal{Keyword: "go tutorial", AverageInterest: 72, Direction: 15}
	if err := cache.Set(store.CategoryTrends, "go tutorial_"+DefaultTimeframe, seeded, 0); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	c := newOfflineClient(t, cache)
	signal, err := c.Interest(context.Background(), "go tutorial", DefaultTimeframe, true)
	if err != nil {
		t.Fatalf("Interest should have been served from cache: %v", err)
	}
	if signal.AverageInterest != 72 {
		t.Errorf("Expected cached average 72, got %f", signal.AverageInterest)
	}
}

func TestInterestSkipsCacheWhenDisabled(t *testing.T) {
	cache, err := store.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer cache.Close()

	seeded := &gap.TrendSignal{Keyword: "go tutorial", AverageInterest: 72}
	if err := cache.Set(store.CategoryTrends, "go tutorial_"+DefaultTimeframe, seeded, 0); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	// With the cache read disabled the client must go to the network,
	// which this test blocks.
	c := newOfflineClient(t, cache)
	if _, err := c.Interest(context.Background(), "go tutorial", DefaultTimeframe, false); err == nil {
		t.Error("Expected a fetch error when the cache read is disabled")
	}
}

func TestCompareDegradesFailedLookups(t *testing.T) {
	c := newOfflineClient(t, nil)
	signals, err := c.Compare(context.Background(), []string{"a", "b"}, DefaultTimeframe, false)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	for _, kw := range []string{"a", "b"} {
		signal, ok := signals[kw]
		if !ok {
			t.Fatalf("Missing signal for %q", kw)
		}
		if signal.AverageInterest != gap.DefaultInterest {
			t.Errorf("Failed lookup for %q should degrade to neutral, got %f", kw, signal.AverageInterest)
		}
	}
}
