package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gapscout/internal/gap"
	"gapscout/internal/logger"
	"gapscout/internal/ratelimit"
	"gapscout/internal/store"
)

const (
	exploreURL  = "https://trends.google.com/trends/api/explore"
	timelineURL = "https://trends.google.com/trends/api/widgetdata/multiline"

	// The trends endpoints restrict video-search interest via this
	// property filter.
	videoSearchProperty = "youtube"
)

// Client implements Provider against the public trends JSON endpoints.
// Each lookup is a two-step exchange: an explore request yields a widget
// token, the widget request yields the interest timeline.
type Client struct {
	client   *http.Client
	cache    *store.Store
	limiter  ratelimit.Waiter
	language string
	timezone int
}

// NewClient creates a trends client. cache may be nil to disable caching;
// limiter may be nil for unlimited calls.
func NewClient(cache *store.Store, limiter ratelimit.Waiter, language string) *Client {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	if language == "" {
		language = "en-US"
	}
	return &Client{
		client:   &http.Client{Timeout: 25 * time.Second},
		cache:    cache,
		limiter:  limiter,
		language: language,
		timezone: 360,
	}
}

// Interest fetches the trend signal for a keyword over a timeframe
// (e.g. "today 12-m"). Results are cached per keyword and timeframe;
// useCache false skips the cache read but still refreshes the entry.
func (c *Client) Interest(ctx context.Context, keyword, timeframe string, useCache bool) (*gap.TrendSignal, error) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	cacheID := fmt.Sprintf("%s_%s", keyword, timeframe)

	if useCache && c.cache != nil {
		var cached gap.TrendSignal
		if hit, err := c.cache.Get(store.CategoryTrends, cacheID, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	c.limiter.Wait("trends")

	token, request, err := c.exploreWidget(ctx, keyword, timeframe)
	if err != nil {
		return nil, err
	}

	series, err := c.timeline(ctx, token, request)
	if err != nil {
		return nil, err
	}

	signal := ComputeSignal(keyword, series)

	if c.cache != nil {
		if err := c.cache.Set(store.CategoryTrends, cacheID, signal, 0); err != nil {
			logger.Warn("Failed to cache trend signal", "keyword", keyword, "error", err.Error())
		}
	}

	logger.Debug("Fetched trend signal", "keyword", keyword,
		"average_interest", signal.AverageInterest, "direction", signal.Direction)
	return signal, nil
}

// Compare fetches signals for up to five keywords, degrading any failed
// lookup to a neutral signal.
func (c *Client) Compare(ctx context.Context, keywords []string, timeframe string, useCache bool) (map[string]*gap.TrendSignal, error) {
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}

	results := make(map[string]*gap.TrendSignal, len(keywords))
	for _, kw := range keywords {
		signal, err := c.Interest(ctx, kw, timeframe, useCache)
		if err != nil {
			logger.Warn("Trend comparison degraded to neutral", "keyword", kw, "error", err.Error())
			signal = gap.NeutralTrend(kw)
		}
		results[kw] = signal
	}
	return results, nil
}

// exploreWidget resolves the timeline widget token for a keyword.
func (c *Client) exploreWidget(ctx context.Context, keyword, timeframe string) (token, request string, err error) {
	exploreReq := map[string]any{
		"comparisonItem": []map[string]any{
			{"keyword": keyword, "geo": "", "time": timeframe},
		},
		"category": 0,
		"property": videoSearchProperty,
	}
	reqJSON, _ := json.Marshal(exploreReq)

	params := url.Values{}
	params.Set("hl", c.language)
	params.Set("tz", strconv.Itoa(c.timezone))
	params.Set("req", string(reqJSON))

	body, err := c.get(ctx, exploreURL+"?"+params.Encode())
	if err != nil {
		return "", "", err
	}

	var explore struct {
		Widgets []struct {
			ID      string          `json:"id"`
			Token   string          `json:"token"`
			Request json.RawMessage `json:"request"`
		} `json:"widgets"`
	}
	if err := json.Unmarshal(body, &explore); err != nil {
		return "", "", fmt.Errorf("failed to parse explore response: %w", err)
	}

	for _, widget := range explore.Widgets {
		if widget.ID == "TIMESERIES" {
			return widget.Token, string(widget.Request), nil
		}
	}
	return "", "", fmt.Errorf("no timeline widget in explore response for %q", keyword)
}

// timeline fetches and parses the interest-over-time widget data.
func (c *Client) timeline(ctx context.Context, token, request string) ([]gap.InterestPoint, error) {
	params := url.Values{}
	params.Set("hl", c.language)
	params.Set("tz", strconv.Itoa(c.timezone))
	params.Set("token", token)
	params.Set("req", request)

	body, err := c.get(ctx, timelineURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var timeline struct {
		Default struct {
			TimelineData []struct {
				Time  string `json:"time"`
				Value []int  `json:"value"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &timeline); err != nil {
		return nil, fmt.Errorf("failed to parse timeline response: %w", err)
	}

	series := make([]gap.InterestPoint, 0, len(timeline.Default.TimelineData))
	for _, point := range timeline.Default.TimelineData {
		if len(point.Value) == 0 {
			continue
		}
		epoch, err := strconv.ParseInt(point.Time, 10, 64)
		if err != nil {
			continue
		}
		series = append(series, gap.InterestPoint{
			Date:  time.Unix(epoch, 0).UTC(),
			Value: point.Value[0],
		})
	}
	return series, nil
}

// get performs a request and strips the anti-JSON-hijacking prefix the
// trends endpoints prepend (")]}'," plus optional newline).
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create trends request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute trends request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trends response: %w", err)
	}

	text := string(body)
	if idx := strings.IndexAny(text, "{["); idx > 0 {
		text = text[idx:]
	}
	return []byte(text), nil
}
