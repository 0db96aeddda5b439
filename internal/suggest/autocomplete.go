package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// autocompleteBaseURL is YouTube's public autocomplete endpoint. It needs
// no API key and responds with a JSONP payload.
const autocompleteBaseURL = "https://suggestqueries-clients6.youtube.com/complete/search"

// jsonpPayload extracts the JSON array from a JSONP wrapper like
// window.google.ac.h([...]).
var jsonpPayload = regexp.MustCompile(`(?s)\[.*\]`)

// AutocompleteClient implements Oracle against the public autocomplete
// endpoint.
type AutocompleteClient struct {
	client   *http.Client
	language string
	region   string
}

// NewAutocompleteClient creates a client for the given language (hl) and
// region (gl) codes.
func NewAutocompleteClient(language, region string) *AutocompleteClient {
	return &AutocompleteClient{
		client:   &http.Client{Timeout: 10 * time.Second},
		language: language,
		region:   region,
	}
}

// Fetch returns the raw suggestion strings for a query, in the oracle's
// own order.
func (c *AutocompleteClient) Fetch(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("client", "youtube")
	params.Set("ds", "yt")
	params.Set("q", query)
	params.Set("hl", c.language)
	params.Set("gl", c.region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, autocompleteBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create autocomplete request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch autocomplete suggestions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read autocomplete response: %w", err)
	}

	return ParseJSONP(body)
}

// ParseJSONP pulls the suggestion strings out of the JSONP response.
// The payload structure is [query, [[suggestion, ...], ...], ...].
func ParseJSONP(body []byte) ([]string, error) {
	match := jsonpPayload.Find(body)
	if match == nil {
		return nil, fmt.Errorf("no JSON payload in autocomplete response")
	}

	var data []json.RawMessage
	if err := json.Unmarshal(match, &data); err != nil {
		return nil, fmt.Errorf("failed to parse autocomplete payload: %w", err)
	}
	if len(data) < 2 {
		return nil, nil
	}

	var items [][]json.RawMessage
	if err := json.Unmarshal(data[1], &items); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion list: %w", err)
	}

	suggestions := make([]string, 0, len(items))
	for _, item := range items {
		if len(item) == 0 {
			continue
		}
		var text string
		if err := json.Unmarshal(item[0], &text); err != nil {
			continue
		}
		suggestions = append(suggestions, text)
	}

	return suggestions, nil
}
