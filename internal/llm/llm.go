// Package llm generates optional content-strategy commentary for a
// scored keyword using the Gemini API.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gapscout/internal/gap"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the default Gemini model for strategy notes.
	DefaultModel = "gemini-flash-lite-latest"

	// StrategyPromptTemplate frames the scored metrics for the model.
	StrategyPromptTemplate = `You are a YouTube content strategist. A keyword was scored for content opportunity (higher gap score = more demand than supply).

Keyword: %s
Gap score: %.1f/10 (%s)
%s
Write 3-4 concise, actionable recommendations for a creator considering this keyword: suggested angle, format, and how to stand out against the current top results. Plain text, no preamble.`
)

// Client wraps the Gemini SDK for strategy commentary.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a Gemini-backed client. The API key comes from the
// GEMINI_API_KEY environment variable or the gemini.api_key config key.
func NewClient(ctx context.Context, modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = viper.GetString("gemini.api_key")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or gemini.api_key in config file")
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{modelName: modelName, gClient: gClient}, nil
}

// StrategyNotes asks the model for creator recommendations based on the
// scored analysis.
func (c *Client) StrategyNotes(ctx context.Context, analysis *gap.KeywordAnalysis) (string, error) {
	prompt := fmt.Sprintf(StrategyPromptTemplate,
		analysis.Keyword,
		analysis.GapScore(),
		string(analysis.Rating()),
		BuildContext(analysis))

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate strategy notes: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// BuildContext flattens the analysis metrics into prompt lines. Missing
// sections are simply omitted.
func BuildContext(analysis *gap.KeywordAnalysis) string {
	var b strings.Builder
	if analysis.Demand != nil {
		fmt.Fprintf(&b, "Demand: trend index %.0f, avg views of top results %.0f, avg engagement %.1f%%\n",
			analysis.Demand.TrendIndex, analysis.Demand.AvgViewsTop10, analysis.Demand.AvgEngagementRate)
	}
	if analysis.Supply != nil {
		fmt.Fprintf(&b, "Supply: %d uploads in last 30 days, avg channel size %.0f subscribers, %d small channels in top results\n",
			analysis.Supply.VideosLast30Days, analysis.Supply.AvgChannelSubscribers, analysis.Supply.SmallChannelsInTop10)
	}
	if analysis.Trend != nil {
		fmt.Fprintf(&b, "Trend: %+.1f%% over the period, peak in %s\n",
			analysis.Trend.Direction, analysis.Trend.PeakPeriod)
	}
	for _, insight := range analysis.Insights() {
		fmt.Fprintf(&b, "Signal: %s\n", insight)
	}
	return b.String()
}
