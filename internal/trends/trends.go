// Package trends fetches public search-interest data and condenses a
// time series into a TrendSignal: average interest, a direction percent
// comparing the second half of the series to the first, and the peak
// period.
package trends

import (
	"context"

	"gapscout/internal/gap"
)

// DefaultTimeframe is the lookback window used when none is specified.
const DefaultTimeframe = "today 12-m"

// Provider fetches a trend signal for a keyword. Implementations return
// an error when the upstream source is unavailable; callers substitute
// gap.NeutralTrend rather than letting absence propagate into scoring.
type Provider interface {
	Interest(ctx context.Context, keyword, timeframe string, useCache bool) (*gap.TrendSignal, error)
}

// ComputeSignal condenses an interest time series into a TrendSignal.
// Direction compares the mean of the second half of the series against
// the mean of the first half, as a percent of the first half; a zero
// first-half mean yields direction 0 rather than a division blow-up.
func ComputeSignal(keyword string, series []gap.InterestPoint) *gap.TrendSignal {
	signal := &gap.TrendSignal{Keyword: keyword, InterestOverTime: series}
	if len(series) == 0 {
		return signal
	}

	var sum int
	peakIdx := 0
	for i, p := range series {
		sum += p.Value
		if p.Value > series[peakIdx].Value {
			peakIdx = i
		}
	}
	signal.AverageInterest = float64(sum) / float64(len(series))
	signal.PeakPeriod = series[peakIdx].Date.Format("January 2006")

	mid := len(series) / 2
	if mid == 0 {
		return signal
	}

	var firstSum, secondSum int
	for _, p := range series[:mid] {
		firstSum += p.Value
	}
	for _, p := range series[mid:] {
		secondSum += p.Value
	}

	firstAvg := float64(firstSum) / float64(mid)
	secondAvg := float64(secondSum) / float64(len(series)-mid)

	if firstAvg > 0 {
		signal.Direction = (secondAvg - firstAvg) / firstAvg * 100
	}

	return signal
}

// MockProvider implements Provider for testing.
type MockProvider struct {
	Signals map[string]*gap.TrendSignal
	Err     error
	Calls   int
}

// Interest returns the canned signal for a keyword, or the configured error.
func (m *MockProvider) Interest(ctx context.Context, keyword, timeframe string, useCache bool) (*gap.TrendSignal, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if signal, ok := m.Signals[keyword]; ok {
		return signal, nil
	}
	return gap.NeutralTrend(keyword), nil
}
