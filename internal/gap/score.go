package gap

import (
	"fmt"
	"math"
)

// Rating is the three-bucket classification of a gap score.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingPoor      Rating = "poor"
)

// RatingForScore buckets a gap score against the documented thresholds.
// This is the single source of truth for rating derivation.
func RatingForScore(score float64) Rating {
	switch {
	case score >= ExcellentThreshold:
		return RatingExcellent
	case score >= GoodThreshold:
		return RatingGood
	default:
		return RatingPoor
	}
}

// Emoji returns the traffic-light glyph for a rating.
func (r Rating) Emoji() string {
	switch r {
	case RatingExcellent:
		return "🟢"
	case RatingGood:
		return "🟡"
	default:
		return "🔴"
	}
}

// Score computes the demand sub-score (0-10) from trend interest and
// top-ranked view volume. View volume dominates, a strong trend still
// matters.
func (d DemandMetrics) Score() float64 {
	viewScore := math.Min(MaxScore, math.Log10(math.Max(1, d.AvgViewsTop10))/ViewScoreLogDivisor*10)
	trendScore := d.TrendIndex / 10
	return trendScore*DemandTrendWeight + viewScore*DemandViewWeight
}

// Score computes the supply sub-score (0-10). Higher means a more
// saturated, harder-to-enter market.
func (s SupplyMetrics) Score() float64 {
	volumeScore := math.Min(MaxScore, math.Log10(math.Max(1, float64(s.VideosLast30Days)+1))*3)
	channelScore := math.Min(MaxScore, math.Log10(math.Max(1, s.AvgChannelSubscribers))/ChannelScoreLogDivisor*10)
	return volumeScore*SupplyVolumeWeight + channelScore*SupplyChannelWeight
}

// GapScore computes the composite opportunity score (0-10).
//
// No demand or supply data means no claim of opportunity (0). Zero
// measurable supply is defined as maximum opportunity (10), bypassing the
// ratio to avoid division noise near zero. Otherwise the demand/supply
// ratio is rescaled into 0-10 and the bonus multipliers compound on top.
func (a *KeywordAnalysis) GapScore() float64 {
	if a.Demand == nil || a.Supply == nil {
		return 0
	}

	supplyScore := a.Supply.Score()
	if supplyScore == 0 {
		return MaxScore
	}

	base := a.Demand.Score() / math.Max(0.1, supplyScore) * 5

	bonuses := 1.0
	if a.Supply.HasOldVideoDominance() {
		bonuses *= BonusOldVideoDominance
	}
	if a.Supply.HasSmallChannelWins() {
		bonuses *= BonusSmallChannelWins
	}
	if a.Trend != nil && a.Trend.IsRising() {
		bonuses *= BonusRisingTrend
	}

	return math.Min(MaxScore, base*bonuses)
}

// Rating buckets the current gap score.
func (a *KeywordAnalysis) Rating() Rating {
	return RatingForScore(a.GapScore())
}

// Insights generates the ordered human-readable findings for this
// analysis. Each rule fires independently and nothing is emitted for
// absent inputs.
func (a *KeywordAnalysis) Insights() []string {
	insights := []string{}
	if a.Supply == nil || a.Demand == nil {
		return insights
	}

	if a.Supply.HasOldVideoDominance() {
		insights = append(insights, fmt.Sprintf(
			"Top %d dominated by old videos (avg %.0f days) - opportunity for fresh content!",
			TopVideoCount, a.Supply.AvgVideoAgeDays))
	}

	if a.Supply.HasSmallChannelWins() {
		insights = append(insights, fmt.Sprintf(
			"%d small channels (<10k subs) in Top %d - you can compete!",
			a.Supply.SmallChannelsInTop10, TopVideoCount))
	}

	if a.Trend != nil {
		if a.Trend.IsRising() {
			insights = append(insights, fmt.Sprintf(
				"Trend: %s Rising (+%.0f%% vs baseline period)", a.Trend.Arrow(), a.Trend.Direction))
		} else if a.Trend.IsFalling() {
			insights = append(insights, fmt.Sprintf(
				"Trend: %s Falling (%.0f%% vs baseline period)", a.Trend.Arrow(), a.Trend.Direction))
		}
	}

	if a.Demand.AvgEngagementRate > HighEngagementRate {
		insights = append(insights, fmt.Sprintf(
			"High engagement rate (%.1f%%) - audience is active!", a.Demand.AvgEngagementRate))
	}

	if a.Supply.VideosLast30Days < LowUploadVolume {
		insights = append(insights, fmt.Sprintf(
			"Low upload volume (%d videos/month) - not saturated!", a.Supply.VideosLast30Days))
	}

	return insights
}
