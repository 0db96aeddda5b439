package gap

import (
	"math"
	"time"
)

// Record flattens an analysis into the stable export shape consumed by
// the CSV/JSON exporters and external tooling. Scores are recomputed from
// the stored inputs, never read from a cached field.
func (a *KeywordAnalysis) Record() map[string]any {
	rec := map[string]any{
		"keyword":          a.Keyword,
		"gap_score":        round2(a.GapScore()),
		"gap_rating":       string(a.Rating()),
		"suggestion_count": len(a.Suggestions),
		"insights":         a.Insights(),
		"analyzed_at":      a.AnalyzedAt.UTC().Format(time.RFC3339),
	}

	if a.Demand != nil {
		rec["demand_score"] = round2(a.Demand.Score())
		rec["avg_views_top_10"] = int64(a.Demand.AvgViewsTop10)
		rec["avg_engagement_rate"] = round2(a.Demand.AvgEngagementRate)
	}
	if a.Supply != nil {
		rec["supply_score"] = round2(a.Supply.Score())
		rec["videos_last_30_days"] = a.Supply.VideosLast30Days
		rec["videos_last_7_days"] = a.Supply.VideosLast7Days
		rec["avg_channel_size"] = int64(a.Supply.AvgChannelSubscribers)
		rec["small_channels_in_top_10"] = a.Supply.SmallChannelsInTop10
		rec["avg_video_age_days"] = int(a.Supply.AvgVideoAgeDays)
	}
	if a.Trend != nil {
		rec["trend_index"] = round2(a.Trend.AverageInterest)
		rec["trend_direction"] = round2(a.Trend.Direction)
	}

	return rec
}

// RecordColumns is the canonical column order for tabular exports.
var RecordColumns = []string{
	"keyword",
	"gap_score",
	"gap_rating",
	"demand_score",
	"supply_score",
	"trend_index",
	"trend_direction",
	"avg_views_top_10",
	"avg_engagement_rate",
	"videos_last_30_days",
	"videos_last_7_days",
	"avg_channel_size",
	"small_channels_in_top_10",
	"avg_video_age_days",
	"suggestion_count",
	"analyzed_at",
	"insights",
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
