package gap

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestDemandWeightsSumToOne(t *testing.T) {
	sum := DemandTrendWeight + DemandViewWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Demand weights should sum to 1.0, got %f", sum)
	}
}

func TestSupplyWeightsSumToOne(t *testing.T) {
	sum := SupplyVolumeWeight + SupplyChannelWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Supply weights should sum to 1.0, got %f", sum)
	}
}

func TestRatingThresholdOrdering(t *testing.T) {
	if ExcellentThreshold <= GoodThreshold {
		t.Errorf("Excellent threshold (%f) must be strictly greater than good threshold (%f)",
			ExcellentThreshold, GoodThreshold)
	}
}

func TestDemandScoreBounds(t *testing.T) {
	cases := []DemandMetrics{
		{},
		{TrendIndex: 100, AvgViewsTop10: 1e12},
		{TrendIndex: 0, AvgViewsTop10: 1},
		{TrendIndex: 50, AvgViewsTop10: 12345},
	}
	for _, d := range cases {
		score := d.Score()
		if score < 0 || score > MaxScore {
			t.Errorf("Demand score %f out of [0, 10] for %+v", score, d)
		}
	}
}

func TestSupplyScoreBounds(t *testing.T) {
	cases := []SupplyMetrics{
		{},
		{VideosLast30Days: 1_000_000, AvgChannelSubscribers: 1e12},
		{VideosLast30Days: 1, AvgChannelSubscribers: 1},
	}
	for _, s := range cases {
		score := s.Score()
		if score < 0 || score > MaxScore {
			t.Errorf("Supply score %f out of [0, 10] for %+v", score, s)
		}
	}
}

func TestGapScoreNoDataRule(t *testing.T) {
	a := &KeywordAnalysis{Keyword: "test"}
	if score := a.GapScore(); score != 0 {
		t.Errorf("GapScore without demand/supply should be 0, got %f", score)
	}

	a.Demand = &DemandMetrics{TrendIndex: 90, AvgViewsTop10: 1e6}
	if score := a.GapScore(); score != 0 {
		t.Errorf("GapScore without supply should be 0, got %f", score)
	}
}

func TestGapScoreZeroSupplyRule(t *testing.T) {
	a := &KeywordAnalysis{
		Keyword: "test",
		Demand:  &DemandMetrics{TrendIndex: 1, AvgViewsTop10: 1},
		Supply:  &SupplyMetrics{},
	}
	if s := a.Supply.Score(); s != 0 {
		t.Fatalf("Empty supply metrics should score 0, got %f", s)
	}
	if score := a.GapScore(); score != MaxScore {
		t.Errorf("Zero supply should yield maximum gap score, got %f", score)
	}
}

func TestDemandScoreMonotonicInViews(t *testing.T) {
	prev := -1.0
	for _, views := range []float64{0, 100, 10_000, 1_000_000, 100_000_000} {
		d := DemandMetrics{TrendIndex: 40, AvgViewsTop10: views}
		score := d.Score()
		if score < prev {
			t.Errorf("Demand score decreased from %f to %f when views rose to %f", prev, score, views)
		}
		prev = score
	}
}

func TestSupplyScoreMonotonicInUploads(t *testing.T) {
	prev := -1.0
	for _, uploads := range []int{0, 10, 100, 1000, 10000} {
		s := SupplyMetrics{VideosLast30Days: uploads, AvgChannelSubscribers: 5000}
		score := s.Score()
		if score < prev {
			t.Errorf("Supply score decreased from %f to %f when uploads rose to %d", prev, score, uploads)
		}
		prev = score
	}
}

func TestGapScoreBonusCompounding(t *testing.T) {
	demand := &DemandMetrics{TrendIndex: 50, AvgViewsTop10: 100_000}
	supply := &SupplyMetrics{
		VideosLast30Days:      200,
		AvgChannelSubscribers: 500_000,
		SmallChannelsInTop10:  3,   // small-channel wins
		AvgVideoAgeDays:       400, // old-video dominance
	}
	trend := &TrendSignal{Keyword: "test", Direction: 12} // rising

	a := &KeywordAnalysis{Keyword: "test", Demand: demand, Supply: supply, Trend: trend}

	base := demand.Score() / math.Max(0.1, supply.Score()) * 5
	want := math.Min(MaxScore, base*BonusOldVideoDominance*BonusSmallChannelWins*BonusRisingTrend)

	if got := a.GapScore(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected compounded score %f, got %f", want, got)
	}
}

func TestRatingBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Rating
	}{
		{6.999, RatingGood},
		{7.0, RatingExcellent},
		{3.999, RatingPoor},
		{4.0, RatingGood},
		{0, RatingPoor},
		{10, RatingExcellent},
	}
	for _, c := range cases {
		if got := RatingForScore(c.score); got != c.want {
			t.Errorf("RatingForScore(%f) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestGapScoreEndToEndScenario(t *testing.T) {
	a := &KeywordAnalysis{
		Keyword: "seo tips",
		Demand: &DemandMetrics{
			TrendIndex:        80,
			AvgViewsTop10:     1_000_000,
			TotalViewsTop10:   10_000_000,
			AvgEngagementRate: 5.0,
		},
		Supply: &SupplyMetrics{
			VideosLast30Days:      100,
			AvgChannelSubscribers: 100_000,
			SmallChannelsInTop10:  2,
			AvgVideoAgeDays:       180,
		},
		Trend: &TrendSignal{Keyword: "seo tips", AverageInterest: 80, Direction: 10},
	}

	demandScore := a.Demand.Score()
	if math.Abs(demandScore-8.3429) > 0.001 {
		t.Errorf("Expected demand score ≈8.343, got %f", demandScore)
	}

	supplyScore := a.Supply.Score()
	if math.Abs(supplyScore-7.1731) > 0.001 {
		t.Errorf("Expected supply score ≈7.173, got %f", supplyScore)
	}

	// Small-channel wins (×1.15) and rising trend (×1.1) apply; old-video
	// dominance does not (180 < 365).
	score := a.GapScore()
	if math.Abs(score-7.3564) > 0.005 {
		t.Errorf("Expected gap score ≈7.356, got %f", score)
	}
	if a.Rating() != RatingExcellent {
		t.Errorf("Expected excellent rating, got %s", a.Rating())
	}
}

func TestInsightsEmptyWithoutData(t *testing.T) {
	a := &KeywordAnalysis{Keyword: "test"}
	if insights := a.Insights(); len(insights) != 0 {
		t.Errorf("Expected no insights without data, got %v", insights)
	}
}

func TestInsightsRules(t *testing.T) {
	a := &KeywordAnalysis{
		Keyword: "test",
		Demand:  &DemandMetrics{TrendIndex: 60, AvgViewsTop10: 50_000, AvgEngagementRate: 6.5},
		Supply: &SupplyMetrics{
			VideosLast30Days:      20,
			AvgChannelSubscribers: 4000,
			SmallChannelsInTop10:  4,
			AvgVideoAgeDays:       500,
		},
		Trend: &TrendSignal{Keyword: "test", Direction: 25},
	}

	insights := a.Insights()
	if len(insights) != 5 {
		t.Fatalf("Expected all 5 insights to fire, got %d: %v", len(insights), insights)
	}

	checks := []string{"old videos", "small channels", "Rising", "engagement", "upload volume"}
	for i, substr := range checks {
		if !strings.Contains(insights[i], substr) {
			t.Errorf("Insight %d should mention %q, got %q", i, substr, insights[i])
		}
	}
}

func TestInsightsFallingTrend(t *testing.T) {
	a := &KeywordAnalysis{
		Keyword: "test",
		Demand:  &DemandMetrics{TrendIndex: 20, AvgViewsTop10: 1000},
		Supply:  &SupplyMetrics{VideosLast30Days: 80, AvgChannelSubscribers: 50_000},
		Trend:   &TrendSignal{Keyword: "test", Direction: -15},
	}

	var found bool
	for _, insight := range a.Insights() {
		if strings.Contains(insight, "Falling") {
			found = true
		}
	}
	if !found {
		t.Error("Expected a falling-trend insight")
	}
}

func TestRecordShape(t *testing.T) {
	a := &KeywordAnalysis{
		Keyword:    "test keyword",
		AnalyzedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Demand:     &DemandMetrics{TrendIndex: 50, AvgViewsTop10: 10_000},
		Supply:     &SupplyMetrics{VideosLast30Days: 30, AvgChannelSubscribers: 20_000},
		Trend:      &TrendSignal{Keyword: "test keyword", AverageInterest: 50},
	}

	rec := a.Record()

	if rec["keyword"] != "test keyword" {
		t.Errorf("Expected keyword field, got %v", rec["keyword"])
	}
	if rec["analyzed_at"] != "2025-06-01T12:00:00Z" {
		t.Errorf("Expected RFC3339 analyzed_at, got %v", rec["analyzed_at"])
	}
	if rec["gap_rating"] != string(RatingForScore(a.GapScore())) {
		t.Errorf("Record rating should match RatingForScore, got %v", rec["gap_rating"])
	}
	for _, key := range []string{"gap_score", "demand_score", "supply_score", "trend_index", "insights"} {
		if _, ok := rec[key]; !ok {
			t.Errorf("Record missing key %q", key)
		}
	}
}

func TestVideoInfoEngagementRate(t *testing.T) {
	v := VideoInfo{ViewCount: 0, LikeCount: 100}
	if rate := v.EngagementRate(); rate != 0 {
		t.Errorf("Zero views should give zero engagement, got %f", rate)
	}

	v = VideoInfo{ViewCount: 1000, LikeCount: 50}
	if rate := v.EngagementRate(); math.Abs(rate-5.0) > 1e-9 {
		t.Errorf("Expected 5%% engagement, got %f", rate)
	}
}

func TestVideoInfoIsSmallChannel(t *testing.T) {
	if !(VideoInfo{SubscriberCount: 9999}).IsSmallChannel() {
		t.Error("9999 subscribers should count as small")
	}
	if (VideoInfo{SubscriberCount: 10_000}).IsSmallChannel() {
		t.Error("10000 subscribers should not count as small")
	}
}

func TestNeutralTrend(t *testing.T) {
	trend := NeutralTrend("golang")
	if trend.AverageInterest != DefaultInterest || trend.Direction != 0 {
		t.Errorf("Neutral trend should be interest %f direction 0, got %+v", DefaultInterest, trend)
	}
	if trend.IsRising() || trend.IsFalling() {
		t.Error("Neutral trend should be neither rising nor falling")
	}
}
