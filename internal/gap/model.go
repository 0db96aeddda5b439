package gap

import "time"

// VideoInfo holds per-video statistics for a ranked search result.
type VideoInfo struct {
	VideoID         string    `json:"video_id"`         // Platform video identifier
	Title           string    `json:"title"`            // Video title
	ChannelID       string    `json:"channel_id"`       // Owning channel identifier
	ChannelTitle    string    `json:"channel_title"`    // Owning channel display name
	PublishedAt     time.Time `json:"published_at"`     // Publish timestamp (UTC)
	ViewCount       int64     `json:"view_count"`       // Total views
	LikeCount       int64     `json:"like_count"`       // Total likes
	CommentCount    int64     `json:"comment_count"`    // Total comments
	SubscriberCount int64     `json:"subscriber_count"` // Channel subscribers, 0 when unknown
}

// EngagementRate returns likes as a percentage of views (0 on zero views).
func (v VideoInfo) EngagementRate() float64 {
	if v.ViewCount == 0 {
		return 0
	}
	return float64(v.LikeCount) / float64(v.ViewCount) * 100
}

// AgeDays returns the video age in whole days.
func (v VideoInfo) AgeDays() int {
	return int(time.Since(v.PublishedAt).Hours() / 24)
}

// ViewsPerDay returns average daily views since publication.
func (v VideoInfo) ViewsPerDay() float64 {
	age := v.AgeDays()
	if age == 0 {
		return float64(v.ViewCount)
	}
	return float64(v.ViewCount) / float64(age)
}

// IsSmallChannel reports whether the owning channel is below the small
// channel subscriber threshold.
func (v VideoInfo) IsSmallChannel() bool {
	return v.SubscriberCount < SmallChannelSubscriberThreshold
}

// KeywordSuggestion is a single autocomplete suggestion. Position is the
// oracle's own ranking (1 = most prominent) and is never re-derived.
type KeywordSuggestion struct {
	Keyword  string `json:"keyword"`
	Position int    `json:"position"`
	Source   string `json:"source"`
}

// InterestPoint is one sample of a trend interest time series.
type InterestPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// TrendSignal summarizes public search interest for a keyword.
type TrendSignal struct {
	Keyword          string          `json:"keyword"`
	InterestOverTime []InterestPoint `json:"interest_over_time,omitempty"`
	AverageInterest  float64         `json:"average_interest"` // 0-100
	Direction        float64         `json:"trend_direction"`  // percent delta, second half vs first half
	PeakPeriod       string          `json:"peak_period,omitempty"`
}

// IsRising reports whether interest grew by more than the rising threshold.
func (t TrendSignal) IsRising() bool {
	return t.Direction > TrendRisingThreshold
}

// IsFalling reports whether interest dropped by more than the falling threshold.
func (t TrendSignal) IsFalling() bool {
	return t.Direction < TrendFallingThreshold
}

// Arrow returns a direction glyph for terminal display.
func (t TrendSignal) Arrow() string {
	switch {
	case t.IsRising():
		return "↗"
	case t.IsFalling():
		return "↘"
	default:
		return "→"
	}
}

// NeutralTrend returns the substitute signal used when no trend provider
// is available: neutral interest, flat direction.
func NeutralTrend(keyword string) *TrendSignal {
	return &TrendSignal{Keyword: keyword, AverageInterest: DefaultInterest, Direction: 0}
}

// DemandMetrics holds the demand-side inputs for a keyword.
type DemandMetrics struct {
	TrendIndex        float64 `json:"trend_index"`         // 0-100 interest index
	AvgViewsTop10     float64 `json:"avg_views_top_10"`    // mean views across the top-ranked videos
	TotalViewsTop10   int64   `json:"total_views_top_10"`  // summed views across the top-ranked videos
	AvgEngagementRate float64 `json:"avg_engagement_rate"` // mean engagement percent
}

// SupplyMetrics holds the supply-side inputs for a keyword. Higher derived
// scores mean a more saturated market.
type SupplyMetrics struct {
	VideosLast30Days      int     `json:"videos_last_30_days"`
	VideosLast7Days       int     `json:"videos_last_7_days"`
	AvgChannelSubscribers float64 `json:"avg_channel_subscribers"`
	SmallChannelsInTop10  int     `json:"small_channels_in_top_10"`
	AvgVideoAgeDays       float64 `json:"avg_video_age_days"`
}

// HasSmallChannelWins reports whether enough small channels rank in the
// top set to signal a winnable keyword.
func (s SupplyMetrics) HasSmallChannelWins() bool {
	return s.SmallChannelsInTop10 >= SmallChannelWinsThreshold
}

// HasOldVideoDominance reports whether the top set is dominated by videos
// older than a year.
func (s SupplyMetrics) HasOldVideoDominance() bool {
	return s.AvgVideoAgeDays > OldVideoAgeDays
}

// KeywordAnalysis is the aggregate analysis record for one keyword. The
// gap score, rating, and insights are derived on every call from the
// stored inputs and are never cached on the record.
type KeywordAnalysis struct {
	ID          string              `json:"id"`
	Keyword     string              `json:"keyword"`
	Suggestions []KeywordSuggestion `json:"suggestions,omitempty"`
	TopVideos   []VideoInfo         `json:"top_videos,omitempty"`
	Trend       *TrendSignal        `json:"trend,omitempty"`
	Demand      *DemandMetrics      `json:"demand,omitempty"`
	Supply      *SupplyMetrics      `json:"supply,omitempty"`
	AnalyzedAt  time.Time           `json:"analyzed_at"`
}
