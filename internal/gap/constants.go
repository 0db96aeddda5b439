package gap

// Tuning constants for the gap scoring model. Every consumer derives
// ratings and bonuses from these values; they are not restated elsewhere.
const (
	// Rating thresholds.
	ExcellentThreshold = 7.0 // score >= this is "excellent"
	GoodThreshold      = 4.0 // score >= this is "good", below is "poor"
	MaxScore           = 10.0

	// Trend classification.
	TrendRisingThreshold  = 5.0  // percent change to consider "rising"
	TrendFallingThreshold = -5.0 // percent change to consider "falling"
	DefaultInterest       = 50.0 // neutral interest when trends are unavailable

	// Supply classification.
	SmallChannelSubscriberThreshold = 10_000 // channels below this are "small"
	OldVideoAgeDays                 = 365    // videos older than this signal stale competition
	SupplyLookbackDays              = 30
	RecentVideoDays                 = 7

	// Demand score weights. Must sum to 1.0.
	DemandTrendWeight = 0.4
	DemandViewWeight  = 0.6

	// Supply score weights. Must sum to 1.0.
	SupplyVolumeWeight  = 0.5
	SupplyChannelWeight = 0.5

	// Gap score bonuses, multiplicative and independently triggered.
	BonusOldVideoDominance = 1.2
	BonusSmallChannelWins  = 1.15
	BonusRisingTrend       = 1.1

	// Minimum small channels in the top set to trigger the bonus.
	SmallChannelWinsThreshold = 2

	// Insight thresholds.
	HighEngagementRate = 5.0 // percent engagement considered "high"
	LowUploadVolume    = 50  // videos/month considered "low competition"

	// View score normalization: log10(10M) = 7, so 10M average views
	// saturates the view component.
	ViewScoreLogDivisor = 7

	// Channel score normalization: log10(1M) = 6.
	ChannelScoreLogDivisor = 6

	// Number of top-ranked videos used for demand/supply analysis.
	TopVideoCount = 10
)
