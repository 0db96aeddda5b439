package youtube

import "gapscout/internal/gap"

// BuildDemand computes demand metrics from a trend index and the
// top-ranked videos for a keyword. videos may be empty.
func BuildDemand(trendIndex float64, videos []gap.VideoInfo) *gap.DemandMetrics {
	metrics := &gap.DemandMetrics{TrendIndex: trendIndex}
	if len(videos) == 0 {
		return metrics
	}

	var totalViews int64
	var totalEngagement float64
	for _, v := range videos {
		totalViews += v.ViewCount
		totalEngagement += v.EngagementRate()
	}

	metrics.TotalViewsTop10 = totalViews
	metrics.AvgViewsTop10 = float64(totalViews) / float64(len(videos))
	metrics.AvgEngagementRate = totalEngagement / float64(len(videos))
	return metrics
}

// BuildSupply computes supply metrics from recent upload counts and the
// top-ranked videos with subscriber counts attached.
func BuildSupply(videosLast30Days, videosLast7Days int, topVideos []gap.VideoInfo) *gap.SupplyMetrics {
	metrics := &gap.SupplyMetrics{
		VideosLast30Days: videosLast30Days,
		VideosLast7Days:  videosLast7Days,
	}
	if len(topVideos) == 0 {
		return metrics
	}

	var totalSubs int64
	var totalAge float64
	smallChannels := 0
	for _, v := range topVideos {
		totalSubs += v.SubscriberCount
		totalAge += float64(v.AgeDays())
		if v.IsSmallChannel() {
			smallChannels++
		}
	}

	metrics.AvgChannelSubscribers = float64(totalSubs) / float64(len(topVideos))
	metrics.AvgVideoAgeDays = totalAge / float64(len(topVideos))
	metrics.SmallChannelsInTop10 = smallChannels
	return metrics
}
