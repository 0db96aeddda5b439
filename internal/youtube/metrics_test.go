package youtube

import (
	"math"
	"testing"
	"time"

	"gapscout/internal/gap"
)

func video(views, likes, comments, subs int64, ageDays int) gap.VideoInfo {
	return gap.VideoInfo{
		VideoID:         "v",
		ChannelID:       "c",
		PublishedAt:     time.Now().UTC().AddDate(0, 0, -ageDays),
		ViewCount:       views,
		LikeCount:       likes,
		CommentCount:    comments,
		SubscriberCount: subs,
	}
}

func TestBuildDemandEmpty(t *testing.T) {
	m := BuildDemand(72.5, nil)
	if m.TrendIndex != 72.5 {
		t.Errorf("TrendIndex = %v, want 72.5", m.TrendIndex)
	}
	if m.TotalViewsTop10 != 0 || m.AvgViewsTop10 != 0 || m.AvgEngagementRate != 0 {
		t.Errorf("empty demand should have zero video stats, got %+v", m)
	}
}

func TestBuildDemandAverages(t *testing.T) {
	videos := []gap.VideoInfo{
		video(100_000, 4_000, 1_000, 0, 30), // engagement 5%
		video(300_000, 2_000, 1_000, 0, 30), // engagement 1%
	}

	m := BuildDemand(50, videos)

	if m.TotalViewsTop10 != 400_000 {
		t.Errorf("TotalViewsTop10 = %d, want 400000", m.TotalViewsTop10)
	}
	if m.AvgViewsTop10 != 200_000 {
		t.Errorf("AvgViewsTop10 = %v, want 200000", m.AvgViewsTop10)
	}
	if math.Abs(m.AvgEngagementRate-3.0) > 0.001 {
		t.Errorf("AvgEngagementRate = %v, want 3.0", m.AvgEngagementRate)
	}
}

func TestBuildSupplyEmpty(t *testing.T) {
	m := BuildSupply(42, 7, nil)
	if m.VideosLast30Days != 42 || m.VideosLast7Days != 7 {
		t.Errorf("upload counts not carried: %+v", m)
	}
	if m.AvgChannelSubscribers != 0 || m.SmallChannelsInTop10 != 0 {
		t.Errorf("empty supply should have zero competition stats, got %+v", m)
	}
}

func TestBuildSupplyCompetitionStats(t *testing.T) {
	videos := []gap.VideoInfo{
		video(0, 0, 0, 5_000, 100),   // small channel
		video(0, 0, 0, 8_000, 500),   // small channel, old video
		video(0, 0, 0, 900_000, 600), // old video
	}

	m := BuildSupply(10, 2, videos)

	if m.SmallChannelsInTop10 != 2 {
		t.Errorf("SmallChannelsInTop10 = %d, want 2", m.SmallChannelsInTop10)
	}
	wantSubs := float64(5_000+8_000+900_000) / 3
	if math.Abs(m.AvgChannelSubscribers-wantSubs) > 0.001 {
		t.Errorf("AvgChannelSubscribers = %v, want %v", m.AvgChannelSubscribers, wantSubs)
	}
	if m.AvgVideoAgeDays < 395 || m.AvgVideoAgeDays > 405 {
		t.Errorf("AvgVideoAgeDays = %v, want ~400", m.AvgVideoAgeDays)
	}
	if !m.HasSmallChannelWins() {
		t.Error("expected small channel wins with 2 small channels in top results")
	}
	if !m.HasOldVideoDominance() {
		t.Error("expected old video dominance with avg age ~400 days")
	}
}

func TestBuildSupplyNoBonusSignals(t *testing.T) {
	videos := []gap.VideoInfo{
		video(0, 0, 0, 500_000, 30),
		video(0, 0, 0, 9_000, 60),
	}

	m := BuildSupply(100, 20, videos)

	if m.HasSmallChannelWins() {
		t.Error("one small channel should not count as small channel wins")
	}
	if m.HasOldVideoDominance() {
		t.Error("fresh videos should not count as old video dominance")
	}
}
