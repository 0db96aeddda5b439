// Package youtube wraps the YouTube Data API v3 for keyword research:
// ranked search, per-video statistics, and channel subscriber counts,
// with quota tracking and response caching.
package youtube

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gapscout/internal/gap"
	"gapscout/internal/logger"
	"gapscout/internal/ratelimit"
	"gapscout/internal/store"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// Quota unit costs per endpoint, per the Data API pricing table.
const (
	searchQuotaCost  = 100
	videoQuotaCost   = 1
	channelQuotaCost = 1

	// MaxBatchSize is the ID cap per details/channels request.
	MaxBatchSize = 50
)

// Search orderings accepted by SearchVideos.
const (
	OrderRelevance = "relevance"
	OrderDate      = "date"
	OrderViewCount = "viewCount"
)

// SearchResult is one ranked hit from a keyword search.
type SearchResult struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}

// Client is the Data API collaborator. All calls go through the "youtube"
// rate limiter and track approximate quota usage for the session.
type Client struct {
	service   *ytapi.Service
	cache     *store.Store
	limiter   ratelimit.Waiter
	quotaUsed atomic.Int64
}

// NewClient creates an API-key authenticated client. cache may be nil to
// disable caching; limiter may be nil for unlimited calls.
func NewClient(ctx context.Context, apiKey string, cache *store.Store, limiter ratelimit.Waiter) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{service: service, cache: cache, limiter: limiter}, nil
}

// QuotaUsed returns the approximate quota units consumed this session.
func (c *Client) QuotaUsed() int64 {
	return c.quotaUsed.Load()
}

func (c *Client) trackQuota(units int64) {
	c.quotaUsed.Add(units)
}

// SearchVideos searches for videos by keyword. publishedAfter may be the
// zero time to skip the date filter. Results are cached per query shape.
func (c *Client) SearchVideos(ctx context.Context, keyword string, maxResults int64, order string, publishedAfter time.Time, useCache bool) ([]SearchResult, error) {
	if maxResults > MaxBatchSize {
		maxResults = MaxBatchSize
	}
	cacheID := fmt.Sprintf("%s_%s_%d_%s", keyword, order, maxResults, publishedAfter.UTC().Format(time.RFC3339))

	if useCache && c.cache != nil {
		var cached []SearchResult
		if hit, err := c.cache.Get(store.CategorySearch, cacheID, &cached); err == nil && hit {
			return cached, nil
		}
	}

	c.limiter.Wait("youtube")

	call := c.service.Search.List([]string{"snippet"}).
		Q(keyword).
		Type("video").
		MaxResults(maxResults).
		Order(order).
		Context(ctx)
	if !publishedAfter.IsZero() {
		call = call.PublishedAfter(publishedAfter.UTC().Format(time.RFC3339))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed for %q: %w", keyword, err)
	}
	c.trackQuota(searchQuotaCost)

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		results = append(results, SearchResult{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
		})
	}

	if len(results) > 0 && c.cache != nil {
		if err := c.cache.Set(store.CategorySearch, cacheID, results, 0); err != nil {
			logger.Warn("Failed to cache search results", "keyword", keyword, "error", err.Error())
		}
	}

	return results, nil
}

// VideoDetails fetches statistics for the given video IDs, serving from
// the per-video cache where possible and batching the rest.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string, useCache bool) ([]gap.VideoInfo, error) {
	var results []gap.VideoInfo
	var uncached []string

	for _, id := range videoIDs {
		if useCache && c.cache != nil {
			var cached gap.VideoInfo
			if hit, err := c.cache.Get(store.CategoryVideo, id, &cached); err == nil && hit {
				results = append(results, cached)
				continue
			}
		}
		uncached = append(uncached, id)
	}

	for start := 0; start < len(uncached); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(uncached) {
			end = len(uncached)
		}

		c.limiter.Wait("youtube")
		resp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
			Id(uncached[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return results, fmt.Errorf("youtube video details failed: %w", err)
		}
		c.trackQuota(videoQuotaCost)

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Statistics == nil {
				continue
			}
			publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			video := gap.VideoInfo{
				VideoID:      item.Id,
				Title:        item.Snippet.Title,
				ChannelID:    item.Snippet.ChannelId,
				ChannelTitle: item.Snippet.ChannelTitle,
				PublishedAt:  publishedAt,
				ViewCount:    int64(item.Statistics.ViewCount),
				LikeCount:    int64(item.Statistics.LikeCount),
				CommentCount: int64(item.Statistics.CommentCount),
			}
			results = append(results, video)

			if c.cache != nil {
				if err := c.cache.Set(store.CategoryVideo, item.Id, video, 0); err != nil {
					logger.Warn("Failed to cache video details", "video_id", item.Id, "error", err.Error())
				}
			}
		}
	}

	return results, nil
}

// ChannelSubscribers fetches subscriber counts for the given channel IDs.
func (c *Client) ChannelSubscribers(ctx context.Context, channelIDs []string, useCache bool) (map[string]int64, error) {
	results := make(map[string]int64)
	var uncached []string
	seen := make(map[string]bool)

	for _, id := range channelIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if useCache && c.cache != nil {
			var subs int64
			if hit, err := c.cache.Get(store.CategoryChannel, id, &subs); err == nil && hit {
				results[id] = subs
				continue
			}
		}
		uncached = append(uncached, id)
	}

	for start := 0; start < len(uncached); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(uncached) {
			end = len(uncached)
		}

		c.limiter.Wait("youtube")
		resp, err := c.service.Channels.List([]string{"statistics"}).
			Id(uncached[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return results, fmt.Errorf("youtube channel stats failed: %w", err)
		}
		c.trackQuota(channelQuotaCost)

		for _, item := range resp.Items {
			if item.Statistics == nil {
				continue
			}
			subs := int64(item.Statistics.SubscriberCount)
			results[item.Id] = subs
			if c.cache != nil {
				if err := c.cache.Set(store.CategoryChannel, item.Id, subs, 0); err != nil {
					logger.Warn("Failed to cache channel stats", "channel_id", item.Id, "error", err.Error())
				}
			}
		}
	}

	return results, nil
}

// CollectDemand assembles the demand metrics and top-video list for a
// keyword, given a trend index supplied by the trends collaborator.
func (c *Client) CollectDemand(ctx context.Context, keyword string, trendIndex float64, useCache bool) (*gap.DemandMetrics, []gap.VideoInfo, error) {
	hits, err := c.SearchVideos(ctx, keyword, gap.TopVideoCount, OrderRelevance, time.Time{}, useCache)
	if err != nil {
		return nil, nil, err
	}
	if len(hits) == 0 {
		return BuildDemand(trendIndex, nil), nil, nil
	}

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.VideoID
	}

	videos, err := c.VideoDetails(ctx, ids, useCache)
	if err != nil {
		return nil, nil, err
	}

	return BuildDemand(trendIndex, videos), videos, nil
}

// CollectSupply assembles the supply metrics for a keyword: recent upload
// counts plus competition statistics over the top-ranked videos.
func (c *Client) CollectSupply(ctx context.Context, keyword string, useCache bool) (*gap.SupplyMetrics, error) {
	cacheID := fmt.Sprintf("%s_%d", keyword, gap.SupplyLookbackDays)
	if useCache && c.cache != nil {
		var cached gap.SupplyMetrics
		if hit, err := c.cache.Get(store.CategorySupply, cacheID, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	now := time.Now().UTC()

	videos30, err := c.SearchVideos(ctx, keyword, MaxBatchSize, OrderDate,
		now.AddDate(0, 0, -gap.SupplyLookbackDays), useCache)
	if err != nil {
		return nil, err
	}
	videos7, err := c.SearchVideos(ctx, keyword, MaxBatchSize, OrderDate,
		now.AddDate(0, 0, -gap.RecentVideoDays), useCache)
	if err != nil {
		return nil, err
	}

	topHits, err := c.SearchVideos(ctx, keyword, gap.TopVideoCount, OrderRelevance, time.Time{}, useCache)
	if err != nil {
		return nil, err
	}

	var topVideos []gap.VideoInfo
	if len(topHits) > 0 {
		ids := make([]string, len(topHits))
		channelIDs := make([]string, len(topHits))
		for i, hit := range topHits {
			ids[i] = hit.VideoID
			channelIDs[i] = hit.ChannelID
		}

		topVideos, err = c.VideoDetails(ctx, ids, useCache)
		if err != nil {
			return nil, err
		}

		subs, err := c.ChannelSubscribers(ctx, channelIDs, useCache)
		if err != nil {
			return nil, err
		}
		for i := range topVideos {
			topVideos[i].SubscriberCount = subs[topVideos[i].ChannelID]
		}
	}

	metrics := BuildSupply(len(videos30), len(videos7), topVideos)

	if c.cache != nil {
		if err := c.cache.Set(store.CategorySupply, cacheID, metrics, 0); err != nil {
			logger.Warn("Failed to cache supply metrics", "keyword", keyword, "error", err.Error())
		}
	}

	return metrics, nil
}
