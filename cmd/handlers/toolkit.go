package handlers

import (
	"context"
	"fmt"

	"gapscout/internal/analyzer"
	"gapscout/internal/config"
	"gapscout/internal/logger"
	"gapscout/internal/ratelimit"
	"gapscout/internal/store"
	"gapscout/internal/suggest"
	"gapscout/internal/trends"
	"gapscout/internal/youtube"
)

// toolkit wires the configured collaborators for a command run.
type toolkit struct {
	cfg      *config.Config
	cache    *store.Store
	expander *suggest.Expander
	trends   *trends.Client
	analyzer *analyzer.Analyzer
}

// newToolkit builds the collaborator stack. withVideos controls whether
// the YouTube Data API client is required; commands that only use
// autocomplete or trends can run without an API key.
func newToolkit(ctx context.Context, withVideos bool) (*toolkit, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cache, err := store.NewStore(cfg.Cache.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	limiter := ratelimit.DefaultRegistry()
	oracle := suggest.NewAutocompleteClient(cfg.YouTube.Language, cfg.YouTube.Region)
	expander := suggest.NewExpander(oracle, cache, limiter, cfg.YouTube.Language, cfg.YouTube.Region)
	trendsClient := trends.NewClient(cache, limiter, cfg.Trends.Language)

	var videos analyzer.VideoSource
	if withVideos {
		apiKey, err := cfg.YouTubeKey()
		if err != nil {
			cache.Close()
			return nil, err
		}
		ytClient, err := youtube.NewClient(ctx, apiKey, cache, limiter)
		if err != nil {
			cache.Close()
			return nil, err
		}
		videos = ytClient
	}

	return &toolkit{
		cfg:      cfg,
		cache:    cache,
		expander: expander,
		trends:   trendsClient,
		analyzer: analyzer.New(expander, trendsClient, videos),
	}, nil
}

func (t *toolkit) close() {
	if err := t.cache.Close(); err != nil {
		logger.Error("Failed to close cache store", err)
	}
}

// options derives a run configuration, honoring the global cache switch.
func (t *toolkit) options(noCache bool) analyzer.Options {
	opts := analyzer.DefaultOptions()
	opts.Timeframe = t.cfg.Trends.Timeframe
	opts.Workers = t.cfg.Analysis.Workers
	opts.UseCache = t.cfg.Cache.Enabled && !noCache
	return opts
}
