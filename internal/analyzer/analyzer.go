// Package analyzer orchestrates keyword research: it fans out to the
// autocomplete, trends, and video collaborators, assembles demand and
// supply metrics, and produces scored keyword analyses.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gapscout/internal/gap"
	"gapscout/internal/logger"
	"gapscout/internal/suggest"
	"gapscout/internal/validate"

	"github.com/google/uuid"
)

const (
	// DefaultWorkers bounds concurrent keyword analyses in AnalyzeMany.
	DefaultWorkers = 3

	// MaxOpportunityCandidates caps the expansion set scored by
	// FindOpportunities so a single run stays within quota.
	MaxOpportunityCandidates = 30

	// MaxCompareKeywords matches the trends comparison limit.
	MaxCompareKeywords = 5
)

// SuggestionSource produces autocomplete suggestions for a keyword.
type SuggestionSource interface {
	GetSuggestions(ctx context.Context, keyword string, useCache bool) []gap.KeywordSuggestion
	ExpandSuggestions(ctx context.Context, keyword string, opts suggest.ExpandOptions, useCache bool) []gap.KeywordSuggestion
}

// TrendSource produces search-interest signals for a keyword.
type TrendSource interface {
	Interest(ctx context.Context, keyword, timeframe string, useCache bool) (*gap.TrendSignal, error)
}

// VideoSource produces demand and supply metrics from video data.
type VideoSource interface {
	CollectDemand(ctx context.Context, keyword string, trendIndex float64, useCache bool) (*gap.DemandMetrics, []gap.VideoInfo, error)
	CollectSupply(ctx context.Context, keyword string, useCache bool) (*gap.SupplyMetrics, error)
	QuotaUsed() int64
}

// Options controls which collaborators a run exercises.
type Options struct {
	IncludeSuggestions bool
	ExpandSuggestions  bool
	UseCache           bool
	Timeframe          string
	Workers            int
}

// DefaultOptions is the standard single-keyword run.
func DefaultOptions() Options {
	return Options{
		IncludeSuggestions: true,
		UseCache:           true,
		Timeframe:          "today 12-m",
		Workers:            DefaultWorkers,
	}
}

// Analyzer coordinates the data sources for keyword analysis.
type Analyzer struct {
	suggestions SuggestionSource
	trends      TrendSource
	videos      VideoSource
}

// New creates an analyzer. Any source may be nil; the corresponding
// section of the analysis is simply left empty.
func New(suggestions SuggestionSource, trends TrendSource, videos VideoSource) *Analyzer {
	return &Analyzer{suggestions: suggestions, trends: trends, videos: videos}
}

// QuotaUsed reports the video source's quota consumption for this session.
func (a *Analyzer) QuotaUsed() int64 {
	if a.videos == nil {
		return 0
	}
	return a.videos.QuotaUsed()
}

// Analyze runs a full analysis for one keyword. Collaborator failures
// degrade the analysis rather than abort it: a missing trend falls back
// to neutral, and failed video collection zero-fills demand and supply.
// Zero-filled supply scores 0, which the gap formula treats as maximum
// opportunity, so degraded keywords surface rather than sink.
func (a *Analyzer) Analyze(ctx context.Context, keyword string, opts Options) (*gap.KeywordAnalysis, error) {
	keyword, err := validate.Keyword(keyword)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := &gap.KeywordAnalysis{
		ID:         uuid.NewString(),
		Keyword:    keyword,
		AnalyzedAt: time.Now().UTC(),
	}

	trend := gap.NeutralTrend(keyword)
	if a.trends != nil {
		signal, err := a.trends.Interest(ctx, keyword, opts.Timeframe, opts.UseCache)
		if err != nil {
			logger.Warn("Trend lookup failed, using neutral baseline", "keyword", keyword, "error", err.Error())
		} else if signal != nil {
			trend = signal
		}
	}
	analysis.Trend = trend

	if a.videos != nil {
		demand, topVideos, err := a.videos.CollectDemand(ctx, keyword, trend.AverageInterest, opts.UseCache)
		if err != nil {
			logger.Warn("Demand collection failed, zero-filling", "keyword", keyword, "error", err.Error())
			analysis.Demand = &gap.DemandMetrics{TrendIndex: trend.AverageInterest}
		} else {
			analysis.Demand = demand
			analysis.TopVideos = topVideos
		}

		supply, err := a.videos.CollectSupply(ctx, keyword, opts.UseCache)
		if err != nil {
			logger.Warn("Supply collection failed, zero-filling", "keyword", keyword, "error", err.Error())
			analysis.Supply = &gap.SupplyMetrics{}
		} else {
			analysis.Supply = supply
		}
	}

	if a.suggestions != nil && opts.IncludeSuggestions {
		if opts.ExpandSuggestions {
			analysis.Suggestions = a.suggestions.ExpandSuggestions(ctx, keyword, suggest.DefaultExpandOptions(), opts.UseCache)
		} else {
			analysis.Suggestions = a.suggestions.GetSuggestions(ctx, keyword, opts.UseCache)
		}
	}

	return analysis, nil
}

// AnalyzeMany analyzes a batch of keywords concurrently with a bounded
// worker pool. The whole batch is validated before any work starts, and
// results come back in input order.
func (a *Analyzer) AnalyzeMany(ctx context.Context, keywords []string, opts Options) ([]*gap.KeywordAnalysis, error) {
	cleaned, err := validate.Keywords(keywords)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(cleaned) {
		workers = len(cleaned)
	}

	results := make([]*gap.KeywordAnalysis, len(cleaned))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analysis, err := a.Analyze(ctx, cleaned[i], opts)
				if err != nil {
					logger.Warn("Keyword analysis failed", "keyword", cleaned[i], "error", err.Error())
					continue
				}
				results[i] = analysis
			}
		}()
	}

	for i := range cleaned {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindOpportunities expands a seed keyword into related candidates,
// scores them all, and returns those at or above minScore, best first.
func (a *Analyzer) FindOpportunities(ctx context.Context, seed string, minScore float64, limit int, opts Options) ([]*gap.KeywordAnalysis, error) {
	seed, err := validate.Keyword(seed)
	if err != nil {
		return nil, err
	}
	minScore, err = validate.GapScoreThreshold(minScore)
	if err != nil {
		return nil, err
	}
	limit, err = validate.MaxResults(limit, MaxOpportunityCandidates)
	if err != nil {
		return nil, err
	}

	// The cap applies to the expansion set; the seed is always analyzed
	// on top of it.
	candidates := []string{seed}
	if a.suggestions != nil {
		expansion := a.suggestions.ExpandSuggestions(ctx, seed, suggest.DefaultExpandOptions(), opts.UseCache)
		if len(expansion) > MaxOpportunityCandidates {
			expansion = expansion[:MaxOpportunityCandidates]
		}
		for _, s := range expansion {
			candidates = append(candidates, s.Keyword)
		}
	}

	// Candidates are scored without their own suggestion trees.
	scoreOpts := opts
	scoreOpts.IncludeSuggestions = false
	scoreOpts.ExpandSuggestions = false

	analyses, err := a.AnalyzeMany(ctx, candidates, scoreOpts)
	if err != nil {
		return nil, err
	}

	var opportunities []*gap.KeywordAnalysis
	for _, analysis := range analyses {
		if analysis == nil {
			continue
		}
		if analysis.GapScore() >= minScore {
			opportunities = append(opportunities, analysis)
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].GapScore() > opportunities[j].GapScore()
	})

	if len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}
	return opportunities, nil
}

// Compare analyzes up to MaxCompareKeywords keywords and returns them
// ranked by gap score, best first.
func (a *Analyzer) Compare(ctx context.Context, keywords []string, opts Options) ([]*gap.KeywordAnalysis, error) {
	if len(keywords) < 2 {
		return nil, fmt.Errorf("comparison requires at least 2 keywords, got %d", len(keywords))
	}
	if len(keywords) > MaxCompareKeywords {
		return nil, fmt.Errorf("comparison supports at most %d keywords, got %d", MaxCompareKeywords, len(keywords))
	}

	analyses, err := a.AnalyzeMany(ctx, keywords, opts)
	if err != nil {
		return nil, err
	}

	ranked := make([]*gap.KeywordAnalysis, 0, len(analyses))
	for _, analysis := range analyses {
		if analysis != nil {
			ranked = append(ranked, analysis)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GapScore() > ranked[j].GapScore()
	})
	return ranked, nil
}
