// Package suggest expands a seed keyword into long-tail candidates by
// querying an autocomplete oracle with lexical variants of the seed.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"gapscout/internal/gap"
	"gapscout/internal/logger"
	"gapscout/internal/ratelimit"
	"gapscout/internal/store"
)

// SourceTag marks suggestions produced by the autocomplete oracle.
const SourceTag = "youtube_autocomplete"

// MaxRelatedPerLevel caps the breadth of recursive related-search
// traversal to prevent combinatorial explosion.
const MaxRelatedPerLevel = 20

// questionWords are the fixed templates always queried during expansion.
var questionWords = []string{"how to", "what is", "why", "best", "top"}

// Oracle fetches raw suggestion strings for a text query, ordered by the
// oracle's own ranking.
type Oracle interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// ExpandOptions controls which lexical variants the expansion queries.
type ExpandOptions struct {
	Prefixes bool   // query "{c} {seed}" for each character
	Suffixes bool   // query "{seed} {c}" for each character
	Alphabet string // characters used for prefix/suffix variants
	Digits   bool   // also use 0-9
}

// DefaultExpandOptions enables the full a-z plus digits expansion.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{
		Prefixes: true,
		Suffixes: true,
		Alphabet: "abcdefghijklmnopqrstuvwxyz",
		Digits:   true,
	}
}

func (o ExpandOptions) chars() []string {
	chars := strings.Split(o.Alphabet, "")
	if o.Digits {
		for i := 0; i < 10; i++ {
			chars = append(chars, fmt.Sprintf("%d", i))
		}
	}
	return chars
}

// Expander turns oracle responses into deduplicated KeywordSuggestion
// sets, caching each oracle call in the shared store.
type Expander struct {
	oracle   Oracle
	cache    *store.Store
	limiter  ratelimit.Waiter
	language string
	region   string
}

// NewExpander creates an expander. cache may be nil to disable caching;
// limiter may be nil for unlimited calls.
func NewExpander(oracle Oracle, cache *store.Store, limiter ratelimit.Waiter, language, region string) *Expander {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	return &Expander{
		oracle:   oracle,
		cache:    cache,
		limiter:  limiter,
		language: language,
		region:   region,
	}
}

// GetSuggestions fetches suggestions for a single query. The oracle's
// ordering is preserved as Position (1 = most prominent). A failed or
// unparseable oracle call yields an empty list, never an error that
// aborts a larger expansion.
func (e *Expander) GetSuggestions(ctx context.Context, keyword string, useCache bool) []gap.KeywordSuggestion {
	cacheID := fmt.Sprintf("%s_%s_%s", keyword, e.language, e.region)

	if useCache && e.cache != nil {
		var cached []gap.KeywordSuggestion
		if hit, err := e.cache.Get(store.CategoryAutocomplete, cacheID, &cached); err == nil && hit {
			return cached
		}
	}

	e.limiter.Wait("autocomplete")
	raw, err := e.oracle.Fetch(ctx, keyword)
	if err != nil {
		logger.Warn("Autocomplete fetch failed", "query", keyword, "error", err.Error())
		return nil
	}

	suggestions := make([]gap.KeywordSuggestion, 0, len(raw))
	for i, text := range raw {
		suggestions = append(suggestions, gap.KeywordSuggestion{
			Keyword:  text,
			Position: i + 1,
			Source:   SourceTag,
		})
	}

	if len(suggestions) > 0 && e.cache != nil {
		if err := e.cache.Set(store.CategoryAutocomplete, cacheID, suggestions, 0); err != nil {
			logger.Warn("Failed to cache suggestions", "query", keyword, "error", err.Error())
		}
	}

	return suggestions
}

// ExpandSuggestions queries the seed plus its lexical variants and merges
// the results. Passes run in a fixed order (base, suffix, prefix,
// question words) and deduplication is by lowercased text with the first
// writer winning, so the base query's version survives collisions.
func (e *Expander) ExpandSuggestions(ctx context.Context, keyword string, opts ExpandOptions, useCache bool) []gap.KeywordSuggestion {
	merged := make(map[string]gap.KeywordSuggestion)
	var order []string

	add := func(suggestions []gap.KeywordSuggestion) {
		for _, s := range suggestions {
			key := strings.ToLower(s.Keyword)
			if _, exists := merged[key]; !exists {
				merged[key] = s
				order = append(order, key)
			}
		}
	}

	add(e.GetSuggestions(ctx, keyword, useCache))

	chars := opts.chars()

	if opts.Suffixes {
		for _, c := range chars {
			add(e.GetSuggestions(ctx, fmt.Sprintf("%s %s", keyword, c), useCache))
		}
	}

	if opts.Prefixes {
		for _, c := range chars {
			add(e.GetSuggestions(ctx, fmt.Sprintf("%s %s", c, keyword), useCache))
		}
	}

	for _, qw := range questionWords {
		add(e.GetSuggestions(ctx, fmt.Sprintf("%s %s", qw, keyword), useCache))
	}

	result := make([]gap.KeywordSuggestion, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}
	return result
}

// RelatedSearches walks suggestion chains breadth-first up to depth
// levels, following at most MaxRelatedPerLevel new seeds per level.
func (e *Expander) RelatedSearches(ctx context.Context, keyword string, depth int, useCache bool) []gap.KeywordSuggestion {
	discovered := make(map[string]gap.KeywordSuggestion)
	var order []string
	processed := make(map[string]bool)
	toProcess := []string{keyword}

	for level := 0; level < depth; level++ {
		var nextBatch []string

		for _, kw := range toProcess {
			if processed[kw] {
				continue
			}
			processed[kw] = true

			for _, s := range e.GetSuggestions(ctx, kw, useCache) {
				key := strings.ToLower(s.Keyword)
				if key == strings.ToLower(keyword) {
					continue
				}
				if _, exists := discovered[key]; !exists {
					discovered[key] = s
					order = append(order, key)
					nextBatch = append(nextBatch, s.Keyword)
				}
			}
		}

		if len(nextBatch) > MaxRelatedPerLevel {
			nextBatch = nextBatch[:MaxRelatedPerLevel]
		}
		toProcess = nextBatch
	}

	result := make([]gap.KeywordSuggestion, 0, len(order))
	for _, key := range order {
		result = append(result, discovered[key])
	}
	return result
}
