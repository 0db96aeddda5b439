// Package validate checks user-supplied keyword input before any external
// call is made. Validation failures propagate to the caller; nothing past
// whitespace trimming is silently corrected.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidKeyword is the sentinel wrapped by every keyword validation failure.
var ErrInvalidKeyword = errors.New("invalid keyword")

const (
	// MaxKeywordLength is the ceiling on keyword length in characters.
	MaxKeywordLength = 100
)

// Characters that have no place in a search keyword and could leak into
// request payloads or exports.
var invalidKeywordPattern = regexp.MustCompile(`[<>"{}\[\]\\]`)

// Keyword trims and validates a single keyword, returning the sanitized
// form. Empty input, input over the length ceiling, and structurally
// dangerous characters are rejected.
func Keyword(keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)

	if keyword == "" {
		return "", fmt.Errorf("%w: keyword cannot be empty", ErrInvalidKeyword)
	}
	if len([]rune(keyword)) > MaxKeywordLength {
		return "", fmt.Errorf("%w: keyword must be at most %d characters", ErrInvalidKeyword, MaxKeywordLength)
	}
	if invalidKeywordPattern.MatchString(keyword) {
		return "", fmt.Errorf(`%w: keyword contains invalid characters: < > " { } [ ] \`, ErrInvalidKeyword)
	}

	return keyword, nil
}

// Keywords validates a list of keywords, deduplicating case-insensitively
// while keeping the first occurrence. Any invalid keyword fails the whole
// list before processing starts.
func Keywords(keywords []string) ([]string, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", ErrInvalidKeyword)
	}

	validated := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		clean, err := Keyword(kw)
		if err != nil {
			return nil, err
		}
		lower := strings.ToLower(clean)
		if !seen[lower] {
			seen[lower] = true
			validated = append(validated, clean)
		}
	}

	return validated, nil
}

// GapScoreThreshold checks a minimum-score filter is within the score range.
func GapScoreThreshold(score float64) (float64, error) {
	if score < 0 || score > 10 {
		return 0, fmt.Errorf("%w: gap score threshold must be between 0 and 10", ErrInvalidKeyword)
	}
	return score, nil
}

// MaxResults bounds a result-count parameter.
func MaxResults(n, limit int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: max results must be at least 1", ErrInvalidKeyword)
	}
	if n > limit {
		return 0, fmt.Errorf("%w: max results cannot exceed %d", ErrInvalidKeyword, limit)
	}
	return n, nil
}
