package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestKeywordTrimsWhitespace(t *testing.T) {
	got, err := Keyword("  SEO tips  ")
	if err != nil {
		t.Fatalf("Keyword failed: %v", err)
	}
	if got != "SEO tips" {
		t.Errorf("Expected trimmed keyword %q, got %q", "SEO tips", got)
	}
}

func TestKeywordRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		keyword string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"over length ceiling", strings.Repeat("a", 101)},
		{"angle brackets", "a<b>"},
		{"braces", "go {tips}"},
		{"brackets", "best [2025]"},
		{"backslash", `c:\videos`},
		{"quote", `say "hello"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Keyword(c.keyword)
			if err == nil {
				t.Fatalf("Expected error for %q", c.keyword)
			}
			if !errors.Is(err, ErrInvalidKeyword) {
				t.Errorf("Expected ErrInvalidKeyword, got %v", err)
			}
		})
	}
}

func TestKeywordAcceptsMaxLength(t *testing.T) {
	if _, err := Keyword(strings.Repeat("a", 100)); err != nil {
		t.Errorf("100-character keyword should be valid: %v", err)
	}
}

func TestKeywordsDeduplicatesCaseInsensitively(t *testing.T) {
	got, err := Keywords([]string{"Python", "python", "PYTHON"})
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 deduplicated keyword, got %d: %v", len(got), got)
	}
	if got[0] != "Python" {
		t.Errorf("First occurrence should win, got %q", got[0])
	}
}

func TestKeywordsFailsWholeBatch(t *testing.T) {
	_, err := Keywords([]string{"valid keyword", "a<b>"})
	if !errors.Is(err, ErrInvalidKeyword) {
		t.Errorf("One invalid keyword should fail the batch, got %v", err)
	}
}

func TestKeywordsEmptyList(t *testing.T) {
	if _, err := Keywords(nil); !errors.Is(err, ErrInvalidKeyword) {
		t.Errorf("Empty list should be rejected, got %v", err)
	}
}

func TestGapScoreThreshold(t *testing.T) {
	if _, err := GapScoreThreshold(5.0); err != nil {
		t.Errorf("5.0 should be a valid threshold: %v", err)
	}
	if _, err := GapScoreThreshold(-0.1); err == nil {
		t.Error("Negative threshold should be rejected")
	}
	if _, err := GapScoreThreshold(10.1); err == nil {
		t.Error("Threshold above 10 should be rejected")
	}
}

func TestMaxResults(t *testing.T) {
	if _, err := MaxResults(20, 100); err != nil {
		t.Errorf("20 should be valid: %v", err)
	}
	if _, err := MaxResults(0, 100); err == nil {
		t.Error("Zero should be rejected")
	}
	if _, err := MaxResults(101, 100); err == nil {
		t.Error("Value above the limit should be rejected")
	}
}
