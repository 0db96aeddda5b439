package suggest

import (
	"context"
	"strings"
	"testing"
)

func newTestExpander(oracle Oracle) *Expander {
	return NewExpander(oracle, nil, nil, "en", "us")
}

func TestGetSuggestionsPositions(t *testing.T) {
	oracle := NewMockOracle(map[string][]string{
		"golang": {"golang tutorial", "golang vs rust", "golang jobs"},
	})
	e := newTestExpander(oracle)

	suggestions := e.GetSuggestions(context.Background(), "golang", false)
	if len(suggestions) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d", len(suggestions))
	}
	for i, s := range suggestions {
		if s.Position != i+1 {
			t.Errorf("Suggestion %d should have position %d, got %d", i, i+1, s.Position)
		}
		if s.Source != SourceTag {
			t.Errorf("Expected source %q, got %q", SourceTag, s.Source)
		}
	}
	if suggestions[0].Keyword != "golang tutorial" {
		t.Errorf("Oracle order should be preserved, got %q first", suggestions[0].Keyword)
	}
}

func TestGetSuggestionsFailureYieldsEmpty(t *testing.T) {
	oracle := NewMockOracle(nil)
	oracle.FailQueries["broken"] = true
	e := newTestExpander(oracle)

	if suggestions := e.GetSuggestions(context.Background(), "broken", false); len(suggestions) != 0 {
		t.Errorf("Failed oracle call should yield an empty list, got %v", suggestions)
	}
}

func TestExpandDeduplicatesFirstWriterWins(t *testing.T) {
	// The same text (with differing case) surfaces in the base, suffix,
	// and prefix passes; only the base-query version must survive.
	oracle := NewMockOracle(map[string][]string{
		"golang":   {"Golang Tutorial"},
		"golang a": {"golang tutorial", "golang advanced"},
		"a golang": {"GOLANG TUTORIAL", "awesome golang"},
	})
	e := newTestExpander(oracle)

	opts := ExpandOptions{Prefixes: true, Suffixes: true, Alphabet: "a"}
	suggestions := e.ExpandSuggestions(context.Background(), "golang", opts, false)

	var tutorialCount int
	var tutorialText string
	for _, s := range suggestions {
		if strings.EqualFold(s.Keyword, "golang tutorial") {
			tutorialCount++
			tutorialText = s.Keyword
		}
	}
	if tutorialCount != 1 {
		t.Fatalf("Expected exactly one deduplicated entry, got %d", tutorialCount)
	}
	if tutorialText != "Golang Tutorial" {
		t.Errorf("Base-query version should win, got %q", tutorialText)
	}
}

func TestExpandQueriesQuestionWords(t *testing.T) {
	oracle := NewMockOracle(nil)
	e := newTestExpander(oracle)

	// Prefix/suffix passes disabled; the five question templates are
	// always queried regardless.
	e.ExpandSuggestions(context.Background(), "golang", ExpandOptions{}, false)

	for _, qw := range []string{"how to golang", "what is golang", "why golang", "best golang", "top golang"} {
		if !oracle.Called(qw) {
			t.Errorf("Expansion should query %q", qw)
		}
	}
	// 1 base + 5 question templates
	if oracle.CallCount() != 6 {
		t.Errorf("Expected 6 oracle calls, got %d", oracle.CallCount())
	}
}

func TestExpandCallVolume(t *testing.T) {
	oracle := NewMockOracle(nil)
	e := newTestExpander(oracle)

	opts := ExpandOptions{Prefixes: true, Suffixes: true, Alphabet: "ab", Digits: false}
	e.ExpandSuggestions(context.Background(), "golang", opts, false)

	// 1 base + 2 suffix + 2 prefix + 5 question words
	if oracle.CallCount() != 10 {
		t.Errorf("Expected 10 oracle calls, got %d", oracle.CallCount())
	}
}

func TestExpandDigitsIncluded(t *testing.T) {
	oracle := NewMockOracle(nil)
	e := newTestExpander(oracle)

	opts := ExpandOptions{Suffixes: true, Alphabet: "a", Digits: true}
	e.ExpandSuggestions(context.Background(), "golang", opts, false)

	if !oracle.Called("golang 0") || !oracle.Called("golang 9") {
		t.Error("Digit suffixes should be queried when Digits is enabled")
	}
}

func TestExpandSurvivesPartialFailures(t *testing.T) {
	oracle := NewMockOracle(map[string][]string{
		"golang":   {"golang tutorial"},
		"a golang": {"awesome golang"},
	})
	oracle.FailQueries["golang a"] = true
	e := newTestExpander(oracle)

	opts := ExpandOptions{Prefixes: true, Suffixes: true, Alphabet: "a"}
	suggestions := e.ExpandSuggestions(context.Background(), "golang", opts, false)

	if len(suggestions) != 2 {
		t.Errorf("Expansion should continue past a failed call, got %d suggestions", len(suggestions))
	}
}

func TestRelatedSearchesBreadthCap(t *testing.T) {
	// Seed fans out to 30 suggestions; only MaxRelatedPerLevel of them may
	// be followed into the next level.
	responses := map[string][]string{}
	var fanout []string
	for i := 0; i < 30; i++ {
		kw := "related " + string(rune('a'+i%26)) + string(rune('a'+i/26))
		fanout = append(fanout, kw)
		responses[kw] = []string{kw + " deeper"}
	}
	responses["seed"] = fanout

	oracle := NewMockOracle(responses)
	e := newTestExpander(oracle)

	e.RelatedSearches(context.Background(), "seed", 2, false)

	// 1 seed call + at most MaxRelatedPerLevel second-level calls.
	if oracle.CallCount() > 1+MaxRelatedPerLevel {
		t.Errorf("Expected at most %d calls, got %d", 1+MaxRelatedPerLevel, oracle.CallCount())
	}
}

func TestRelatedSearchesExcludesSeed(t *testing.T) {
	oracle := NewMockOracle(map[string][]string{
		"golang": {"golang", "golang tutorial"},
	})
	e := newTestExpander(oracle)

	results := e.RelatedSearches(context.Background(), "golang", 1, false)
	for _, s := range results {
		if strings.EqualFold(s.Keyword, "golang") {
			t.Error("Related searches should not include the seed itself")
		}
	}
}

func TestParseJSONP(t *testing.T) {
	body := []byte(`window.google.ac.h(["golang",[["golang tutorial",0],["golang vs rust",0]],{"k":1}])`)

	suggestions, err := ParseJSONP(body)
	if err != nil {
		t.Fatalf("ParseJSONP failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0] != "golang tutorial" || suggestions[1] != "golang vs rust" {
		t.Errorf("Unexpected suggestions: %v", suggestions)
	}
}

func TestParseJSONPGarbage(t *testing.T) {
	if _, err := ParseJSONP([]byte("<html>not jsonp</html>")); err == nil {
		t.Error("Expected error for non-JSONP payload")
	}
}
