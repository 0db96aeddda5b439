package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gapscout/internal/gap"
	"gapscout/internal/suggest"

	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the autocomplete exploration command
func NewSuggestCmd() *cobra.Command {
	var (
		expand  bool
		related int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [keyword]",
		Short: "Explore autocomplete suggestions for a keyword",
		Long: `Fetch YouTube autocomplete suggestions without spending Data API quota.
Useful for quickly mapping what people actually type into the search box.

Examples:
  # Plain suggestions
  gapscout suggest "mechanical keyboard"

  # Full expansion with prefixes, suffixes, and question words
  gapscout suggest "mechanical keyboard" --expand

  # Breadth-first related searches, two levels deep
  gapscout suggest "mechanical keyboard" --related 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(strings.Join(args, " "), expand, related, noCache)
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Expand with prefixes, suffixes, and question words")
	cmd.Flags().IntVar(&related, "related", 0, "Collect related searches this many levels deep")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")

	return cmd
}

func runSuggest(keyword string, expand bool, related int, noCache bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tk, err := newToolkit(ctx, false)
	if err != nil {
		return err
	}
	defer tk.close()

	useCache := tk.cfg.Cache.Enabled && !noCache

	var suggestions []gap.KeywordSuggestion
	switch {
	case related > 0:
		fmt.Printf("🔍 Related searches for %q (depth %d):\n\n", keyword, related)
		suggestions = tk.expander.RelatedSearches(ctx, keyword, related, useCache)
	case expand:
		fmt.Printf("🔍 Expanded suggestions for %q:\n\n", keyword)
		suggestions = tk.expander.ExpandSuggestions(ctx, keyword, suggest.DefaultExpandOptions(), useCache)
	default:
		fmt.Printf("🔍 Suggestions for %q:\n\n", keyword)
		suggestions = tk.expander.GetSuggestions(ctx, keyword, useCache)
	}

	if len(suggestions) == 0 {
		fmt.Println("😕 No suggestions returned.")
		return nil
	}

	for i, s := range suggestions {
		fmt.Printf("%3d. %s\n", i+1, s.Keyword)
	}
	fmt.Printf("\n✅ %d suggestions\n", len(suggestions))
	return nil
}
