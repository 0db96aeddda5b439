package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gapscout/internal/gap"
	"gapscout/internal/llm"
	"gapscout/internal/logger"
	"gapscout/internal/render"

	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the single-keyword analysis command
func NewAnalyzeCmd() *cobra.Command {
	var (
		expand  bool
		noCache bool
		notes   bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "analyze [keyword]",
		Short: "Score one keyword's content opportunity",
		Long: `Run a full analysis for a keyword: autocomplete suggestions, search
interest, and video demand/supply metrics, combined into a 0-10 Gap Score.

Examples:
  # Analyze a keyword
  gapscout analyze "home espresso setup"

  # Expand the suggestion tree and export as CSV
  gapscout analyze "home espresso setup" --expand -o report.csv

  # Add Gemini strategy notes
  gapscout analyze "home espresso setup" --notes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(strings.Join(args, " "), expand, noCache, notes, output)
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Expand suggestions with prefixes, suffixes, and question words")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")
	cmd.Flags().BoolVar(&notes, "notes", false, "Generate Gemini strategy notes for the keyword")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export the analysis to a .json or .csv file")

	return cmd
}

func runAnalyze(keyword string, expand, noCache, notes bool, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tk, err := newToolkit(ctx, true)
	if err != nil {
		return err
	}
	defer tk.close()

	fmt.Printf("🔍 Analyzing keyword: %s\n\n", keyword)

	opts := tk.options(noCache)
	opts.ExpandSuggestions = expand

	analysis, err := tk.analyzer.Analyze(ctx, keyword, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(render.Card(analysis))
	fmt.Printf("\n📊 API quota used: %d units\n", tk.analyzer.QuotaUsed())

	if notes {
		if err := printStrategyNotes(ctx, analysis); err != nil {
			logger.Warn("Strategy notes unavailable", "error", err.Error())
			fmt.Println("⚠️  Strategy notes unavailable:", err)
		}
	}

	if output != "" {
		return writeReport(output, []*gap.KeywordAnalysis{analysis})
	}
	return nil
}

func printStrategyNotes(ctx context.Context, analysis *gap.KeywordAnalysis) error {
	client, err := llm.NewClient(ctx, "")
	if err != nil {
		return err
	}

	text, err := client.StrategyNotes(ctx, analysis)
	if err != nil {
		return err
	}

	fmt.Println("\n💡 Strategy notes:")
	fmt.Println(text)
	return nil
}
