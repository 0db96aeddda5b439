package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gapscout/internal/render"

	"github.com/spf13/cobra"
)

// NewOpportunitiesCmd creates the seed-expansion discovery command
func NewOpportunitiesCmd() *cobra.Command {
	var (
		minScore float64
		limit    int
		noCache  bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "opportunities [seed keyword]",
		Short: "Find under-served keywords around a seed",
		Long: `Expand a seed keyword into related candidates via autocomplete, score
them all, and report the ones whose Gap Score clears the threshold.

Examples:
  # Find opportunities around a topic
  gapscout opportunities "sourdough baking"

  # Lower the bar and export everything found
  gapscout opportunities "sourdough baking" --min-score 4 -o opportunities.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpportunities(strings.Join(args, " "), minScore, limit, noCache, output)
		},
	}

	cmd.Flags().Float64Var(&minScore, "min-score", -1, "Minimum Gap Score to report (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of opportunities to report")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export the results to a .json or .csv file")

	return cmd
}

func runOpportunities(seed string, minScore float64, limit int, noCache bool, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	tk, err := newToolkit(ctx, true)
	if err != nil {
		return err
	}
	defer tk.close()

	if minScore < 0 {
		minScore = tk.cfg.Analysis.MinGapScore
	}

	fmt.Printf("🔍 Scouting opportunities around: %s (min score %.1f)\n", seed, minScore)
	fmt.Println("⏳ Scoring candidates, this can take a while on a cold cache...")
	fmt.Println()

	results, err := tk.analyzer.FindOpportunities(ctx, seed, minScore, limit, tk.options(noCache))
	if err != nil {
		return fmt.Errorf("opportunity scan failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("😕 No keywords cleared the threshold. Try a lower --min-score.")
		return nil
	}

	fmt.Printf("💡 Found %d opportunities:\n\n", len(results))
	fmt.Println(render.Table(results))
	fmt.Printf("📊 API quota used: %d units\n", tk.analyzer.QuotaUsed())

	if output != "" {
		return writeReport(output, results)
	}
	return nil
}
