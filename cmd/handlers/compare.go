package handlers

import (
	"context"
	"fmt"
	"time"

	"gapscout/internal/render"

	"github.com/spf13/cobra"
)

// NewCompareCmd creates the multi-keyword comparison command
func NewCompareCmd() *cobra.Command {
	var (
		noCache bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "compare [keyword] [keyword]...",
		Short: "Rank 2-5 keywords against each other",
		Long: `Analyze several keywords and rank them by Gap Score so you can pick
the strongest topic to make next.

Examples:
  gapscout compare "pour over coffee" "french press" "cold brew at home"`,
		Args: cobra.RangeArgs(2, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(args, noCache, output)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export the comparison to a .json or .csv file")

	return cmd
}

func runCompare(keywords []string, noCache bool, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tk, err := newToolkit(ctx, true)
	if err != nil {
		return err
	}
	defer tk.close()

	fmt.Printf("⚖️  Comparing %d keywords...\n\n", len(keywords))

	results, err := tk.analyzer.Compare(ctx, keywords, tk.options(noCache))
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	fmt.Println(render.Table(results))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("🏆 Best opportunity: %s (%.1f/10 %s)\n", best.Keyword, best.GapScore(), best.Rating().Emoji())
	}
	fmt.Printf("📊 API quota used: %d units\n", tk.analyzer.QuotaUsed())

	if output != "" {
		return writeReport(output, results)
	}
	return nil
}
