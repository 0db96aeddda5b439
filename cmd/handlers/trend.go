package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gapscout/internal/gap"

	"github.com/spf13/cobra"
)

// NewTrendCmd creates the search-interest command
func NewTrendCmd() *cobra.Command {
	var (
		timeframe string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "trend [keyword]...",
		Short: "Show search interest for up to 5 keywords",
		Long: `Fetch search-interest signals: average interest, direction over the
period, and the peak month. No Data API quota is spent.

Examples:
  gapscout trend "standing desk"
  gapscout trend "standing desk" "walking pad" --timeframe "today 3-m"`,
		Args: cobra.RangeArgs(1, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrend(args, timeframe, noCache)
		},
	}

	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Interest window (default from config, e.g. \"today 12-m\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache")

	return cmd
}

func runTrend(keywords []string, timeframe string, noCache bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tk, err := newToolkit(ctx, false)
	if err != nil {
		return err
	}
	defer tk.close()

	if timeframe == "" {
		timeframe = tk.cfg.Trends.Timeframe
	}

	fmt.Printf("📈 Search interest (%s):\n\n", timeframe)

	signals, err := tk.trends.Compare(ctx, keywords, timeframe, tk.cfg.Cache.Enabled && !noCache)
	if err != nil {
		return fmt.Errorf("trend lookup failed: %w", err)
	}

	ranked := make([]*gap.TrendSignal, 0, len(signals))
	for _, signal := range signals {
		ranked = append(ranked, signal)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageInterest > ranked[j].AverageInterest
	})

	for _, signal := range ranked {
		fmt.Printf("%s %-40s interest %5.1f  %+6.1f%%  peak %s\n",
			signal.Arrow(), signal.Keyword, signal.AverageInterest, signal.Direction, signal.PeakPeriod)
	}
	return nil
}
