package handlers

import (
	"fmt"
	"os"
	"sort"

	"gapscout/internal/config"
	"gapscout/internal/logger"
	"gapscout/internal/store"

	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache management command
func NewCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
		Long:  `Inspect, clean, and clear the SQLite cache of API responses.`,
	}

	cacheCmd.AddCommand(newCacheStatsCmd())
	cacheCmd.AddCommand(newCacheCleanCmd())
	cacheCmd.AddCommand(newCacheClearCmd())

	return cacheCmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics and storage information",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCacheStats(); err != nil {
				logger.Error("Failed to get cache stats", err)
				os.Exit(1)
			}
		},
	}
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove expired entries from the cache",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCacheClean(); err != nil {
				logger.Error("Failed to clean cache", err)
				os.Exit(1)
			}
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the cache (removes all cached API responses)",
		Run: func(cmd *cobra.Command, args []string) {
			confirm, _ := cmd.Flags().GetBool("confirm")
			category, _ := cmd.Flags().GetString("category")
			if err := runCacheClear(confirm, category); err != nil {
				logger.Error("Failed to clear cache", err)
				os.Exit(1)
			}
		},
	}

	clearCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	clearCmd.Flags().String("category", "", "Clear only one category (autocomplete, search, video, channel, trends, supply)")
	return clearCmd
}

func openCacheStore() (*store.Store, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cacheStore, err := store.NewStore(cfg.Cache.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}
	return cacheStore, nil
}

func runCacheStats() error {
	fmt.Println("📊 Cache Statistics")
	fmt.Println("==================")

	cacheStore, err := openCacheStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logger.Error("Failed to close cache store", err)
		}
	}()

	stats, err := cacheStore.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get cache statistics: %w", err)
	}

	fmt.Printf("🗂  Total entries: %d\n", stats.TotalEntries)
	fmt.Printf("⌛ Expired entries: %d\n", stats.ExpiredEntries)

	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("   %-14s %d\n", category, stats.ByCategory[category])
	}

	fmt.Printf("💾 Cache size: %.2f MB\n", float64(stats.CacheSize)/1024/1024)
	if !stats.LastUpdated.IsZero() {
		fmt.Printf("📅 Last updated: %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runCacheClean() error {
	cacheStore, err := openCacheStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logger.Error("Failed to close cache store", err)
		}
	}()

	removed, err := cacheStore.ClearExpired()
	if err != nil {
		return fmt.Errorf("failed to clear expired entries: %w", err)
	}

	fmt.Printf("🧹 Removed %d expired entries\n", removed)
	return nil
}

func runCacheClear(confirm bool, category string) error {
	if !confirm {
		target := "all cached API responses"
		if category != "" {
			target = fmt.Sprintf("the %q category", category)
		}
		fmt.Printf("⚠️  This will remove %s. Continue? [y/N]: ", target)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" && response != "yes" {
			fmt.Println("Cache clear cancelled")
			return nil
		}
	}

	cacheStore, err := openCacheStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logger.Error("Failed to close cache store", err)
		}
	}()

	if category != "" {
		if err := cacheStore.ClearCategory(category); err != nil {
			return fmt.Errorf("failed to clear category %q: %w", category, err)
		}
		fmt.Printf("✅ Cleared category %q\n", category)
		return nil
	}

	fmt.Println("🗑️  Clearing cache...")
	if err := cacheStore.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("✅ Cache cleared successfully")
	return nil
}
