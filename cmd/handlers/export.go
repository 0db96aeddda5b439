package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"gapscout/internal/gap"
	"gapscout/internal/render"
)

// writeReport exports analyses to path, CSV or JSON by extension.
func writeReport(path string, analyses []*gap.KeywordAnalysis) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := render.WriteTo(f, path, analyses); err != nil {
		return err
	}

	fmt.Printf("💾 Report saved to %s\n", path)
	return nil
}
