// Package render formats keyword analyses for the terminal and for
// export as CSV or JSON.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gapscout/internal/gap"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
	faintStyle = lipgloss.NewStyle().Faint(true)

	excellentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	goodStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	poorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func scoreStyle(rating gap.Rating) lipgloss.Style {
	switch rating {
	case gap.RatingExcellent:
		return excellentStyle
	case gap.RatingGood:
		return goodStyle
	default:
		return poorStyle
	}
}

// Card renders a bordered single-keyword summary.
func Card(analysis *gap.KeywordAnalysis) string {
	score := analysis.GapScore()
	rating := analysis.Rating()

	var b strings.Builder
	b.WriteString(titleStyle.Render(analysis.Keyword))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Gap Score: %s %s %s\n",
		scoreStyle(rating).Render(fmt.Sprintf("%.1f/10", score)),
		rating.Emoji(),
		string(rating)))

	if analysis.Demand != nil {
		b.WriteString(fmt.Sprintf("Demand:    %.1f  (avg views %s, engagement %.1f%%)\n",
			analysis.Demand.Score(),
			humanCount(int64(analysis.Demand.AvgViewsTop10)),
			analysis.Demand.AvgEngagementRate))
	}
	if analysis.Supply != nil {
		b.WriteString(fmt.Sprintf("Supply:    %.1f  (%d uploads/30d, avg %s subs)\n",
			analysis.Supply.Score(),
			analysis.Supply.VideosLast30Days,
			humanCount(int64(analysis.Supply.AvgChannelSubscribers))))
	}
	if analysis.Trend != nil {
		b.WriteString(fmt.Sprintf("Trend:     %s %+.1f%%  (interest %.0f, peak %s)\n",
			analysis.Trend.Arrow(),
			analysis.Trend.Direction,
			analysis.Trend.AverageInterest,
			analysis.Trend.PeakPeriod))
	}

	insights := analysis.Insights()
	if len(insights) > 0 {
		b.WriteString("\n")
		for _, insight := range insights {
			b.WriteString("• " + insight + "\n")
		}
	}
	if len(analysis.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(fmt.Sprintf("%d related suggestions collected", len(analysis.Suggestions))))
		b.WriteString("\n")
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Table renders a ranked multi-keyword comparison.
func Table(analyses []*gap.KeywordAnalysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4s %-40s %-8s %-8s %-8s %s\n",
		"#", "Keyword", "Gap", "Demand", "Supply", "Trend"))

	for i, analysis := range analyses {
		demand, supply := "-", "-"
		if analysis.Demand != nil {
			demand = fmt.Sprintf("%.1f", analysis.Demand.Score())
		}
		if analysis.Supply != nil {
			supply = fmt.Sprintf("%.1f", analysis.Supply.Score())
		}
		trend := "-"
		if analysis.Trend != nil {
			trend = fmt.Sprintf("%s %+.1f%%", analysis.Trend.Arrow(), analysis.Trend.Direction)
		}

		rating := analysis.Rating()
		b.WriteString(fmt.Sprintf("%-4d %-40s %s %-8s %-8s %s\n",
			i+1,
			truncate(analysis.Keyword, 40),
			scoreStyle(rating).Render(fmt.Sprintf("%-4.1f", analysis.GapScore())),
			demand,
			supply,
			trend))
	}

	return b.String()
}

// WriteJSON writes analyses as indented JSON.
func WriteJSON(w io.Writer, analyses []*gap.KeywordAnalysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analyses); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteCSV writes one flattened row per analysis using the canonical
// column order.
func WriteCSV(w io.Writer, analyses []*gap.KeywordAnalysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gap.RecordColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, analysis := range analyses {
		record := analysis.Record()
		row := make([]string, len(gap.RecordColumns))
		for i, col := range gap.RecordColumns {
			row[i] = cell(record[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTo dispatches on the file extension of path: .csv for CSV,
// anything else for JSON.
func WriteTo(w io.Writer, path string, analyses []*gap.KeywordAnalysis) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return WriteCSV(w, analyses)
	}
	return WriteJSON(w, analyses)
}

func cell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case []string:
		return strings.Join(value, "; ")
	default:
		return fmt.Sprintf("%v", value)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func humanCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
