package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatroast/internal/roast"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

var weekdayShort = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FromReport builds the charts for a statistics report. The word and emoji
// charts are left out when there is nothing to show.
func FromReport(r stats.Report) []Chart {
	charts := []Chart{
		messageShare(r),
		{
			Name:  "activity_over_time",
			Title: "Messages over Time",
			Color: lipgloss.Color("#4071f4"),
			Bars: lo.Map(stats.SortedDays(r.ByDay), func(day string, _ int) Bar {
				return Bar{Label: day, Value: r.ByDay[day]}
			}),
		},
		{
			Name:  "activity_by_hour",
			Title: "Messages by Hour of Day",
			Color: lipgloss.Color("#69b3a2"),
			Bars: lo.Times(24, func(h int) Bar {
				return Bar{Label: fmt.Sprintf("%02d", h), Value: r.ByHour[h]}
			}),
		},
		{
			Name:  "activity_by_weekday",
			Title: "Messages by Day of Week",
			Color: lipgloss.Color("#4071f4"),
			Bars: lo.Times(7, func(d int) Bar {
				return Bar{Label: weekdayShort[d], Value: r.ByWeekday[d]}
			}),
		},
	}
	if len(r.TopWords) > 0 {
		charts = append(charts, countChart("top_words", "Top Words", "#e07a5f", r.TopWords))
	}
	if len(r.TopEmojis) > 0 {
		charts = append(charts, countChart("top_emojis", "Top Emojis", "#f2c14e", r.TopEmojis))
	}
	return charts
}

func messageShare(r stats.Report) Chart {
	total := r.Overview.Messages
	return Chart{
		Name:  "message_share",
		Title: "Message Share by Participant",
		Color: lipgloss.Color("#e07a5f"),
		Bars: lo.Map(r.Senders, func(c stats.Count, _ int) Bar {
			return Bar{
				Label: c.Item,
				Value: c.Count,
				Note:  fmt.Sprintf("(%d%%)", roast.Percentage(c.Count, total)),
			}
		}),
	}
}

func countChart(name, title, color string, counts []stats.Count) Chart {
	return Chart{
		Name:  name,
		Title: title,
		Color: lipgloss.Color(color),
		Bars: lo.Map(counts, func(c stats.Count, _ int) Bar {
			return Bar{Label: c.Item, Value: c.Count}
		}),
	}
}

// WriteAll renders each chart without colour into dir/<name>.txt, creating
// dir when needed, and returns the written paths.
func WriteAll(dir string, charts []Chart, width int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, c := range charts {
		p := filepath.Join(dir, c.Name+".txt")
		if err := os.WriteFile(p, []byte(Render(c, Options{Width: width})), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
