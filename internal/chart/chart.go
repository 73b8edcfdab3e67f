// Package chart draws horizontal bar charts of chat statistics as text.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

const (
	barRune  = "█"
	axisRune = "│"
)

type Bar struct {
	Label string
	Value int
	Note  string // printed after the value, e.g. a percentage
}

type Chart struct {
	Name  string // file stem used by WriteAll
	Title string
	Color lipgloss.Color
	Bars  []Bar
}

type Options struct {
	Width int  // columns for the longest bar
	Color bool // colour bars with ANSI codes
}

// Render draws c as one line per bar:
//
//	Title
//	Mon │███████ 7
func Render(c Chart, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(c.Title)
	b.WriteString("\n")
	if len(c.Bars) == 0 {
		b.WriteString("  (no data)\n")
		return b.String()
	}

	labelW := lo.Max(lo.Map(c.Bars, func(bar Bar, _ int) int {
		return runewidth.StringWidth(bar.Label)
	}))
	maxVal := lo.MaxBy(c.Bars, func(a, b Bar) bool { return a.Value > b.Value }).Value

	style := lipgloss.NewStyle().Foreground(c.Color)
	for _, bar := range c.Bars {
		n := scale(bar.Value, maxVal, width)
		fill := strings.Repeat(barRune, n)
		if opts.Color && c.Color != "" {
			fill = style.Render(fill)
		}
		line := fmt.Sprintf("%s %s%s %d", runewidth.FillRight(bar.Label, labelW), axisRune, fill, bar.Value)
		if bar.Note != "" {
			line += " " + bar.Note
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// scale maps value onto [0, width]; any non-zero value gets at least one cell.
func scale(value, max, width int) int {
	if value <= 0 || max <= 0 {
		return 0
	}
	n := int(math.Round(float64(value) / float64(max) * float64(width)))
	if n < 1 {
		n = 1
	}
	return n
}
