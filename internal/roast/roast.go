// Package roast turns chat statistics into a short humorous summary.
package roast

import (
	"fmt"
	"math"
	"strings"

	"github.com/Zuo-Peng/chatroast/internal/parse"
	"github.com/Zuo-Peng/chatroast/internal/stats"
)

// NothingToRoast is returned for a chat without messages.
const NothingToRoast = "No messages to roast."

// ParseLevel maps a level name to a Level, case-insensitively. Anything else,
// including names with surrounding spaces, falls back to Medium.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(s)); l {
	case Mild, Medium, Savage:
		return l
	default:
		return Medium
	}
}

// Generate builds the roast for msgs at the given intensity. Lines are joined
// with "\n" without a trailing newline.
func Generate(msgs []parse.Message, level string) string {
	lvl := ParseLevel(level)
	total := len(msgs)
	if total == 0 {
		return NothingToRoast
	}

	ranked := stats.RankSenders(msgs)
	top := ranked[0]
	bottom := ranked[len(ranked)-1]

	peakHour, _ := stats.PeakKey(stats.MessagesByHour(msgs), 24)
	peakDay, _ := stats.PeakKey(stats.MessagesByWeekday(msgs), 7)

	lines := []string{
		fmt.Sprintf(topSenderLine[lvl], top.Item, Percentage(top.Count, total)),
		fmt.Sprintf(bottomSenderLine[lvl], bottom.Item, Percentage(bottom.Count, total)),
		fmt.Sprintf(peakTimeLine[lvl], FormatHour(peakHour), stats.WeekdayNames[peakDay]),
	}

	if emojis := stats.TopEmojis(msgs, 1); len(emojis) > 0 {
		lines = append(lines, fmt.Sprintf(emojiLine[lvl], emojis[0].Item, emojis[0].Count))
	}
	if words := stats.TopWords(msgs, 1); len(words) > 0 {
		lines = append(lines, fmt.Sprintf(wordLine[lvl], words[0].Item, words[0].Count))
	}

	return strings.Join(lines, "\n")
}

// Percentage returns part as a whole-number percentage of whole, rounding
// half away from zero. A zero whole yields 0.
func Percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// FormatHour renders an hour of day on a 12-hour clock, e.g. 0 -> "12AM",
// 13 -> "1PM".
func FormatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d%s", h, suffix)
}
