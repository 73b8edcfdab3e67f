package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatroast/internal/parse"
)

// languageSample caps how much text is handed to language detection.
const languageSample = 64 * 1024

// Overview summarises an export as a whole.
type Overview struct {
	Messages   int       `json:"messages" yaml:"messages"`
	Senders    int       `json:"senders" yaml:"senders"`
	ActiveDays int       `json:"active_days" yaml:"active_days"`
	First      time.Time `json:"first" yaml:"first"`
	Last       time.Time `json:"last" yaml:"last"`
	Language   string    `json:"language" yaml:"language"`
}

// Report bundles every aggregate the presentation layer needs.
type Report struct {
	Overview  Overview       `json:"overview" yaml:"overview"`
	Senders   []Count        `json:"senders" yaml:"senders"`
	ByDay     map[string]int `json:"by_day" yaml:"by_day"`
	ByHour    map[int]int    `json:"by_hour" yaml:"by_hour"`
	ByWeekday map[int]int    `json:"by_weekday" yaml:"by_weekday"`
	TopWords  []Count        `json:"top_words" yaml:"top_words"`
	TopEmojis []Count        `json:"top_emojis" yaml:"top_emojis"`
}

// Build computes the full report for msgs.
func Build(msgs []parse.Message, topWords, topEmojis int) Report {
	byDay := MessagesByDay(msgs)
	senders := RankSenders(msgs)
	return Report{
		Overview:  overview(msgs, len(senders), len(byDay)),
		Senders:   senders,
		ByDay:     byDay,
		ByHour:    MessagesByHour(msgs),
		ByWeekday: MessagesByWeekday(msgs),
		TopWords:  TopWords(msgs, topWords),
		TopEmojis: TopEmojis(msgs, topEmojis),
	}
}

// SortedDays returns the keys of a per-day mapping in chronological order.
func SortedDays(byDay map[string]int) []string {
	days := lo.Keys(byDay)
	slices.Sort(days)
	return days
}

func overview(msgs []parse.Message, senders, days int) Overview {
	o := Overview{
		Messages:   len(msgs),
		Senders:    senders,
		ActiveDays: days,
	}
	if len(msgs) == 0 {
		return o
	}

	o.First = lo.MinBy(msgs, func(a, b parse.Message) bool {
		return a.Timestamp.Before(b.Timestamp)
	}).Timestamp
	o.Last = lo.MaxBy(msgs, func(a, b parse.Message) bool {
		return a.Timestamp.After(b.Timestamp)
	}).Timestamp
	o.Language = DetectLanguage(msgs)
	return o
}

// DetectLanguage guesses the main language of the chat text. It returns ""
// when the guess is not reliable.
func DetectLanguage(msgs []parse.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if b.Len() >= languageSample {
			break
		}
		b.WriteString(m.Text)
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) == "" {
		return ""
	}

	info := whatlanggo.Detect(b.String())
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.String()
}
