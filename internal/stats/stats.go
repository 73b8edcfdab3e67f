// Package stats computes frequency statistics over parsed chat messages.
// Every function is pure; calling one twice on the same messages gives the
// same result.
package stats

import (
	"time"

	"github.com/Zuo-Peng/chatroast/internal/parse"
)

const dayLayout = "2006-01-02"

// WeekdayNames is indexed by Weekday: 0 is Monday.
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekday returns the day of week of t with Monday as 0 and Sunday as 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MessageCounts maps each sender to the number of messages they sent.
func MessageCounts(msgs []parse.Message) map[string]int {
	counts := make(map[string]int)
	for _, m := range msgs {
		counts[m.Sender]++
	}
	return counts
}

// RankSenders lists senders by descending message count. Senders with the
// same count keep the order in which they first appear.
func RankSenders(msgs []parse.Message) []Count {
	c := newCounter()
	for _, m := range msgs {
		c.add(m.Sender)
	}
	return c.ranked()
}

// MessagesByDay maps YYYY-MM-DD to the number of messages sent that day.
func MessagesByDay(msgs []parse.Message) map[string]int {
	counts := make(map[string]int)
	for _, m := range msgs {
		counts[m.Timestamp.Format(dayLayout)]++
	}
	return counts
}

// MessagesByHour maps hour of day (0-23) to a message count.
func MessagesByHour(msgs []parse.Message) map[int]int {
	counts := make(map[int]int)
	for _, m := range msgs {
		counts[m.Timestamp.Hour()]++
	}
	return counts
}

// MessagesByWeekday maps weekday (0=Monday) to a message count.
func MessagesByWeekday(msgs []parse.Message) map[int]int {
	counts := make(map[int]int)
	for _, m := range msgs {
		counts[Weekday(m.Timestamp)]++
	}
	return counts
}

// TopWords returns the n most common words across all messages.
func TopWords(msgs []parse.Message, n int) []Count {
	c := newCounter()
	for _, m := range msgs {
		for _, w := range ExtractWords(m.Text) {
			c.add(w)
		}
	}
	return c.top(n)
}

// TopEmojis returns the n most common emoji runs across all messages.
func TopEmojis(msgs []parse.Message, n int) []Count {
	c := newCounter()
	for _, m := range msgs {
		for _, e := range ExtractEmojis(m.Text) {
			c.add(e)
		}
	}
	return c.top(n)
}

// PeakKey returns the key with the highest count, scanning keys from 0 to
// limit-1 so the smallest key wins a tie. ok is false when counts is empty.
func PeakKey(counts map[int]int, limit int) (key int, ok bool) {
	best := -1
	for k := 0; k < limit; k++ {
		n, present := counts[k]
		if !present {
			continue
		}
		if !ok || n > best {
			key, best, ok = k, n, true
		}
	}
	return key, ok
}
