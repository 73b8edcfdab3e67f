package roast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatroast/internal/parse"
)

// 2024-01-05 is a Friday.
var friday = time.Date(2024, 1, 5, 21, 15, 0, 0, time.UTC)

func chat() []parse.Message {
	return []parse.Message{
		{Timestamp: friday, Sender: "Alice", Text: "pizza? 🍕"},
		{Timestamp: friday.Add(time.Minute), Sender: "Alice", Text: "pizza now 🍕"},
		{Timestamp: friday.Add(2 * time.Minute), Sender: "Bob", Text: "fine"},
		{Timestamp: friday.Add(3 * time.Minute), Sender: "Alice", Text: "PIZZA"},
	}
}

func TestGenerate_Empty(t *testing.T) {
	req := require.New(t)
	for _, level := range []string{"mild", "medium", "savage", "extreme", ""} {
		req.Equal("No messages to roast.", Generate(nil, level))
	}
}

func TestGenerate_Medium(t *testing.T) {
	req := require.New(t)
	expected := strings.Join([]string{
		"Alice dominated the chat with 75% of the messages. Maybe let someone else get a word in?",
		"Bob clocked in at just 25% of messages. Do you even know this chat exists?",
		"Peak chat time is 9PM on Friday. Who needs sleep when you have memes?",
		"Top emoji award goes to 🍕 – dropped 2 times. Maybe diversify your feelings?",
		"You say 'pizza' 3 times. Is that a cry for help or just laziness?",
	}, "\n")

	req.Equal(expected, Generate(chat(), "medium"))
}

func TestGenerate_Levels(t *testing.T) {
	tests := []struct {
		level string
		first string
		last  string
	}{
		{
			level: "mild",
			first: "Alice sent the most messages at 75% of the chat. Quite the social butterfly!",
			last:  "The word 'pizza' comes up a lot (3 times). Looks like a favourite topic!",
		},
		{
			level: "SAVAGE",
			first: "Alice hogged 75% of the conversation. Ever heard of a hobby outside this chat?",
			last:  "'pizza' appears 3 times. We get it, you have a limited vocabulary.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			req := require.New(t)
			lines := strings.Split(Generate(chat(), tt.level), "\n")
			req.Len(lines, 5)
			req.Equal(tt.first, lines[0])
			req.Equal(tt.last, lines[len(lines)-1])
		})
	}
}

func TestGenerate_UnknownLevelIsMedium(t *testing.T) {
	req := require.New(t)
	req.Equal(Generate(chat(), "medium"), Generate(chat(), "extreme"))
	req.Equal(Generate(chat(), "medium"), Generate(chat(), " savage "))
}

func TestGenerate_OmitsEmojiAndWordLines(t *testing.T) {
	req := require.New(t)
	msgs := []parse.Message{
		{Timestamp: friday, Sender: "Solo", Text: "the a i"},
		{Timestamp: friday, Sender: "Solo", Text: ""},
		{Timestamp: friday, Sender: "Solo", Text: "lol"},
	}

	out := Generate(msgs, "mild")
	req.False(strings.HasSuffix(out, "\n"))

	lines := strings.Split(out, "\n")
	req.Len(lines, 3)
	req.Equal("Solo sent the most messages at 100% of the chat. Quite the social butterfly!", lines[0])
	req.Equal("Solo only contributed 100% of messages. Lurking is an art form, after all.", lines[1])
}

func TestGenerate_TieBreaks(t *testing.T) {
	req := require.New(t)
	// one message each at 23:00 on Sunday and 01:00 on Tuesday: the earlier
	// hour and the earlier weekday win
	sunday := time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 1, 9, 1, 0, 0, 0, time.UTC)
	msgs := []parse.Message{
		{Timestamp: sunday, Sender: "Zed", Text: "night"},
		{Timestamp: tuesday, Sender: "Amy", Text: "morning"},
	}

	lines := strings.Split(Generate(msgs, "medium"), "\n")
	req.Equal("Zed dominated the chat with 50% of the messages. Maybe let someone else get a word in?", lines[0])
	req.Equal("Amy clocked in at just 50% of messages. Do you even know this chat exists?", lines[1])
	req.Equal("Peak chat time is 1AM on Tuesday. Who needs sleep when you have memes?", lines[2])
}

func TestPercentage(t *testing.T) {
	req := require.New(t)
	req.Equal(100, Percentage(3, 3))
	req.Equal(33, Percentage(1, 3))
	req.Equal(67, Percentage(2, 3))
	req.Equal(13, Percentage(1, 8)) // 12.5 rounds away from zero
	req.Equal(0, Percentage(5, 0))
}

func TestFormatHour(t *testing.T) {
	req := require.New(t)
	req.Equal("12AM", FormatHour(0))
	req.Equal("9AM", FormatHour(9))
	req.Equal("12PM", FormatHour(12))
	req.Equal("9PM", FormatHour(21))
	req.Equal("11PM", FormatHour(23))
}

func TestParseLevel(t *testing.T) {
	req := require.New(t)
	req.Equal(Mild, ParseLevel("Mild"))
	req.Equal(Savage, ParseLevel("SAVAGE"))
	req.Equal(Medium, ParseLevel(" savage "))
	req.Equal(Medium, ParseLevel("extreme"))
	req.Equal(Medium, ParseLevel(""))
}
