package stats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are common English words left out of word frequencies.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "in": {}, "to": {}, "a": {}, "of": {}, "for": {},
	"on": {}, "with": {}, "you": {}, "i": {}, "it": {}, "that": {}, "at": {}, "this": {},
	"my": {}, "your": {}, "me": {}, "we": {}, "our": {}, "us": {}, "be": {}, "as": {},
	"are": {}, "was": {}, "were": {}, "so": {}, "but": {}, "if": {}, "too": {}, "not": {},
	"or": {}, "just": {}, "it's": {}, "its": {}, "can't": {}, "dont": {}, "do": {}, "did": {},
	"didn't": {}, "don't": {}, "u": {}, "im": {}, "lol": {}, "haha": {}, "hahaha": {},
}

// emojiRanges covers emoticons, symbols & pictographs, transport & map,
// regional indicators, dingbats and supplemental symbols & pictographs.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
	},
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isEmoji(r rune) bool {
	return unicode.Is(emojiRanges, r)
}

// ExtractWords returns the lowercase words of text, dropping stop words and
// single-character tokens.
func ExtractWords(text string) []string {
	var words []string
	for _, w := range runs(strings.ToLower(text), isWordRune) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		words = append(words, w)
	}
	return words
}

// ExtractEmojis returns every maximal run of emoji code points in text.
// Runs are not grapheme clusters: a skin tone modifier or a ZWJ sequence may
// come out split or merged depending on which code points fall in range.
func ExtractEmojis(text string) []string {
	return runs(text, isEmoji)
}

// runs splits s into maximal substrings whose runes all satisfy keep.
func runs(s string, keep func(rune) bool) []string {
	var out []string
	start := -1
	for i, r := range s {
		if keep(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
