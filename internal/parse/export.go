package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// headerRe matches the first line of a message:
//
//	12/30/24, 9:15 PM - Alice: Hey!
//
// Newer exports put a narrow no-break space before AM/PM, hence \p{Zs}.
var headerRe = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}/\d{2,4}),[\s\p{Zs}]*(\d{1,2}:\d{2})[\s\p{Zs}]*(AM|PM)?[\s\p{Zs}]*-[\s\p{Zs}]*([^:]+):[\s\p{Zs}]*(.*)$`,
)

const utf8BOM = "\ufeff"

// ParseFile reads a chat export from disk and returns its messages in file order.
func ParseFile(filePath string) ([]Message, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, filePath)
		}
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a chat export. Lines that do not start a new message, including
// header-shaped lines with a blank sender, are appended to the previous one;
// lines before the first message are dropped. A line longer than maxLineSize
// fails the whole read with a wrapped bufio.ErrTooLong.
func Parse(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var messages []Message
	var current *Message
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if line == "" {
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		sender := ""
		if m != nil {
			sender = strings.TrimSpace(m[4])
		}
		if sender == "" {
			// continuation of the previous message
			if current != nil {
				current.Text += "\n" + line
			}
			continue
		}

		ts, err := parseHeaderTime(m[1], m[2], m[3])
		if err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Reason: err.Error()}
		}
		if current != nil {
			messages = append(messages, *current)
		}
		current = &Message{
			Timestamp: ts,
			Sender:    sender,
			Text:      m[5],
			Line:      lineNum,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	if current != nil {
		messages = append(messages, *current)
	}
	return messages, nil
}
