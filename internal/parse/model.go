package parse

import "time"

// Message is one chat message recovered from an export.
type Message struct {
	Timestamp time.Time
	Sender    string
	Text      string // continuation lines joined with "\n"
	Line      int    // line number of the header line in the export
}
