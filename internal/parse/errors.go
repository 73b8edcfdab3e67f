package parse

import (
	"errors"
	"fmt"
)

var ErrInputNotFound = errors.New("input not found")

// ParseError reports a header line whose date or time is not a real calendar value.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}
