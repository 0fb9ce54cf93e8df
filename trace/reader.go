package trace

import (
	"bufio"
	"io"
	"strings"
)

// A Reader streams operations out of a trace, one line at a time.
type Reader struct {
	scanner    *bufio.Scanner
	lineNumber int
}

// NewReader wraps an io.Reader holding trace text.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next operation in the trace. It returns io.EOF when the
// trace is exhausted, and a *ParseError for a malformed line; the caller can
// skip such a line by calling Next again.
func (r *Reader) Next() (Operation, error) {
	for r.scanner.Scan() {
		r.lineNumber++

		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		op, err := ParseLine(line)
		if err != nil {
			return Operation{}, &ParseError{
				LineNumber: r.lineNumber,
				Line:       line,
				Reason:     err.Error(),
			}
		}

		return op, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Operation{}, err
	}

	return Operation{}, io.EOF
}
