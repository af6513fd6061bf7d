package element

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FieldSeparator separates the fields of a plan line.
const FieldSeparator = "||"

// ParseError describes a plan line that could not be turned into an Element.
// Parse errors are diagnostics, never fatal.
type ParseError struct {
	// Line is the 1-based line number in the input
	Line int

	// Text is the raw line
	Text string

	// Reason is a human-readable explanation
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ParseLine parses a single `name||state||key` line.
func ParseLine(line string) (Element, error) {
	fields := strings.Split(line, FieldSeparator)
	if len(fields) < 2 {
		return Element{}, fmt.Errorf("expected at least 2 fields, got %d", len(fields))
	}

	elem := Element{
		Name:  strings.TrimSpace(fields[0]),
		State: strings.TrimSpace(fields[1]),
	}
	if elem.Name == "" {
		return Element{}, fmt.Errorf("empty element name")
	}
	if len(fields) > 2 {
		elem.Key = strings.TrimSpace(fields[2])
	}
	return elem, nil
}

// Parse reads plan lines from r and returns the valid elements in input order
// together with a ParseError for every malformed line. Blank lines are
// skipped silently. The returned error is non-nil only if reading fails.
func Parse(r io.Reader) ([]Element, []*ParseError, error) {
	var (
		elems  []Element
		issues []*ParseError
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		elem, err := ParseLine(text)
		if err != nil {
			issues = append(issues, &ParseError{
				Line:   lineNo,
				Text:   text,
				Reason: err.Error(),
			})
			continue
		}
		elems = append(elems, elem)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read plan: %w", err)
	}

	return elems, issues, nil
}
