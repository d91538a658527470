package benchcsv

import (
	"errors"
	"fmt"
	"strings"
)

// State is the position of the section extractor relative to a benchmark section.
type State int

const (
	// Outside waits for a start tag.
	Outside State = iota
	// First expects the header line that follows a start tag.
	First
	// Inside treats every line as a data row until the end tag.
	Inside
)

func (s State) String() string {
	switch s {
	case Outside:
		return "outside"
	case First:
		return "first"
	case Inside:
		return "inside"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrBadState is returned when the extractor is driven from a state it does not know.
var ErrBadState = errors.New("bad state")

// RangeError reports a column index that does not exist in a data row.
type RangeError struct {
	Line   int
	Index  int
	Tokens int
	Row    string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line %d: column %d out of range (row has %d tokens): %q", e.Line, e.Index, e.Tokens, e.Row)
}

// Row is one whitespace tokenized data line of a section.
type Row struct {
	Line   int
	Text   string
	Tokens []string
}

func NewRow(line int, text string) Row {
	return Row{Line: line, Text: text, Tokens: strings.Fields(text)}
}

// Token is the only positional accessor for row fields. Negative indices count
// from the end of the row, so -1 is the last token.
func (r Row) Token(i int) (string, error) {
	j := i
	if j < 0 {
		j += len(r.Tokens)
	}
	if j < 0 || j >= len(r.Tokens) {
		return "", &RangeError{Line: r.Line, Index: i, Tokens: len(r.Tokens), Row: r.Text}
	}
	return r.Tokens[j], nil
}

// Name is the first token, which carries the sample identifier.
func (r Row) Name() (string, error) {
	return r.Token(0)
}

// Record is one emitted line of the section extractor.
type Record struct {
	Line    int
	Section int
	ID      string
	HasID   bool
	Fields  []string
}

// CSV formats the record without a line terminator. A record with no identifier
// starts with the field separator.
func (r Record) CSV() string {
	var b strings.Builder
	b.WriteString(r.ID)
	for _, f := range r.Fields {
		b.WriteByte(',')
		b.WriteString(f)
	}
	return b.String()
}

// Pair is one match of the inline extractor.
type Pair struct {
	Line  int
	Size  string
	Value string
}

func (p Pair) CSV() string {
	return p.Size + "," + p.Value
}
