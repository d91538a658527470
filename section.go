package benchcsv

import (
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"
)

const (
	DefaultStartTag    = "---BENCHMARK-START---"
	DefaultEndTag      = "---BENCHMARK-END---"
	DefaultNamePattern = "mlp([0-9]*)"
)

// SectionConfig holds everything the section extractor needs. Tags and the name
// pattern are matched at the start of the line or name.
type SectionConfig struct {
	StartTag    *regexp.Regexp
	EndTag      *regexp.Regexp
	NamePattern *regexp.Regexp
	Columns     []int
}

func NewSectionConfig(startTag, endTag, namePattern string, columns []int) (*SectionConfig, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	start, err := compilePrefix(startTag)
	if err != nil {
		return nil, fmt.Errorf("start tag: %w", err)
	}
	end, err := compilePrefix(endTag)
	if err != nil {
		return nil, fmt.Errorf("end tag: %w", err)
	}
	name, err := compilePrefix(namePattern)
	if err != nil {
		return nil, fmt.Errorf("name pattern: %w", err)
	}
	if name.NumSubexp() < 1 {
		return nil, fmt.Errorf("name pattern %q has no capture group", namePattern)
	}
	return &SectionConfig{
		StartTag:    start,
		EndTag:      end,
		NamePattern: name,
		Columns:     append([]int(nil), columns...),
	}, nil
}

// Transition is the result of feeding one line to Step.
type Transition struct {
	Next State
	// Headings is set when the line was a section header.
	Headings []string
	// Record is set when the line was a data row.
	Record *Record
	// Unnamed reports that the row name did not yield an identifier. The record
	// is still produced, without an ID.
	Unnamed bool
	Name    string
}

// Step classifies one line given the current state. It has no side effects.
func Step(cfg *SectionConfig, s State, line int, text string) (Transition, error) {
	switch s {
	case Outside:
		if cfg.StartTag.MatchString(text) {
			return Transition{Next: First}, nil
		}
		return Transition{Next: Outside}, nil
	case First:
		return Transition{Next: Inside, Headings: NewRow(line, text).Tokens}, nil
	case Inside:
		if cfg.EndTag.MatchString(text) {
			return Transition{Next: Outside}, nil
		}
		return dataRow(cfg, NewRow(line, text))
	}
	return Transition{Next: s}, fmt.Errorf("line %d: %w %v", line, ErrBadState, s)
}

func dataRow(cfg *SectionConfig, row Row) (Transition, error) {
	name, err := row.Name()
	if err != nil {
		return Transition{Next: Inside}, err
	}
	t := Transition{Next: Inside, Name: name}
	rec := &Record{Line: row.Line, Fields: make([]string, 0, len(cfg.Columns))}
	if m := cfg.NamePattern.FindStringSubmatch(name); m != nil && m[1] != "" {
		rec.ID, rec.HasID = m[1], true
	} else {
		t.Unnamed = true
	}
	for _, c := range cfg.Columns {
		f, err := row.Token(c)
		if err != nil {
			return Transition{Next: Inside}, err
		}
		rec.Fields = append(rec.Fields, f)
	}
	t.Record = rec
	return t, nil
}

// SectionExtractor drives Step over a stream and keeps the bookkeeping Step
// does not: the current state, the section count and the last header.
type SectionExtractor struct {
	cfg      *SectionConfig
	logger   *zap.Logger
	state    State
	section  int
	headings []string
}

func NewSectionExtractor(cfg *SectionConfig, logger *zap.Logger) *SectionExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionExtractor{cfg: cfg, logger: logger, state: Outside}
}

func (e *SectionExtractor) State() State { return e.state }

// Headings returns the header tokens of the most recent section.
func (e *SectionExtractor) Headings() []string { return e.headings }

// Sections returns the number of sections opened so far.
func (e *SectionExtractor) Sections() int { return e.section }

// Feed processes one line and returns the record it produced, if any.
func (e *SectionExtractor) Feed(line int, text string) (*Record, error) {
	t, err := Step(e.cfg, e.state, line, text)
	if err != nil {
		return nil, err
	}
	if e.state == Outside && t.Next == First {
		e.section++
		e.logger.Debug("section start", zap.Int("section", e.section), zap.Int("line", line))
	}
	if t.Headings != nil {
		e.headings = t.Headings
	}
	if t.Unnamed {
		e.logger.Warn("name pattern did not match row name",
			zap.String("name", t.Name),
			zap.Int("line", line),
			zap.String("row", text))
	}
	e.state = t.Next
	if t.Record != nil {
		t.Record.Section = e.section
	}
	return t.Record, nil
}

// Run reads r to the end and writes one CSV line per data row to w. sink, when
// not nil, sees every record after it has been written.
func (e *SectionExtractor) Run(r io.Reader, w io.Writer, sink func(Record)) error {
	e.logger.Info("columns", zap.Ints("columns", e.cfg.Columns))
	return ScanLines(r, func(line int, text string) error {
		rec, err := e.Feed(line, text)
		if err != nil || rec == nil {
			return err
		}
		if err := writeLine(w, rec.CSV()); err != nil {
			return err
		}
		if sink != nil {
			sink(*rec)
		}
		return nil
	})
}
