package benchcsv

import (
	"fmt"
	"io"
	"regexp"
)

// DefaultInlinePattern finds lines like "512-KiB serial loads   1.23". Both
// groups may match empty strings; they are emitted as they are.
const DefaultInlinePattern = `([0-9]*)-KiB serial loads *([0-9.]*)`

type InlineConfig struct {
	Pattern *regexp.Regexp
}

// NewInlineConfig compiles pattern. The pattern is searched anywhere in a line
// and its first two groups form the pair.
func NewInlineConfig(pattern string) (*InlineConfig, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("inline pattern: %w", err)
	}
	if re.NumSubexp() < 2 {
		return nil, fmt.Errorf("inline pattern %q needs two capture groups, has %d", pattern, re.NumSubexp())
	}
	return &InlineConfig{Pattern: re}, nil
}

func MatchInline(cfg *InlineConfig, line int, text string) (Pair, bool) {
	m := cfg.Pattern.FindStringSubmatch(text)
	if m == nil {
		return Pair{}, false
	}
	return Pair{Line: line, Size: m[1], Value: m[2]}, true
}

// ExtractInline writes one "size,value" line to w for every matching line of r.
func ExtractInline(cfg *InlineConfig, r io.Reader, w io.Writer, sink func(Pair)) error {
	return ScanLines(r, func(line int, text string) error {
		p, ok := MatchInline(cfg, line, text)
		if !ok {
			return nil
		}
		if err := writeLine(w, p.CSV()); err != nil {
			return err
		}
		if sink != nil {
			sink(p)
		}
		return nil
	})
}
