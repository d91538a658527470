package benchcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoColumns is returned when a column selection is empty.
var ErrNoColumns = errors.New("no columns selected")

// ScanLines calls fn for every line of r with its 1-based line number. Lines
// have no length limit; the "\n" or "\r\n" terminator is stripped.
func ScanLines(r io.Reader, fn func(line int, text string) error) error {
	buf := bufio.NewReader(r)
	n := 0
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line == "" && err == io.EOF {
			return nil
		}
		n++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if ferr := fn(n, line); ferr != nil {
			return ferr
		}
		if err == io.EOF {
			return nil
		}
	}
}

// ParseColumns turns column arguments into indices. Each value may hold several
// indices separated by commas or whitespace, so "1 2", "1,2" and {"1", "2"} are
// the same selection.
func ParseColumns(values []string) ([]int, error) {
	var cols []int
	for _, v := range values {
		for _, f := range strings.FieldsFunc(v, isColumnSep) {
			i, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid column %q: %w", f, err)
			}
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	return cols, nil
}

func isColumnSep(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n'
}

// compilePrefix compiles a pattern that must match at the start of the input.
func compilePrefix(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

// WriteChartFile renders c into outputFile.
func WriteChartFile(outputFile string, c *Chart) error {
	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := c.Render(out); err != nil {
		return err
	}
	return out.Close()
}
