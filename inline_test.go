package benchcsv

import (
	"bytes"
	"strings"
	"testing"
)

func TestMatchInline(t *testing.T) {
	cfg, err := NewInlineConfig(DefaultInlinePattern)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		line   string
		want   Pair
		wantOK bool
	}{
		{"512-KiB serial loads 123.45", Pair{Line: 1, Size: "512", Value: "123.45"}, true},
		{"  16-KiB serial loads        4.00 cycles", Pair{Line: 1, Size: "16", Value: "4.00"}, true},
		{"default  64-KiB serial loads   5", Pair{Line: 1, Size: "64", Value: "5"}, true},
		// Empty captures are written as they are.
		{"-KiB serial loads", Pair{Line: 1}, true},
		{"8-KiB serial loads:abc", Pair{Line: 1, Size: "8"}, true},
		{"512-KiB parallel loads 1.0", Pair{}, false},
		{"", Pair{}, false},
	}
	for _, tt := range tests {
		got, ok := MatchInline(cfg, 1, tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("MatchInline(%q) = %+v, %v, want %+v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractInline(t *testing.T) {
	cfg, err := NewInlineConfig(DefaultInlinePattern)
	if err != nil {
		t.Fatal(err)
	}
	in := `** Running group memory/load-serial **
                 Benchmark    Cycles     Nanos
    16-KiB serial loads      4.00      1.54
    32-KiB serial loads      4.01      1.54
 something unrelated
   512-KiB serial loads 123.45
`
	var out bytes.Buffer
	var pairs []Pair
	if err := ExtractInline(cfg, strings.NewReader(in), &out, func(p Pair) { pairs = append(pairs, p) }); err != nil {
		t.Fatal(err)
	}
	want := "16,4.00\n32,4.01\n512,123.45\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
	if len(pairs) != 3 || pairs[0].Line != 3 || pairs[2].Line != 6 {
		t.Errorf("unexpected pairs %+v", pairs)
	}
}

func TestNewInlineConfig(t *testing.T) {
	if _, err := NewInlineConfig(`([0-9]+) only`); err == nil {
		t.Error("expected error for a single group")
	}
	if _, err := NewInlineConfig(`(`); err == nil {
		t.Error("expected error for invalid pattern")
	}
	cfg, err := NewInlineConfig(`size=(\d+) ns=([\d.]+)`)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := MatchInline(cfg, 2, "x size=4 ns=1.5"); !ok || p.CSV() != "4,1.5" {
		t.Errorf("got %+v %v", p, ok)
	}
}
