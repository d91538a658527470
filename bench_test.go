package benchcsv

import (
	"io"
	"strconv"
	"strings"
	"testing"
)

func makeOneshotLog(sections, rows int) string {
	var b strings.Builder
	for s := 0; s < sections; s++ {
		b.WriteString("warmup noise line\n")
		b.WriteString(DefaultStartTag + "\n")
		b.WriteString("name cycles nanos loads\n")
		for i := 1; i <= rows; i++ {
			n := strconv.Itoa(i)
			b.WriteString("mlp" + n + " " + n + ".5 " + n + ".25 " + n + "\n")
		}
		b.WriteString(DefaultEndTag + "\n")
	}
	return b.String()
}

func BenchmarkSectionExtractor(b *testing.B) {
	in := makeOneshotLog(10, 100)
	cfg, err := NewSectionConfig(DefaultStartTag, DefaultEndTag, DefaultNamePattern, []int{1, 2})
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := NewSectionExtractor(cfg, nil).Run(strings.NewReader(in), io.Discard, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtractInline(b *testing.B) {
	var sb strings.Builder
	for i := 1; i <= 1000; i++ {
		sb.WriteString("  " + strconv.Itoa(i) + "-KiB serial loads   4.01   1.54\n")
		sb.WriteString("unrelated line\n")
	}
	in := sb.String()
	cfg, err := NewInlineConfig(DefaultInlinePattern)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ExtractInline(cfg, strings.NewReader(in), io.Discard, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func TestLargeLogRowCount(t *testing.T) {
	cfg, err := NewSectionConfig(DefaultStartTag, DefaultEndTag, DefaultNamePattern, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	err = NewSectionExtractor(cfg, nil).Run(strings.NewReader(makeOneshotLog(3, 50)), io.Discard, func(r Record) {
		n++
		if r.ID != r.Fields[0] {
			t.Errorf("id %s does not match loads %s", r.ID, r.Fields[0])
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 150 {
		t.Fatalf("got %d rows, want 150", n)
	}
}
