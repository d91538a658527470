package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const loadsLog = `** memory/load-serial **
                 Benchmark    Cycles     Nanos
    16-KiB serial loads      4.00      1.54
   512-KiB serial loads 123.45
 other benchmark             1.00      0.38
`

func runCmd(t *testing.T, in string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rc := run(args, strings.NewReader(in), &stdout, &stderr)
	return rc, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	rc, out, errOut := runCmd(t, loadsLog)
	if rc != 0 {
		t.Fatalf("rc=%d stderr=%s", rc, errOut)
	}
	if out != "16,4.00\n512,123.45\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunNoMatch(t *testing.T) {
	rc, out, _ := runCmd(t, "nothing\n\n64-KiB parallel loads 1\n")
	if rc != 0 || out != "" {
		t.Fatalf("rc=%d out=%q", rc, out)
	}
}

func TestRunCustomPattern(t *testing.T) {
	rc, out, errOut := runCmd(t, "a size=8 ns=2.5\nb size=16 ns=3\n", "--pattern", `size=(\d+) ns=([\d.]+)`)
	if rc != 0 {
		t.Fatalf("rc=%d stderr=%s", rc, errOut)
	}
	if out != "8,2.5\n16,3\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		{"input.log"},
		{"--pattern", "("},
		{"--pattern", `(\d+)`},
		{"--bogus"},
	}
	for _, args := range tests {
		rc, out, errOut := runCmd(t, loadsLog, args...)
		if rc != 2 {
			t.Errorf("%q: rc=%d, want 2", args, rc)
		}
		if out != "" || !strings.Contains(errOut, "Usage:") {
			t.Errorf("%q: stdout=%q stderr=%q", args, out, errOut)
		}
	}
}

func TestRunHTML(t *testing.T) {
	html := filepath.Join(t.TempDir(), "loads.html")
	rc, out, errOut := runCmd(t, loadsLog, "--html", html, "--title", "serial loads")
	if rc != 0 {
		t.Fatalf("rc=%d stderr=%s", rc, errOut)
	}
	if out != "16,4.00\n512,123.45\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "chart written") {
		t.Errorf("stderr = %q", errOut)
	}
	b, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("serial loads")) || !bytes.Contains(b, []byte("123.45")) {
		t.Errorf("chart misses title or data")
	}
}
