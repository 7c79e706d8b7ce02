package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout replaces os.Stdout with a pipe, calls f, then returns the
// captured output and restores os.Stdout. It is NOT safe for parallel use
// because os.Stdout is a package-level variable.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	f()

	w.Close()
	<-done
	os.Stdout = orig
	r.Close()
	return buf.String()
}

// TestFormatJSON verifies that formatJSON emits indented JSON to stdout.
func TestFormatJSON(t *testing.T) {
	type sample struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	v := sample{ID: 7, Name: "Electric Kettle"}

	got := captureStdout(t, func() { formatJSON(v) })

	var out sample
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, got)
	}
	if out.ID != 7 {
		t.Errorf("id: got %d, want 7", out.ID)
	}
	if out.Name != "Electric Kettle" {
		t.Errorf("name: got %q, want %q", out.Name, "Electric Kettle")
	}
}

// TestFormatTable verifies column alignment and the separator row.
func TestFormatTable(t *testing.T) {
	got := captureStdout(t, func() {
		formatTable(
			[]string{"ID", "NAME"},
			[][]string{{"7", "Electric Kettle"}, {"12", "Sofa"}},
		)
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator, and 2 rows, got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("separator line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Electric Kettle") {
		t.Errorf("first row: %q", lines[2])
	}
}

// TestOutputQuiet verifies quiet mode prints only the quiet value.
func TestOutputQuiet(t *testing.T) {
	orig := flagFmt
	flagFmt = "quiet"
	t.Cleanup(func() { flagFmt = orig })

	got := captureStdout(t, func() { output(map[string]int{"queued": 3}, "3") })
	if strings.TrimSpace(got) != "3" {
		t.Errorf("quiet output: %q", got)
	}
}
