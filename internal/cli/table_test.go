package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"NAME", "COLOURS"})
	table.AddRow([]string{"radiohead_ok_computer_4", "4"})
	table.AddRow([]string{"short", "10"})

	output := table.Render()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, separator, two rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "-") {
		t.Errorf("separator line = %q", lines[1])
	}

	// All lines align to the widest cell in each column.
	want := len(lines[0])
	for i, line := range lines {
		if len(strings.TrimRight(line, " ")) > want {
			t.Errorf("line %d wider than header row: %q", i, line)
		}
	}
}

func TestTableShortRowPadded(t *testing.T) {
	table := NewTable([]string{"A", "B", "C"})
	table.AddRow([]string{"only"})

	output := table.Render()
	if !strings.Contains(output, "only") {
		t.Errorf("short row missing from output:\n%s", output)
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	table := NewTable(nil)
	if got := table.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight(\"ab\", 5) = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight(\"abcdef\", 3) = %q", got)
	}
}
