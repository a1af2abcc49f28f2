package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/coverhue/coverhue/internal/colour"
)

func testPalette(t *testing.T) *colour.Palette {
	t.Helper()

	colours := make([]colour.Colour, 0, 2)
	for _, hex := range []string{"#336699", "#cc3311"} {
		c, err := colour.ParseHex(hex)
		if err != nil {
			t.Fatal(err)
		}
		colours = append(colours, c)
	}
	return colour.NewPalette(colours)
}

func TestFormatPaletteHex(t *testing.T) {
	output, err := formatPalette(testPalette(t), "hex", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "#336699" || lines[1] != "#cc3311" {
		t.Errorf("unexpected hex output: %v", lines)
	}
}

func TestFormatPaletteRGB(t *testing.T) {
	output, err := formatPalette(testPalette(t), "rgb", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if !strings.Contains(output, "rgb(51, 102, 153)") {
		t.Errorf("rgb output missing first colour:\n%s", output)
	}
}

func TestFormatPaletteJSON(t *testing.T) {
	output, err := formatPalette(testPalette(t), "json", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if !strings.Contains(output, `"count": 2`) {
		t.Errorf("json output missing colour count:\n%s", output)
	}
	if !strings.Contains(output, `"#336699"`) {
		t.Errorf("json output missing hex code:\n%s", output)
	}
}

func TestFormatPaletteWithPreview(t *testing.T) {
	output, err := formatPalette(testPalette(t), "hex", true)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if !strings.Contains(output, "\033[48;2;51;102;153m") {
		t.Errorf("preview output missing ANSI background sequence:\n%s", output)
	}
}

func TestFormatPaletteUnsupportedFormat(t *testing.T) {
	if _, err := formatPalette(testPalette(t), "yaml", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseDeficiency(t *testing.T) {
	for _, name := range []string{"protanopia", "deuteranopia", "tritanopia"} {
		d, err := parseDeficiency(name)
		if err != nil {
			t.Errorf("parseDeficiency(%q) returned error: %v", name, err)
		}
		if string(d) != name {
			t.Errorf("parseDeficiency(%q) = %q", name, d)
		}
	}

	_, err := parseDeficiency("monochromacy")
	if !errors.Is(err, colour.ErrUnknownDeficiency) {
		t.Errorf("expected ErrUnknownDeficiency, got %v", err)
	}
}
