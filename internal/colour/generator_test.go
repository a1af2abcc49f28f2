package colour

import (
	"errors"
	"math/rand"
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// testPixels builds a pixel set with pseudo-random but deterministic content.
func testPixels(t *testing.T, n int) *PixelSet {
	t.Helper()

	rng := rand.New(rand.NewSource(1))
	pixels := make([]RGB, n)
	for i := range pixels {
		pixels[i] = RGB{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	return NewPixelSet(pixels, nil)
}

func seedOf(v int64) *int64 {
	return &v
}

func TestGenerateReturnsExactlyKHexColours(t *testing.T) {
	gen := NewGenerator()
	ps := testPixels(t, 500)

	for _, k := range []int{1, 2, 4, 8, 16} {
		palette, err := gen.Generate(ps, k, Options{Seed: seedOf(42)})
		if err != nil {
			t.Fatalf("Generate(k=%d) returned error: %v", k, err)
		}

		hexes := palette.Hex()
		if len(hexes) != k {
			t.Errorf("Generate(k=%d) returned %d colours", k, len(hexes))
		}
		for _, hex := range hexes {
			if !hexPattern.MatchString(hex) {
				t.Errorf("Generate(k=%d) produced malformed hex %q", k, hex)
			}
		}
	}
}

func TestGenerateIsDeterministicWithSeed(t *testing.T) {
	gen := NewGenerator()
	ps := testPixels(t, 500)

	first, err := gen.Generate(ps, 4, Options{Seed: seedOf(42)})
	if err != nil {
		t.Fatalf("first Generate returned error: %v", err)
	}
	second, err := gen.Generate(ps, 4, Options{Seed: seedOf(42)})
	if err != nil {
		t.Fatalf("second Generate returned error: %v", err)
	}

	firstHex := first.Hex()
	secondHex := second.Hex()
	if len(firstHex) != len(secondHex) {
		t.Fatalf("palette sizes differ: %d vs %d", len(firstHex), len(secondHex))
	}
	for i := range firstHex {
		if firstHex[i] != secondHex[i] {
			t.Errorf("colour %d differs: %s vs %s", i, firstHex[i], secondHex[i])
		}
	}
}

func TestGeneratePalettesAreHueSorted(t *testing.T) {
	gen := NewGenerator()
	ps := testPixels(t, 500)

	palette, err := gen.Generate(ps, 8, Options{Seed: seedOf(7)})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	prev := -1.0
	for i, c := range palette.Colours {
		h, _, _ := c.HSV()
		if h < prev {
			t.Errorf("hue decreases at index %d: %f < %f", i, h, prev)
		}
		prev = h
	}
}

func TestGenerateChannelsAreNudgedOffBoundaries(t *testing.T) {
	gen := NewGenerator()

	// A single-colour image of pure black clusters to a centroid of exactly
	// zero per channel, which must be nudged inward.
	pixels := make([]RGB, 100)
	ps := NewPixelSet(pixels, nil)

	palette, err := gen.Generate(ps, 1, Options{Seed: seedOf(1)})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	c := palette.Colours[0]
	for name, v := range map[string]float64{"R": c.R, "G": c.G, "B": c.B} {
		if v <= 0 || v >= 1 {
			t.Errorf("channel %s not nudged off boundary: %v", name, v)
		}
	}
}

func TestGenerateEmptyPixelSet(t *testing.T) {
	gen := NewGenerator()

	_, err := gen.Generate(NewPixelSet(nil, nil), 4, Options{})
	if !errors.Is(err, ErrEmptyPixelSet) {
		t.Errorf("expected ErrEmptyPixelSet, got %v", err)
	}
}

func TestGenerateInvalidColourCount(t *testing.T) {
	gen := NewGenerator()
	ps := testPixels(t, 10)

	if _, err := gen.Generate(ps, 0, Options{}); err == nil {
		t.Error("expected error for k=0")
	}
}

func TestGenerateMoreColoursThanPixels(t *testing.T) {
	gen := NewGenerator()
	ps := NewPixelSet([]RGB{{R: 10}, {G: 20}}, nil)

	palette, err := gen.Generate(ps, 5, Options{Seed: seedOf(3)})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if palette.Len() != 5 {
		t.Errorf("expected 5 colours, got %d", palette.Len())
	}
}

func TestWithoutTransparent(t *testing.T) {
	pixels := []RGB{{R: 1}, {R: 2}, {R: 3}}
	mask := []bool{false, true, false}

	ps := NewPixelSet(pixels, mask)
	filtered := ps.WithoutTransparent()

	if filtered.Len() != 2 {
		t.Fatalf("expected 2 pixels after filtering, got %d", filtered.Len())
	}
	if ps.Len() != 3 {
		t.Errorf("original pixel set was modified, len=%d", ps.Len())
	}
	if got := filtered.Pixels()[1]; got.R != 3 {
		t.Errorf("unexpected pixel after filtering: %+v", got)
	}
}
