// Package colour provides colour clustering and palette generation for
// album cover art.
package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// nudgeEpsilon is the amount by which channel values sitting exactly on 0 or 1
// are pushed inward. Values on the boundary cause degenerate output in some
// downstream renderers.
const nudgeEpsilon = 1e-6

// RGB represents an 8-bit colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Colour is a colour with unit-interval float64 channels. It is the working
// representation for normalised centroids, where 8-bit precision would lose
// the distinctions the clustering produced.
type Colour struct {
	R, G, B float64
}

// RGB converts the colour to its nearest 8-bit representation.
func (c Colour) RGB() RGB {
	return RGB{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
	}
}

// Hex returns the colour as a lowercase hex string (e.g., "#1a2b3c").
func (c Colour) Hex() string {
	return c.RGB().Hex()
}

// HSV converts the colour to HSV space.
// Returns hue (0-360), saturation (0-1) and value (0-1).
func (c Colour) HSV() (h, s, v float64) {
	maxVal := math.Max(c.R, math.Max(c.G, c.B))
	minVal := math.Min(c.R, math.Min(c.G, c.B))
	delta := maxVal - minVal

	v = maxVal

	if maxVal > 0 {
		s = delta / maxVal
	}

	if delta == 0 {
		h = 0
		return
	}

	switch maxVal {
	case c.R:
		h = (c.G - c.B) / delta
		if c.G < c.B {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/delta + 2
	case c.B:
		h = (c.R-c.G)/delta + 4
	}

	h *= 60
	return
}

// distance calculates the Euclidean distance to another colour.
func (c Colour) distance(other Colour) float64 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// nudged returns the colour with any channel within nudgeEpsilon of 0 or 1
// pushed inward.
func (c Colour) nudged() Colour {
	return Colour{
		R: nudgeChannel(c.R),
		G: nudgeChannel(c.G),
		B: nudgeChannel(c.B),
	}
}

func nudgeChannel(v float64) float64 {
	if v <= nudgeEpsilon {
		return nudgeEpsilon
	}
	if v >= 1-nudgeEpsilon {
		return 1 - nudgeEpsilon
	}
	return v
}

// ParseHex parses a "#rrggbb" hex string into a Colour.
func ParseHex(hex string) (Colour, error) {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) != 6 {
		return Colour{}, fmt.Errorf("invalid hex colour: %q", hex)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(trimmed), "%02x%02x%02x", &r, &g, &b); err != nil {
		return Colour{}, fmt.Errorf("invalid hex colour: %q", hex)
	}

	return Colour{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}

// Palette represents an ordered collection of colours extracted from an image.
// Palettes produced by a Generator are sorted by hue.
type Palette struct {
	Colours []Colour
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colours []Colour) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Hex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) Hex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ToRGBSlice converts the palette colours to 8-bit RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColours := make([]RGB, len(p.Colours))
	for i, c := range p.Colours {
		rgbColours[i] = c.RGB()
	}
	return rgbColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		colours[i] = ColourJSON{
			Hex: c.Hex(),
			RGB: c.RGB(),
		}
	}

	paletteJSON := PaletteJSON{
		Count:   len(p.Colours),
		Colours: colours,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.RGB().String())
	}
	return result
}

// sortByHue orders colours ascending by the natural ordering of their
// (hue, saturation, value) tuple.
func sortByHue(colours []Colour) {
	n := len(colours)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if hsvLess(colours[j+1], colours[j]) {
				colours[j], colours[j+1] = colours[j+1], colours[j]
			}
		}
	}
}

func hsvLess(a, b Colour) bool {
	ah, as, av := a.HSV()
	bh, bs, bv := b.HSV()
	if ah != bh {
		return ah < bh
	}
	if as != bs {
		return as < bs
	}
	return av < bv
}
