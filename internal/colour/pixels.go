package colour

import (
	"errors"
	"image"
)

// ErrEmptyPixelSet is returned when a clustering operation is asked to run
// over a pixel set with no pixels.
var ErrEmptyPixelSet = errors.New("pixel set is empty")

// PixelSet is an ordered sequence of RGB pixels taken from an image, together
// with a parallel mask marking fully transparent pixels. It is not modified
// after construction; filtering returns a new set.
type PixelSet struct {
	pixels      []RGB
	transparent []bool
}

// NewPixelSet builds a PixelSet from raw pixels. The transparent mask may be
// nil when no transparency information is available.
func NewPixelSet(pixels []RGB, transparent []bool) *PixelSet {
	return &PixelSet{
		pixels:      pixels,
		transparent: transparent,
	}
}

// PixelSetFromImage converts an image into a PixelSet in row-major order.
// Pixels with a fully transparent alpha channel are kept but marked in the
// transparency mask.
func PixelSetFromImage(img image.Image) *PixelSet {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	pixels := make([]RGB, 0, total)
	transparent := make([]bool, 0, total)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// RGBA returns values in the range [0, 65535], convert to [0, 255].
			pixels = append(pixels, RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
			transparent = append(transparent, a == 0)
		}
	}

	return &PixelSet{
		pixels:      pixels,
		transparent: transparent,
	}
}

// Len returns the number of pixels in the set.
func (ps *PixelSet) Len() int {
	return len(ps.pixels)
}

// Pixels returns the pixel data. The returned slice must not be modified.
func (ps *PixelSet) Pixels() []RGB {
	return ps.pixels
}

// TransparentCount returns the number of pixels marked as fully transparent.
func (ps *PixelSet) TransparentCount() int {
	count := 0
	for _, t := range ps.transparent {
		if t {
			count++
		}
	}
	return count
}

// WithoutTransparent returns a new PixelSet with all fully transparent pixels
// removed. The receiver is left untouched.
func (ps *PixelSet) WithoutTransparent() *PixelSet {
	if ps.transparent == nil {
		return NewPixelSet(ps.pixels, nil)
	}

	filtered := make([]RGB, 0, len(ps.pixels))
	for i, p := range ps.pixels {
		if ps.transparent[i] {
			continue
		}
		filtered = append(filtered, p)
	}

	return NewPixelSet(filtered, nil)
}
