package colour

import (
	"fmt"
	"time"
)

// Options configures a clustering run.
type Options struct {
	// Seed fixes the random initialisation of the clustering so that the
	// same seed and input produce the same palette. When nil, a seed is
	// derived from the clock and two runs may differ.
	Seed *int64

	// MaxIterations bounds the clustering loop. Zero means the default.
	MaxIterations int
}

// resolveSeed returns the seed to use for a run.
func (o Options) resolveSeed() int64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return time.Now().UnixNano()
}

// Generator produces colour palettes from pixel data via k-means clustering.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate clusters the pixel set into exactly k colours and returns them as
// a hue-sorted palette of unit-interval colours.
func (g *Generator) Generate(ps *PixelSet, k int, opts Options) (*Palette, error) {
	palette, _, err := g.generate(ps, k, opts.resolveSeed(), opts.MaxIterations)
	return palette, err
}

// generate runs one clustering pass and additionally reports the inertia of
// the fitted model.
func (g *Generator) generate(ps *PixelSet, k int, seed int64, maxIterations int) (*Palette, float64, error) {
	if k < 1 {
		return nil, 0, fmt.Errorf("colour count must be at least 1, got %d", k)
	}
	if ps == nil || ps.Len() == 0 {
		return nil, 0, ErrEmptyPixelSet
	}

	points := make([]point3D, ps.Len())
	for i, p := range ps.Pixels() {
		points[i] = point3D{
			R: float64(p.R),
			G: float64(p.G),
			B: float64(p.B),
		}
	}

	km := newKMeans(seed, maxIterations)
	centroids, inertia := km.fit(points, k)

	// Normalise centroids to the unit interval, order by hue and nudge
	// channels off the exact 0/1 boundaries.
	colours := make([]Colour, len(centroids))
	for i, c := range centroids {
		colours[i] = Colour{
			R: c.R / 255,
			G: c.G / 255,
			B: c.B / 255,
		}
	}

	sortByHue(colours)

	for i := range colours {
		colours[i] = colours[i].nudged()
	}

	return NewPalette(colours), inertia, nil
}
