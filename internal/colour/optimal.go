package colour

import (
	"fmt"
	"sort"
)

// OptimalResult holds the outcome of an optimal colour count search: every
// palette computed during the sweep, the inertia recorded for each colour
// count and the chosen count.
//
// BestK is 0 when the elbow heuristic was inconclusive. That is a valid
// outcome, not a failure; use Best to branch on it.
type OptimalResult struct {
	// Palettes maps each candidate colour count to the palette generated
	// for it.
	Palettes map[int]*Palette

	// Inertias maps each candidate colour count to the clustering inertia
	// recorded for it.
	Inertias map[int]float64

	// BestK is the colour count at the knee of the inertia curve, or 0 when
	// no knee was found.
	BestK int
}

// Best returns the palette at the chosen colour count. The boolean is false
// when the search found no optimum.
func (r *OptimalResult) Best() (*Palette, bool) {
	if r.BestK == 0 {
		return nil, false
	}
	return r.Palettes[r.BestK], true
}

// Ks returns the candidate colour counts in ascending order.
func (r *OptimalResult) Ks() []int {
	ks := make([]int, 0, len(r.Palettes))
	for k := range r.Palettes {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	return ks
}

// GenerateOptimal generates palettes for every colour count from 2 to maxK
// inclusive and picks the best count by locating the elbow of the inertia
// curve. The full per-count palette and inertia series are returned so that
// callers can inspect the alternatives.
func (g *Generator) GenerateOptimal(ps *PixelSet, maxK int, opts Options) (*OptimalResult, error) {
	if maxK < 2 {
		return nil, fmt.Errorf("maximum colour count must be at least 2, got %d", maxK)
	}

	seed := opts.resolveSeed()

	result := &OptimalResult{
		Palettes: make(map[int]*Palette, maxK-1),
		Inertias: make(map[int]float64, maxK-1),
	}

	ks := make([]int, 0, maxK-1)
	inertias := make([]float64, 0, maxK-1)
	for k := 2; k <= maxK; k++ {
		palette, inertia, err := g.generate(ps, k, seed, opts.MaxIterations)
		if err != nil {
			return nil, err
		}
		result.Palettes[k] = palette
		result.Inertias[k] = inertia
		ks = append(ks, k)
		inertias = append(inertias, inertia)
	}

	if bestK, ok := findKnee(ks, inertias); ok {
		result.BestK = bestK
	}

	return result, nil
}
