package colour

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientColours is returned when no candidate palette holds enough
// colours to pick the requested distinct subset from.
var ErrInsufficientColours = errors.New("no candidate palette has enough colours")

// distinctSeed fixes the re-clustering of palette colours so that subset
// selection over the same candidates is repeatable.
const distinctSeed = 0

// SelectDistinct picks the m mutually most distinct colours from a set of
// candidate palettes, typically the per-count palettes of an optimal search.
//
// Every candidate with at least m colours is re-clustered into m groups and
// the resulting centroids are scored by the sum of all pairwise Euclidean
// distances between them. The candidate with the strictly highest score wins;
// on a tie the candidate with the lowest colour count is kept. The score is
// intentionally not normalised for candidate size, matching the behaviour of
// the summed-distance heuristic this is based on.
func (g *Generator) SelectDistinct(palettes map[int]*Palette, m int) (*Palette, error) {
	if m < 1 {
		return nil, fmt.Errorf("distinct colour count must be at least 1, got %d", m)
	}

	// Candidates are visited in ascending colour count so the first maximum
	// encountered is stable across runs.
	ks := make([]int, 0, len(palettes))
	for k := range palettes {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	var best *Palette
	bestScore := 0.0

	for _, k := range ks {
		candidate := palettes[k]
		if candidate == nil || candidate.Len() < m {
			continue
		}

		subset := reclusterColours(candidate.Colours, m)
		score := pairwiseDistanceSum(subset)

		if best == nil || score > bestScore {
			bestScore = score
			sortByHue(subset)
			best = NewPalette(subset)
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: need %d", ErrInsufficientColours, m)
	}

	return best, nil
}

// reclusterColours runs k-means over the colours themselves, producing m
// representative centroids. The colours are scaled to 0-255 so the clustering
// convergence threshold applies at its usual scale.
func reclusterColours(colours []Colour, m int) []Colour {
	points := make([]point3D, len(colours))
	for i, c := range colours {
		points[i] = point3D{
			R: c.R * 255,
			G: c.G * 255,
			B: c.B * 255,
		}
	}

	km := newKMeans(distinctSeed, 0)
	centroids, _ := km.fit(points, m)

	subset := make([]Colour, len(centroids))
	for i, c := range centroids {
		subset[i] = Colour{
			R: c.R / 255,
			G: c.G / 255,
			B: c.B / 255,
		}
	}
	return subset
}

// pairwiseDistanceSum totals the Euclidean distance between every pair of
// colours. Higher means a more mutually distinct set.
func pairwiseDistanceSum(colours []Colour) float64 {
	sum := 0.0
	for i := 0; i < len(colours); i++ {
		for j := i + 1; j < len(colours); j++ {
			sum += colours[i].distance(colours[j])
		}
	}
	return sum
}
