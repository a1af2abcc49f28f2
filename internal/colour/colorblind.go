package colour

import (
	"errors"
	"fmt"
)

// Deficiency names a colour vision deficiency type.
type Deficiency string

const (
	// Protanopia is the absence of red retinal photoreceptors.
	Protanopia Deficiency = "protanopia"

	// Deuteranopia is the absence of green retinal photoreceptors.
	Deuteranopia Deficiency = "deuteranopia"

	// Tritanopia is the absence of blue retinal photoreceptors.
	Tritanopia Deficiency = "tritanopia"
)

// DefaultCVDThreshold is the minimum distance between simulated colours below
// which a pair is considered indistinguishable.
const DefaultCVDThreshold = 0.1

// ErrUnknownDeficiency is returned for deficiency names outside the three
// supported types. There is no default substitution.
var ErrUnknownDeficiency = errors.New("unknown colour vision deficiency")

// Transformation matrices from Vischeck for simulating colour vision
// deficiency. They apply to RGB values in the 0-1 range.
var cvdMatrices = map[Deficiency][3][3]float64{
	Protanopia: {
		{0.56667, 0.43333, 0.0},
		{0.55833, 0.44167, 0.0},
		{0.0, 0.24167, 0.75833},
	},
	Deuteranopia: {
		{0.625, 0.375, 0.0},
		{0.7, 0.3, 0.0},
		{0.0, 0.3, 0.7},
	},
	Tritanopia: {
		{0.95, 0.05, 0.0},
		{0.0, 0.43333, 0.56667},
		{0.0, 0.475, 0.525},
	},
}

// Deficiencies returns the supported deficiency types.
func Deficiencies() []Deficiency {
	return []Deficiency{Protanopia, Deuteranopia, Tritanopia}
}

// Simulate returns the colour transformed to approximate how it appears under
// the given deficiency.
func Simulate(c Colour, deficiency Deficiency) (Colour, error) {
	matrix, ok := cvdMatrices[deficiency]
	if !ok {
		return Colour{}, fmt.Errorf("%w: %q", ErrUnknownDeficiency, deficiency)
	}

	return Colour{
		R: c.R*matrix[0][0] + c.G*matrix[0][1] + c.B*matrix[0][2],
		G: c.R*matrix[1][0] + c.G*matrix[1][1] + c.B*matrix[1][2],
		B: c.R*matrix[2][0] + c.G*matrix[2][1] + c.B*matrix[2][2],
	}, nil
}

// IsColorblindFriendly reports whether every pair of colours remains
// distinguishable under the given deficiency: all pairwise Euclidean
// distances between the simulated colours must be at least threshold.
func IsColorblindFriendly(colours []Colour, deficiency Deficiency, threshold float64) (bool, error) {
	simulated := make([]Colour, len(colours))
	for i, c := range colours {
		sim, err := Simulate(c, deficiency)
		if err != nil {
			return false, err
		}
		simulated[i] = sim
	}

	for i := 0; i < len(simulated); i++ {
		for j := i + 1; j < len(simulated); j++ {
			if simulated[i].distance(simulated[j]) < threshold {
				return false, nil
			}
		}
	}

	return true, nil
}
