package art

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// matchThreshold is the minimum similarity ratio (0-100) for a metadata
// search result to be accepted as a match for the requested album.
const matchThreshold = 80

// matchRatio returns a similarity ratio between two strings on a 0-100 scale,
// based on the Levenshtein edit distance. Comparison is case-insensitive.
func matchRatio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 100
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}
