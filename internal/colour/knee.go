package colour

// findKnee locates the knee of a convex, decreasing curve given as parallel
// slices of x values (ascending) and y values. It normalises both axes to the
// unit interval and picks the point furthest below the chord connecting the
// endpoints. Returns the x value at the knee and whether one was found.
//
// No knee exists when there are fewer than three points, when the curve is
// flat, or when no point lies below the chord (the curve is not convex
// decreasing).
func findKnee(xs []int, ys []float64) (int, bool) {
	n := len(xs)
	if n < 3 || len(ys) != n {
		return 0, false
	}

	yMax, yMin := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y > yMax {
			yMax = y
		}
		if y < yMin {
			yMin = y
		}
	}
	if yMax == yMin {
		return 0, false
	}

	xSpan := float64(xs[n-1] - xs[0])
	if xSpan == 0 {
		return 0, false
	}

	// For a decreasing curve the normalised endpoints are (0, 1) and (1, 0),
	// so the chord is 1-x. The knee is the point with the largest gap below
	// the chord.
	bestDiff := 0.0
	bestX := 0
	found := false
	for i, y := range ys {
		xNorm := float64(xs[i]-xs[0]) / xSpan
		yNorm := (y - yMin) / (yMax - yMin)
		diff := (1 - xNorm) - yNorm
		if diff > bestDiff {
			bestDiff = diff
			bestX = xs[i]
			found = true
		}
	}

	return bestX, found
}
