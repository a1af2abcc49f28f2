package colour

import (
	"math"
	"math/rand"
)

// kmeans parameters. Convergence is expressed in the same units as the point
// coordinates (0-255 for pixel data; callers clustering unit-interval colours
// scale their points up first).
const (
	defaultMaxIterations = 20
	defaultConvergence   = 2.0
)

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// kMeans performs k-means clustering with k-means++ initialisation. The
// random source is explicit so that seeded runs are reproducible.
type kMeans struct {
	maxIterations int
	convergence   float64
	rng           *rand.Rand
}

func newKMeans(seed int64, maxIterations int) *kMeans {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &kMeans{
		maxIterations: maxIterations,
		convergence:   defaultConvergence,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// fit clusters the points into k groups and returns the final centroids along
// with the inertia (sum of squared distances from each point to its assigned
// centroid). Always returns exactly k centroids.
func (km *kMeans) fit(points []point3D, k int) ([]point3D, float64) {
	centroids := km.initializeCentroids(points, k)

	assignments := make([]int, len(points))

	for iter := 0; iter < km.maxIterations; iter++ {
		// Assign each point to its nearest centroid.
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// If very few assignments changed (< 1%), we've converged.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := km.recalculateCentroids(points, assignments, k)

		// Check for convergence based on centroid movement.
		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		avgMovement := totalMovement / float64(k)

		centroids = newCentroids

		if avgMovement < km.convergence {
			break
		}
	}

	// Final assignment pass and inertia over the settled centroids.
	inertia := 0.0
	for i, point := range points {
		nearest := nearestCentroid(point, centroids)
		assignments[i] = nearest
		d := point.distance(centroids[nearest])
		inertia += d * d
	}

	return centroids, inertia
}

// initializeCentroids picks initial centroids using the k-means++ algorithm:
// the first centroid is chosen at random, each subsequent one with probability
// proportional to its squared distance from the nearest existing centroid.
func (km *kMeans) initializeCentroids(points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)

	firstIdx := km.rng.Intn(len(points))
	centroids = append(centroids, points[firstIdx])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				dist := point.distance(centroid)
				if dist < minDist {
					minDist = dist
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// All remaining points coincide with existing centroids.
			// Duplicate the last centroid slightly perturbed so we still
			// end up with exactly k of them.
			lastCentroid := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{
				R: lastCentroid.R + 0.1,
				G: lastCentroid.G + 0.1,
				B: lastCentroid.B + 0.1,
			})
			continue
		}

		target := km.rng.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func (km *kMeans) recalculateCentroids(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			// Empty cluster - reinitialise from a random point.
			centroids[i] = points[km.rng.Intn(len(points))]
		}
	}

	return centroids
}
