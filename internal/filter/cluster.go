package filter

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// clusterSeed fixes the k-means initialization so repeated applications on
// the same input produce the same swatches.
const clusterSeed = 1

// clusterPoint is a pixel in clustering space: R/G/B samples (0-255) in the
// default mode, or CIE Lab coordinates in perceptual mode.
type clusterPoint struct {
	x, y, z float64
}

func (p clusterPoint) distanceSq(other clusterPoint) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	dz := p.z - other.z
	return dx*dx + dy*dy + dz*dz
}

// rgb255 converts a point back to 8-bit RGB samples.
func (p clusterPoint) rgb255(perceptual bool) (uint8, uint8, uint8) {
	if perceptual {
		return colorful.Lab(p.x, p.y, p.z).Clamped().RGB255()
	}
	return clamp255(p.x), clamp255(p.y), clamp255(p.z)
}

func clamp255(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

// clusterColors implements swatch.TransformClusterColors: k-means over the
// extent's pixels, emitting one swatch per cluster as a Clusters×1 strip.
//
// The output's alpha channel carries each cluster's weight (its share of
// the extent's pixels scaled to 0-255); callers that want opaque swatches
// apply Opaque before rendering. With the perceptual flag set, clustering
// runs in CIE Lab so near-duplicate shades from compression artifacts group
// together instead of splitting clusters.
func clusterColors(task swatch.Task) (swatch.Output, error) {
	src, err := convertInput(task)
	if err != nil {
		return nil, err
	}

	k := task.Clusters
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	passes := task.Passes
	if passes < 1 {
		passes = 1
	}

	points := collectPoints(src, task.Perceptual)

	rng := rand.New(rand.NewSource(clusterSeed))
	centroids := seedCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < passes; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && changed == 0 {
			break
		}
		centroids = recomputeCentroids(points, assignments, k, rng)
	}

	counts := make([]int, k)
	for _, a := range assignments {
		counts[a]++
	}

	out := image.NewNRGBA(image.Rect(0, 0, k, 1))
	for i, c := range centroids {
		r, g, b := c.rgb255(task.Perceptual)
		off := i * 4
		out.Pix[off] = r
		out.Pix[off+1] = g
		out.Pix[off+2] = b
		out.Pix[off+3] = uint8(math.Round(float64(counts[i]) / float64(len(points)) * 255))
	}

	return &output{img: out}, nil
}

// collectPoints lifts every pixel in the raster into clustering space.
func collectPoints(src *image.NRGBA, perceptual bool) []clusterPoint {
	bounds := src.Bounds()
	w := bounds.Dx()
	points := make([]clusterPoint, 0, w*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := src.PixOffset(bounds.Min.X, y)
		row := src.Pix[off : off+w*4]
		for x := 0; x < len(row); x += 4 {
			if perceptual {
				c := colorful.Color{
					R: float64(row[x]) / 255.0,
					G: float64(row[x+1]) / 255.0,
					B: float64(row[x+2]) / 255.0,
				}
				l, a, b := c.Lab()
				points = append(points, clusterPoint{x: l, y: a, z: b})
			} else {
				points = append(points, clusterPoint{
					x: float64(row[x]),
					y: float64(row[x+1]),
					z: float64(row[x+2]),
				})
			}
		}
	}
	return points
}

// seedCentroids picks k initial centroids using k-means++: the first at
// random, the rest with probability proportional to squared distance from
// the nearest centroid chosen so far.
func seedCentroids(points []clusterPoint, k int, rng *rand.Rand) []clusterPoint {
	centroids := make([]clusterPoint, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := p.distanceSq(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			total += minDist
		}

		if total == 0 {
			// Fewer distinct points than clusters; pad with a nudged copy of
			// the last centroid so the output size stays fixed.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, clusterPoint{x: last.x + 0.1, y: last.y + 0.1, z: last.z + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}
	return centroids
}

func nearestCentroid(p clusterPoint, centroids []clusterPoint) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distanceSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recomputeCentroids moves each centroid to the mean of its assigned points.
// Empty clusters are reseeded to a random point.
func recomputeCentroids(points []clusterPoint, assignments []int, k int, rng *rand.Rand) []clusterPoint {
	sums := make([]clusterPoint, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].x += p.x
		sums[c].y += p.y
		sums[c].z += p.z
		counts[c]++
	}

	centroids := make([]clusterPoint, k)
	for i := range centroids {
		if counts[i] > 0 {
			centroids[i] = clusterPoint{
				x: sums[i].x / float64(counts[i]),
				y: sums[i].y / float64(counts[i]),
				z: sums[i].z / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
