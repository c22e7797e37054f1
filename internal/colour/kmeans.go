package colour

import (
	"image"
	"math"
	"sort"
)

// KMeansClusterer partitions the opaque pixels of an image into a fixed
// number of clusters in Lab space and reports the surviving clusters
// ranked by pixel membership.
//
// The whole run is deterministic: seeding steps through the samples in
// decode order, the iteration count is fixed, and ranking ties break on
// seed order. Repeated calls over the same image yield identical
// results.
type KMeansClusterer struct {
	clusters   int
	iterations int
}

// Cluster is a Lab-space centroid together with the number of samples
// assigned to it after the final iteration. Clusters only live for the
// duration of one clustering run.
type Cluster struct {
	Centroid labPoint
	Members  int
}

// RGB returns the cluster centroid as a displayable colour.
func (c Cluster) RGB() RGB {
	return c.Centroid.RGB()
}

// NewKMeansClusterer creates a clusterer with the default settings:
// 5 clusters, 20 Lloyd iterations. The iteration count is fixed rather
// than convergence-checked so worst-case latency stays bounded.
func NewKMeansClusterer() *KMeansClusterer {
	return &KMeansClusterer{
		clusters:   5,
		iterations: 20,
	}
}

// Cluster runs k-means over the image's opaque pixels and returns the
// clusters with nonzero membership, largest first. The second return
// value is false when the image has no opaque pixels at all; that is an
// expected outcome for fully transparent images, not an error.
func (k *KMeansClusterer) Cluster(img image.Image) ([]Cluster, bool) {
	samples := collectSamples(img)
	if len(samples) == 0 {
		return nil, false
	}

	centroids := seedCentroids(samples, k.clusters)
	assignments := make([]int, len(samples))

	for iter := 0; iter < k.iterations; iter++ {
		for i, sample := range samples {
			assignments[i] = nearestCentroid(sample, centroids)
		}
		centroids = recalculateCentroids(samples, assignments, centroids)
	}

	counts := make([]int, len(centroids))
	for _, assignment := range assignments {
		counts[assignment]++
	}

	clusters := make([]Cluster, 0, len(centroids))
	for i, centroid := range centroids {
		if counts[i] == 0 {
			continue
		}
		clusters = append(clusters, Cluster{Centroid: centroid, Members: counts[i]})
	}

	// Stable sort keeps seed order on membership ties.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Members > clusters[j].Members
	})

	return clusters, true
}

// collectSamples converts the image's pixels to Lab space in decode
// order, dropping anything below the alpha threshold.
func collectSamples(img image.Image) []labPoint {
	bounds := img.Bounds()
	samples := make([]labPoint, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if uint8(a>>8) < alphaThreshold {
				continue
			}
			samples = append(samples, labFromRGB(RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			}))
		}
	}

	return samples
}

// seedCentroids picks initial centroids by stepping through the sample
// list at a fixed stride. When there are fewer samples than requested
// clusters the stride would be zero, so it degrades to one seed per
// sample instead.
func seedCentroids(samples []labPoint, k int) []labPoint {
	if len(samples) < k {
		centroids := make([]labPoint, len(samples))
		copy(centroids, samples)
		return centroids
	}

	stride := len(samples) / k
	centroids := make([]labPoint, 0, k)
	for i := 0; len(centroids) < k; i += stride {
		centroids = append(centroids, samples[i])
	}
	return centroids
}

// nearestCentroid finds the index of the centroid closest to a sample.
func nearestCentroid(sample labPoint, centroids []labPoint) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := sample.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned
// samples. A centroid that attracted no samples keeps its previous
// position; it simply stops pulling points from then on.
func recalculateCentroids(samples []labPoint, assignments []int, previous []labPoint) []labPoint {
	sums := make([]labPoint, len(previous))
	counts := make([]int, len(previous))

	for i, sample := range samples {
		cluster := assignments[i]
		sums[cluster].L += sample.L
		sums[cluster].A += sample.A
		sums[cluster].B += sample.B
		counts[cluster]++
	}

	centroids := make([]labPoint, len(previous))
	for i := range centroids {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = labPoint{
			L: sums[i].L / n,
			A: sums[i].A / n,
			B: sums[i].B / n,
		}
	}

	return centroids
}
