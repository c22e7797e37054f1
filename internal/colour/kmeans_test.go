package colour

import (
	"image"
	"image/color"
	"testing"
)

// solidImage returns a w x h image filled with a single colour.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// twoToneImage returns a w x h image whose left half is one colour and
// right half another, all fully opaque.
func twoToneImage(w, h int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

// transparentImage returns a w x h image with alpha 0 everywhere.
func transparentImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// channelsWithin reports whether two colours match within a per-channel
// tolerance.
func channelsWithin(t *testing.T, got, want RGB, tolerance int) bool {
	t.Helper()
	abs := func(a int) int {
		if a < 0 {
			return -a
		}
		return a
	}
	return abs(int(got.R)-int(want.R)) <= tolerance &&
		abs(int(got.G)-int(want.G)) <= tolerance &&
		abs(int(got.B)-int(want.B)) <= tolerance
}

func TestClusterSolidColour(t *testing.T) {
	img := solidImage(64, 64, color.RGBA{R: 255, A: 255})

	clusters, ok := NewKMeansClusterer().Cluster(img)
	if !ok {
		t.Fatal("Cluster() reported no result for an opaque image")
	}

	if len(clusters) != 1 {
		t.Fatalf("expected 1 surviving cluster for a solid image, got %d", len(clusters))
	}
	if clusters[0].Members != 64*64 {
		t.Errorf("expected %d members, got %d", 64*64, clusters[0].Members)
	}
	if got := clusters[0].RGB(); !channelsWithin(t, got, RGB{R: 255}, 2) {
		t.Errorf("centroid = %s, want ~#ff0000", got.Hex())
	}
}

func TestClusterTwoTone(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	yellow := color.RGBA{R: 255, G: 255, A: 255}
	img := twoToneImage(64, 64, blue, yellow)

	clusters, ok := NewKMeansClusterer().Cluster(img)
	if !ok {
		t.Fatal("Cluster() reported no result for an opaque image")
	}

	if len(clusters) != 2 {
		t.Fatalf("expected 2 surviving clusters, got %d", len(clusters))
	}

	var foundBlue, foundYellow bool
	for _, c := range clusters {
		rgb := c.RGB()
		if channelsWithin(t, rgb, RGB{B: 255}, 2) {
			foundBlue = true
		}
		if channelsWithin(t, rgb, RGB{R: 255, G: 255}, 2) {
			foundYellow = true
		}
		if c.Members != 64*64/2 {
			t.Errorf("cluster %s has %d members, want %d", rgb.Hex(), c.Members, 64*64/2)
		}
	}
	if !foundBlue || !foundYellow {
		t.Errorf("expected both tones present, got blue=%v yellow=%v", foundBlue, foundYellow)
	}
}

func TestClusterTransparentImage(t *testing.T) {
	clusters, ok := NewKMeansClusterer().Cluster(transparentImage(16, 16))
	if ok {
		t.Errorf("expected no result for a fully transparent image, got %d clusters", len(clusters))
	}
}

func TestClusterFewerSamplesThanClusters(t *testing.T) {
	// 2x2 image with 2 distinct opaque colours, against k=5. The
	// stride seeding must degrade instead of dividing by zero.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	clusters, ok := NewKMeansClusterer().Cluster(img)
	if !ok {
		t.Fatal("Cluster() reported no result for an opaque image")
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 surviving clusters, got %d", len(clusters))
	}

	var foundRed, foundBlue bool
	for _, c := range clusters {
		rgb := c.RGB()
		if channelsWithin(t, rgb, RGB{R: 255}, 2) {
			foundRed = true
		}
		if channelsWithin(t, rgb, RGB{B: 255}, 2) {
			foundBlue = true
		}
	}
	if !foundRed || !foundBlue {
		t.Errorf("expected both colours present, got red=%v blue=%v", foundRed, foundBlue)
	}
}

func TestClusterDeterminism(t *testing.T) {
	// A deterministic but non-trivial pattern: diagonal colour ramp.
	img := image.NewRGBA(image.Rect(0, 0, 48, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 5),
				G: uint8(y * 5),
				B: uint8((x + y) * 2),
				A: 255,
			})
		}
	}

	clusterer := NewKMeansClusterer()
	first, ok := clusterer.Cluster(img)
	if !ok {
		t.Fatal("Cluster() reported no result")
	}

	for run := 0; run < 3; run++ {
		again, ok := clusterer.Cluster(img)
		if !ok {
			t.Fatal("Cluster() reported no result on repeat run")
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: cluster count %d, want %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Errorf("run %d: cluster %d = %+v, want %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestSeedCentroids(t *testing.T) {
	samples := []labPoint{
		{L: 0.1}, {L: 0.2}, {L: 0.3}, {L: 0.4}, {L: 0.5},
		{L: 0.6}, {L: 0.7}, {L: 0.8}, {L: 0.9}, {L: 1.0},
	}

	tests := []struct {
		name    string
		samples []labPoint
		k       int
		want    int
	}{
		{name: "more samples than clusters", samples: samples, k: 5, want: 5},
		{name: "equal samples and clusters", samples: samples[:5], k: 5, want: 5},
		{name: "fewer samples than clusters", samples: samples[:3], k: 5, want: 3},
		{name: "single sample", samples: samples[:1], k: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seedCentroids(tt.samples, tt.k)
			if len(got) != tt.want {
				t.Errorf("seedCentroids() returned %d seeds, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCollectSamplesAlphaFilter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 127}) // below threshold

	samples := collectSamples(img)
	if len(samples) != 1 {
		t.Errorf("expected 1 sample after alpha filtering, got %d", len(samples))
	}
}
