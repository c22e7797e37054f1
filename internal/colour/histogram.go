package colour

import "image"

// DefaultIdentifier is returned when an image contains no opaque pixels
// at all, so extraction always produces a usable colour. The value is
// a neutral blurple.
const DefaultIdentifier Identifier = 0x5865F2

// HistogramQuantizer estimates a dominant colour by counting coarsened
// colour buckets instead of clustering. It is the fallback used when
// clustering reports no result, and can stand alone when a caller wants
// a fast approximate answer without perceptual-space accuracy.
type HistogramQuantizer struct{}

// NewHistogramQuantizer creates a histogram-based quantizer.
func NewHistogramQuantizer() *HistogramQuantizer {
	return &HistogramQuantizer{}
}

// Dominant truncates the low 4 bits of every opaque pixel's channels
// (32 levels per channel), accumulates a frequency histogram over the
// quantized packed colours, and returns the fullest bucket's value.
// The representative is the quantized value itself, not an average of
// the bucket's members. An empty histogram yields DefaultIdentifier.
func (q *HistogramQuantizer) Dominant(img image.Image) Identifier {
	counts := make(map[Identifier]int)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if uint8(a>>8) < alphaThreshold {
				continue
			}

			quantized := RGB{
				R: uint8(r>>8) &^ 0x0f,
				G: uint8(g>>8) &^ 0x0f,
				B: uint8(b>>8) &^ 0x0f,
			}
			counts[quantized.Identifier()]++
		}
	}

	if len(counts) == 0 {
		return DefaultIdentifier
	}

	// Map iteration order is random; break count ties on the smaller
	// packed value so results stay deterministic.
	var (
		best      Identifier
		bestCount int
	)
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best = id
			bestCount = count
		}
	}

	return best
}
