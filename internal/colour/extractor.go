package colour

import (
	"fmt"
	"image"
)

// Mode selects how many identity colours an extraction produces.
type Mode string

const (
	// ModeSingle extracts one dominant colour.
	ModeSingle Mode = "single"

	// ModeDual extracts a (primary, secondary) pair.
	ModeDual Mode = "dual"
)

// ParseMode validates a mode name from user input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeDual:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode: %s (valid modes: %s, %s)", s, ModeSingle, ModeDual)
	}
}

// Extractor turns a decoded avatar image into one or two identity
// colours. It first clusters the image's opaque pixels in Lab space and
// reads the largest clusters; when clustering yields nothing (for
// example a fully transparent image) it falls back to the histogram
// quantizer, which always answers.
//
// Extraction is a pure synchronous computation over the given image
// with no shared state, so a single Extractor is safe to use from any
// number of goroutines. It never returns an error: any successfully
// decoded image produces a usable identifier.
type Extractor struct {
	clusterer *KMeansClusterer
	fallback  *HistogramQuantizer
}

// NewExtractor creates an Extractor with the default clusterer and
// fallback settings.
func NewExtractor() *Extractor {
	return &Extractor{
		clusterer: NewKMeansClusterer(),
		fallback:  NewHistogramQuantizer(),
	}
}

// Dominant returns the single most representative colour of the image.
func (e *Extractor) Dominant(img image.Image) Identifier {
	img = normalize(img)

	clusters, ok := e.clusterer.Cluster(img)
	if !ok {
		return e.fallback.Dominant(img)
	}

	return clusters[0].RGB().Identifier()
}

// Dual returns the colours of the two largest perceptual regions of the
// image. When fewer than two clusters survive, or clustering yields
// nothing, the secondary colour equals the primary.
func (e *Extractor) Dual(img image.Image) Swatch {
	img = normalize(img)

	clusters, ok := e.clusterer.Cluster(img)
	if !ok {
		single := e.fallback.Dominant(img)
		return Swatch{Primary: single, Secondary: single}
	}

	primary := clusters[0].RGB().Identifier()
	if len(clusters) < 2 {
		return Swatch{Primary: primary, Secondary: primary}
	}

	return Swatch{
		Primary:   primary,
		Secondary: clusters[1].RGB().Identifier(),
	}
}

// Extract runs the extraction in the given mode. Single mode reports
// the dominant colour as both halves of the swatch so callers can
// consume one shape regardless of mode.
func (e *Extractor) Extract(img image.Image, mode Mode) Swatch {
	if mode == ModeDual {
		return e.Dual(img)
	}
	single := e.Dominant(img)
	return Swatch{Primary: single, Secondary: single}
}
