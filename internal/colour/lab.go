package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// alphaThreshold is the minimum alpha (out of 255) for a pixel to count
// towards extraction. Anything below is treated as background and
// excluded entirely so transparent regions cannot bias the result.
const alphaThreshold = 128

// labPoint is a pixel re-expressed in CIE Lab space, where Euclidean
// distance approximates perceived colour difference. Conversion in both
// directions is a pure function of the input.
type labPoint struct {
	L, A, B float64
}

// labFromRGB converts an 8-bit sRGB triple through the
// sRGB -> linear -> XYZ -> Lab chain.
func labFromRGB(rgb RGB) labPoint {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	l, a, b := c.Lab()
	return labPoint{L: l, A: a, B: b}
}

// RGB converts the point back to a displayable sRGB triple. Out-of-gamut
// results are clamped per channel rather than failing, so any centroid
// produced by averaging in-gamut samples maps to a valid colour.
func (p labPoint) RGB() RGB {
	c := colorful.Lab(p.L, p.A, p.B).Clamped()
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// distance is the Euclidean distance between two points in Lab space.
func (p labPoint) distance(other labPoint) float64 {
	dl := p.L - other.L
	da := p.A - other.A
	db := p.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
