// Package colour implements perceptual colour extraction for avatar images.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Identifier is a packed 24-bit RGB colour value (0xRRGGBB).
// It is the engine's sole externally visible output type and is
// always <= 0xFFFFFF.
type Identifier uint32

// Hex returns the identifier as a hex string (e.g., "#1a2b3c").
func (id Identifier) Hex() string {
	return id.RGB().Hex()
}

// RGB unpacks the identifier into its channel components.
func (id Identifier) RGB() RGB {
	return RGB{
		R: uint8(id >> 16 & 0xff),
		G: uint8(id >> 8 & 0xff),
		B: uint8(id & 0xff),
	}
}

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Identifier packs the RGB colour into a 24-bit identifier.
func (rgb RGB) Identifier() Identifier {
	return Identifier(rgb.R)<<16 | Identifier(rgb.G)<<8 | Identifier(rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Swatch is the result of a dual-mode extraction: the identifiers of
// the two largest perceptual regions of the image, ordered by pixel
// membership. Primary and Secondary are equal when the image has only
// one distinguishable region.
type Swatch struct {
	Primary   Identifier
	Secondary Identifier
}

// Single returns the colour safe to apply when the caller only
// supports one colour value.
func (s Swatch) Single() Identifier {
	return s.Primary
}

// swatchJSON is the JSON output shape for CLI consumption.
type swatchJSON struct {
	Primary   colourJSON `json:"primary"`
	Secondary colourJSON `json:"secondary"`
}

type colourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// ToJSON converts the swatch to JSON format.
func (s Swatch) ToJSON() ([]byte, error) {
	return json.MarshalIndent(swatchJSON{
		Primary:   colourJSON{Hex: s.Primary.Hex(), RGB: s.Primary.RGB()},
		Secondary: colourJSON{Hex: s.Secondary.Hex(), RGB: s.Secondary.RGB()},
	}, "", "  ")
}
