package colour

import (
	"image"

	"github.com/nfnt/resize"
)

// maxDimension bounds the pixel count fed to clustering. Cost is
// O(pixels x clusters x iterations), so capping the larger side caps
// worst-case latency regardless of the source image size.
const maxDimension = 256

// normalize downscales an image so its larger dimension is at most
// maxDimension pixels, preserving aspect ratio, using Lanczos
// resampling. Images already within bounds are returned as-is; there is
// no upscaling.
func normalize(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxDimension && height <= maxDimension {
		return img
	}

	if width >= height {
		return resize.Resize(maxDimension, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, maxDimension, img, resize.Lanczos3)
}
