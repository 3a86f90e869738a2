// Package preview produces the reduced-resolution raster an operator picks
// watermark positions against. Custom placement rules record the preview
// canvas size returned here so the picked point can be mapped back to the
// full-resolution image.
package preview

import (
	"image"

	"github.com/nfnt/resize"
)

// Default preview canvas bounds.
const (
	MaxWidth  = 800
	MaxHeight = 600
)

// Fit downscales img to fit the default preview canvas.
func Fit(img image.Image) image.Image {
	return FitTo(img, MaxWidth, MaxHeight)
}

// FitTo downscales img to fit within maxW x maxH, preserving aspect ratio.
// Images already inside the bounds are returned unchanged; previews are never
// upscaled.
func FitTo(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Lanczos3)
}

// Canvas returns the size a custom placement rule should record for img.
func Canvas(img image.Image) image.Point {
	b := img.Bounds()
	return image.Pt(b.Dx(), b.Dy())
}
