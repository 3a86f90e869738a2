package preview_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"

	"photomark/pkg/preview"
)

func TestFitDownscalesLargeImages(t *testing.T) {
	img := imaging.New(4000, 3000, color.NRGBA{50, 50, 50, 255})

	out := preview.Fit(img)
	b := out.Bounds()
	assert.LessOrEqual(t, b.Dx(), preview.MaxWidth)
	assert.LessOrEqual(t, b.Dy(), preview.MaxHeight)

	// 4:3 source fills the 800x600 canvas exactly.
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 600, b.Dy())
}

func TestFitPreservesAspectRatio(t *testing.T) {
	// A wide panorama is width-bound, not height-bound.
	out := preview.Fit(imaging.New(4000, 1000, color.NRGBA{}))
	b := out.Bounds()
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 200, b.Dy())
}

func TestFitNeverUpscales(t *testing.T) {
	img := imaging.New(320, 240, color.NRGBA{1, 2, 3, 255})
	out := preview.Fit(img)
	assert.Same(t, image.Image(img), out)
}

func TestCanvas(t *testing.T) {
	assert.Equal(t, image.Pt(640, 480), preview.Canvas(imaging.New(640, 480, color.NRGBA{})))
}
