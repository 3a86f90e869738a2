package watermark_test

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photomark/pkg/placement"
	"photomark/pkg/watermark"
)

func writeMark(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mark.png")
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
	return path
}

func TestRenderOverlayZeroOpacityIsIdentity(t *testing.T) {
	base := newBase(60, 60, color.NRGBA{10, 120, 30, 255})
	mark := writeMark(t, 20, 20, color.NRGBA{255, 0, 0, 255})

	out, err := watermark.NewRenderer(nil).Render(base, watermark.ImageSpec{
		SourcePath: mark,
		Scale:      100,
		Opacity:    0,
	}, placement.Preset(placement.Center, 0))
	require.NoError(t, err)
	assert.True(t, samePixels(t, base, out))
}

func TestRenderOverlayFullOpacityIsExact(t *testing.T) {
	base := newBase(60, 60, color.NRGBA{10, 120, 30, 255})
	mark := writeMark(t, 20, 20, color.NRGBA{200, 0, 50, 255})

	out, err := watermark.NewRenderer(nil).Render(base, watermark.ImageSpec{
		SourcePath: mark,
		Scale:      100,
		Opacity:    100,
	}, placement.Preset(placement.TopLeft, 0))
	require.NoError(t, err)

	result, ok := out.(interface {
		At(x, y int) color.Color
	})
	require.True(t, ok)

	// Overlay footprint carries overlay-exact pixels.
	r, g, b, _ := result.At(5, 5).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(50), b>>8)

	// Outside the footprint the base is untouched.
	r, g, b, _ = result.At(40, 40).RGBA()
	assert.Equal(t, uint32(10), r>>8)
	assert.Equal(t, uint32(120), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestRenderOverlayScalesMark(t *testing.T) {
	base := newBase(100, 100, color.NRGBA{0, 0, 0, 255})
	mark := writeMark(t, 40, 40, color.NRGBA{255, 255, 255, 255})

	out, err := watermark.NewRenderer(nil).Render(base, watermark.ImageSpec{
		SourcePath: mark,
		Scale:      50, // 40x40 -> 20x20
		Opacity:    100,
	}, placement.Preset(placement.TopLeft, 0))
	require.NoError(t, err)

	white := func(x, y int) bool {
		r, _, _, _ := out.At(x, y).RGBA()
		return r>>8 > 200
	}
	assert.True(t, white(10, 10), "inside the scaled footprint")
	assert.False(t, white(30, 30), "outside the scaled footprint")
}

func TestRenderOverlayMissingAssetIsNoOp(t *testing.T) {
	base := newBase(50, 50, color.NRGBA{90, 90, 90, 255})

	out, err := watermark.NewRenderer(nil).Render(base, watermark.ImageSpec{
		SourcePath: filepath.Join(t.TempDir(), "nope.png"),
		Scale:      50,
		Opacity:    80,
	}, placement.Preset(placement.BottomRight, 12))
	require.NoError(t, err)
	assert.True(t, samePixels(t, base, out))
}

func TestRenderOverlayDoesNotModifyBase(t *testing.T) {
	base := newBase(50, 50, color.NRGBA{1, 2, 3, 255})
	mark := writeMark(t, 50, 50, color.NRGBA{250, 250, 250, 255})

	_, err := watermark.NewRenderer(nil).Render(base, watermark.ImageSpec{
		SourcePath: mark,
		Scale:      100,
		Opacity:    100,
	}, placement.Preset(placement.TopLeft, 0))
	require.NoError(t, err)
	assert.True(t, samePixels(t, base, newBase(50, 50, color.NRGBA{1, 2, 3, 255})))
}
