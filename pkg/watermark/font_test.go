package watermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestResolveFaceBundledFallback(t *testing.T) {
	// An unknown family must never fail; the bundled face steps in.
	face, err := resolveFace(TextSpec{FontFamily: "No Such Family 9000", FontSizePx: 24})
	require.NotNil(t, face)
	assert.Error(t, err, "skipped system lookup should be reported for logging")
	assertUsable(t, face)
}

func TestResolveFaceEmptyFamily(t *testing.T) {
	face, err := resolveFace(TextSpec{FontSizePx: 36})
	require.NotNil(t, face)
	assert.NoError(t, err)
	assertUsable(t, face)
}

func TestResolveFaceStyles(t *testing.T) {
	for _, spec := range []TextSpec{
		{FontSizePx: 20, Bold: true},
		{FontSizePx: 20, Italic: true},
		{FontSizePx: 20, Bold: true, Italic: true},
	} {
		face, _ := resolveFace(spec)
		require.NotNil(t, face)
		assertUsable(t, face)
	}
}

func TestResolveFaceDefaultsSize(t *testing.T) {
	face, _ := resolveFace(TextSpec{})
	require.NotNil(t, face)
	assertUsable(t, face)
}

func assertUsable(t *testing.T, face font.Face) {
	t.Helper()
	bounds, advance := font.BoundString(face, "2023-11-05")
	assert.Greater(t, advance.Ceil(), 0)
	assert.Greater(t, (bounds.Max.X - bounds.Min.X).Ceil(), 0)
}
