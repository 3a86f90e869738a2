package watermark

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"photomark/pkg/placement"
)

// shadowBaseAlpha is the shadow alpha at full watermark opacity.
const shadowBaseAlpha = 160

func (r *Renderer) renderText(base image.Image, spec TextSpec, rule placement.Rule) (image.Image, error) {
	if strings.TrimSpace(spec.Content) == "" {
		return nil, errors.New("watermark: text content is empty")
	}

	face, resolveErr := resolveFace(spec)
	if resolveErr != nil {
		r.log.Warn("font fallback used",
			zap.String("family", spec.FontFamily),
			zap.Error(resolveErr))
	}

	fill, err := ParseHexColor(spec.ColorHex)
	if err != nil {
		r.log.Warn("invalid watermark color, using white",
			zap.String("color", spec.ColorHex),
			zap.Error(err))
		fill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	// Clone promotes the base to NRGBA so the watermark opacity blends
	// independently of the source color mode.
	canvas := imaging.Clone(base)

	bounds, _ := font.BoundString(face, spec.Content)
	textW := fixedCeil(bounds.Max.X - bounds.Min.X)
	textH := fixedCeil(bounds.Max.Y - bounds.Min.Y)
	if textW <= 0 || textH <= 0 {
		return nil, errors.Errorf("watermark: text %q has empty bounds", spec.Content)
	}

	imageSize := image.Pt(canvas.Bounds().Dx(), canvas.Bounds().Dy())
	pos, fellBack := rule.ResolveChecked(imageSize, image.Pt(textW, textH))
	if fellBack {
		r.log.Warn("custom placement unusable, recovered to bottom-right", zap.Stringer("rule", rule))
	}

	opacity := clampPercent(spec.Opacity)
	if spec.Shadow {
		offset := spec.FontSizePx / 24
		if offset < 1 {
			offset = 1
		}
		shadow := color.NRGBA{A: uint8(shadowBaseAlpha * opacity / 100)}
		drawText(canvas, face, pos.X+offset, pos.Y+offset, spec.Content, shadow)
	}

	fill.A = uint8(255 * opacity / 100)
	drawText(canvas, face, pos.X, pos.Y, spec.Content, fill)

	return canvas, nil
}

// drawText draws one line of text with the top-left corner of its measured
// bounding box at (x, y), so placement works on the same box BoundString
// reported.
func drawText(dst *image.NRGBA, face font.Face, x, y int, text string, col color.NRGBA) {
	bounds, _ := font.BoundString(face, text)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(text)
}

func fixedCeil(v fixed.Int26_6) int {
	return int(math.Ceil(float64(v) / 64.0))
}
