// Package placement resolves watermark placement rules into pixel
// coordinates on a full-resolution image.
package placement

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// DefaultMargin is the edge margin used when a rule does not carry one.
const DefaultMargin = 12

// ErrInvalidTransform is returned when a preview canvas has a zero dimension
// and preview coordinates cannot be mapped to full-resolution space.
var ErrInvalidTransform = errors.New("placement: preview canvas has zero dimension")

// Anchor is one of the five preset watermark positions.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
	Center
)

var anchorNames = map[Anchor]string{
	TopLeft:     "tl",
	TopRight:    "tr",
	BottomLeft:  "bl",
	BottomRight: "br",
	Center:      "center",
}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// ParseAnchor parses the short anchor names used on the CLI surface.
func ParseAnchor(s string) (Anchor, error) {
	for a, name := range anchorNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return BottomRight, errors.Errorf("placement: unknown anchor %q", s)
}

// ToFullRes maps a point picked on a scaled preview canvas to full-resolution
// image space, scaling each axis independently and rounding to the nearest
// integer pixel.
func ToFullRes(pt, canvas, full image.Point) (image.Point, error) {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return image.Point{}, ErrInvalidTransform
	}
	sx := float64(full.X) / float64(canvas.X)
	sy := float64(full.Y) / float64(canvas.Y)
	return image.Pt(
		int(math.Round(float64(pt.X)*sx)),
		int(math.Round(float64(pt.Y)*sy)),
	), nil
}

// Rule is a placement rule: either a preset anchor with a margin, or a custom
// point captured against a preview canvas of recorded size. The canvas size
// is part of the rule so the point can be rescaled to any target raster.
type Rule struct {
	custom bool
	anchor Anchor
	margin int
	point  image.Point
	canvas image.Point
}

// Preset returns a rule anchored at one of the five named positions.
func Preset(anchor Anchor, margin int) Rule {
	return Rule{anchor: anchor, margin: margin}
}

// Custom returns a rule for a point picked on a preview canvas of the given
// size. A custom rule without a recorded canvas size is invalid and resolves
// to the bottom-right fallback.
func Custom(pt image.Point, canvas image.Point) Rule {
	return Rule{custom: true, point: pt, canvas: canvas, margin: DefaultMargin}
}

// IsCustom reports whether the rule is a custom-point rule.
func (r Rule) IsCustom() bool { return r.custom }

// Margin returns the rule's edge margin.
func (r Rule) Margin() int { return r.margin }

func (r Rule) String() string {
	if r.custom {
		return fmt.Sprintf("custom(%d,%d @%dx%d)", r.point.X, r.point.Y, r.canvas.X, r.canvas.Y)
	}
	return fmt.Sprintf("%s margin=%d", r.anchor, r.margin)
}

// Resolve turns the rule into the top-left pixel position for a watermark of
// size markSize on an image of size imageSize.
//
// Custom points are first mapped from preview to full-resolution space, then
// clamped into [0, W-w] x [0, H-h] so the watermark never extends past the
// image bounds. If the preview transform fails the rule falls back to a
// bottom-right preset; saved templates rely on this recovery.
func (r Rule) Resolve(imageSize, markSize image.Point) image.Point {
	pt, _ := r.ResolveChecked(imageSize, markSize)
	return pt
}

// ResolveChecked is Resolve plus a flag reporting whether a custom rule was
// recovered to the bottom-right fallback, so callers can surface the
// recovery instead of masking it.
func (r Rule) ResolveChecked(imageSize, markSize image.Point) (image.Point, bool) {
	if r.custom {
		pt, err := ToFullRes(r.point, r.canvas, imageSize)
		if err != nil {
			return Preset(BottomRight, r.margin).Resolve(imageSize, markSize), true
		}
		return image.Pt(
			clamp(pt.X, 0, imageSize.X-markSize.X),
			clamp(pt.Y, 0, imageSize.Y-markSize.Y),
		), false
	}

	w, h := imageSize.X, imageSize.Y
	mw, mh := markSize.X, markSize.Y
	m := r.margin
	switch r.anchor {
	case TopLeft:
		return image.Pt(m, m), false
	case TopRight:
		return image.Pt(w-mw-m, m), false
	case BottomLeft:
		return image.Pt(m, h-mh-m), false
	case Center:
		return image.Pt((w-mw)/2, (h-mh)/2), false
	default: // BottomRight
		return image.Pt(w-mw-m, h-mh-m), false
	}
}

// clamp bounds v to [lo, hi]; a watermark larger than the image collapses the
// range, in which case the low bound wins.
func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
