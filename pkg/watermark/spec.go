// Package watermark renders text and image watermarks onto photo rasters.
package watermark

// Spec is a watermark specification. Exactly one concrete variant exists per
// operation: TextSpec or ImageSpec.
type Spec interface {
	specKind() string
}

// TextSpec describes a rasterized text watermark.
type TextSpec struct {
	Content    string
	FontFamily string // family name or explicit .ttf/.otf path; empty uses the bundled face
	FontSizePx int
	Bold       bool
	Italic     bool
	ColorHex   string // #RGB, #RRGGBB or #RRGGBBAA
	Opacity    int    // 0..100
	Shadow     bool
}

func (TextSpec) specKind() string { return "text" }

// ImageSpec describes an overlay-image watermark.
type ImageSpec struct {
	SourcePath string
	Scale      int // percent, 10..100
	Opacity    int // 0..100
}

func (ImageSpec) specKind() string { return "image" }

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
