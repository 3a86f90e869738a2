package watermark

import (
	"image"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"photomark/pkg/placement"
)

func (r *Renderer) renderOverlay(base image.Image, spec ImageSpec, rule placement.Rule) (image.Image, error) {
	mark, err := imaging.Open(spec.SourcePath)
	if err != nil {
		// A missing or unreadable overlay asset disables watermarking for
		// this file; the photo still exports.
		r.log.Warn("overlay asset unavailable, exporting without watermark",
			zap.String("path", spec.SourcePath),
			zap.Error(err))
		return imaging.Clone(base), nil
	}

	scale := spec.Scale
	if scale < 10 {
		scale = 10
	}
	if scale > 100 {
		scale = 100
	}
	targetW := mark.Bounds().Dx() * scale / 100
	if targetW < 1 {
		targetW = 1
	}
	// Width-only resize keeps the overlay's aspect ratio.
	scaled := imaging.Resize(mark, targetW, 0, imaging.Lanczos)

	imageSize := image.Pt(base.Bounds().Dx(), base.Bounds().Dy())
	markSize := image.Pt(scaled.Bounds().Dx(), scaled.Bounds().Dy())
	pos, fellBack := rule.ResolveChecked(imageSize, markSize)
	if fellBack {
		r.log.Warn("custom placement unusable, recovered to bottom-right", zap.Stringer("rule", rule))
	}

	// Overlay clones the base and scales the overlay's alpha channel by the
	// opacity factor before source-over compositing.
	opacity := float64(clampPercent(spec.Opacity)) / 100.0
	return imaging.Overlay(base, scaled, pos, opacity), nil
}
