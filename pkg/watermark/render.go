package watermark

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"photomark/pkg/placement"
)

// Renderer composites watermarks onto photo rasters. The base raster passed
// to Render is never modified; a new raster is returned.
type Renderer struct {
	log *zap.Logger
}

// NewRenderer returns a Renderer. A nil logger disables logging.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log}
}

// Render dispatches to the text or overlay-image renderer by spec variant.
// The result is always an NRGBA raster regardless of the base's color model;
// encoders flatten or convert on write.
func (r *Renderer) Render(base image.Image, spec Spec, rule placement.Rule) (image.Image, error) {
	switch s := spec.(type) {
	case TextSpec:
		return r.renderText(base, s, rule)
	case ImageSpec:
		return r.renderOverlay(base, s, rule)
	default:
		return nil, errors.Errorf("watermark: unsupported spec type %T", spec)
	}
}
