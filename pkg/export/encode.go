package export

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// encode writes img to dest, choosing the codec from the destination
// extension. JPEG output is flattened onto white first since the codec has
// no alpha channel.
func encode(img image.Image, dest string, jpegQuality int) error {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".png":
		return imaging.Save(img, dest)
	case ".webp":
		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Quality: float32(jpegQuality)})
	case ".tif", ".tiff", ".bmp":
		return imaging.Save(img, dest)
	case ".jpg", ".jpeg":
		return imaging.Save(flattenToRGB(img), dest, imaging.JPEGQuality(jpegQuality))
	default:
		return errors.Errorf("export: unsupported output extension %q", filepath.Ext(dest))
	}
}

// flattenToRGB composites img over a white background, discarding alpha.
func flattenToRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Over)
	return rgba
}
