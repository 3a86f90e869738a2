package watermark

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceProvider is one step of the font resolution chain. Providers are tried
// in order; the first one that yields a face wins.
type faceProvider func(spec TextSpec) (font.Face, error)

// resolveFace resolves a font face for the spec: explicit font file, then a
// system font matching the family name and style, then the bundled Go fonts.
// The bundled step cannot fail, so callers always receive a usable face; the
// returned error reports which earlier steps were skipped, for logging.
func resolveFace(spec TextSpec) (font.Face, error) {
	providers := []faceProvider{fileFace, systemFace, bundledFace}
	var firstErr error
	for _, p := range providers {
		face, err := p(spec)
		if err == nil && face != nil {
			return face, firstErr
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Unreachable in practice; bundledFace parses compiled-in TTF data.
	return nil, firstErr
}

// fileFace loads the face when FontFamily is an explicit font file path.
func fileFace(spec TextSpec) (font.Face, error) {
	path := strings.TrimSpace(spec.FontFamily)
	if path == "" {
		return nil, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ttf" && ext != ".otf" {
		return nil, nil
	}
	return loadFaceFile(path, spec.FontSizePx)
}

// systemFace scans platform font directories for a file matching the family
// name and requested style.
func systemFace(spec TextSpec) (font.Face, error) {
	family := strings.TrimSpace(spec.FontFamily)
	if family == "" || strings.ContainsAny(family, `/\`) {
		return nil, nil
	}
	path := findFamilyFile(family, spec.Bold, spec.Italic)
	if path == "" {
		return nil, errors.Errorf("watermark: no system font for family %q", family)
	}
	return loadFaceFile(path, spec.FontSizePx)
}

// bundledFace returns the compiled-in Go font matching the requested style.
func bundledFace(spec TextSpec) (font.Face, error) {
	var ttf []byte
	switch {
	case spec.Bold && spec.Italic:
		ttf = gobolditalic.TTF
	case spec.Bold:
		ttf = gobold.TTF
	case spec.Italic:
		ttf = goitalic.TTF
	default:
		ttf = goregular.TTF
	}
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return newFace(fnt, spec.FontSizePx)
}

func loadFaceFile(path string, sizePx int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "watermark: parse font %s", path)
	}
	return newFace(fnt, sizePx)
}

func newFace(fnt *opentype.Font, sizePx int) (font.Face, error) {
	if sizePx <= 0 {
		sizePx = 36
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// findFamilyFile looks for "<family>.ttf" style file names, preferring
// style-suffixed variants when bold/italic is requested.
func findFamilyFile(family string, bold, italic bool) string {
	var styles []string
	switch {
	case bold && italic:
		styles = []string{" Bold Italic", "-BoldItalic", "bi"}
	case bold:
		styles = []string{" Bold", "-Bold", "bd"}
	case italic:
		styles = []string{" Italic", "-Italic", "i"}
	}
	styles = append(styles, "")

	compact := strings.ReplaceAll(family, " ", "")
	for _, dir := range systemFontDirs() {
		for _, style := range styles {
			for _, stem := range []string{family + style, compact + style, strings.ToLower(compact + style)} {
				for _, ext := range []string{".ttf", ".otf"} {
					if p := statFont(dir, stem+ext); p != "" {
						return p
					}
				}
			}
		}
	}
	return ""
}

func statFont(dir, name string) string {
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	// Case-insensitive pass over the directory.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	lower := strings.ToLower(name)
	for _, e := range entries {
		if strings.ToLower(e.Name()) == lower {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/System/Library/Fonts/Supplemental",
			"/Library/Fonts",
			filepath.Join(os.Getenv("HOME"), "Library/Fonts"),
		}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/share/fonts/truetype",
			"/usr/share/fonts/truetype/dejavu",
			"/usr/share/fonts/truetype/msttcorefonts",
			"/usr/local/share/fonts",
			filepath.Join(os.Getenv("HOME"), ".fonts"),
		}
	}
}
