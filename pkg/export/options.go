package export

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is the export output format.
type Format int

const (
	// FormatJPEG writes lossy JPEG output with a .jpg extension.
	FormatJPEG Format = iota
	// FormatPNG writes lossless PNG output.
	FormatPNG
	// FormatKeep preserves each source file's extension and encodes
	// accordingly. Used by the date-watermark tool, which mirrors input
	// filenames exactly.
	FormatKeep
)

// ParseFormat accepts the CLI format names.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatJPEG, errors.Errorf("export: unknown format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatKeep:
		return "keep"
	default:
		return "jpg"
	}
}

type namingMode int

const (
	keepOriginal namingMode = iota
	addPrefix
	addSuffix
)

// NamingPolicy derives an output filename stem from a source stem.
type NamingPolicy struct {
	mode  namingMode
	affix string
}

// KeepOriginal keeps the source stem unchanged.
func KeepOriginal() NamingPolicy { return NamingPolicy{} }

// AddPrefix prepends prefix to the source stem.
func AddPrefix(prefix string) NamingPolicy {
	return NamingPolicy{mode: addPrefix, affix: prefix}
}

// AddSuffix appends suffix to the source stem.
func AddSuffix(suffix string) NamingPolicy {
	return NamingPolicy{mode: addSuffix, affix: suffix}
}

// Apply returns the output stem for a source stem.
func (p NamingPolicy) Apply(stem string) string {
	switch p.mode {
	case addPrefix:
		return p.affix + stem
	case addSuffix:
		return stem + p.affix
	default:
		return stem
	}
}

// Options control output format, quality and naming for a batch export.
type Options struct {
	Format      Format
	JPEGQuality int // 0..100
	Naming      NamingPolicy
	Workers     int // 0 means one worker per CPU
}

// OutputName computes the destination filename for a source path. The
// extension is forced by the output format, overriding the source extension,
// except under FormatKeep.
func (o Options) OutputName(srcPath string) string {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var outExt string
	switch o.Format {
	case FormatPNG:
		outExt = ".png"
	case FormatKeep:
		outExt = strings.ToLower(ext)
	default:
		outExt = ".jpg"
	}
	return o.Naming.Apply(stem) + outExt
}
