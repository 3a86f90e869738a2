// Command exifmark stamps each photo's capture date (from its embedded
// metadata) onto the photo as a text watermark.
//
// Usage:
//
//	exifmark [flags] input_path
//
// input_path is an image file or a directory of images; subdirectories are
// not descended. Output goes to a sibling directory named
// <source-dir-name>_watermark, one file per input with the same filename.
// Files without a metadata date are skipped.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"photomark/internal/config"
	"photomark/pkg/exifdate"
	"photomark/pkg/export"
	"photomark/pkg/placement"
	"photomark/pkg/watermark"
)

// The date tool accepts everything the export pipeline decodes except BMP,
// which rarely carries EXIF.
var dateExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".webp"}

func main() {
	fontSize := flag.Int("font-size", 36, "font size in pixels")
	colorHex := flag.String("color", "#FFFFFF", "text color (#RGB or #RRGGBB)")
	position := flag.String("position", "br", "watermark position: tl|tr|bl|br|center")
	margin := flag.Int("margin", 12, "margin from edges in pixels")
	fontPath := flag.String("font", "", "optional path to a .ttf/.otf font file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input_path\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := config.Load()
	logger := newLogger(cfg.Verbose)
	defer logger.Sync()

	anchor, err := placement.ParseAnchor(*position)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if _, err := os.Stat(input); err != nil {
		fmt.Fprintf(os.Stderr, "input path does not exist: %s\n", input)
		os.Exit(1)
	}

	files, err := export.CollectShallow(input, dateExtensions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no supported image files found")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fontFamily := *fontPath
	pipeline := &export.Pipeline{
		Source: export.SpecFunc(func(path string) (watermark.Spec, error) {
			date, ok := exifdate.ExtractFile(path)
			if !ok {
				logger.Info("no metadata date, skipping", zap.String("file", path))
				return nil, export.ErrSkip
			}
			if !exifdate.Verified(date) {
				logger.Warn("metadata date did not verify, stamping as-is",
					zap.String("file", path), zap.String("date", date))
			}
			return watermark.TextSpec{
				Content:    date,
				FontFamily: fontFamily,
				FontSizePx: *fontSize,
				ColorHex:   *colorHex,
				Opacity:    100,
				Shadow:     true,
			}, nil
		}),
		Rule: placement.Preset(anchor, *margin),
		Options: export.Options{
			Format:      export.FormatKeep,
			JPEGQuality: cfg.JPEGQuality,
			Naming:      export.KeepOriginal(),
			Workers:     cfg.Workers,
		},
		Progress: func(done, total int) {
			fmt.Printf("%d/%d\n", done, total)
		},
		Log: logger,
	}

	report, err := pipeline.Run(ctx, files, outputDir(input))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("done: %d watermarked, %d skipped, %d failed\n",
		len(report.Succeeded), len(report.Skipped), len(report.Failed))
}

// outputDir is the sibling directory <source-dir-name>_watermark.
func outputDir(input string) string {
	dir := input
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		dir = filepath.Dir(input)
	}
	abs, err := filepath.Abs(dir)
	if err == nil {
		dir = abs
	}
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"_watermark")
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
