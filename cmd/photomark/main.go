// Command photomark batch-exports photos with a text or image watermark.
//
// The watermark configuration is fixed for the whole batch; placement is a
// preset anchor or a custom point captured against a preview canvas.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"photomark/internal/config"
	"photomark/pkg/export"
	"photomark/pkg/placement"
	"photomark/pkg/watermark"
)

func main() {
	input := flag.String("in", "", "input image file or directory (required)")
	outDir := flag.String("out", "", "output directory (required)")
	mode := flag.String("mode", "text", "watermark mode: text or image")

	text := flag.String("text", "", "text mode: watermark text")
	fontFamily := flag.String("font", "", "text mode: font family name or .ttf/.otf path")
	fontSize := flag.Int("font-size", 36, "text mode: font size in pixels")
	bold := flag.Bool("bold", false, "text mode: bold style")
	italic := flag.Bool("italic", false, "text mode: italic style")
	colorHex := flag.String("color", "#FFFFFF", "text mode: text color (#RGB or #RRGGBB)")
	shadow := flag.Bool("shadow", true, "text mode: draw a drop shadow")

	markPath := flag.String("mark", "", "image mode: overlay image path")
	scale := flag.Int("scale", 50, "image mode: overlay scale percent (10-100)")

	opacity := flag.Int("opacity", 100, "watermark opacity percent (0-100)")
	position := flag.String("position", "br", "position: tl|tr|bl|br|center")
	margin := flag.Int("margin", 12, "margin from edges in pixels")
	at := flag.String("at", "", `custom position "x,y" picked on a preview canvas`)
	canvas := flag.String("canvas", "", `preview canvas size "WxH" the custom position was picked on`)

	format := flag.String("format", "jpg", "output format: jpg or png")
	quality := flag.Int("quality", 0, "JPEG quality 0-100 (0 uses the configured default)")
	prefix := flag.String("prefix", "", `output name prefix, e.g. "wm_"`)
	suffix := flag.String("suffix", "", `output name suffix, e.g. "_watermarked"`)
	workers := flag.Int("workers", 0, "parallel workers (0 uses one per CPU)")
	flag.Parse()

	if err := validateRequired(*input, *outDir, *mode, *text, *markPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := newLogger(cfg.Verbose)
	defer logger.Sync()

	rule, err := buildRule(*position, *margin, *at, *canvas)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	naming := export.KeepOriginal()
	switch {
	case *prefix != "" && *suffix != "":
		fmt.Fprintln(os.Stderr, "use either -prefix or -suffix, not both")
		os.Exit(2)
	case *prefix != "":
		naming = export.AddPrefix(*prefix)
	case *suffix != "":
		naming = export.AddSuffix(*suffix)
	}

	var spec watermark.Spec
	switch strings.ToLower(*mode) {
	case "text":
		spec = watermark.TextSpec{
			Content:    *text,
			FontFamily: *fontFamily,
			FontSizePx: *fontSize,
			Bold:       *bold,
			Italic:     *italic,
			ColorHex:   *colorHex,
			Opacity:    *opacity,
			Shadow:     *shadow,
		}
	case "image":
		spec = watermark.ImageSpec{
			SourcePath: *markPath,
			Scale:      *scale,
			Opacity:    *opacity,
		}
	default:
		fmt.Fprintln(os.Stderr, "unsupported mode:", *mode)
		os.Exit(2)
	}

	if _, err := os.Stat(*input); err != nil {
		fmt.Fprintf(os.Stderr, "input path does not exist: %s\n", *input)
		os.Exit(1)
	}
	files, err := export.CollectFiles(*input, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no supported image files found")
		os.Exit(1)
	}

	jpegQuality := *quality
	if jpegQuality <= 0 {
		jpegQuality = cfg.JPEGQuality
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := &export.Pipeline{
		Source: export.StaticSpec{Spec: spec},
		Rule:   rule,
		Options: export.Options{
			Format:      outFormat,
			JPEGQuality: jpegQuality,
			Naming:      naming,
			Workers:     pickWorkers(*workers, cfg.Workers),
		},
		Progress: func(done, total int) {
			fmt.Printf("%d/%d\n", done, total)
		},
		Log: logger,
	}

	report, err := pipeline.Run(ctx, files, *outDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("done: %d exported, %d failed\n", len(report.Succeeded), len(report.Failed))
	logger.Info("batch finished",
		zap.Int("succeeded", len(report.Succeeded)),
		zap.Int("failed", len(report.Failed)))
}

func validateRequired(input, outDir, mode, text, markPath string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("missing -in")
	}
	if strings.TrimSpace(outDir) == "" {
		return errors.New("missing -out")
	}
	if strings.ToLower(mode) == "text" && strings.TrimSpace(text) == "" {
		return errors.New("text mode requires -text")
	}
	if strings.ToLower(mode) == "image" && strings.TrimSpace(markPath) == "" {
		return errors.New("image mode requires -mark")
	}
	return nil
}

// buildRule prefers a custom point when given; -at requires -canvas so the
// point can be rescaled to each target image.
func buildRule(position string, margin int, at, canvas string) (placement.Rule, error) {
	if at == "" {
		anchor, err := placement.ParseAnchor(position)
		if err != nil {
			return placement.Rule{}, err
		}
		return placement.Preset(anchor, margin), nil
	}

	var x, y int
	if _, err := fmt.Sscanf(at, "%d,%d", &x, &y); err != nil {
		return placement.Rule{}, fmt.Errorf("invalid -at %q: expected x,y", at)
	}
	var w, h int
	if _, err := fmt.Sscanf(canvas, "%dx%d", &w, &h); err != nil {
		return placement.Rule{}, fmt.Errorf("-at requires -canvas WxH (got %q)", canvas)
	}
	return placement.Custom(image.Pt(x, y), image.Pt(w, h)), nil
}

func pickWorkers(flagVal, cfgVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	return cfgVal
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
