// Package export runs batch watermark exports: decode, render, name, encode,
// and per-file outcome aggregation.
package export

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// WEBP decoding for imaging.Open; BMP and TIFF are registered by imaging.
	_ "golang.org/x/image/webp"

	"photomark/pkg/placement"
	"photomark/pkg/watermark"
)

// ErrSkip marks a file that should be neither exported nor counted as a
// failure, e.g. when no metadata date exists to watermark with.
var ErrSkip = errors.New("export: file skipped")

// SpecSource supplies the watermark spec for each file. A static spec covers
// the common case; the date-watermark tool derives a per-file text spec from
// metadata.
type SpecSource interface {
	SpecFor(path string) (watermark.Spec, error)
}

// StaticSpec is a SpecSource returning the same spec for every file.
type StaticSpec struct {
	Spec watermark.Spec
}

func (s StaticSpec) SpecFor(string) (watermark.Spec, error) { return s.Spec, nil }

// SpecFunc adapts a function to SpecSource.
type SpecFunc func(path string) (watermark.Spec, error)

func (f SpecFunc) SpecFor(path string) (watermark.Spec, error) { return f(path) }

// Failure records one file that could not be exported.
type Failure struct {
	Path string
	Err  error
}

// Report aggregates per-file outcomes of one batch run.
type Report struct {
	Succeeded []string
	Skipped   []string
	Failed    []Failure
}

// Pipeline exports a batch of files with one watermark configuration.
// Per-file work is independent; failures are recorded and the batch
// continues.
type Pipeline struct {
	Source  SpecSource
	Rule    placement.Rule
	Options Options

	// Progress, when set, is called after each finished file with the number
	// of files handled so far and the batch total. Calls are serialized.
	Progress func(done, total int)

	Log *zap.Logger
}

// Run exports files into outDir. It returns an error only for batch-level
// preconditions (duplicate destination names, unwritable output directory);
// everything per-file lands in the report. Cancelling ctx stops scheduling
// between files and returns the partial report.
func (p *Pipeline) Run(ctx context.Context, files []string, outDir string) (Report, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Destination collisions must fail before any work is dispatched, not
	// surface as a write race between workers.
	seen := make(map[string]string, len(files))
	for _, f := range files {
		name := p.Options.OutputName(f)
		if prev, dup := seen[name]; dup {
			return Report{}, errors.Errorf(
				"export: %s and %s both map to output name %q", prev, f, name)
		}
		seen[name] = f
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Report{}, errors.Wrapf(err, "export: create output dir %s", outDir)
	}

	workers := p.Options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	renderer := watermark.NewRenderer(log)
	total := len(files)

	var (
		mu     sync.Mutex
		report Report
		done   int
	)
	record := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			report.Succeeded = append(report.Succeeded, path)
		case errors.Is(err, ErrSkip):
			report.Skipped = append(report.Skipped, path)
		default:
			report.Failed = append(report.Failed, Failure{Path: path, Err: err})
			log.Error("export failed", zap.String("file", path), zap.Error(err))
		}
		done++
		if p.Progress != nil {
			p.Progress(done, total)
		}
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range jobs {
				record(path, p.processFile(renderer, path, outDir))
			}
		}()
	}

	// Scheduling stops between files on cancellation; in-flight files finish.
dispatch:
	for _, f := range files {
		select {
		case <-ctx.Done():
			mu.Lock()
			handled := done
			mu.Unlock()
			log.Warn("export cancelled", zap.Int("handled", handled), zap.Int("total", total))
			break dispatch
		case jobs <- f:
		}
	}
	close(jobs)
	wg.Wait()

	return report, nil
}

func (p *Pipeline) processFile(renderer *watermark.Renderer, path, outDir string) error {
	spec, err := p.Source.SpecFor(path)
	if err != nil {
		if errors.Is(err, ErrSkip) {
			return err
		}
		return errors.Wrapf(err, "resolve spec for %s", path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}

	out, err := renderer.Render(img, spec, p.Rule)
	if err != nil {
		return errors.Wrapf(err, "render %s", path)
	}

	dest := filepath.Join(outDir, p.Options.OutputName(path))
	if err := encode(out, dest, p.Options.JPEGQuality); err != nil {
		return errors.Wrapf(err, "write %s", dest)
	}
	return nil
}
