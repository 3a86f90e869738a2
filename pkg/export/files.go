package export

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultExtensions are the raster formats the pipeline can decode.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// CollectFiles returns the supported image files under path, in sorted order.
// A file path returns itself when its extension is supported; a directory is
// walked recursively. exts defaults to DefaultExtensions.
func CollectFiles(path string, exts []string) ([]string, error) {
	allowed := allowedExts(exts)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "export: stat %s", path)
	}

	if !info.IsDir() {
		if allowed[strings.ToLower(filepath.Ext(path))] {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	walkErr := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && allowed[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "export: walk %s", path)
	}
	sort.Strings(files)
	return files, nil
}

// CollectShallow is CollectFiles without descending into subdirectories.
// Callers writing every output into one flat directory use it so nested
// folders repeating a basename cannot collide.
func CollectShallow(path string, exts []string) ([]string, error) {
	allowed := allowedExts(exts)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "export: stat %s", path)
	}

	if !info.IsDir() {
		if allowed[strings.ToLower(filepath.Ext(path))] {
			return []string{path}, nil
		}
		return nil, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "export: read dir %s", path)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func allowedExts(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}
	return allowed
}
