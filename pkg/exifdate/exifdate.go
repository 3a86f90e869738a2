// Package exifdate extracts the capture date from embedded image metadata
// and normalizes it to a YYYY-MM-DD string.
package exifdate

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Capture-date tags in priority order.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// tagSource abstracts EXIF tag access so extraction logic can be exercised
// without binary EXIF fixtures.
type tagSource interface {
	dateTag(name exif.FieldName) (string, bool)
}

type exifSource struct {
	x *exif.Exif
}

func (s exifSource) dateTag(name exif.FieldName) (string, bool) {
	tag, err := s.x.Get(name)
	if err != nil || tag == nil {
		return "", false
	}
	v, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	return v, true
}

// Extract reads EXIF metadata from r and returns the normalized capture date.
// It returns ok=false when the metadata block is unreadable or carries none
// of the capture-date tags.
func Extract(r io.Reader) (date string, ok bool) {
	x, err := exif.Decode(r)
	if err != nil {
		return "", false
	}
	return fromSource(exifSource{x})
}

// ExtractFile is Extract over a file on disk.
func ExtractFile(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	return Extract(f)
}

func fromSource(src tagSource) (string, bool) {
	for _, name := range dateTags {
		raw, ok := src.dateTag(name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		return Normalize(raw), true
	}
	return "", false
}

// Normalize converts an EXIF datetime value ("2023:11:05 14:22:10") to its
// date portion with hyphen separators ("2023-11-05"). Values that do not
// parse strictly are still returned after separator substitution; downstream
// use is cosmetic text, not date arithmetic.
func Normalize(raw string) string {
	date := strings.Fields(strings.TrimSpace(raw))
	if len(date) == 0 {
		return ""
	}
	return strings.ReplaceAll(date[0], ":", "-")
}

// Verified reports whether date is a strict YYYY-MM-DD value. Callers log
// unverified dates rather than rejecting them.
func Verified(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
