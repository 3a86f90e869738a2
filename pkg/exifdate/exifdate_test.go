package exifdate

import (
	"bytes"
	"testing"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/stretchr/testify/assert"
)

type fakeSource map[exif.FieldName]string

func (f fakeSource) dateTag(name exif.FieldName) (string, bool) {
	v, ok := f[name]
	return v, ok
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023:11:05 14:22:10", "2023-11-05"},
		{"2023:11:05", "2023-11-05"},
		{"2023-11-05 14:22:10", "2023-11-05"},
		{"  2023:01:31 08:00:00  ", "2023-01-31"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestTagPriority(t *testing.T) {
	src := fakeSource{
		exif.DateTime:          "2020:01:01 00:00:00",
		exif.DateTimeDigitized: "2021:02:02 00:00:00",
		exif.DateTimeOriginal:  "2022:03:03 00:00:00",
	}
	date, ok := fromSource(src)
	assert.True(t, ok)
	assert.Equal(t, "2022-03-03", date)
}

func TestTagFallthrough(t *testing.T) {
	src := fakeSource{
		exif.DateTime: "2020:01:01 00:00:00",
	}
	date, ok := fromSource(src)
	assert.True(t, ok)
	assert.Equal(t, "2020-01-01", date)
}

func TestBlankTagSkipped(t *testing.T) {
	src := fakeSource{
		exif.DateTimeOriginal: "   ",
		exif.DateTime:         "2020:06:15 12:00:00",
	}
	date, ok := fromSource(src)
	assert.True(t, ok)
	assert.Equal(t, "2020-06-15", date)
}

func TestNoTags(t *testing.T) {
	_, ok := fromSource(fakeSource{})
	assert.False(t, ok)
}

func TestUnparsableDateStillReturned(t *testing.T) {
	src := fakeSource{exif.DateTimeOriginal: "2023:13:99 14:22:10"}
	date, ok := fromSource(src)
	assert.True(t, ok)
	assert.Equal(t, "2023-13-99", date)
	assert.False(t, Verified(date))
}

func TestVerified(t *testing.T) {
	assert.True(t, Verified("2023-11-05"))
	assert.False(t, Verified("2023-13-99"))
	assert.False(t, Verified("yesterday"))
}

func TestExtractUnreadableMetadata(t *testing.T) {
	_, ok := Extract(bytes.NewReader([]byte("not a jpeg")))
	assert.False(t, ok)
}
