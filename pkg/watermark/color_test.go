package watermark

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#4db6ac", color.NRGBA{0x4d, 0xb6, 0xac, 255}},
		{"#abc", color.NRGBA{0xaa, 0xbb, 0xcc, 255}},
		{"#11223380", color.NRGBA{0x11, 0x22, 0x33, 0x80}},
		{"  #000000 ", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "not-a-color", "#zzzzzz"} {
		_, err := ParseHexColor(in)
		assert.Error(t, err, in)
	}
}
