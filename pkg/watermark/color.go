package watermark

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// ParseHexColor parses #RGB, #RRGGBB and #RRGGBBAA color strings. The leading
// hash is optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return color.NRGBA{}, errors.New("watermark: color must not be empty")
	}
	str = strings.TrimPrefix(str, "#")
	switch len(str) {
	case 3:
		str = fmt.Sprintf("%c%c%c%c%c%c", str[0], str[0], str[1], str[1], str[2], str[2])
	case 6, 8:
	default:
		return color.NRGBA{}, errors.Errorf("watermark: invalid color format: %q", s)
	}

	var r, g, b, a uint8
	if _, err := fmt.Sscanf(str[:6], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "watermark: invalid color %q", s)
	}
	a = 255
	if len(str) == 8 {
		if _, err := fmt.Sscanf(str[6:], "%02x", &a); err != nil {
			return color.NRGBA{}, errors.Wrapf(err, "watermark: invalid color %q", s)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
