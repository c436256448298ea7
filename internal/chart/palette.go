package chart

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"
)

// Palette is an ordered list of trace colors.
type Palette []colors.Color

// ParsePalette accepts hex (#rgb, #rrggbb), rgb(...) and rgba(...) strings.
func ParsePalette(specs []string) (Palette, error) {
	p := make(Palette, 0, len(specs))
	for _, s := range specs {
		c, err := colors.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse palette color %q", s)
		}
		p = append(p, c)
	}
	return p, nil
}

// Hex returns the color for trace i as #rrggbb, cycling through the palette.
func (p Palette) Hex(i int) (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	return p[i%len(p)].ToHEX().String(), true
}

// NRGBA returns the color for trace i with alpha scaled by opacity.
func (p Palette) NRGBA(i int, opacity float64) (color.NRGBA, bool) {
	if len(p) == 0 {
		return color.NRGBA{}, false
	}
	c := p[i%len(p)].ToRGBA()
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha(c.A * opacity)}, true
}

func alpha(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}
