package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// ParseHex parses "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "color %q", s)
	}
	return FromColorful(c), nil
}

// FromColorful converts a colorful.Color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Colorful converts to a colorful.Color for perceptual blending
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Tcell converts to a truecolor tcell.Color; tcell downgrades on 256-color terminals
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend linearly mixes dst toward src by alpha (0 keeps dst, 1 gives src)
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1 - alpha
	return RGB{
		R: clamp(float64(dst.R)*inv + float64(src.R)*alpha),
		G: clamp(float64(dst.G)*inv + float64(src.G)*alpha),
		B: clamp(float64(dst.B)*inv + float64(src.B)*alpha),
	}
}
