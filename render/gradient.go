package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Gradient is an evenly spaced multi-stop color ramp blended in CIE L*u*v*
type Gradient struct {
	stops []colorful.Color
}

// NewGradient parses hex stops; at least one is required
func NewGradient(hexStops ...string) (*Gradient, error) {
	if len(hexStops) == 0 {
		return nil, errors.New("render: gradient needs at least one stop")
	}
	g := &Gradient{stops: make([]colorful.Color, len(hexStops))}
	for i, s := range hexStops {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, errors.Wrapf(err, "gradient stop %d", i)
		}
		g.stops[i] = c
	}
	return g, nil
}

// At returns the color at t in [0,1]; values outside are clamped
func (g *Gradient) At(t float64) RGB {
	if len(g.stops) == 1 || t <= 0 {
		return FromColorful(g.stops[0])
	}
	last := len(g.stops) - 1
	if t >= 1 {
		return FromColorful(g.stops[last])
	}

	pos := t * float64(last)
	i := int(pos)
	return FromColorful(g.stops[i].BlendLuv(g.stops[i+1], pos-float64(i)))
}

// Ramp samples n evenly spaced colors across the gradient
func (g *Gradient) Ramp(n int) []RGB {
	out := make([]RGB, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = g.At(t)
	}
	return out
}
