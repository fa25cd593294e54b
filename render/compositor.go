package render

import (
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyphfall/glyph"
	"github.com/lixenwraith/glyphfall/parameter"
	"github.com/lixenwraith/glyphfall/physics"
)

// Palette holds the colors used by every rendering mode
type Palette struct {
	Background        RGB
	Foreground        RGB
	Gradient          *Gradient
	BackgroundOpacity float64
}

// NewPalette parses hex colors into a palette
func NewPalette(background, foreground string, stops []string, bgOpacity float64) (Palette, error) {
	bg, err := ParseHex(background)
	if err != nil {
		return Palette{}, errors.Wrap(err, "background")
	}
	fg, err := ParseHex(foreground)
	if err != nil {
		return Palette{}, errors.Wrap(err, "foreground")
	}
	grad, err := NewGradient(stops...)
	if err != nil {
		return Palette{}, err
	}
	return Palette{Background: bg, Foreground: fg, Gradient: grad, BackgroundOpacity: bgOpacity}, nil
}

// DefaultPalette returns the tuned default colors
func DefaultPalette() Palette {
	p, err := NewPalette(parameter.ScreenBackground, parameter.FallbackForeground, parameter.GradientStops, parameter.BackgroundOpacity)
	if err != nil {
		panic(err)
	}
	return p
}

// Compositor layers background glyphs, settled glyphs and falling particles
// into its buffer. Owned by the frame loop
type Compositor struct {
	buf     *Buffer
	palette Palette

	field   *glyph.Field
	ramp    []RGB // gradient color per field column
	dash    []RGB // background dash color per field column
	originX int
	originY int
}

// NewCompositor creates a compositor for a width x height viewport
func NewCompositor(width, height int, palette Palette) *Compositor {
	return &Compositor{
		buf:     NewBuffer(width, height, palette.Background),
		palette: palette,
	}
}

// Buffer exposes the backing cells
func (c *Compositor) Buffer() *Buffer {
	return c.buf
}

// Resize recomputes the backing buffer for a new viewport
func (c *Compositor) Resize(width, height int) {
	c.buf.Resize(width, height)
	c.layout()
}

// SetField installs a new field and its gradient ramp, centred in the viewport
func (c *Compositor) SetField(f *glyph.Field) {
	c.field = f
	if f == nil {
		c.ramp, c.dash = nil, nil
		return
	}
	c.ramp = c.palette.Gradient.Ramp(f.Cols())
	c.dash = make([]RGB, len(c.ramp))
	for i, col := range c.ramp {
		c.dash[i] = Blend(c.palette.Background, col, c.palette.BackgroundOpacity)
	}
	c.layout()
}

// Origin returns the screen position of field cell (0, 0)
func (c *Compositor) Origin() (x, y int) {
	return c.originX, c.originY
}

func (c *Compositor) layout() {
	if c.field == nil {
		return
	}
	w, h := c.buf.Size()
	c.originX = (w - c.field.Cols()) / 2
	c.originY = (h - c.field.Rows()) / 2
}

// Frame draws background dashes under settled glyphs under falling particles
func (c *Compositor) Frame(settled *SettledLayer, particles []physics.Particle) {
	c.buf.Clear()
	if c.field == nil {
		return
	}
	c.drawComposite(settled, particles, 1)
}

// Fade draws the composite at 1-progress opacity over the static rendering.
// progress 0 equals Frame, progress 1 equals Static
func (c *Compositor) Fade(settled *SettledLayer, particles []physics.Particle, progress float64) {
	c.buf.Clear()
	if c.field == nil {
		return
	}
	c.drawComposite(settled, particles, 1-math.Max(0, math.Min(1, progress)))
}

// Static draws the finished gradient text without background glyphs
func (c *Compositor) Static() {
	c.buf.Clear()
	if c.field == nil {
		return
	}
	for r := 0; r < c.field.Rows(); r++ {
		for col := 0; col < c.field.Cols(); col++ {
			if c.field.IsInk(r, col) {
				c.buf.Set(c.originX+col, c.originY+r, parameter.StaticRune, c.ramp[col])
			}
		}
	}
}

// Fallback draws the plain label centred in default colors
func (c *Compositor) Fallback(text string) {
	c.buf.Clear()
	w, h := c.buf.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	y := h / 2
	for _, r := range text {
		c.buf.Set(x, y, r, c.palette.Foreground)
		x += runewidth.RuneWidth(r)
	}
}

// drawComposite renders the three layers blended over the static rendering at alpha
func (c *Compositor) drawComposite(settled *SettledLayer, particles []physics.Particle, alpha float64) {
	bg := c.palette.Background
	for r := 0; r < c.field.Rows(); r++ {
		for col := 0; col < c.field.Cols(); col++ {
			x, y := c.originX+col, c.originY+r

			// Static underlay for this cell
			under, underFg := ' ', bg
			if c.field.IsInk(r, col) {
				under, underFg = parameter.StaticRune, c.ramp[col]
			}

			// Composite cell
			over, overFg := ' ', bg
			switch {
			case settled != nil && settled.Has(r, col):
				over, overFg = parameter.InkRune, c.ramp[col]
			case !c.field.IsInk(r, col):
				over, overFg = parameter.BackgroundRune, c.dash[col]
			}

			c.put(x, y, under, underFg, over, overFg, alpha)
		}
	}

	for i := range particles {
		p := &particles[i]
		row := int(math.Round(p.Y))
		x, y := c.originX+p.Col, c.originY+row
		col := c.ramp[min(max(p.Col, 0), len(c.ramp)-1)]

		// A particle above its target covers whatever lies under it in the static rendering
		under, underFg := ' ', bg
		if row >= 0 && c.field.IsInk(row, p.Col) {
			under, underFg = parameter.StaticRune, c.ramp[p.Col]
		}
		c.put(x, y, under, underFg, parameter.InkRune, col, alpha)
	}
}

func (c *Compositor) put(x, y int, under rune, underFg RGB, over rune, overFg RGB, alpha float64) {
	r := over
	if alpha < 0.5 {
		r = under
	}
	fg := Blend(underFg, overFg, alpha)
	if r == ' ' {
		fg = c.palette.Background
	}
	c.buf.Set(x, y, r, fg)
}
