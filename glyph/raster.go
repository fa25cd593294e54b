package glyph

import (
	"image"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/glyphfall/parameter"
)

var (
	// ErrEmptyText is returned when the label has no characters
	ErrEmptyText = errors.New("glyph: empty text")

	// ErrNoInk is returned when no sample block exceeds the threshold
	ErrNoInk = errors.New("glyph: no ink")
)

// Options controls sampling of the raster into grid cells
type Options struct {
	// CellWidth and CellHeight are the sample block size in raster pixels
	CellWidth  int
	CellHeight int
	// Threshold is the mean luminance*alpha (0..1) a block must exceed
	Threshold float64
	// Padding is kept around the ink bounding box, in cells, clipped to the raster
	Padding int
	// Margin is the blank border drawn around the text, in raster pixels
	Margin int
}

// DefaultOptions returns the tuned defaults
func DefaultOptions() Options {
	return Options{
		CellWidth:  parameter.SampleCellWidth,
		CellHeight: parameter.SampleCellHeight,
		Threshold:  parameter.InkThreshold,
		Padding:    parameter.GridPadding,
		Margin:     parameter.RasterMargin,
	}
}

// Rasterize draws text with face onto an offscreen raster and samples it into a field
func Rasterize(face font.Face, text string, opts Options) (*Field, error) {
	if strings.TrimRight(text, "\n") == "" {
		return nil, ErrEmptyText
	}
	img := Render(face, text, opts.Margin)
	return Sample(img, opts)
}

// Render draws text in white onto a transparent RGBA raster with margin pixels on every side
func Render(face font.Face, text string, margin int) *image.RGBA {
	metrics := face.Metrics()
	advance := font.MeasureString(face, text)

	w := advance.Ceil() + 2*margin
	h := (metrics.Ascent + metrics.Descent).Ceil() + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(margin), Y: fixed.I(margin) + metrics.Ascent},
	}
	d.DrawString(text)
	return img
}

// Sample partitions img into CellWidth x CellHeight blocks and builds the cropped field
func Sample(img *image.RGBA, opts Options) (*Field, error) {
	if opts.CellWidth < 1 || opts.CellHeight < 1 {
		return nil, errors.Errorf("glyph: invalid cell size %dx%d", opts.CellWidth, opts.CellHeight)
	}

	b := img.Bounds()
	cols := b.Dx() / opts.CellWidth
	rows := b.Dy() / opts.CellHeight

	mask := make([][]bool, rows)
	minR, minC := rows, cols
	maxR, maxC := -1, -1

	for r := 0; r < rows; r++ {
		mask[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			if blockLevel(img, b.Min.X+c*opts.CellWidth, b.Min.Y+r*opts.CellHeight, opts.CellWidth, opts.CellHeight) <= opts.Threshold {
				continue
			}
			mask[r][c] = true
			minR, maxR = min(minR, r), max(maxR, r)
			minC, maxC = min(minC, c), max(maxC, c)
		}
	}

	if maxR < 0 {
		return nil, ErrNoInk
	}

	r0 := max(0, minR-opts.Padding)
	r1 := min(rows-1, maxR+opts.Padding)
	c0 := max(0, minC-opts.Padding)
	c1 := min(cols-1, maxC+opts.Padding)

	cropped := make([][]bool, r1-r0+1)
	for r := range cropped {
		cropped[r] = mask[r0+r][c0 : c1+1]
	}
	return FieldFromMask(cropped), nil
}

// blockLevel returns the mean luminance*alpha (0..1) of a w x h block at (x, y)
// Premultiplied channels already carry the alpha factor
func blockLevel(img *image.RGBA, x, y, w, h int) float64 {
	var sum float64
	for py := y; py < y+h; py++ {
		off := img.PixOffset(x, py)
		for px := 0; px < w; px++ {
			p := img.Pix[off : off+4 : off+4]
			sum += 0.2126*float64(p[0]) + 0.7152*float64(p[1]) + 0.0722*float64(p[2])
			off += 4
		}
	}
	return sum / (255 * float64(w*h))
}

// FitOptions bound the field produced by RasterizeFit
type FitOptions struct {
	Size    float64
	MinSize float64
	MaxCols int
	MaxRows int
}

// RasterizeFit rasterizes at Size and shrinks the face until the field fits
// MaxCols x MaxRows (a zero bound is unlimited) or MinSize is reached
func RasterizeFit(f *Font, text string, fit FitOptions, opts Options) (*Field, float64, error) {
	size := fit.Size
	for attempt := 0; ; attempt++ {
		face, err := f.Face(size)
		if err != nil {
			return nil, size, err
		}
		field, err := Rasterize(face, text, opts)
		face.Close()
		if err != nil {
			return nil, size, err
		}

		scale := 1.0
		if fit.MaxCols > 0 && field.Cols() > fit.MaxCols {
			scale = min(scale, float64(fit.MaxCols)/float64(field.Cols()))
		}
		if fit.MaxRows > 0 && field.Rows() > fit.MaxRows {
			scale = min(scale, float64(fit.MaxRows)/float64(field.Rows()))
		}
		if scale >= 1 || size <= fit.MinSize || attempt >= 4 {
			return field, size, nil
		}

		// Padding does not scale with the face; undershoot slightly so one retry usually lands
		size = max(fit.MinSize, size*scale*0.97)
	}
}
