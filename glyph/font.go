package glyph

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/lixenwraith/glyphfall/parameter"
)

// Font is a parsed OpenType font ready to produce faces at any size
type Font struct {
	otf  *opentype.Font
	name string
}

var (
	defaultOnce sync.Once
	defaultFont *Font
	defaultErr  error
)

// DefaultFont returns the embedded Go Mono Bold font, parsed once per process
func DefaultFont() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = ParseFont(gomonobold.TTF)
		if defaultErr != nil {
			defaultErr = errors.Wrap(defaultErr, "embedded font")
		}
	})
	return defaultFont, defaultErr
}

// ParseFont parses TTF/OTF bytes
func ParseFont(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	name, _ := otf.Name(nil, sfnt.NameIDFull)
	return &Font{otf: otf, name: name}, nil
}

// LoadFont loads the font at path, or the embedded font when path is empty.
// Returns ctx.Err() if ctx ends before loading completes
func LoadFont(ctx context.Context, path string) (*Font, error) {
	type result struct {
		f   *Font
		err error
	}
	done := make(chan result, 1)

	go func() {
		if path == "" {
			f, err := DefaultFont()
			done <- result{f, err}
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			done <- result{nil, errors.Wrap(err, "read font")}
			return
		}
		f, err := ParseFont(data)
		done <- result{f, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.f, r.err
	}
}

// Name returns the font's full name, if recorded
func (f *Font) Name() string {
	return f.name
}

// Face creates a face at size pixels
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     parameter.RasterDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "face at %.1fpx", size)
	}
	return face, nil
}
