// Package glyph rasterizes a text label into a pair of character grids.
//
// The label is drawn once with an OpenType face onto an offscreen RGBA raster
// at a fixed large size, then sampled in fixed-size pixel blocks. A block whose
// mean luminance*alpha exceeds the threshold is an ink cell. The result is
// cropped to the ink bounding box plus padding and returned as two grids of
// identical dimensions: the ink grid ('+' for ink) and the background grid
// ('-' for everything that is not ink).
package glyph
