package parameter

import "time"

// Label Defaults
const (
	// DefaultText is the label rendered when none is configured
	DefaultText = "kody.eth"

	// RasterFontSize is the offscreen render size in pixels, independent of terminal size
	RasterFontSize = 96.0

	// MinRasterFontSize is the smallest size fit-to-width may shrink to
	MinRasterFontSize = 18.0

	// RasterDPI keeps pixel sizes equal to point sizes
	RasterDPI = 72.0
)

// Rasterizer Sampling
// Threshold and padding were tuned by eye; they are exposed as configuration
const (
	// SampleCellWidth is the sample block width in raster pixels per grid column
	SampleCellWidth = 5

	// SampleCellHeight is the sample block height in raster pixels per grid row
	SampleCellHeight = 7

	// InkThreshold is the mean luminance*alpha over a block above which the block is ink
	InkThreshold = 0.30

	// GridPadding is the number of cells kept around the ink bounding box on every side
	GridPadding = 2

	// RasterMargin is the blank border in raster pixels drawn around the text so padding has room
	RasterMargin = 24
)

// Grid Glyphs
const (
	InkRune        = '+'
	BackgroundRune = '-'
	StaticRune     = '█'
)

// Spawn Schedule
const (
	// RowDelay is the per-row stagger; bottom rows spawn first
	RowDelay = 45 * time.Millisecond

	// RowJitter is the exclusive upper bound of uniform per-cell jitter
	RowJitter = 900 * time.Millisecond
)

// Particle Physics (units: cells, seconds)
const (
	// Gravity is the constant downward acceleration (cells/sec²)
	Gravity = 120.0

	// MinFallVelocity and MaxFallVelocity bound the random initial velocity (cells/sec)
	MinFallVelocity = 4.0
	MaxFallVelocity = 14.0

	// DepthBoost is added to initial velocity scaled by row depth (cells/sec)
	DepthBoost = 18.0

	// SpawnLift is how far above field row 0 particles appear (cells)
	SpawnLift = 6.0

	// MaxSpawnPerFrame caps particle creation per frame
	MaxSpawnPerFrame = 120
)

// Compositor
const (
	// FadeDuration is the linear fade from the composite to the static rendering
	FadeDuration = 600 * time.Millisecond

	// BackgroundOpacity is the blend factor of background dashes over the screen background
	BackgroundOpacity = 0.18
)

// Gradient stops, left to right across the field
var GradientStops = []string{"#7dd3fc", "#a78bfa", "#f472b6"}

// ScreenBackground is the color the compositor treats as transparent
const ScreenBackground = "#09090b"

// FallbackForeground is the plain label color
const FallbackForeground = "#e4e4e7"
