package textlayout

import "math"

// SubpixelMode is the number of buckets the fractional part of a glyph
// position is quantized into. More buckets give smoother spacing at the
// cost of more cached bitmaps per glyph.
type SubpixelMode uint8

const (
	// SubpixelNone snaps glyphs to whole pixels.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 positions (0.0, 0.25, 0.5, 0.75). This is the default.
	Subpixel4 SubpixelMode = 4

	// Subpixel10 uses 10 positions (0.0, 0.1, ..., 0.9).
	Subpixel10 SubpixelMode = 10
)

// DefaultSubpixelMode is the mode used by [LayoutGlyph.Physical].
const DefaultSubpixelMode = Subpixel4

// String returns the string representation of the subpixel mode.
func (m SubpixelMode) String() string {
	switch m {
	case SubpixelNone:
		return "None"
	case Subpixel4:
		return "Subpixel4"
	case Subpixel10:
		return "Subpixel10"
	default:
		return unknownStr
	}
}

// IsEnabled returns true if subpixel positioning is enabled.
func (m SubpixelMode) IsEnabled() bool {
	return m > 0
}

// Divisions returns the number of subpixel divisions, 1 when disabled.
func (m SubpixelMode) Divisions() int {
	if m == 0 {
		return 1
	}
	return int(m)
}

// Quantize splits a position into its integer pixel and a subpixel bucket.
//
// With Subpixel4:
//   - 10.0 returns (10, 0)
//   - 10.3 returns (10, 1)
//   - 10.5 returns (10, 2)
//   - 10.99 returns (10, 3)
//   - -0.25 returns (-1, 3)
//
// With SubpixelNone the position is rounded to the nearest pixel.
func Quantize(pos float32, mode SubpixelMode) (intPos int32, bin uint8) {
	if !mode.IsEnabled() {
		return int32(math.Floor(float64(pos) + 0.5)), 0
	}

	floor := math.Floor(float64(pos))
	frac := float64(pos) - floor

	b := int(frac * float64(mode.Divisions()))
	if b >= mode.Divisions() {
		b = mode.Divisions() - 1
	}
	if b < 0 {
		b = 0
	}
	return int32(floor), uint8(b) //nolint:gosec // b is bounded [0, mode-1]
}

// BinOffset returns the rendering offset of a subpixel bucket in pixels.
// For Subpixel4: 0 -> 0.0, 1 -> 0.25, 2 -> 0.5, 3 -> 0.75.
func BinOffset(bin uint8, mode SubpixelMode) float32 {
	if !mode.IsEnabled() {
		return 0
	}
	return float32(bin) / float32(mode.Divisions())
}
