package textlayout

import "image/color"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// FontID is an opaque identifier for a font in an external font database.
// The zero value is not a valid font.
type FontID uint64

// GlyphID is the glyph index in the font.
type GlyphID uint16

// Level is a Unicode bidi embedding level.
// Even levels are left-to-right, odd levels are right-to-left.
type Level uint8

// IsRTL reports whether the level is right-to-left.
func (l Level) IsRTL() bool {
	return l&1 == 1
}

// Direction is the base direction of a paragraph.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// Level returns the paragraph embedding level of the direction.
func (d Direction) Level() Level {
	if d == DirectionRTL {
		return 1
	}
	return 0
}

// CacheKeyFlags are rendering hints that change the rasterized bitmap and
// therefore take part in the [CacheKey].
type CacheKeyFlags uint32

const (
	// CacheKeyFakeItalic skews the outline to emulate an italic face.
	CacheKeyFakeItalic CacheKeyFlags = 1 << iota
	// CacheKeyDisableHinting keeps outline y coordinates at their exact
	// positions instead of snapping them to whole pixels.
	CacheKeyDisableHinting
	// CacheKeyPixelFont disables anti-aliasing for pixel fonts.
	CacheKeyPixelFont
)

// Has reports whether all bits of f are set.
func (c CacheKeyFlags) Has(f CacheKeyFlags) bool {
	return c&f == f
}

// Color is a non-premultiplied 0xRRGGBBAA color override.
// The zero value means "no override".
type Color uint32

// RGBA8 packs 8-bit channels into a Color.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// IsSet reports whether the color overrides the default.
func (c Color) IsSet() bool {
	return c != 0
}

// NRGBA converts the color to a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}
