package textlayout

import "math"

// PhysicalGlyph is the render-time projection of a [LayoutGlyph]: the bitmap
// to draw and the integer pixel position to draw it at. It is recomputed for
// every render call and never stored in the layout.
type PhysicalGlyph struct {
	// CacheKey addresses the rasterized bitmap.
	CacheKey CacheKey

	// X and Y are the integer pixel position of the glyph origin.
	X, Y int32
}

// Physical projects the glyph into pixel space with the given translation
// and scale, using [DefaultSubpixelMode].
//
// Physical only reads the glyph and does not allocate; it may be called
// every frame and concurrently on a shared layout.
func (g LayoutGlyph) Physical(offsetX, offsetY, scale float32) PhysicalGlyph {
	return g.PhysicalMode(offsetX, offsetY, scale, DefaultSubpixelMode)
}

// PhysicalMode is Physical with an explicit subpixel mode.
func (g LayoutGlyph) PhysicalMode(offsetX, offsetY, scale float32, mode SubpixelMode) PhysicalGlyph {
	xOff := g.FontSize * g.XOffset
	yOff := g.FontSize * g.YOffset

	x := (g.X+xOff)*scale + offsetX
	// Hinting in Y axis: the baseline snaps to whole pixels, only X keeps
	// subpixel precision.
	y := float32(math.Trunc(float64((g.Y-yOff)*scale + offsetY)))

	key, px, py := NewCacheKey(g.FontID, g.GlyphID, g.FontSize*scale, x, y, g.Flags, mode)
	return PhysicalGlyph{CacheKey: key, X: px, Y: py}
}
