package textlayout

// ShapedGlyph is one glyph of shaper output: the input contract of [Layout].
// A paragraph is a slice of ShapedGlyph in logical order.
type ShapedGlyph struct {
	// Start and End are the byte offsets of the glyph's cluster in the
	// source line. Start < End; several glyphs may share a cluster.
	Start, End int

	// FontID identifies the font in the font database. Must be non-zero.
	FontID FontID

	// GlyphID is the glyph index in the font.
	GlyphID GlyphID

	// Advance is the horizontal advance in logical units.
	Advance float32

	// FontSize is the font size in logical units. Must be > 0.
	FontSize float32

	// LineHeight overrides the paragraph line height when > 0.
	LineHeight float32

	// Ascent and Descent are the font's extents above and below the
	// baseline in logical units, both positive.
	Ascent, Descent float32

	// Level is the bidi embedding level.
	Level Level

	// XOffset and YOffset are rendering nudges in em units (multiplied by
	// FontSize when projected). They never move subsequent glyphs.
	XOffset, YOffset float32

	// Color overrides the draw color when set.
	Color Color

	// Metadata is an opaque caller tag carried through to the layout.
	Metadata uint64

	// Flags are rasterization hints that take part in the cache key.
	Flags CacheKeyFlags

	// Blank marks a whitespace cluster. A word boundary follows it.
	Blank bool

	// BreakAfter marks a visible cluster a line may end after, such as a
	// hyphen or an ideograph. Unlike a blank it takes up room on the line.
	// Set it on the last glyph of the cluster only.
	BreakAfter bool
}

// LayoutGlyph is a glyph positioned within a laid-out line.
type LayoutGlyph struct {
	// Start and End are the cluster byte offsets in the source line.
	Start, End int

	FontSize   float32
	LineHeight float32
	FontID     FontID
	GlyphID    GlyphID

	// X, Y and W describe the hitbox: X is the left edge, Y the baseline,
	// W the width. Hit testing uses these unscaled values.
	X, Y, W float32

	Level Level

	// XOffset and YOffset are em-unit nudges applied at render time only.
	// Use [LayoutGlyph.Physical] to obtain pixel coordinates.
	XOffset, YOffset float32

	Color    Color
	Metadata uint64
	Flags    CacheKeyFlags

	// Ellipsis marks the glyph substituted for truncated content. Its
	// Start and End cover the dropped clusters.
	Ellipsis bool
}

// LayoutLine is a line of glyphs in visual order.
type LayoutLine struct {
	// W is the width of the line. Trailing blanks hang past the line end
	// and are not counted.
	W float32

	// MaxAscent and MaxDescent are the largest extents of the glyphs.
	MaxAscent  float32
	MaxDescent float32

	// LineHeight is the largest per-glyph line height override, 0 if none.
	LineHeight float32

	// Y is the baseline position of the line within the paragraph.
	Y float32

	// Glyphs in visual (left to right) order.
	Glyphs []LayoutGlyph
}

// Height returns the height the line occupies in a paragraph laid out with
// the given default line height.
func (l *LayoutLine) Height(defaultHeight float32) float32 {
	m := lineMetrics{ascent: l.MaxAscent, descent: l.MaxDescent, lineHeight: l.LineHeight}
	return m.height(defaultHeight)
}

// Paragraph is the result of laying out one paragraph.
type Paragraph struct {
	// Lines in top to bottom order. Never empty.
	Lines []LayoutLine

	// Width is the width of the widest line.
	Width float32

	// Height is the sum of the line heights.
	Height float32

	// Truncated reports whether content was dropped by the ellipsize policy.
	Truncated bool
}

// lineMetrics are the vertical metrics of a line, shared by the height
// limiter and the placer.
type lineMetrics struct {
	ascent, descent, lineHeight float32
}

func (m *lineMetrics) add(g *ShapedGlyph) {
	m.ascent = max(m.ascent, g.Ascent)
	m.descent = max(m.descent, g.Descent)
	m.lineHeight = max(m.lineHeight, g.LineHeight)
}

// height resolves the height of a line: the glyph override first, then the
// paragraph default, then the font extents.
func (m lineMetrics) height(defaultHeight float32) float32 {
	switch {
	case m.lineHeight > 0:
		return m.lineHeight
	case defaultHeight > 0:
		return defaultHeight
	default:
		return m.ascent + m.descent
	}
}

func metricsOf(glyphs []ShapedGlyph) lineMetrics {
	var m lineMetrics
	for i := range glyphs {
		m.add(&glyphs[i])
	}
	return m
}

// hangingBlanks returns the number of blank glyphs at the logical end of a
// line. They hang: alignment, justification and line width ignore them.
func hangingBlanks(glyphs []ShapedGlyph) int {
	n := 0
	for i := len(glyphs) - 1; i >= 0 && glyphs[i].Blank; i-- {
		n++
	}
	return n
}

// visibleAdvance is the advance of a logical line without its hanging blanks.
func visibleAdvance(glyphs []ShapedGlyph) float32 {
	return advanceOf(glyphs[:len(glyphs)-hangingBlanks(glyphs)])
}

// advanceOf returns the summed advance of the glyphs.
func advanceOf(glyphs []ShapedGlyph) float32 {
	var w float32
	for i := range glyphs {
		w += glyphs[i].Advance
	}
	return w
}
