package textlayout

// EllipsisFunc returns the ellipsis glyph to substitute for truncated
// content. ref is the glyph at the truncation point; the result should use
// its font and size. Cluster, level and position fields of the result are
// overwritten by the ellipsizer.
type EllipsisFunc func(ref ShapedGlyph) ShapedGlyph

// Options configures a layout pass. Options are read-only during a pass.
type Options struct {
	// MaxWidth is the maximum line width in logical units.
	// If <= 0 lines are unbounded and never wrap.
	MaxWidth float32

	// AvailableHeight is the vertical extent used by LimitHeight.
	AvailableHeight float32

	// LineHeight is the default line height. If <= 0 each line uses
	// the ascent plus descent of its glyphs.
	LineHeight float32

	// Wrap is the line breaking policy.
	Wrap Wrap

	// Ellipsize is the truncation policy.
	Ellipsize Ellipsize

	// Align is the horizontal alignment.
	Align Align

	// Direction is the paragraph base direction. It resolves AlignEnd and
	// the fallback alignment of lines that are not justified, and gives the
	// ellipsis its embedding level.
	Direction Direction

	// JustifyLastLine justifies the last line too. By default the last line
	// uses the base alignment, following typographic convention.
	JustifyLastLine bool

	// Ellipsis builds the ellipsis glyph. If nil, a placeholder glyph one
	// em wide is used.
	Ellipsis EllipsisFunc
}

// DefaultOptions returns unbounded, left-aligned, left-to-right options
// that wrap at words with glyph fallback.
func DefaultOptions() Options {
	return Options{
		Wrap:      WrapWordOrGlyph,
		Ellipsize: EllipsizeNone(),
		Align:     AlignLeft,
		Direction: DirectionLTR,
	}
}
