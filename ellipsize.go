package textlayout

import (
	"math"
	"slices"
)

// unbounded stands in for MaxWidth <= 0.
var unbounded = float32(math.Inf(1))

// logicalLine is a line of glyphs in logical order, owned by the line.
type logicalLine struct {
	glyphs []ShapedGlyph

	// ellipsis is the index of the ellipsis glyph in glyphs, or -1.
	ellipsis int
}

// ResolveMaxLines resolves a height limit to a concrete line count, never
// less than one. heights are the heights of the candidate lines in order;
// they are only consulted by LimitHeight, which keeps lines while their
// cumulative height fits in available.
func ResolveMaxLines(limit HeightLimit, heights []float32, available float32) int {
	switch limit.Kind {
	case LimitKindLines:
		return max(int(limit.Lines), 1)
	case LimitKindHeight:
		if !(available > 0) {
			return 1
		}
		var total float32
		n := 0
		for _, h := range heights {
			if total+h > available {
				break
			}
			total += h
			n++
		}
		return max(n, 1)
	default:
		return 1
	}
}

// ellipsize applies the height limit and ellipsize policy to the broken
// spans. The returned lines own their glyphs. truncated reports whether any
// content was dropped.
func ellipsize(glyphs []ShapedGlyph, spans []Span, opts *Options) (lines []logicalLine, truncated bool) {
	maxWidth := opts.MaxWidth
	if !(maxWidth > 0) {
		maxWidth = unbounded
	}

	switch opts.Ellipsize.Mode {
	case EllipsizeModeStart:
		if line, ok := ellipsizeStart(glyphs, spans, maxWidth, opts); ok {
			return []logicalLine{line}, true
		}
	case EllipsizeModeMiddle:
		if line, ok := ellipsizeMiddle(glyphs, spans, maxWidth, opts); ok {
			return []logicalLine{line}, true
		}
	case EllipsizeModeEnd:
		if lines, ok := ellipsizeEnd(glyphs, spans, maxWidth, opts); ok {
			return lines, true
		}
	}
	return splitSpans(glyphs, spans), false
}

// splitSpans copies every span into its own line.
func splitSpans(glyphs []ShapedGlyph, spans []Span) []logicalLine {
	lines := make([]logicalLine, len(spans))
	for i, s := range spans {
		lines[i] = logicalLine{
			glyphs:   slices.Clone(glyphs[s.Start:s.End]),
			ellipsis: -1,
		}
	}
	return lines
}

// singleLineOverflows reports whether the paragraph cannot be shown on one
// line, which is when Start and Middle truncate.
func singleLineOverflows(glyphs []ShapedGlyph, spans []Span, maxWidth float32) bool {
	return len(spans) > 1 || visibleAdvance(glyphs) > maxWidth
}

func ellipsizeStart(glyphs []ShapedGlyph, spans []Span, maxWidth float32, opts *Options) (logicalLine, bool) {
	if !singleLineOverflows(glyphs, spans, maxWidth) {
		return logicalLine{}, false
	}

	ell := newEllipsis(opts, glyphs[0])
	width := advanceOf(glyphs)
	cut := 0
	for cut < len(glyphs) && width+ell.Advance > maxWidth {
		width -= glyphs[cut].Advance
		cut++
	}
	if cut == 0 {
		return logicalLine{}, false
	}
	ell.Start, ell.End = clusterRange(glyphs[:cut])

	line := make([]ShapedGlyph, 0, len(glyphs)-cut+1)
	line = append(line, ell)
	line = append(line, glyphs[cut:]...)
	return logicalLine{glyphs: line, ellipsis: 0}, true
}

// ellipsizeMiddle drops glyphs from the center outwards, alternating sides.
// The later side goes first and wins whenever it holds at least as many
// glyphs as the earlier side.
func ellipsizeMiddle(glyphs []ShapedGlyph, spans []Span, maxWidth float32, opts *Options) (logicalLine, bool) {
	if !singleLineOverflows(glyphs, spans, maxWidth) {
		return logicalLine{}, false
	}

	n := len(glyphs)
	ell := newEllipsis(opts, glyphs[n/2])
	width := advanceOf(glyphs)
	head, tail := n/2, n/2 // keep glyphs[:head] and glyphs[tail:]
	for width+ell.Advance > maxWidth && (head > 0 || tail < n) {
		if tail < n && (n-tail >= head || head == 0) {
			width -= glyphs[tail].Advance
			tail++
		} else {
			head--
			width -= glyphs[head].Advance
		}
	}
	if head == tail {
		return logicalLine{}, false
	}
	ell.Start, ell.End = clusterRange(glyphs[head:tail])

	line := make([]ShapedGlyph, 0, head+1+n-tail)
	line = append(line, glyphs[:head]...)
	line = append(line, ell)
	line = append(line, glyphs[tail:]...)
	return logicalLine{glyphs: line, ellipsis: head}, true
}

func ellipsizeEnd(glyphs []ShapedGlyph, spans []Span, maxWidth float32, opts *Options) ([]logicalLine, bool) {
	heights := make([]float32, len(spans))
	for i, s := range spans {
		heights[i] = metricsOf(glyphs[s.Start:s.End]).height(opts.LineHeight)
	}
	kept := min(ResolveMaxLines(opts.Ellipsize.Limit, heights, opts.AvailableHeight), len(spans))

	last := spans[kept-1]
	width := advanceOf(glyphs[last.Start:last.End])
	if kept == len(spans) && visibleAdvance(glyphs[last.Start:last.End]) <= maxWidth {
		return nil, false
	}

	refIdx := last.End - 1
	if last.Len() == 0 {
		refIdx = last.End
	}
	ell := newEllipsis(opts, glyphs[refIdx])

	cut := last.End
	for cut > last.Start && width+ell.Advance > maxWidth {
		cut--
		width -= glyphs[cut].Advance
	}
	ell.Start, ell.End = clusterRange(glyphs[cut:])

	lines := splitSpans(glyphs, spans[:kept-1])
	tail := make([]ShapedGlyph, 0, cut-last.Start+1)
	tail = append(tail, glyphs[last.Start:cut]...)
	tail = append(tail, ell)
	lines = append(lines, logicalLine{glyphs: tail, ellipsis: len(tail) - 1})
	return lines, true
}

// newEllipsis builds the ellipsis glyph for the truncation point ref.
func newEllipsis(opts *Options, ref ShapedGlyph) ShapedGlyph {
	var ell ShapedGlyph
	if opts.Ellipsis != nil {
		ell = opts.Ellipsis(ref)
	} else {
		Logger().Warn("textlayout: no ellipsis glyph configured, using placeholder",
			"font", ref.FontID, "size", ref.FontSize)
		ell = ShapedGlyph{
			FontID:   ref.FontID,
			FontSize: ref.FontSize,
			Advance:  ref.FontSize,
			Ascent:   ref.Ascent,
			Descent:  ref.Descent,
			Flags:    ref.Flags,
		}
	}
	ell.Level = opts.Direction.Level()
	ell.Blank = false
	return ell
}

// clusterRange returns the smallest byte range covering the clusters of a
// non-empty glyph slice.
func clusterRange(glyphs []ShapedGlyph) (start, end int) {
	start, end = glyphs[0].Start, glyphs[0].End
	for i := 1; i < len(glyphs); i++ {
		start = min(start, glyphs[i].Start)
		end = max(end, glyphs[i].End)
	}
	return start, end
}
