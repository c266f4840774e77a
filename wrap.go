package textlayout

// Span is the half-open range [Start, End) of glyph indices forming a line.
type Span struct {
	Start, End int
}

// Len returns the number of glyphs in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// BreakLines partitions a paragraph, in logical order, into line spans.
// It never returns zero spans: an empty paragraph yields one empty span.
//
// A maxWidth <= 0 means unbounded. Glyphs with zero advance never cause a
// break. In the word modes a blank glyph never causes a break either; it
// hangs past the edge and the break follows it. A glyph marked BreakAfter is
// also a word boundary, but it must fit the line like any other glyph.
//
// The scan is a single forward pass that remembers one pending break
// candidate, the position after the most recent boundary of the current
// line.
func BreakLines(glyphs []ShapedGlyph, maxWidth float32, wrap Wrap) []Span {
	n := len(glyphs)
	if wrap == WrapNone || n == 0 || !(maxWidth > 0) {
		return []Span{{Start: 0, End: n}}
	}

	wordMode := wrap == WrapWord || wrap == WrapWordOrGlyph
	spans := make([]Span, 0, 4)

	var (
		start          int
		width          float32 // advance of glyphs[start:i]
		candidate      = -1    // break position after the last boundary, or -1
		candidateWidth float32 // advance of glyphs[start:candidate]
	)

	for i := 0; i < n; {
		g := &glyphs[i]

		if g.Advance > 0 && i > start && width+g.Advance > maxWidth && !(wordMode && g.Blank) {
			brk := -1
			switch {
			case wrap == WrapGlyph:
				brk = i
			case candidate > start:
				brk = candidate
			case wrap == WrapWordOrGlyph:
				// The word alone overflows an otherwise empty line.
				brk = i
			}

			if brk > start {
				spans = append(spans, Span{Start: start, End: brk})
				if brk == candidate {
					width -= candidateWidth
				} else {
					width = 0
				}
				start = brk
				candidate = -1
				// Re-check glyph i against the new line.
				continue
			}
			// WrapWord without a boundary: the word overflows.
		}

		width += g.Advance
		if wordMode && (g.Blank || g.BreakAfter) {
			candidate = i + 1
			candidateWidth = width
		}
		i++
	}

	return append(spans, Span{Start: start, End: n})
}
