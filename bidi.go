package textlayout

import "slices"

// VisualOrder returns the logical indices of a line in visual order,
// following rule L2 of the Unicode Bidirectional Algorithm: from the highest
// level down to the lowest odd level, every maximal run of glyphs at that
// level or higher is reversed.
//
// The result is a permutation; equal adjacent levels never cause an extra
// reversal.
func VisualOrder(levels []Level) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}

	var highest, lowestOdd Level
	hasOdd := false
	for _, lv := range levels {
		highest = max(highest, lv)
		if lv.IsRTL() && (!hasOdd || lv < lowestOdd) {
			lowestOdd = lv
			hasOdd = true
		}
	}
	if !hasOdd {
		return order
	}

	// lowestOdd >= 1, so lv cannot wrap around.
	for lv := highest; lv >= lowestOdd; lv-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < lv {
				i++
				continue
			}
			j := i + 1
			for j < len(order) && levels[order[j]] >= lv {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}

// ReorderVisual returns a copy of a line's glyphs in visual order.
// Glyph contents, including cluster offsets, are unchanged.
func ReorderVisual(glyphs []ShapedGlyph) []ShapedGlyph {
	order := visualOrderOf(glyphs)
	out := make([]ShapedGlyph, len(glyphs))
	for vis, logical := range order {
		out[vis] = glyphs[logical]
	}
	return out
}

func visualOrderOf(glyphs []ShapedGlyph) []int {
	levels := make([]Level, len(glyphs))
	for i := range glyphs {
		levels[i] = glyphs[i].Level
	}
	return VisualOrder(levels)
}

// visualLine is a line after reordering.
type visualLine struct {
	glyphs []ShapedGlyph

	// ellipsis is the visual index of the ellipsis glyph, or -1.
	ellipsis int

	// hangLeft and hangRight count the hanging blanks at either visual end.
	hangLeft, hangRight int
}

// visible returns the glyphs between the hanging blanks.
func (vl *visualLine) visible() []ShapedGlyph {
	return vl.glyphs[vl.hangLeft : len(vl.glyphs)-vl.hangRight]
}

// reorder moves a logical line into visual order, tracking the ellipsis.
// Trailing blanks take the paragraph level (rule L1), so they end up at the
// visual end of the line: right for an even base, left for an odd one.
func reorder(ln logicalLine, base Level) visualLine {
	n := len(ln.glyphs)
	hanging := hangingBlanks(ln.glyphs)
	levels := make([]Level, n)
	for i := range ln.glyphs {
		levels[i] = ln.glyphs[i].Level
		if i >= n-hanging {
			levels[i] = base
		}
	}

	vl := visualLine{
		glyphs:   make([]ShapedGlyph, n),
		ellipsis: -1,
	}
	if base.IsRTL() {
		vl.hangLeft = hanging
	} else {
		vl.hangRight = hanging
	}
	for vis, logical := range VisualOrder(levels) {
		vl.glyphs[vis] = ln.glyphs[logical]
		vl.glyphs[vis].Level = levels[logical]
		if logical == ln.ellipsis {
			vl.ellipsis = vis
		}
	}
	return vl
}
