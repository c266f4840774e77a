package textlayout

import "math"

// alignment is the horizontal placement of one visual line.
type alignment struct {
	// offset is the x position of the first glyph.
	offset float32

	// gaps is the number of inter-word gaps that receive extra space.
	gaps int

	// perGap is the extra width of every gap; the last gap also gets rest.
	perGap, rest float32

	// lo and hi bound the glyphs between the outermost non-blank glyphs;
	// only blanks strictly inside receive extra space.
	lo, hi int
}

// isGap reports whether the visual glyph i is a stretchable gap.
func (a *alignment) isGap(glyphs []ShapedGlyph, i int) bool {
	return a.gaps > 0 && i > a.lo && i < a.hi && glyphs[i].Blank
}

// extra returns the extra width of the n-th gap, counting from 1.
func (a *alignment) extra(n int) float32 {
	if n == a.gaps {
		return a.perGap + a.rest
	}
	return a.perGap
}

// baseAlign is the alignment used where justification does not apply.
func baseAlign(dir Direction) Align {
	if dir == DirectionRTL {
		return AlignRight
	}
	return AlignLeft
}

// alignLine computes the placement of a visual line of the given width
// inside container.
func alignLine(glyphs []ShapedGlyph, width, container float32, opts *Options, isLast bool) alignment {
	align := opts.Align
	if align == AlignEnd {
		if opts.Direction == DirectionRTL {
			align = AlignLeft
		} else {
			align = AlignRight
		}
	}

	if align == AlignJustified {
		if isLast && !opts.JustifyLastLine {
			align = baseAlign(opts.Direction)
		} else if a, ok := justify(glyphs, width, container); ok {
			return a
		} else {
			align = baseAlign(opts.Direction)
		}
	}

	var offset float32
	switch align {
	case AlignRight:
		offset = container - width
	case AlignCenter:
		offset = (container - width) / 2
	}
	return alignment{offset: max(offset, 0)}
}

// justify spreads the free space of a line over its inter-word gaps in
// whole units. It fails for lines without gaps and lines with no free space.
func justify(glyphs []ShapedGlyph, width, container float32) (alignment, bool) {
	free := container - width
	if !(free > 0) {
		return alignment{}, false
	}

	lo, hi := -1, -1
	for i := range glyphs {
		if !glyphs[i].Blank {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	gaps := 0
	for i := lo + 1; i < hi; i++ {
		if glyphs[i].Blank {
			gaps++
		}
	}
	if gaps == 0 {
		return alignment{}, false
	}

	perGap := float32(math.Floor(float64(free / float32(gaps))))
	return alignment{
		gaps:   gaps,
		perGap: perGap,
		rest:   free - perGap*float32(gaps),
		lo:     lo,
		hi:     hi,
	}, true
}
