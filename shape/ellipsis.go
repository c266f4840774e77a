package shape

import "github.com/gogpu/textlayout"

// ellipsisRune is U+2026 HORIZONTAL ELLIPSIS.
const ellipsisRune = "…"

type ellipsisKey struct {
	font textlayout.FontID
	size float32
}

// EllipsisFunc returns a [textlayout.EllipsisFunc] that shapes U+2026 in the
// font and size of the glyph at the truncation point. Attributes other than
// font and size come from st. Shaped ellipses are cached per font and size.
func (s *Shaper) EllipsisFunc(st Style) textlayout.EllipsisFunc {
	return func(ref textlayout.ShapedGlyph) textlayout.ShapedGlyph {
		g := s.ellipsis(ref.FontID, ref.FontSize)
		g.LineHeight = st.LineHeight
		g.Color = st.Color
		g.Metadata = st.Metadata
		g.Flags = st.Flags
		return g
	}
}

func (s *Shaper) ellipsis(font textlayout.FontID, size float32) textlayout.ShapedGlyph {
	key := ellipsisKey{font: font, size: size}

	s.mu.RLock()
	g, ok := s.ellipses[key]
	s.mu.RUnlock()
	if ok {
		return g
	}

	glyphs, err := s.Shape(ellipsisRune, Style{Font: font, Size: size})
	g = pickEllipsis(glyphs, err, font, size)
	if err != nil {
		// The font may be loaded later.
		return g
	}

	s.mu.Lock()
	s.ellipses[key] = g
	s.mu.Unlock()
	return g
}

// pickEllipsis returns the shaped ellipsis when the font renders it as one
// glyph, and a placeholder one em wide otherwise. A layout glyph cannot
// stand for several font glyphs.
func pickEllipsis(glyphs []textlayout.ShapedGlyph, err error, font textlayout.FontID, size float32) textlayout.ShapedGlyph {
	log := textlayout.Logger()
	switch {
	case err != nil || len(glyphs) == 0:
		log.Warn("shape: cannot shape ellipsis, using placeholder",
			"font", font, "size", size, "err", err)
	case len(glyphs) > 1:
		log.Warn("shape: ellipsis shaped to several glyphs, using placeholder",
			"font", font, "glyphs", len(glyphs))
	default:
		if glyphs[0].GlyphID == 0 {
			log.Warn("shape: font has no ellipsis glyph", "font", font)
		}
		return glyphs[0]
	}
	return textlayout.ShapedGlyph{
		Start:    0,
		End:      len(ellipsisRune),
		FontID:   font,
		FontSize: size,
		Advance:  size,
		Ascent:   size,
	}
}
