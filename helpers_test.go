package textlayout

// testFont is the font id used by synthetic glyphs.
const testFont FontID = 7

// word returns non-blank glyphs with one-byte clusters starting at start.
func word(start int, advances ...float32) []ShapedGlyph {
	out := make([]ShapedGlyph, len(advances))
	for i, adv := range advances {
		out[i] = glyph(start+i, adv, false)
	}
	return out
}

// glyph returns a single synthetic glyph at byte offset at.
func glyph(at int, adv float32, blank bool) ShapedGlyph {
	return ShapedGlyph{
		Start:    at,
		End:      at + 1,
		FontID:   testFont,
		GlyphID:  GlyphID(at + 1),
		Advance:  adv,
		FontSize: 10,
		Ascent:   8,
		Descent:  2,
		Blank:    blank,
	}
}

// textGlyphs maps every byte of s to a glyph of the given advance.
// Spaces become blank glyphs.
func textGlyphs(s string, adv float32) []ShapedGlyph {
	out := make([]ShapedGlyph, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = glyph(i, adv, s[i] == ' ')
	}
	return out
}

// withLevels returns a copy of glyphs with the given embedding levels.
func withLevels(glyphs []ShapedGlyph, levels ...Level) []ShapedGlyph {
	out := append([]ShapedGlyph(nil), glyphs...)
	for i := range out {
		out[i].Level = levels[i]
	}
	return out
}

// fixedEllipsis returns an EllipsisFunc producing a glyph of width w.
func fixedEllipsis(w float32) EllipsisFunc {
	return func(ref ShapedGlyph) ShapedGlyph {
		return ShapedGlyph{
			FontID:   ref.FontID,
			GlyphID:  999,
			Advance:  w,
			FontSize: ref.FontSize,
			Ascent:   ref.Ascent,
			Descent:  ref.Descent,
		}
	}
}

// spanText renders spans of textGlyphs input back to strings.
func spanText(s string, spans []Span) []string {
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = s[sp.Start:sp.End]
	}
	return out
}

// lineText renders a laid-out line using the source string, with "…" for
// the ellipsis glyph.
func lineText(s string, line LayoutLine) string {
	var b []byte
	for _, g := range line.Glyphs {
		if g.Ellipsis {
			b = append(b, "…"...)
			continue
		}
		b = append(b, s[g.Start:g.End]...)
	}
	return string(b)
}
