package textlayout

// placeLine positions a visual line. top is the top edge of the line in the
// paragraph. It returns the line and its height.
func placeLine(vl visualLine, a alignment, top, defaultHeight float32) (LayoutLine, float32) {
	m := metricsOf(vl.glyphs)
	height := m.height(defaultHeight)

	// Leading is split evenly above and below the glyph extents.
	baseline := top + m.ascent + (height-m.ascent-m.descent)/2

	line := LayoutLine{
		Y:      baseline,
		Glyphs: make([]LayoutGlyph, 0, len(vl.glyphs)),
	}

	// Blanks hanging on the left sit before the aligned content.
	x := a.offset - advanceOf(vl.glyphs[:vl.hangLeft])
	gap := 0
	for i := range vl.glyphs {
		g := &vl.glyphs[i]
		w := g.Advance
		if a.isGap(vl.glyphs, i) {
			gap++
			w += a.extra(gap)
		}

		line.Glyphs = append(line.Glyphs, LayoutGlyph{
			Start:      g.Start,
			End:        g.End,
			FontSize:   g.FontSize,
			LineHeight: g.LineHeight,
			FontID:     g.FontID,
			GlyphID:    g.GlyphID,
			X:          x,
			Y:          baseline,
			W:          w,
			Level:      g.Level,
			XOffset:    g.XOffset,
			YOffset:    g.YOffset,
			Color:      g.Color,
			Metadata:   g.Metadata,
			Flags:      g.Flags,
			Ellipsis:   i == vl.ellipsis,
		})

		x += w
		if i >= vl.hangLeft && i < len(vl.glyphs)-vl.hangRight {
			line.W += w
		}
		line.MaxAscent = max(line.MaxAscent, g.Ascent)
		line.MaxDescent = max(line.MaxDescent, g.Descent)
		line.LineHeight = max(line.LineHeight, g.LineHeight)
	}

	return line, height
}
