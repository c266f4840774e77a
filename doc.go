// Package textlayout turns shaped glyph runs into laid-out lines.
//
// The input is one paragraph of [ShapedGlyph] values in logical order, as
// produced by a shaper (see the shape sub-package). [Layout] runs a one-shot
// pipeline over it:
//
//   - line breaking under a [Wrap] policy and a maximum width
//   - truncation under an [Ellipsize] policy, optionally replacing the
//     dropped content with an ellipsis glyph
//   - bidi reordering of each line into visual order
//   - horizontal alignment or justification under an [Align] policy
//   - glyph placement, producing [LayoutLine] values with metrics
//
// The result holds logical coordinates only. At render time each
// [LayoutGlyph] is projected with [LayoutGlyph.Physical] into integer pixel
// coordinates plus a quantized [CacheKey] that a glyph rasterizer can use to
// address its bitmap cache.
//
// # Example usage
//
//	db := fontdb.New()
//	id, err := db.Load(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	glyphs, err := shape.New(db).Shape("Hello, world", shape.Style{Font: id, Size: 16})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := textlayout.DefaultOptions()
//	opts.MaxWidth = 120
//	opts.Ellipsize = textlayout.EllipsizeEnd(textlayout.LimitLines(2))
//	l := textlayout.Layout(glyphs, opts)
//
//	for _, line := range l.Lines {
//	    for i := range line.Glyphs {
//	        p := line.Glyphs[i].Physical(0, 0, 1)
//	        _ = p.CacheKey // look up or rasterize the bitmap, draw at p.X, p.Y
//	    }
//	}
//
// # Concurrency
//
// Layout passes share no mutable state, so independent paragraphs may be laid
// out from different goroutines. [LayoutGlyph.Physical] only reads the glyph
// and may be called concurrently on a shared layout.
package textlayout
