package textlayout

import (
	"context"
	"log/slog"
)

// Layout lays out one paragraph of shaped glyphs, given in logical order.
//
// The pass breaks lines, applies the ellipsize policy, reorders each line
// into visual order, aligns it and places its glyphs. Truncation works on
// logical order so that Start and End follow the paragraph direction; it
// runs before reordering, which never changes a line's width.
//
// Layout is a total function: it never fails and always returns at least
// one line. The input must satisfy [Validate]; violations are not
// diagnosed except in debug logging.
func Layout(glyphs []ShapedGlyph, opts Options) *Paragraph {
	log := Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		if err := Validate(glyphs); err != nil {
			log.Debug("textlayout: input contract violated", "err", err)
		}
	}

	spans := BreakLines(glyphs, opts.MaxWidth, opts.Wrap)
	lines, truncated := ellipsize(glyphs, spans, &opts)

	visual := make([]visualLine, len(lines))
	var widest float32
	for i := range lines {
		visual[i] = reorder(lines[i], opts.Direction.Level())
		widest = max(widest, advanceOf(visual[i].visible()))
	}

	container := opts.MaxWidth
	if !(container > 0) {
		container = widest
	}

	out := &Paragraph{
		Lines:     make([]LayoutLine, 0, len(visual)),
		Truncated: truncated,
	}
	var top float32
	for i := range visual {
		width := advanceOf(visual[i].visible())
		a := alignLine(visual[i].glyphs, width, container, &opts, i == len(visual)-1)
		line, height := placeLine(visual[i], a, top, opts.LineHeight)
		top += height
		out.Width = max(out.Width, line.W)
		out.Lines = append(out.Lines, line)
	}
	out.Height = top

	if debug {
		log.Debug("textlayout: paragraph laid out",
			"glyphs", len(glyphs),
			"candidates", len(spans),
			"lines", len(out.Lines),
			"wrap", opts.Wrap,
			"align", opts.Align)
		if truncated {
			log.Debug("textlayout: paragraph truncated", "ellipsize", opts.Ellipsize)
		}
	}
	return out
}
