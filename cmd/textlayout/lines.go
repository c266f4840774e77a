package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/textlayout"
)

// lineRows formats the lines of p as a table with a header row.
func lineRows(text string, p *textlayout.Paragraph) [][]string {
	rows := [][]string{{"Line", "Y", "Width", "Glyphs", "Text"}}
	for i := range p.Lines {
		l := &p.Lines[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.1f", l.Y),
			fmt.Sprintf("%.1f", l.W),
			fmt.Sprintf("%d", len(l.Glyphs)),
			lineText(text, l),
		})
	}
	return rows
}

// lineText returns the source text covered by the line in logical order,
// with the ellipsis in place of the clusters it replaced.
func lineText(text string, l *textlayout.LayoutLine) string {
	type span struct {
		start, end int
		ellipsis   bool
	}
	var spans []span
	for _, g := range l.Glyphs {
		spans = append(spans, span{g.Start, g.End, g.Ellipsis})
	}
	if len(spans) == 0 {
		return ""
	}
	// Visual order differs from logical order on mixed lines.
	slices.SortStableFunc(spans, func(a, b span) int { return a.start - b.start })

	var b strings.Builder
	last := -1
	for _, s := range spans {
		if s.start < last {
			continue
		}
		if s.ellipsis {
			b.WriteString("…")
		} else {
			b.WriteString(text[s.start:s.end])
		}
		last = s.end
	}
	return strings.TrimRight(b.String(), " ")
}
