package shape

import (
	"slices"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textlayout"
)

// run is a directional run in rune indices [start, end).
type run struct {
	start, end int
	level      textlayout.Level
}

// bidiRuns splits text into directional runs. Levels are assigned relative
// to the requested base direction: right-to-left runs get level 1, and
// left-to-right runs get 0 in an LTR paragraph and 2 in an RTL one.
func bidiRuns(text string, n int, base textlayout.Direction) []run {
	defaultDir := bidi.LeftToRight
	ltrLevel := textlayout.Level(0)
	if base == textlayout.DirectionRTL {
		defaultDir = bidi.RightToLeft
		ltrLevel = 2
	}
	whole := []run{{start: 0, end: n, level: base.Level()}}

	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return whole
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return whole
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		// Pos returns inclusive rune indices.
		start, last := r.Pos()
		level := ltrLevel
		if r.Direction() == bidi.RightToLeft {
			level = 1
		}
		runs = append(runs, run{start: start, end: min(last+1, n), level: level})
	}
	return normalizeRuns(runs, n, base.Level())
}

// normalizeRuns sorts runs into logical order and fills any gap the bidi
// package left uncovered with the base level, so that every rune belongs to
// exactly one run.
func normalizeRuns(runs []run, n int, base textlayout.Level) []run {
	slices.SortFunc(runs, func(a, b run) int { return a.start - b.start })

	out := make([]run, 0, len(runs)+1)
	pos := 0
	for _, r := range runs {
		if r.start < pos {
			r.start = pos
		}
		if r.start >= r.end {
			continue
		}
		if r.start > pos {
			out = append(out, run{start: pos, end: r.start, level: base})
		}
		out = append(out, r)
		pos = r.end
	}
	if pos < n {
		out = append(out, run{start: pos, end: n, level: base})
	}
	return out
}
