package textlayout

import (
	"slices"
	"testing"
)

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		name   string
		levels []Level
		want   []int
	}{
		{"empty", nil, []int{}},
		{"all ltr", []Level{0, 0, 0}, []int{0, 1, 2}},
		{"all rtl", []Level{1, 1, 1}, []int{2, 1, 0}},
		{"rtl island", []Level{0, 0, 1, 1, 0, 0}, []int{0, 1, 3, 2, 4, 5}},
		{"two rtl islands", []Level{1, 0, 1, 1}, []int{0, 1, 3, 2}},
		{"ltr number in rtl", []Level{1, 1, 2, 2, 1}, []int{4, 2, 3, 1, 0}},
		{"nested rtl in ltr", []Level{0, 1, 2, 2, 1, 0}, []int{0, 4, 2, 3, 1, 5}},
		{"rtl paragraph ltr run", []Level{1, 2, 2, 1}, []int{3, 1, 2, 0}},
		{"even levels only", []Level{2, 2, 0}, []int{0, 1, 2}},
		{"level three", []Level{1, 3, 3, 1}, []int{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisualOrder(tt.levels)
			if !slices.Equal(got, tt.want) {
				t.Errorf("VisualOrder(%v) = %v, want %v", tt.levels, got, tt.want)
			}
		})
	}
}

func TestVisualOrderIsPermutation(t *testing.T) {
	levels := []Level{0, 1, 1, 2, 3, 3, 2, 1, 0, 0, 1, 4, 4, 1}
	order := VisualOrder(levels)
	seen := make([]bool, len(levels))
	for _, i := range order {
		if seen[i] {
			t.Fatalf("index %d appears twice in %v", i, order)
		}
		seen[i] = true
	}
}

func TestReorderVisualRoundTrip(t *testing.T) {
	glyphs := withLevels(word(0, 1, 2, 3, 4, 5, 6), 0, 0, 1, 1, 0, 0)
	got := ReorderVisual(glyphs)

	wantStarts := []int{0, 1, 3, 2, 4, 5}
	for i, g := range got {
		if g.Start != wantStarts[i] {
			t.Errorf("visual %d has cluster %d, want %d", i, g.Start, wantStarts[i])
		}
		if g.End != g.Start+1 {
			t.Errorf("visual %d: cluster end %d changed", i, g.End)
		}
	}
	// Input untouched.
	for i := range glyphs {
		if glyphs[i].Start != i {
			t.Fatalf("input reordered in place at %d", i)
		}
	}
}

func TestReorderTracksEllipsis(t *testing.T) {
	ln := logicalLine{
		glyphs:   withLevels(word(0, 1, 1, 1), 1, 1, 1),
		ellipsis: 2,
	}
	vl := reorder(ln, 1)
	if vl.ellipsis != 0 {
		t.Errorf("ellipsis at visual %d, want 0", vl.ellipsis)
	}

	vl = reorder(logicalLine{glyphs: word(0, 1, 1), ellipsis: -1}, 0)
	if vl.ellipsis != -1 {
		t.Errorf("ellipsis = %d, want -1", vl.ellipsis)
	}
}
