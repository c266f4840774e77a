package textlayout

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Validate.
var (
	// ErrEmptyCluster is returned for a glyph whose cluster has Start >= End.
	ErrEmptyCluster = errors.New("textlayout: empty or inverted cluster")

	// ErrInvalidFont is returned for a glyph with a zero FontID.
	ErrInvalidFont = errors.New("textlayout: zero font id")

	// ErrInvalidFontSize is returned for a glyph with FontSize <= 0.
	ErrInvalidFontSize = errors.New("textlayout: font size must be positive")
)

// GlyphError reports an input-contract violation at a glyph index.
type GlyphError struct {
	Index int
	Err   error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("%v (glyph %d)", e.Err, e.Index)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}

// Validate checks the input contract of [Layout]: non-empty clusters, a
// non-zero font and a positive font size for every glyph. It returns the
// first violation as a *GlyphError.
//
// Layout itself does not validate; a violation is a caller bug.
func Validate(glyphs []ShapedGlyph) error {
	for i := range glyphs {
		g := &glyphs[i]
		switch {
		case g.Start >= g.End:
			return &GlyphError{Index: i, Err: ErrEmptyCluster}
		case g.FontID == 0:
			return &GlyphError{Index: i, Err: ErrInvalidFont}
		case !(g.FontSize > 0):
			return &GlyphError{Index: i, Err: ErrInvalidFontSize}
		}
	}
	return nil
}
