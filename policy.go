package textlayout

import "fmt"

// Wrap specifies how a paragraph is broken into lines.
type Wrap uint8

const (
	// WrapNone keeps the paragraph on one line; it may exceed MaxWidth.
	WrapNone Wrap = iota

	// WrapGlyph breaks between any two glyphs.
	WrapGlyph

	// WrapWord breaks at word boundaries only.
	// Words longer than MaxWidth overflow.
	WrapWord

	// WrapWordOrGlyph breaks at word boundaries and falls back to glyph
	// breaks for words that do not fit on a line of their own.
	WrapWordOrGlyph
)

// String returns the string representation of the wrap mode.
func (w Wrap) String() string {
	switch w {
	case WrapNone:
		return "None"
	case WrapGlyph:
		return "Glyph"
	case WrapWord:
		return "Word"
	case WrapWordOrGlyph:
		return "WordOrGlyph"
	default:
		return unknownStr
	}
}

// HeightLimitKind selects how a [HeightLimit] is resolved.
type HeightLimitKind uint8

const (
	// LimitKindDefault allows a single line.
	LimitKindDefault HeightLimitKind = iota
	// LimitKindLines allows a fixed number of lines.
	LimitKindLines
	// LimitKindHeight allows as many lines as fit the available height.
	LimitKindHeight
)

// HeightLimit is the maximum number of lines kept before ellipsizing.
// The zero value is the default single-line limit.
type HeightLimit struct {
	Kind  HeightLimitKind
	Lines uint8
}

// LimitDefault returns the single-line limit.
func LimitDefault() HeightLimit {
	return HeightLimit{Kind: LimitKindDefault}
}

// LimitLines returns a limit of n lines. LimitLines(0) and LimitLines(1)
// both keep a single line.
func LimitLines(n uint8) HeightLimit {
	return HeightLimit{Kind: LimitKindLines, Lines: n}
}

// LimitHeight returns a limit that keeps the lines fitting in
// [Options.AvailableHeight].
func LimitHeight() HeightLimit {
	return HeightLimit{Kind: LimitKindHeight}
}

// String returns the string representation of the limit.
func (h HeightLimit) String() string {
	switch h.Kind {
	case LimitKindDefault:
		return "Default"
	case LimitKindLines:
		return fmt.Sprintf("Lines(%d)", h.Lines)
	case LimitKindHeight:
		return "Height"
	default:
		return unknownStr
	}
}

// EllipsizeMode selects where truncated content is replaced by an ellipsis.
type EllipsizeMode uint8

const (
	// EllipsizeModeNone never truncates.
	EllipsizeModeNone EllipsizeMode = iota
	// EllipsizeModeStart truncates to one line with the ellipsis first.
	EllipsizeModeStart
	// EllipsizeModeMiddle truncates to one line with the ellipsis inside.
	EllipsizeModeMiddle
	// EllipsizeModeEnd truncates to a HeightLimit with the ellipsis last.
	EllipsizeModeEnd
)

// Ellipsize is the truncation policy. Start and End follow the paragraph's
// logical order. The zero value disables truncation.
type Ellipsize struct {
	Mode EllipsizeMode

	// Limit is used by EllipsizeModeEnd only.
	Limit HeightLimit
}

// EllipsizeNone disables truncation.
func EllipsizeNone() Ellipsize {
	return Ellipsize{}
}

// EllipsizeStart truncates to a single line, dropping content at the start.
func EllipsizeStart() Ellipsize {
	return Ellipsize{Mode: EllipsizeModeStart}
}

// EllipsizeMiddle truncates to a single line, dropping content in the middle.
func EllipsizeMiddle() Ellipsize {
	return Ellipsize{Mode: EllipsizeModeMiddle}
}

// EllipsizeEnd truncates to limit, dropping content at the end.
func EllipsizeEnd(limit HeightLimit) Ellipsize {
	return Ellipsize{Mode: EllipsizeModeEnd, Limit: limit}
}

// String returns the string representation of the policy.
func (e Ellipsize) String() string {
	switch e.Mode {
	case EllipsizeModeNone:
		return "None"
	case EllipsizeModeStart:
		return "Start"
	case EllipsizeModeMiddle:
		return "Middle"
	case EllipsizeModeEnd:
		return "End(" + e.Limit.String() + ")"
	default:
		return unknownStr
	}
}

// Align specifies horizontal alignment within the layout width.
type Align uint8

const (
	// AlignLeft aligns lines to the left edge (default).
	AlignLeft Align = iota
	// AlignRight aligns lines to the right edge.
	AlignRight
	// AlignCenter centers lines.
	AlignCenter
	// AlignJustified stretches inter-word gaps to fill the width.
	AlignJustified
	// AlignEnd aligns to the end edge of the paragraph direction.
	AlignEnd
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	case AlignJustified:
		return "Justified"
	case AlignEnd:
		return "End"
	default:
		return unknownStr
	}
}
