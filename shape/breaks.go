package shape

// breakClass is a simplified UAX #14 line breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	// breakSpace breaks after; the layout treats these as blanks.
	breakSpace
	// breakZero is a zero-width space: break after.
	breakZero
	// breakOpen is opening punctuation: no break after.
	breakOpen
	// breakClose is closing punctuation: no break before.
	breakClose
	// breakHyphen breaks after, except before another hyphen.
	breakHyphen
	// breakIdeographic breaks before and after.
	breakIdeographic
)

func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '\u200B':
		return breakZero
	case '(', '[', '{', '\u201C', '\u2018', '\u300C', '\uFF08':
		return breakOpen
	case ')', ']', '}', '\u201D', '\u2019', '\u300D', '\uFF09',
		'.', ',', '!', '?', ':', ';', '\u3001', '\u3002', '\uFF0C', '\uFF01', '\uFF1F':
		return breakClose
	case '-', '\u2010', '\u2013', '\u2014':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isCJKRune reports whether r is an ideograph, kana or hangul syllable.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) // Hangul Syllables
}

// breaksAfter reports, for every rune, whether a line may end after it at a
// visible character. Spaces are left to the blank handling of the layout.
func breaksAfter(runes []rune) []bool {
	out := make([]bool, len(runes))
	if len(runes) < 2 {
		return out
	}
	classes := make([]breakClass, len(runes))
	for i, r := range runes {
		classes[i] = classifyRune(r)
	}
	for i := 0; i < len(runes)-1; i++ {
		out[i] = canBreak(classes[i], classes[i+1])
	}
	return out
}

// canBreak decides the opportunity between a rune of class prev and the
// following rune of class next.
func canBreak(prev, next breakClass) bool {
	switch {
	case prev == breakSpace, next == breakSpace:
		return false
	case next == breakClose, prev == breakOpen:
		return false
	case prev == breakZero:
		return true
	case prev == breakHyphen:
		return next != breakHyphen
	case prev == breakIdeographic, next == breakIdeographic:
		return true
	}
	return false
}
