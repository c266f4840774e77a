// Package shape produces [textlayout.ShapedGlyph] runs from text using
// go-text/typesetting's HarfBuzz implementation.
//
// Bidi levels come from golang.org/x/text/unicode/bidi; each directional run
// is shaped on its own and the glyphs of right-to-left runs are returned in
// logical order, which is what [textlayout.Layout] consumes.
package shape

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/fontdb"
)

// ErrNoFont is returned when the style's font is not in the database.
var ErrNoFont = errors.New("shape: font not loaded")

// Style holds the per-run attributes copied into every shaped glyph.
type Style struct {
	// Font is the font to shape with.
	Font textlayout.FontID

	// Size is the font size in logical units.
	Size float32

	// Direction is the paragraph base direction.
	Direction textlayout.Direction

	// LineHeight overrides the paragraph line height when > 0.
	LineHeight float32

	Color    textlayout.Color
	Metadata uint64
	Flags    textlayout.CacheKeyFlags

	// Language is a BCP 47 tag passed to the shaper. Defaults to "en".
	Language string
}

// Shaper shapes text with fonts from a database.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances are not, so
// they are pooled.
type Shaper struct {
	db *fontdb.DB

	pool sync.Pool

	mu       sync.RWMutex
	ellipses map[ellipsisKey]textlayout.ShapedGlyph
}

// New returns a Shaper using fonts from db.
func New(db *fontdb.DB) *Shaper {
	return &Shaper{
		db: db,
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		ellipses: make(map[ellipsisKey]textlayout.ShapedGlyph),
	}
}

// Shape shapes one paragraph of text. The result is in logical order with
// Start and End as byte offsets into text. An empty text returns no glyphs.
func (s *Shaper) Shape(text string, st Style) ([]textlayout.ShapedGlyph, error) {
	if text == "" {
		return nil, nil
	}
	if !(st.Size > 0) {
		return nil, fmt.Errorf("shape: %w", textlayout.ErrInvalidFontSize)
	}
	face, err := s.db.Face(st.Font)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
	}

	runes := []rune(text)
	offsets := byteOffsets(text, len(runes))
	runs := bidiRuns(text, len(runes), st.Direction)

	// breakAt[b] is set when a line may end at byte offset b.
	breakAt := make([]bool, len(text)+1)
	for i, ok := range breaksAfter(runes) {
		breakAt[offsets[i+1]] = ok
	}

	lang := st.Language
	if lang == "" {
		lang = "en"
	}

	// One go-text face per call: font.Face caches glyph data and is not
	// safe for concurrent use.
	gtFace := face.NewShapingFace()
	size := floatToFixed(st.Size)

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	out := make([]textlayout.ShapedGlyph, 0, len(runes))
	for _, r := range runs {
		dir := di.DirectionLTR
		if r.level.IsRTL() {
			dir = di.DirectionRTL
		}
		output := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.start,
			RunEnd:    r.end,
			Direction: dir,
			Face:      gtFace,
			Size:      size,
			Script:    detectScript(runes[r.start:r.end]),
			Language:  language.NewLanguage(lang),
		})

		ascent := fixedToFloat(output.LineBounds.Ascent)
		descent := float32(math.Abs(float64(fixedToFloat(output.LineBounds.Descent))))

		start := len(out)
		for _, g := range output.Glyphs {
			cluster := min(g.ClusterIndex, len(runes)-1)
			end := min(cluster+max(g.RuneCount, 1), len(runes))
			out = append(out, textlayout.ShapedGlyph{
				Start:      offsets[cluster],
				End:        offsets[end],
				FontID:     st.Font,
				GlyphID:    textlayout.GlyphID(g.GlyphID), //nolint:gosec // glyph indices fit in 16 bits in sfnt fonts
				Advance:    fixedToFloat(g.Advance),
				FontSize:   st.Size,
				LineHeight: st.LineHeight,
				Ascent:     ascent,
				Descent:    descent,
				Level:      r.level,
				XOffset:    fixedToFloat(g.XOffset) / st.Size,
				YOffset:    fixedToFloat(g.YOffset) / st.Size,
				Color:      st.Color,
				Metadata:   st.Metadata,
				Flags:      st.Flags,
				Blank:      unicode.IsSpace(runes[cluster]),
			})
		}
		// HarfBuzz emits right-to-left runs in visual order.
		if dir == di.DirectionRTL {
			slices.Reverse(out[start:])
		}
	}

	// Only the last glyph of a cluster may end a line.
	for i := range out {
		g := &out[i]
		if !g.Blank && breakAt[g.End] && (i+1 == len(out) || out[i+1].Start != g.Start) {
			g.BreakAfter = true
		}
	}

	textlayout.Logger().Debug("shape: text shaped",
		"font", st.Font, "size", st.Size, "runs", len(runs), "runes", len(runes), "glyphs", len(out))
	return out, nil
}

// byteOffsets returns the byte offset of every rune of text plus the end
// offset.
func byteOffsets(text string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// detectScript returns the script of the first non-space rune, the same
// heuristic the run splitting relies on.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
