package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/fontdb"
	"github.com/gogpu/textlayout/shape"
)

type fixture struct {
	db     *fontdb.DB
	shaper *shape.Shaper
	font   textlayout.FontID
}

func newFixture(t testing.TB) fixture {
	t.Helper()
	db := fontdb.New()
	id, err := db.Load(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to load font: %v", err)
	}
	return fixture{db: db, shaper: shape.New(db), font: id}
}

func (f fixture) layout(t testing.TB, text string, st shape.Style) *textlayout.Paragraph {
	t.Helper()
	if st.Font == 0 {
		st.Font = f.font
	}
	if st.Size == 0 {
		st.Size = 20
	}
	glyphs, err := f.shaper.Shape(text, st)
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	return textlayout.Layout(glyphs, textlayout.DefaultOptions())
}

// glyphKey returns the key of the first glyph of text at the given position.
func (f fixture) glyphKey(t *testing.T, text string, x float32, flags textlayout.CacheKeyFlags) textlayout.CacheKey {
	t.Helper()
	glyphs, err := f.shaper.Shape(text, shape.Style{Font: f.font, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	key, _, _ := textlayout.NewCacheKey(f.font, glyphs[0].GlyphID, 20, x, 0, flags, textlayout.DefaultSubpixelMode)
	return key
}

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func inked(img *image.RGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff || img.Pix[i+1] != 0xff || img.Pix[i+2] != 0xff {
			n++
		}
	}
	return n
}

func TestGlyph(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)

	bm, err := r.Glyph(f.glyphKey(t, "H", 0, 0))
	if err != nil {
		t.Fatalf("Glyph() error = %v", err)
	}
	if bm.Empty() {
		t.Fatal("bitmap of H is empty")
	}
	size := bm.Mask.Rect.Size()
	if size.X <= 0 || size.Y <= 0 || size.Y > 30 {
		t.Errorf("mask size = %v", size)
	}
	// The glyph sits on the baseline: the mask starts above it.
	if bm.Top >= 0 {
		t.Errorf("Top = %d, want negative", bm.Top)
	}
	var covered bool
	for _, a := range bm.Mask.Pix {
		if a > 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("mask has no coverage")
	}
}

func TestGlyphBlank(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)
	bm, err := r.Glyph(f.glyphKey(t, " ", 0, 0))
	if err != nil {
		t.Fatalf("Glyph(space) error = %v", err)
	}
	if !bm.Empty() {
		t.Error("space has a bitmap")
	}
}

func TestGlyphUnknownFont(t *testing.T) {
	r := New(fontdb.New())
	_, err := r.Glyph(textlayout.CacheKey{FontID: 3, GlyphID: 1, Size: 12})
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("Glyph() error = %v, want ErrUnknownFont", err)
	}
}

func TestGlyphCached(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)
	k := f.glyphKey(t, "a", 0, 0)

	first, err := r.Glyph(k)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Glyph(k)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second lookup rasterized again")
	}
	if st := r.Stats(); st.Hits != 1 || st.Misses != 1 || st.Len != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestGlyphSubpixel(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)

	whole := f.glyphKey(t, "l", 10, 0)
	half := f.glyphKey(t, "l", 10.5, 0)
	if whole == half {
		t.Fatal("subpixel positions share a key")
	}
	a, err := r.Glyph(whole)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Glyph(half)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Mask.Pix) == string(b.Mask.Pix) && a.Mask.Rect == b.Mask.Rect {
		t.Error("half-pixel offset produced an identical bitmap")
	}
}

func TestGlyphFlags(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)

	plain, err := r.Glyph(f.glyphKey(t, "I", 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	italic, err := r.Glyph(f.glyphKey(t, "I", 0, textlayout.CacheKeyFakeItalic))
	if err != nil {
		t.Fatal(err)
	}
	if italic.Mask.Rect.Dx() <= plain.Mask.Rect.Dx() {
		t.Errorf("italic width %d not wider than plain %d", italic.Mask.Rect.Dx(), plain.Mask.Rect.Dx())
	}

	pixel, err := r.Glyph(f.glyphKey(t, "o", 0, textlayout.CacheKeyPixelFont))
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range pixel.Mask.Pix {
		if a != 0 && a != 0xff {
			t.Fatalf("pixel font mask has partial coverage %d", a)
		}
	}
}

// fullRows reports whether every row of the mask has a fully covered pixel.
func fullRows(m *image.Alpha) bool {
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		full := false
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if m.AlphaAt(x, y).A == 0xff {
				full = true
				break
			}
		}
		if !full {
			return false
		}
	}
	return true
}

func TestGlyphHinting(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)
	glyphs, err := f.shaper.Shape("I", shape.Style{Font: f.font, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	id := glyphs[0].GlyphID

	softEdges := 0
	for size := float32(24); size <= 40; size++ {
		hintedKey, _, _ := textlayout.NewCacheKey(f.font, id, size, 0, 0, 0, textlayout.DefaultSubpixelMode)
		plainKey, _, _ := textlayout.NewCacheKey(f.font, id, size, 0, 0, textlayout.CacheKeyDisableHinting, textlayout.DefaultSubpixelMode)

		hinted, err := r.Glyph(hintedKey)
		if err != nil {
			t.Fatal(err)
		}
		plain, err := r.Glyph(plainKey)
		if err != nil {
			t.Fatal(err)
		}
		if hinted.Empty() || plain.Empty() {
			t.Fatalf("size %v: empty bitmap", size)
		}
		// The stem's top and bottom edges sit on pixel boundaries.
		if !fullRows(hinted.Mask) {
			t.Errorf("size %v: hinted I has a row without full coverage", size)
		}
		if !fullRows(plain.Mask) {
			softEdges++
		}
	}
	if softEdges == 0 {
		t.Error("unhinted bitmaps never differ from the grid-fitted ones")
	}
}

func TestDraw(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)
	p := f.layout(t, "Hello", shape.Style{})

	img := newCanvas(100, 40)
	if err := r.Draw(img, p, 2, 0, 1, color.Black); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if inked(img) == 0 {
		t.Fatal("Draw() left the canvas blank")
	}
	misses := r.Stats().Misses

	// A second draw at the same position hits the cache for every glyph.
	if err := r.Draw(newCanvas(100, 40), p, 2, 0, 1, color.Black); err != nil {
		t.Fatal(err)
	}
	st := r.Stats()
	if st.Misses != misses {
		t.Errorf("second draw missed %d times", st.Misses-misses)
	}
	if st.Hits == 0 {
		t.Error("second draw had no cache hits")
	}
}

func TestDrawDeterministic(t *testing.T) {
	f := newFixture(t)
	p := f.layout(t, "Wavy text", shape.Style{})

	a := newCanvas(120, 40)
	b := newCanvas(120, 40)
	if err := New(f.db).Draw(a, p, 0.3, 0, 1.5, color.Black); err != nil {
		t.Fatal(err)
	}
	if err := New(f.db, WithCapacity(1)).Draw(b, p, 0.3, 0, 1.5, color.Black); err != nil {
		t.Fatal(err)
	}
	if string(a.Pix) != string(b.Pix) {
		t.Error("identical draws produced different pixels")
	}
}

func TestDrawColorOverride(t *testing.T) {
	f := newFixture(t)
	r := New(f.db)
	p := f.layout(t, "M", shape.Style{Color: textlayout.RGBA8(255, 0, 0, 255)})

	img := newCanvas(40, 40)
	if err := r.Draw(img, p, 0, 0, 1, color.Black); err != nil {
		t.Fatal(err)
	}
	// Red over white keeps the red channel saturated at any coverage.
	var red bool
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff && img.Pix[i+1] < 0xff && img.Pix[i+1] == img.Pix[i+2] {
			red = true
			break
		}
	}
	if !red {
		t.Error("color override not used")
	}
}

func TestDrawUnknownFont(t *testing.T) {
	p := &textlayout.Paragraph{Lines: []textlayout.LayoutLine{{
		Glyphs: []textlayout.LayoutGlyph{{FontID: 9, GlyphID: 1, FontSize: 12, Y: 10}},
	}}}
	err := New(fontdb.New()).Draw(newCanvas(10, 10), p, 0, 0, 1, color.Black)
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("Draw() error = %v, want ErrUnknownFont", err)
	}
}

func TestWithSubpixel(t *testing.T) {
	r := New(fontdb.New(), WithSubpixel(textlayout.Subpixel10))
	if r.Mode() != textlayout.Subpixel10 {
		t.Errorf("Mode() = %v", r.Mode())
	}
	if New(fontdb.New()).Mode() != textlayout.DefaultSubpixelMode {
		t.Error("default mode not applied")
	}
}

func BenchmarkDraw(b *testing.B) {
	f := newFixture(b)
	r := New(f.db)
	p := f.layout(b, "The quick brown fox", shape.Style{})
	img := newCanvas(300, 40)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Draw(img, p, 0, 0, 1, color.Black)
	}
}
