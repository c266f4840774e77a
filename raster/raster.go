// Package raster rasterizes glyphs addressed by [textlayout.CacheKey] and
// draws laid-out paragraphs into images.
//
// Outlines come from golang.org/x/image/font/sfnt and are filled with
// golang.org/x/image/vector. Bitmaps are kept in a sharded LRU [Cache], so
// glyphs that quantize to the same key are rasterized once.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/fontdb"
)

// ErrUnknownFont is returned for a cache key whose font is not loaded.
var ErrUnknownFont = errors.New("raster: unknown font")

// italicSkew is the horizontal shear applied by CacheKeyFakeItalic,
// about 12 degrees.
const italicSkew = 0.2

// Bitmap is a rasterized glyph. The mask's top-left pixel is drawn at
// (origin.X+Left, origin.Y+Top) where origin is the glyph's pixel position
// on the baseline. A glyph without an outline has a nil Mask.
type Bitmap struct {
	Mask      *image.Alpha
	Left, Top int
}

// Empty reports whether the bitmap has no pixels.
func (b *Bitmap) Empty() bool {
	return b == nil || b.Mask == nil
}

// Option configures a Rasterizer.
type Option func(*config)

type config struct {
	capacity int
	mode     textlayout.SubpixelMode
}

// WithCapacity sets the number of bitmaps cached per shard.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithSubpixel sets the subpixel mode used to quantize glyph positions.
func WithSubpixel(mode textlayout.SubpixelMode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// Rasterizer turns cache keys into bitmaps. It is safe for concurrent use.
type Rasterizer struct {
	db    *fontdb.DB
	cache *Cache
	mode  textlayout.SubpixelMode

	// buffers pools sfnt.Buffer values, which are not safe for
	// concurrent use.
	buffers sync.Pool
}

// New returns a Rasterizer for fonts in db.
func New(db *fontdb.DB, opts ...Option) *Rasterizer {
	cfg := config{
		capacity: DefaultCapacity,
		mode:     textlayout.DefaultSubpixelMode,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Rasterizer{
		db:    db,
		cache: NewCache(cfg.capacity),
		mode:  cfg.mode,
		buffers: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}
}

// Mode returns the subpixel mode of the rasterizer.
func (r *Rasterizer) Mode() textlayout.SubpixelMode {
	return r.mode
}

// Stats returns the bitmap cache statistics.
func (r *Rasterizer) Stats() CacheStats {
	return r.cache.Stats()
}

// Glyph returns the bitmap for key, rasterizing it on a cache miss.
// The key must have been produced with the rasterizer's subpixel mode.
func (r *Rasterizer) Glyph(key textlayout.CacheKey) (*Bitmap, error) {
	return r.cache.GetOrCreate(key, func() (*Bitmap, error) {
		return r.rasterize(key)
	})
}

func (r *Rasterizer) rasterize(key textlayout.CacheKey) (*Bitmap, error) {
	face, err := r.db.Face(key.FontID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownFont, err)
	}
	if key.Size == 0 {
		return &Bitmap{}, nil
	}

	buf := r.buffers.Get().(*sfnt.Buffer)
	defer r.buffers.Put(buf)

	segs, err := face.Outlines.LoadGlyph(buf, sfnt.GlyphIndex(key.GlyphID), fixed.I(int(key.Size)), nil)
	if err != nil {
		return nil, fmt.Errorf("raster: glyph %d of font %d: %w", key.GlyphID, key.FontID, err)
	}
	if len(segs) == 0 {
		return &Bitmap{}, nil
	}

	tr := transform{
		dx:      textlayout.BinOffset(key.XBin, r.mode),
		dy:      textlayout.BinOffset(key.YBin, r.mode),
		hinting: font.HintingVertical,
	}
	if key.Flags.Has(textlayout.CacheKeyDisableHinting) {
		tr.hinting = font.HintingNone
	}
	if key.Flags.Has(textlayout.CacheKeyFakeItalic) {
		tr.skew = italicSkew
	}

	b := segs.Bounds()
	minX, minY, maxX, maxY := tr.bounds(b)
	left, top := int(math.Floor(float64(minX))), int(math.Floor(float64(minY)))
	w := int(math.Ceil(float64(maxX))) - left
	h := int(math.Ceil(float64(maxY))) - top
	if w <= 0 || h <= 0 {
		return &Bitmap{}, nil
	}
	tr.dx -= float32(left)
	tr.dy -= float32(top)

	rast := vector.NewRasterizer(w, h)
	rast.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(tr.apply(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			rast.LineTo(tr.apply(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := tr.apply(seg.Args[0])
			x2, y2 := tr.apply(seg.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := tr.apply(seg.Args[0])
			x2, y2 := tr.apply(seg.Args[1])
			x3, y3 := tr.apply(seg.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	rast.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if key.Flags.Has(textlayout.CacheKeyPixelFont) {
		threshold(mask)
	}

	textlayout.Logger().Debug("raster: glyph rasterized",
		"font", key.FontID, "glyph", key.GlyphID, "size", key.Size, "w", w, "h", h)
	return &Bitmap{Mask: mask, Left: left, Top: top}, nil
}

// transform maps outline points, in pixels with y down, into mask space.
// With vertical hinting every y lands on a whole pixel, so horizontal stems
// and the baseline, x-height and cap-height edges are sharp.
type transform struct {
	dx, dy  float32
	skew    float32
	hinting font.Hinting
}

func (t transform) y(v fixed.Int26_6) float32 {
	y := float32(v)/64 + t.dy
	if t.hinting != font.HintingNone {
		y = float32(math.Round(float64(y)))
	}
	return y
}

func (t transform) apply(p fixed.Point26_6) (float32, float32) {
	x := float32(p.X) / 64
	return x - float32(p.Y)/64*t.skew + t.dx, t.y(p.Y)
}

// bounds returns the transformed bounding box of an outline.
func (t transform) bounds(b fixed.Rectangle26_6) (minX, minY, maxX, maxY float32) {
	x0, y0 := float32(b.Min.X)/64, float32(b.Min.Y)/64
	x1, y1 := float32(b.Max.X)/64, float32(b.Max.Y)/64
	// y grows down, so the top of the glyph shifts right under the skew.
	minX = x0 - y1*t.skew + t.dx
	maxX = x1 - y0*t.skew + t.dx
	return minX, t.y(b.Min.Y), maxX, t.y(b.Max.Y)
}

// threshold turns anti-aliased coverage into on/off pixels.
func threshold(m *image.Alpha) {
	for i, a := range m.Pix {
		if a >= 0x80 {
			m.Pix[i] = 0xff
		} else {
			m.Pix[i] = 0
		}
	}
}

// Draw renders every glyph of p into dst, translating logical coordinates by
// (offsetX, offsetY) after scaling by scale. Glyphs with a color override use
// it; the others use c. Glyphs missing from their font are skipped with a
// warning; an unloaded font is an error.
func (r *Rasterizer) Draw(dst draw.Image, p *textlayout.Paragraph, offsetX, offsetY, scale float32, c color.Color) error {
	src := image.NewUniform(c)
	log := textlayout.Logger()

	for li := range p.Lines {
		line := &p.Lines[li]
		for gi := range line.Glyphs {
			g := &line.Glyphs[gi]
			pg := g.PhysicalMode(offsetX, offsetY, scale, r.mode)

			bm, err := r.Glyph(pg.CacheKey)
			if err != nil {
				if errors.Is(err, ErrUnknownFont) {
					return err
				}
				log.Warn("raster: skipping glyph", "glyph", g.GlyphID, "font", g.FontID, "err", err)
				continue
			}
			if bm.Empty() {
				continue
			}

			glyphSrc := image.Image(src)
			if g.Color.IsSet() {
				glyphSrc = image.NewUniform(g.Color)
			}
			origin := image.Pt(int(pg.X)+bm.Left, int(pg.Y)+bm.Top)
			rect := image.Rectangle{Min: origin, Max: origin.Add(bm.Mask.Rect.Size())}
			draw.DrawMask(dst, rect, glyphSrc, image.Point{}, bm.Mask, bm.Mask.Rect.Min, draw.Over)
		}
	}
	return nil
}
