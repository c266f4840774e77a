package textlayout

import "math"

// CacheKey identifies a rasterized glyph bitmap: one outline, at one pixel
// size, at one subpixel position, with one set of rendering flags.
// Positions that quantize to the same bucket share a key.
//
// CacheKey is comparable and can be used directly as a map key.
type CacheKey struct {
	FontID  FontID
	GlyphID GlyphID

	// Size is the rendered font size in whole pixels.
	Size uint16

	// XBin and YBin are the subpixel buckets of the position.
	XBin, YBin uint8

	Flags CacheKeyFlags
}

// NewCacheKey builds the cache key for a glyph drawn at (x, y) in pixels and
// returns the integer pixel position the bitmap must be drawn at.
func NewCacheKey(font FontID, glyph GlyphID, fontSize, x, y float32, flags CacheKeyFlags, mode SubpixelMode) (key CacheKey, px, py int32) {
	px, xBin := Quantize(x, mode)
	py, yBin := Quantize(y, mode)
	return CacheKey{
		FontID:  font,
		GlyphID: glyph,
		Size:    pixelSize(fontSize),
		XBin:    xBin,
		YBin:    yBin,
		Flags:   flags,
	}, px, py
}

// pixelSize rounds a font size to whole pixels, clamped to the key range.
func pixelSize(size float32) uint16 {
	r := math.Round(float64(size))
	switch {
	case !(r > 0):
		return 0
	case r > math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(r)
	}
}

// FNV-1a parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns an FNV-1a hash of the key. It does not allocate.
func (k CacheKey) Hash() uint64 {
	h := uint64(fnvOffset64)
	h = fnvMix(h, uint64(k.FontID), 8)
	h = fnvMix(h, uint64(k.GlyphID), 2)
	h = fnvMix(h, uint64(k.Size), 2)
	h = fnvMix(h, uint64(k.XBin), 1)
	h = fnvMix(h, uint64(k.YBin), 1)
	h = fnvMix(h, uint64(k.Flags), 4)
	return h
}

// fnvMix feeds the low n bytes of v into h.
func fnvMix(h, v uint64, n int) uint64 {
	for i := 0; i < n; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}
