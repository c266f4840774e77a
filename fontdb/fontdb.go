// Package fontdb is a small in-memory font database keyed by
// [textlayout.FontID].
//
// Every loaded font is parsed twice: once with go-text/typesetting for
// shaping and once with golang.org/x/image/font/sfnt for glyph outlines.
// Both parsed forms are read-only and shared by all callers.
package fontdb

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"slices"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/textlayout"
)

// Sentinel errors for the font database.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontdb: empty font data")

	// ErrUnknownFont is returned for a FontID that is not loaded.
	ErrUnknownFont = errors.New("fontdb: unknown font")
)

// Face is a loaded font.
type Face struct {
	// ID is the stable identifier of the font, derived from its bytes.
	ID textlayout.FontID

	// Family is the font family name, or the name given with WithFamily.
	Family string

	// Data is the raw font file.
	Data []byte

	// Font is the go-text font used for shaping. It is safe for concurrent
	// use; create a font.Face per goroutine with NewShapingFace.
	Font *font.Font

	// Outlines is the x/image font used for glyph outlines.
	Outlines *sfnt.Font
}

// NewShapingFace returns a go-text face for one shaping call.
// font.Face is not safe for concurrent use.
func (f *Face) NewShapingFace() *font.Face {
	return font.NewFace(f.Font)
}

// UnitsPerEm returns the design units per em of the font.
func (f *Face) UnitsPerEm() int {
	return int(f.Outlines.UnitsPerEm())
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	family string
}

// WithFamily overrides the family name read from the font.
func WithFamily(name string) LoadOption {
	return func(c *loadConfig) {
		c.family = name
	}
}

// DB is a font database. It is safe for concurrent use.
type DB struct {
	mu    sync.RWMutex
	faces map[textlayout.FontID]*Face
}

// New returns an empty database.
func New() *DB {
	return &DB{faces: make(map[textlayout.FontID]*Face)}
}

// Load parses a TTF or OTF font and returns its ID. Loading the same bytes
// twice returns the same ID without parsing again. The data slice is copied.
func (db *DB) Load(data []byte, opts ...LoadOption) (textlayout.FontID, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFontData
	}

	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	id := fontID(data)
	db.mu.RLock()
	_, ok := db.faces[id]
	db.mu.RUnlock()
	if ok {
		return id, nil
	}

	data = bytes.Clone(data)
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("fontdb: failed to parse font: %w", err)
	}
	shaping, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("fontdb: failed to parse font: %w", err)
	}

	family := cfg.family
	if family == "" {
		family = familyName(outlines)
	}

	f := &Face{
		ID:       id,
		Family:   family,
		Data:     data,
		Font:     shaping.Font,
		Outlines: outlines,
	}

	db.mu.Lock()
	if _, ok := db.faces[id]; !ok {
		db.faces[id] = f
	}
	db.mu.Unlock()

	textlayout.Logger().Debug("fontdb: font loaded", "id", id, "family", family, "bytes", len(data))
	return id, nil
}

// LoadFile loads a font from a file path.
func (db *DB) LoadFile(path string, opts ...LoadOption) (textlayout.FontID, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("fontdb: failed to read font file: %w", err)
	}
	return db.Load(data, opts...)
}

// Face returns the font with the given ID.
func (db *DB) Face(id textlayout.FontID) (*Face, error) {
	db.mu.RLock()
	f, ok := db.faces[id]
	db.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	return f, nil
}

// Remove drops a font. It reports whether the font was loaded.
func (db *DB) Remove(id textlayout.FontID) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.faces[id]
	delete(db.faces, id)
	return ok
}

// Len returns the number of loaded fonts.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.faces)
}

// IDs returns the IDs of all loaded fonts in ascending order.
func (db *DB) IDs() []textlayout.FontID {
	db.mu.RLock()
	ids := make([]textlayout.FontID, 0, len(db.faces))
	for id := range db.faces {
		ids = append(ids, id)
	}
	db.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// fontID hashes the font bytes. Zero is reserved for "no font".
func fontID(data []byte) textlayout.FontID {
	h := fnv.New64a()
	_, _ = h.Write(data)
	if id := textlayout.FontID(h.Sum64()); id != 0 {
		return id
	}
	return 1
}

// familyName reads the family name, falling back to the full name.
func familyName(f *sfnt.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
