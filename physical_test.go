package textlayout

import (
	"sync"
	"testing"
)

func layoutGlyph(x, y float32) LayoutGlyph {
	return LayoutGlyph{
		Start:    0,
		End:      1,
		FontID:   testFont,
		GlyphID:  5,
		FontSize: 10,
		X:        x,
		Y:        y,
		W:        6,
	}
}

func TestPhysical(t *testing.T) {
	tests := []struct {
		name         string
		glyph        LayoutGlyph
		offX, offY   float32
		scale        float32
		wantX, wantY int32
		wantXBin     uint8
		wantSize     uint16
	}{
		{"identity", layoutGlyph(12.7, 30.9), 0, 0, 1, 12, 30, 2, 10},
		{"whole pixels", layoutGlyph(12, 30), 0, 0, 1, 12, 30, 0, 10},
		{"y truncates", layoutGlyph(0, 5.9), 0, 0, 1, 0, 5, 0, 10},
		{"negative y truncates toward zero", layoutGlyph(0, -2.5), 0, 0, 1, 0, -2, 0, 10},
		{"translation", layoutGlyph(10, 10), 3.25, 4, 1, 13, 14, 1, 10},
		{"scale and translation", layoutGlyph(10.1, 10.3), 0.5, 0.7, 2, 20, 21, 2, 20},
		{"fractional size rounds", layoutGlyph(0, 0), 0, 0, 1.25, 0, 0, 0, 13},
		{"size scales", layoutGlyph(0, 0), 0, 0, 1.5, 0, 0, 0, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.glyph.Physical(tt.offX, tt.offY, tt.scale)
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("position = (%d, %d), want (%d, %d)", p.X, p.Y, tt.wantX, tt.wantY)
			}
			if p.CacheKey.XBin != tt.wantXBin {
				t.Errorf("XBin = %d, want %d", p.CacheKey.XBin, tt.wantXBin)
			}
			if p.CacheKey.YBin != 0 {
				t.Errorf("YBin = %d, want 0 for a snapped baseline", p.CacheKey.YBin)
			}
			if p.CacheKey.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", p.CacheKey.Size, tt.wantSize)
			}
			if p.CacheKey.FontID != testFont || p.CacheKey.GlyphID != 5 {
				t.Errorf("key identity = %d/%d", p.CacheKey.FontID, p.CacheKey.GlyphID)
			}
		})
	}
}

func TestPhysicalOffsets(t *testing.T) {
	g := layoutGlyph(10, 20)
	g.XOffset = 0.25
	g.YOffset = 0.5

	p := g.Physical(0, 0, 1)
	// 0.25em and 0.5em at size 10; a positive y offset moves the glyph up.
	if p.X != 12 || p.CacheKey.XBin != 2 {
		t.Errorf("x = (%d, bin %d), want (12, bin 2)", p.X, p.CacheKey.XBin)
	}
	if p.Y != 15 {
		t.Errorf("y = %d, want 15", p.Y)
	}
	if g.X != 10 || g.Y != 20 {
		t.Error("Physical mutated the glyph")
	}
}

func TestPhysicalMode(t *testing.T) {
	g := layoutGlyph(10.6, 0)
	if p := g.PhysicalMode(0, 0, 1, SubpixelNone); p.X != 11 || p.CacheKey.XBin != 0 {
		t.Errorf("SubpixelNone = (%d, bin %d), want (11, bin 0)", p.X, p.CacheKey.XBin)
	}
	if p := g.PhysicalMode(0, 0, 1, Subpixel10); p.X != 10 || p.CacheKey.XBin != 6 {
		t.Errorf("Subpixel10 = (%d, bin %d), want (10, bin 6)", p.X, p.CacheKey.XBin)
	}
	if g.Physical(0, 0, 1) != g.PhysicalMode(0, 0, 1, DefaultSubpixelMode) {
		t.Error("Physical differs from PhysicalMode with the default mode")
	}
}

func TestPhysicalCarriesFlags(t *testing.T) {
	g := layoutGlyph(1, 1)
	g.Flags = CacheKeyFakeItalic | CacheKeyDisableHinting
	if got := g.Physical(0, 0, 1).CacheKey.Flags; got != g.Flags {
		t.Errorf("Flags = %v, want %v", got, g.Flags)
	}
}

func TestPhysicalDeterministic(t *testing.T) {
	g := layoutGlyph(123.456, 78.9)
	want := g.Physical(1.5, 2.5, 1.75)

	var wg sync.WaitGroup
	errs := make(chan PhysicalGlyph, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := g.Physical(1.5, 2.5, 1.75); got != want {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("Physical = %+v, want %+v", got, want)
	}
}

func TestPhysicalNoAllocs(t *testing.T) {
	g := layoutGlyph(10.3, 20.7)
	allocs := testing.AllocsPerRun(100, func() {
		_ = g.Physical(0.5, 0.5, 2)
	})
	if allocs != 0 {
		t.Errorf("Physical allocates %v times per call", allocs)
	}
}

func BenchmarkPhysical(b *testing.B) {
	g := layoutGlyph(10.3, 20.7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Physical(0.5, 0.5, 2)
	}
}
