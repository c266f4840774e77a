// Command textlayout lays out a string, prints the resulting lines and
// renders them to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/fontdb"
	"github.com/gogpu/textlayout/policy"
	"github.com/gogpu/textlayout/raster"
	"github.com/gogpu/textlayout/shape"
)

const margin = 8

type config struct {
	text     string
	fontPath string
	size     float32
	width    float32
	height   float32
	policy   string
	scale    float32
	subpixel int
	out      string
}

func main() {
	var (
		text     = flag.String("text", "The quick brown fox jumps over the lazy dog.", "text to lay out")
		fontPath = flag.String("font", "", "font file (default Go Regular)")
		size     = flag.Float64("size", 16, "font size")
		width    = flag.Float64("width", 240, "maximum line width, <= 0 for unbounded")
		height   = flag.Float64("height", 0, "available height for ellipsize=end(height)")
		pol      = flag.String("policy", "", "policy expression, e.g. 'wrap=word ellipsize=end(lines(2)) align=justified'")
		scale    = flag.Float64("scale", 1, "render scale")
		subpixel = flag.Int("subpixel", int(textlayout.DefaultSubpixelMode), "subpixel positions: 0, 4 or 10")
		out      = flag.String("out", "", "output PNG file")
		verbose  = flag.Bool("v", false, "log layout diagnostics")
	)
	flag.Parse()

	if *verbose {
		textlayout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{
		text:     *text,
		fontPath: *fontPath,
		size:     float32(*size),
		width:    float32(*width),
		height:   float32(*height),
		policy:   *pol,
		scale:    float32(*scale),
		subpixel: *subpixel,
		out:      *out,
	}
	p, err := run(cfg)
	if err != nil {
		log.Fatalf("textlayout: %v", err)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(lineRows(cfg.text, p)).Render(); err != nil {
		log.Printf("Failed to print line table: %v", err)
	}
	pterm.Printf("%d lines, %.1fx%.1f, truncated=%v\n", len(p.Lines), p.Width, p.Height, p.Truncated)
	if cfg.out != "" {
		pterm.Printf("Rendered to %s\n", cfg.out)
	}
}

// run lays out cfg.text and, when cfg.out is set, renders it to a PNG.
func run(cfg config) (*textlayout.Paragraph, error) {
	pol, err := policy.Parse(cfg.policy)
	if err != nil {
		return nil, err
	}

	db := fontdb.New()
	var id textlayout.FontID
	if cfg.fontPath != "" {
		id, err = db.LoadFile(cfg.fontPath)
	} else {
		id, err = db.Load(goregular.TTF, fontdb.WithFamily("Go"))
	}
	if err != nil {
		return nil, err
	}

	opts := textlayout.DefaultOptions()
	opts.MaxWidth = cfg.width
	opts.AvailableHeight = cfg.height
	pol.Apply(&opts)

	shaper := shape.New(db)
	style := shape.Style{Font: id, Size: cfg.size, Direction: opts.Direction}
	glyphs, err := shaper.Shape(cfg.text, style)
	if err != nil {
		return nil, err
	}
	opts.Ellipsis = shaper.EllipsisFunc(style)

	p := textlayout.Layout(glyphs, opts)
	if cfg.out == "" {
		return p, nil
	}

	if err := render(db, p, opts, cfg); err != nil {
		return nil, err
	}
	return p, nil
}

func render(db *fontdb.DB, p *textlayout.Paragraph, opts textlayout.Options, cfg config) error {
	scale := cfg.scale
	if scale <= 0 {
		scale = 1
	}
	w := p.Width
	if opts.MaxWidth > 0 {
		w = opts.MaxWidth
	}
	iw := int(math.Ceil(float64(w*scale))) + 2*margin
	ih := int(math.Ceil(float64(p.Height*scale))) + 2*margin

	img := image.NewRGBA(image.Rect(0, 0, iw, ih))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := raster.New(db, raster.WithSubpixel(textlayout.SubpixelMode(cfg.subpixel)))
	if err := r.Draw(img, p, margin, margin, scale, color.Black); err != nil {
		return err
	}

	f, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", cfg.out, err)
	}
	return f.Close()
}
