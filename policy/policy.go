// Package policy parses textual layout policies such as
//
//	wrap=word ellipsize=end(lines(2)) align=justified dir=rtl width=240
//
// into values that configure [textlayout.Options]. Settings are separated by
// whitespace or semicolons; a later setting overrides an earlier one.
package policy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gogpu/textlayout"
)

// Sentinel errors for policy expressions.
var (
	// ErrUnknownSetting is returned for a setting name that does not exist.
	ErrUnknownSetting = errors.New("policy: unknown setting")

	// ErrInvalidValue is returned for a value a setting does not accept.
	ErrInvalidValue = errors.New("policy: invalid value")
)

var (
	policyLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[=(),;]`},
	})

	exprParser = participle.MustBuild[expression](
		participle.Lexer(policyLexer),
		participle.Elide("Whitespace"),
	)
)

// expression is the root of a policy expression.
type expression struct {
	Settings []*setting `parser:"( @@ ';'* )*"`
}

// setting is one key=value pair.
type setting struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident '='"`
	Value *value         `parser:"@@"`
}

// value is a number or an identifier with optional arguments.
type value struct {
	Number *float64 `parser:"  @Number"`
	Call   *call    `parser:"| @@"`
}

type call struct {
	Name string   `parser:"@Ident"`
	Args []*value `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
}

func (v *value) String() string {
	switch {
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.Call != nil:
		if len(v.Call.Args) == 0 {
			return v.Call.Name
		}
		args := make([]string, len(v.Call.Args))
		for i, a := range v.Call.Args {
			args[i] = a.String()
		}
		return v.Call.Name + "(" + strings.Join(args, ",") + ")"
	default:
		return ""
	}
}

// field is a bit per setting present in a Policy.
type field uint16

const (
	fieldWrap field = 1 << iota
	fieldEllipsize
	fieldAlign
	fieldDirection
	fieldWidth
	fieldHeight
	fieldLineHeight
	fieldJustifyLast
)

// Policy is a parsed policy expression. Only the settings present in the
// expression are applied.
type Policy struct {
	Wrap            textlayout.Wrap
	Ellipsize       textlayout.Ellipsize
	Align           textlayout.Align
	Direction       textlayout.Direction
	MaxWidth        float32
	AvailableHeight float32
	LineHeight      float32
	JustifyLastLine bool

	set field
}

// Parse parses a policy expression. An empty expression is valid and
// changes nothing.
func Parse(expr string) (Policy, error) {
	if strings.TrimSpace(expr) == "" {
		return Policy{}, nil
	}
	ast, err := exprParser.ParseString("", expr)
	if err != nil {
		return Policy{}, fmt.Errorf("policy: %w", err)
	}

	var p Policy
	for _, s := range ast.Settings {
		if err := p.apply(s); err != nil {
			return Policy{}, err
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Policy {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) apply(s *setting) error {
	bad := func() error {
		return fmt.Errorf("%w for %s at %s: %s", ErrInvalidValue, s.Key, s.Pos, s.Value)
	}

	switch s.Key {
	case "wrap":
		w, ok := lookup(wrapNames, s.Value)
		if !ok {
			return bad()
		}
		p.Wrap = w
		p.set |= fieldWrap
	case "ellipsize":
		e, ok := parseEllipsize(s.Value)
		if !ok {
			return bad()
		}
		p.Ellipsize = e
		p.set |= fieldEllipsize
	case "align":
		a, ok := lookup(alignNames, s.Value)
		if !ok {
			return bad()
		}
		p.Align = a
		p.set |= fieldAlign
	case "dir":
		d, ok := lookup(directionNames, s.Value)
		if !ok {
			return bad()
		}
		p.Direction = d
		p.set |= fieldDirection
	case "width", "height", "line-height":
		if s.Value.Number == nil {
			return bad()
		}
		n := float32(*s.Value.Number)
		switch s.Key {
		case "width":
			p.MaxWidth = n
			p.set |= fieldWidth
		case "height":
			p.AvailableHeight = n
			p.set |= fieldHeight
		default:
			p.LineHeight = n
			p.set |= fieldLineHeight
		}
	case "justify-last":
		b, ok := lookup(boolNames, s.Value)
		if !ok {
			return bad()
		}
		p.JustifyLastLine = b
		p.set |= fieldJustifyLast
	default:
		return fmt.Errorf("%w %q at %s", ErrUnknownSetting, s.Key, s.Pos)
	}
	return nil
}

// Apply copies the settings present in the policy into opts.
func (p Policy) Apply(opts *textlayout.Options) {
	if p.set&fieldWrap != 0 {
		opts.Wrap = p.Wrap
	}
	if p.set&fieldEllipsize != 0 {
		opts.Ellipsize = p.Ellipsize
	}
	if p.set&fieldAlign != 0 {
		opts.Align = p.Align
	}
	if p.set&fieldDirection != 0 {
		opts.Direction = p.Direction
	}
	if p.set&fieldWidth != 0 {
		opts.MaxWidth = p.MaxWidth
	}
	if p.set&fieldHeight != 0 {
		opts.AvailableHeight = p.AvailableHeight
	}
	if p.set&fieldLineHeight != 0 {
		opts.LineHeight = p.LineHeight
	}
	if p.set&fieldJustifyLast != 0 {
		opts.JustifyLastLine = p.JustifyLastLine
	}
}

// Options returns textlayout.DefaultOptions with the policy applied.
func (p Policy) Options() textlayout.Options {
	opts := textlayout.DefaultOptions()
	p.Apply(&opts)
	return opts
}

// String formats the policy as an expression that Parse accepts.
func (p Policy) String() string {
	var parts []string
	if p.set&fieldWrap != 0 {
		parts = append(parts, "wrap="+nameOf(wrapNames, p.Wrap))
	}
	if p.set&fieldEllipsize != 0 {
		parts = append(parts, "ellipsize="+formatEllipsize(p.Ellipsize))
	}
	if p.set&fieldAlign != 0 {
		parts = append(parts, "align="+nameOf(alignNames, p.Align))
	}
	if p.set&fieldDirection != 0 {
		parts = append(parts, "dir="+nameOf(directionNames, p.Direction))
	}
	if p.set&fieldWidth != 0 {
		parts = append(parts, "width="+formatNumber(p.MaxWidth))
	}
	if p.set&fieldHeight != 0 {
		parts = append(parts, "height="+formatNumber(p.AvailableHeight))
	}
	if p.set&fieldLineHeight != 0 {
		parts = append(parts, "line-height="+formatNumber(p.LineHeight))
	}
	if p.set&fieldJustifyLast != 0 {
		parts = append(parts, "justify-last="+nameOf(boolNames, p.JustifyLastLine))
	}
	return strings.Join(parts, " ")
}

type named[T comparable] struct {
	name string
	val  T
}

var (
	wrapNames = []named[textlayout.Wrap]{
		{"none", textlayout.WrapNone},
		{"glyph", textlayout.WrapGlyph},
		{"word", textlayout.WrapWord},
		{"word-or-glyph", textlayout.WrapWordOrGlyph},
	}
	alignNames = []named[textlayout.Align]{
		{"left", textlayout.AlignLeft},
		{"right", textlayout.AlignRight},
		{"center", textlayout.AlignCenter},
		{"justified", textlayout.AlignJustified},
		{"end", textlayout.AlignEnd},
	}
	directionNames = []named[textlayout.Direction]{
		{"ltr", textlayout.DirectionLTR},
		{"rtl", textlayout.DirectionRTL},
	}
	boolNames = []named[bool]{
		{"true", true},
		{"false", false},
	}
)

// lookup resolves a bare identifier value.
func lookup[T comparable](names []named[T], v *value) (T, bool) {
	var zero T
	if v.Call == nil || len(v.Call.Args) != 0 {
		return zero, false
	}
	for _, n := range names {
		if n.name == v.Call.Name {
			return n.val, true
		}
	}
	return zero, false
}

func nameOf[T comparable](names []named[T], val T) string {
	for _, n := range names {
		if n.val == val {
			return n.name
		}
	}
	return "unknown"
}

// parseEllipsize accepts none, start, middle, end and end(limit), where limit
// is default, lines(n) or height.
func parseEllipsize(v *value) (textlayout.Ellipsize, bool) {
	if v.Call == nil {
		return textlayout.Ellipsize{}, false
	}
	c := v.Call
	if len(c.Args) == 0 {
		switch c.Name {
		case "none":
			return textlayout.EllipsizeNone(), true
		case "start":
			return textlayout.EllipsizeStart(), true
		case "middle":
			return textlayout.EllipsizeMiddle(), true
		case "end":
			return textlayout.EllipsizeEnd(textlayout.LimitDefault()), true
		}
		return textlayout.Ellipsize{}, false
	}
	if c.Name != "end" || len(c.Args) != 1 {
		return textlayout.Ellipsize{}, false
	}
	limit, ok := parseLimit(c.Args[0])
	if !ok {
		return textlayout.Ellipsize{}, false
	}
	return textlayout.EllipsizeEnd(limit), true
}

func parseLimit(v *value) (textlayout.HeightLimit, bool) {
	if v.Call == nil {
		return textlayout.HeightLimit{}, false
	}
	c := v.Call
	switch {
	case c.Name == "default" && len(c.Args) == 0:
		return textlayout.LimitDefault(), true
	case c.Name == "height" && len(c.Args) == 0:
		return textlayout.LimitHeight(), true
	case c.Name == "lines" && len(c.Args) == 1:
		n := c.Args[0].Number
		if n == nil || *n != math.Trunc(*n) || *n > math.MaxUint8 {
			return textlayout.HeightLimit{}, false
		}
		return textlayout.LimitLines(uint8(*n)), true
	}
	return textlayout.HeightLimit{}, false
}

func formatEllipsize(e textlayout.Ellipsize) string {
	switch e.Mode {
	case textlayout.EllipsizeModeStart:
		return "start"
	case textlayout.EllipsizeModeMiddle:
		return "middle"
	case textlayout.EllipsizeModeEnd:
		switch e.Limit.Kind {
		case textlayout.LimitKindLines:
			return "end(lines(" + strconv.Itoa(int(e.Limit.Lines)) + "))"
		case textlayout.LimitKindHeight:
			return "end(height)"
		default:
			return "end"
		}
	default:
		return "none"
	}
}

func formatNumber(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
