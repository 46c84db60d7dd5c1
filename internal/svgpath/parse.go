package svgpath

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// hidden lists containers whose children are never drawn directly.
var hidden = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"symbol":   true,
	"pattern":  true,
	"marker":   true,
}

// frame is one open element on the parse stack.
type frame struct {
	name   string
	ctm    Matrix
	hidden bool
}

type parser struct {
	doc   *Document
	stack []frame
	seen  bool
}

// ParseBytes parses an in-memory SVG document.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Parse reads an SVG document and flattens every drawable element into a VectorPath.
// Supported elements: path, polygon, polyline, line, rect, circle, ellipse, nested in g
// groups with transform attributes. Everything else is skipped.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{doc: &Document{}}
	l := xml.NewLexer(parse.NewInput(r))

	var (
		name  string
		attrs map[string]string
		inTag bool
		inPI  bool
	)
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, &ParseError{Err: err}
			}
			if inTag {
				return nil, &ParseError{Element: name, Err: errors.New("unterminated start tag")}
			}
			if len(p.stack) > 0 {
				return nil, &ParseError{Element: p.stack[len(p.stack)-1].name, Err: errors.New("element not closed")}
			}
			if !p.seen {
				return nil, &ParseError{Err: errors.New("no <svg> element")}
			}
			return p.doc, nil
		case xml.StartTagPIToken:
			inPI = true
		case xml.StartTagClosePIToken:
			inPI = false
		case xml.StartTagToken:
			name = localName(l.Text())
			attrs = map[string]string{}
			inTag = true
		case xml.AttributeToken:
			if inPI || !inTag {
				continue
			}
			attrs[localName(l.Text())] = unquote(l.AttrVal())
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			inTag = false
			if err := p.open(name, attrs); err != nil {
				return nil, err
			}
			if tt == xml.StartTagCloseVoidToken {
				p.stack = p.stack[:len(p.stack)-1]
			}
		case xml.EndTagToken:
			end := localName(l.Text())
			if len(p.stack) == 0 || p.stack[len(p.stack)-1].name != end {
				return nil, &ParseError{Element: end, Err: errors.New("mismatched end tag")}
			}
			p.stack = p.stack[:len(p.stack)-1]
		}
	}
}

func localName(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func unquote(b []byte) string {
	if n := len(b); n >= 2 && (b[0] == '"' || b[0] == '\'') && b[n-1] == b[0] {
		b = b[1 : n-1]
	}
	return string(b)
}

// open handles a complete start tag and pushes it on the stack.
func (p *parser) open(name string, attrs map[string]string) error {
	parent := frame{ctm: Identity}
	if n := len(p.stack); n > 0 {
		parent = p.stack[n-1]
	}
	f := frame{name: name, ctm: parent.ctm, hidden: parent.hidden || hidden[name] || attrs["display"] == "none"}
	fail := func(err error) error {
		return &ParseError{Element: name, ID: attrs["id"], Err: err}
	}
	if t, ok := attrs["transform"]; ok {
		m, err := ParseTransform(t)
		if err != nil {
			return fail(err)
		}
		f.ctm = f.ctm.Mul(m)
	}
	if name == "svg" {
		m, err := p.root(attrs)
		if err != nil {
			return fail(err)
		}
		f.ctm = f.ctm.Mul(m)
	}
	p.stack = append(p.stack, f)
	if f.hidden {
		return nil
	}

	b, ok, err := shape(name, attrs)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return nil
	}
	b.transform(f.ctm)
	p.doc.Paths = append(p.doc.Paths, VectorPath{ID: attrs["id"], Element: name, Subpaths: b.finish()})
	return nil
}

// root records the outermost svg size and returns the viewBox mapping for nested content.
func (p *parser) root(attrs map[string]string) (Matrix, error) {
	w, wok, err := length(attrs["width"])
	if err != nil {
		return Identity, fmt.Errorf("width: %w", err)
	}
	h, hok, err := length(attrs["height"])
	if err != nil {
		return Identity, fmt.Errorf("height: %w", err)
	}
	var vb []float32
	if v, ok := attrs["viewBox"]; ok {
		if vb, err = numbers(v); err != nil {
			return Identity, fmt.Errorf("viewBox: %w", err)
		}
		if len(vb) != 4 {
			return Identity, fmt.Errorf("viewBox: want 4 numbers, got %d", len(vb))
		}
	}
	if !p.seen {
		p.seen = true
		if vb != nil {
			p.doc.ViewBox = [4]float32{vb[0], vb[1], vb[2], vb[3]}
			p.doc.HasViewBox = true
		}
		switch {
		case wok && hok:
			p.doc.Width, p.doc.Height = w, h
		case vb != nil:
			p.doc.Width, p.doc.Height = vb[2], vb[3]
		}
	}
	if vb == nil || !wok || !hok || vb[2] <= 0 || vb[3] <= 0 {
		return Identity, nil
	}
	return Scale(w/vb[2], h/vb[3]).Mul(Translate(-vb[0], -vb[1])), nil
}

// shape flattens one element's geometry. ok is false for elements that are not drawable.
// A drawable element without geometry (no d, no points, zero size) still yields an empty
// builder so that building its curve reports the missing points.
func shape(name string, attrs map[string]string) (*builder, bool, error) {
	num := func(key string) (float32, error) {
		v, _, err := length(attrs[key])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	b := &builder{}
	switch name {
	case "path":
		sps, err := ParsePathData(attrs["d"])
		if err != nil {
			return nil, false, err
		}
		b.subpaths = sps
		return b, true, nil

	case "polygon", "polyline":
		vals, err := numbers(attrs["points"])
		if err != nil {
			return nil, false, fmt.Errorf("points: %w", err)
		}
		if len(vals)%2 != 0 {
			return nil, false, fmt.Errorf("points: odd number of coordinates")
		}
		if len(vals) == 0 {
			return b, true, nil
		}
		b.moveTo(Vec2{vals[0], vals[1]})
		for i := 2; i < len(vals); i += 2 {
			b.lineTo(Vec2{vals[i], vals[i+1]})
		}
		if name == "polygon" {
			b.close()
		}
		return b, true, nil

	case "line":
		var v [4]float32
		for i, k := range []string{"x1", "y1", "x2", "y2"} {
			x, err := num(k)
			if err != nil {
				return nil, false, err
			}
			v[i] = x
		}
		b.moveTo(Vec2{v[0], v[1]})
		b.lineTo(Vec2{v[2], v[3]})
		return b, true, nil

	case "rect":
		var v [6]float32
		for i, k := range []string{"x", "y", "width", "height", "rx", "ry"} {
			x, err := num(k)
			if err != nil {
				return nil, false, err
			}
			v[i] = x
		}
		x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]
		if w <= 0 || h <= 0 {
			return b, true, nil
		}
		if _, ok := attrs["ry"]; !ok {
			ry = rx
		}
		if _, ok := attrs["rx"]; !ok {
			rx = ry
		}
		rx = math32.Min(math32.Abs(rx), w/2)
		ry = math32.Min(math32.Abs(ry), h/2)
		// corners are cubic quarter-ellipse approximations
		round := rx > 0 && ry > 0
		kx, ky := rx*cornerControl, ry*cornerControl
		b.moveTo(Vec2{x + rx, y})
		b.lineTo(Vec2{x + w - rx, y})
		if round {
			b.cubic(Vec2{x + w - rx, y}, Vec2{x + w - rx + kx, y}, Vec2{x + w, y + ry - ky}, Vec2{x + w, y + ry})
		}
		b.lineTo(Vec2{x + w, y + h - ry})
		if round {
			b.cubic(Vec2{x + w, y + h - ry}, Vec2{x + w, y + h - ry + ky}, Vec2{x + w - rx + kx, y + h}, Vec2{x + w - rx, y + h})
		}
		b.lineTo(Vec2{x + rx, y + h})
		if round {
			b.cubic(Vec2{x + rx, y + h}, Vec2{x + rx - kx, y + h}, Vec2{x, y + h - ry + ky}, Vec2{x, y + h - ry})
		}
		b.lineTo(Vec2{x, y + ry})
		if round {
			b.cubic(Vec2{x, y + ry}, Vec2{x, y + ry - ky}, Vec2{x + rx - kx, y}, Vec2{x + rx, y})
		}
		b.close()
		return b, true, nil

	case "circle", "ellipse":
		cx, err := num("cx")
		if err != nil {
			return nil, false, err
		}
		cy, err := num("cy")
		if err != nil {
			return nil, false, err
		}
		var rx, ry float32
		if name == "circle" {
			if rx, err = num("r"); err != nil {
				return nil, false, err
			}
			ry = rx
		} else {
			if rx, err = num("rx"); err != nil {
				return nil, false, err
			}
			if ry, err = num("ry"); err != nil {
				return nil, false, err
			}
		}
		if rx <= 0 || ry <= 0 {
			return b, true, nil
		}
		b.moveTo(Vec2{cx + rx, cy})
		b.ellipse(Vec2{cx, cy}, rx, ry, 0, 0, 2*math32.Pi, EllipseDivisions)
		b.cur[len(b.cur)-1] = b.cur[0]
		b.close()
		return b, true, nil
	}
	return nil, false, nil
}
