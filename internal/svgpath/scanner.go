package svgpath

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// scanner walks number lists as they appear in path data, points and transform attributes.
// Whitespace and commas separate values; a sign or second dot also ends a number ("10-5", ".5.5").
type scanner struct {
	b []byte
	i int
}

func newScanner(b []byte) *scanner {
	return &scanner{b: b}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNumStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (s *scanner) skipSep() {
	for s.i < len(s.b) && (isSpace(s.b[s.i]) || s.b[s.i] == ',') {
		s.i++
	}
}

func (s *scanner) done() bool {
	return s.i >= len(s.b)
}

func (s *scanner) rest() string {
	if s.done() {
		return ""
	}
	return string(s.b[s.i:])
}

// more reports whether the next value is a number.
func (s *scanner) more() bool {
	s.skipSep()
	return s.i < len(s.b) && isNumStart(s.b[s.i])
}

func (s *scanner) number() (float32, error) {
	s.skipSep()
	if s.done() {
		return 0, fmt.Errorf("expected number at end of input")
	}
	v, n := strconv.ParseFloat(s.b[s.i:])
	if n == 0 {
		return 0, fmt.Errorf("expected number at offset %d", s.i)
	}
	s.i += n
	return float32(v), nil
}

func (s *scanner) pair() (Vec2, error) {
	x, err := s.number()
	if err != nil {
		return Vec2{}, err
	}
	y, err := s.number()
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{x, y}, nil
}

// flag reads an arc flag, which may be packed without separators ("a5 5 0 11 10 10").
func (s *scanner) flag() (bool, error) {
	s.skipSep()
	if s.done() {
		return false, fmt.Errorf("expected flag at end of input")
	}
	switch s.b[s.i] {
	case '0':
		s.i++
		return false, nil
	case '1':
		s.i++
		return true, nil
	}
	return false, fmt.Errorf("expected flag at offset %d", s.i)
}

func (s *scanner) ident() string {
	start := s.i
	for s.i < len(s.b) && isLetter(s.b[s.i]) {
		s.i++
	}
	return string(s.b[start:s.i])
}

func (s *scanner) consume(c byte) bool {
	if s.i < len(s.b) && s.b[s.i] == c {
		s.i++
		return true
	}
	return false
}

// numbers reads every remaining value; used for points, viewBox and similar lists.
func numbers(attr string) ([]float32, error) {
	s := newScanner([]byte(attr))
	var out []float32
	for s.more() {
		v, err := s.number()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	s.skipSep()
	if !s.done() {
		return nil, fmt.Errorf("unexpected %q", s.rest())
	}
	return out, nil
}

// length reads a single length attribute, ignoring a trailing unit ("100px").
// Percentages are reported as not ok since they need a reference size.
func length(attr string) (float32, bool, error) {
	s := newScanner([]byte(attr))
	if !s.more() {
		return 0, false, nil
	}
	v, err := s.number()
	if err != nil {
		return 0, false, err
	}
	if s.consume('%') {
		return 0, false, nil
	}
	return v, true, nil
}
