package svgpath

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Matrix is a 2D affine transform [a b c d e f]: x' = a*x + c*y + e, y' = b*x + d*y + f.
type Matrix [6]float32

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

func Translate(tx, ty float32) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float32) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// Rotate rotates by deg degrees around the origin.
func Rotate(deg float32) Matrix {
	s, c := math32.Sincos(deg * math32.Pi / 180)
	return Matrix{c, s, -s, c, 0, 0}
}

// Mul returns m*n: n is applied first.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ParseTransform reads an SVG transform list such as "translate(10 20) scale(2)".
// Transforms compose left to right, so the rightmost one applies to points first.
func ParseTransform(s string) (Matrix, error) {
	sc := newScanner([]byte(s))
	m := Identity
	for {
		sc.skipSep()
		if sc.done() {
			return m, nil
		}
		name := sc.ident()
		if name == "" {
			return Identity, fmt.Errorf("transform: unexpected %q", sc.rest())
		}
		sc.skipSep()
		if !sc.consume('(') {
			return Identity, fmt.Errorf("transform: missing ( after %s", name)
		}
		var args []float32
		for sc.more() {
			v, err := sc.number()
			if err != nil {
				return Identity, fmt.Errorf("transform %s: %w", name, err)
			}
			args = append(args, v)
		}
		sc.skipSep()
		if !sc.consume(')') {
			return Identity, fmt.Errorf("transform: missing ) after %s", name)
		}
		t, err := transformOf(name, args)
		if err != nil {
			return Identity, err
		}
		m = m.Mul(t)
	}
}

func transformOf(name string, a []float32) (Matrix, error) {
	argc := func(ok ...int) error {
		for _, n := range ok {
			if len(a) == n {
				return nil
			}
		}
		return fmt.Errorf("transform %s: bad argument count %d", name, len(a))
	}
	switch name {
	case "matrix":
		if err := argc(6); err != nil {
			return Identity, err
		}
		return Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}, nil
	case "translate":
		if err := argc(1, 2); err != nil {
			return Identity, err
		}
		if len(a) == 1 {
			return Translate(a[0], 0), nil
		}
		return Translate(a[0], a[1]), nil
	case "scale":
		if err := argc(1, 2); err != nil {
			return Identity, err
		}
		if len(a) == 1 {
			return Scale(a[0], a[0]), nil
		}
		return Scale(a[0], a[1]), nil
	case "rotate":
		if err := argc(1, 3); err != nil {
			return Identity, err
		}
		if len(a) == 1 {
			return Rotate(a[0]), nil
		}
		return Translate(a[1], a[2]).Mul(Rotate(a[0])).Mul(Translate(-a[1], -a[2])), nil
	case "skewX":
		if err := argc(1); err != nil {
			return Identity, err
		}
		return Matrix{1, 0, math32.Tan(a[0] * math32.Pi / 180), 1, 0, 0}, nil
	case "skewY":
		if err := argc(1); err != nil {
			return Identity, err
		}
		return Matrix{1, math32.Tan(a[0] * math32.Pi / 180), 0, 1, 0, 0}, nil
	}
	return Identity, fmt.Errorf("transform: unknown function %s", name)
}
