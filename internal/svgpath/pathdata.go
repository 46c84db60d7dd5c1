package svgpath

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// CurveDivisions is the number of segments a quadratic or cubic bezier is flattened into.
	CurveDivisions = 12
	// EllipseDivisions is the number of segments a full or partial ellipse is flattened into.
	EllipseDivisions = 2 * CurveDivisions

	// cornerControl places the cubic control points of a quarter ellipse, as a fraction of
	// the radius measured from the corner's start and end points.
	cornerControl = 0.551915024494
)

// builder accumulates flattened subpaths. Consecutive duplicate points are dropped.
type builder struct {
	subpaths []Subpath
	cur      []Vec2
}

func (b *builder) moveTo(p Vec2) {
	// a lone moveto followed by another moveto draws nothing
	if len(b.cur) > 1 {
		b.subpaths = append(b.subpaths, Subpath{Points: b.cur})
	}
	b.cur = []Vec2{p}
}

func (b *builder) lineTo(p Vec2) {
	if n := len(b.cur); n > 0 && b.cur[n-1] == p {
		return
	}
	b.cur = append(b.cur, p)
}

func (b *builder) close() {
	if len(b.cur) == 0 {
		return
	}
	if len(b.cur) > 1 && b.cur[0] != b.cur[len(b.cur)-1] {
		b.cur = append(b.cur, b.cur[0])
	}
	b.subpaths = append(b.subpaths, Subpath{Points: b.cur, Closed: true})
	b.cur = nil
}

func (b *builder) finish() []Subpath {
	if len(b.cur) > 0 {
		b.subpaths = append(b.subpaths, Subpath{Points: b.cur})
		b.cur = nil
	}
	return b.subpaths
}

func (b *builder) transform(m Matrix) {
	if m == Identity {
		return
	}
	for _, sp := range b.subpaths {
		for i, p := range sp.Points {
			sp.Points[i] = m.Apply(p)
		}
	}
	for i, p := range b.cur {
		b.cur[i] = m.Apply(p)
	}
}

func (b *builder) quad(p0, c, p1 Vec2) {
	for i := 1; i <= CurveDivisions; i++ {
		t := float32(i) / CurveDivisions
		mt := 1 - t
		b.lineTo(Vec2{
			mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
			mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
		})
	}
}

func (b *builder) cubic(p0, c1, c2, p1 Vec2) {
	for i := 1; i <= CurveDivisions; i++ {
		t := float32(i) / CurveDivisions
		mt := 1 - t
		w0, w1, w2, w3 := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		b.lineTo(Vec2{
			w0*p0.X + w1*c1.X + w2*c2.X + w3*p1.X,
			w0*p0.Y + w1*c1.Y + w2*c2.Y + w3*p1.Y,
		})
	}
}

// ellipse samples an elliptical arc from angle theta over delta radians, excluding the
// start point. rot is the x-axis rotation in radians.
func (b *builder) ellipse(c Vec2, rx, ry, rot, theta, delta float32, divisions int) {
	sr, cr := math32.Sincos(rot)
	for i := 1; i <= divisions; i++ {
		a := theta + delta*float32(i)/float32(divisions)
		sa, ca := math32.Sincos(a)
		x, y := rx*ca, ry*sa
		b.lineTo(Vec2{c.X + x*cr - y*sr, c.Y + x*sr + y*cr})
	}
}

// arc converts an SVG endpoint arc to center form and samples it.
func (b *builder) arc(from Vec2, rx, ry, rotDeg float32, large, sweep bool, to Vec2) {
	if from == to {
		return
	}
	rx, ry = math32.Abs(rx), math32.Abs(ry)
	if rx == 0 || ry == 0 {
		b.lineTo(to)
		return
	}
	phi := rotDeg * math32.Pi / 180
	sp, cp := math32.Sincos(phi)
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cp*dx + sp*dy
	y1p := -sp*dx + cp*dy

	if l := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); l > 1 {
		s := math32.Sqrt(l)
		rx *= s
		ry *= s
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math32.Sqrt(math32.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	center := Vec2{
		cp*cxp - sp*cyp + (from.X+to.X)/2,
		sp*cxp + cp*cyp + (from.Y+to.Y)/2,
	}
	theta := vecAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := vecAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math32.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math32.Pi
	}
	b.ellipse(center, rx, ry, phi, theta, delta, EllipseDivisions)
	b.cur[len(b.cur)-1] = to
}

func vecAngle(ux, uy, vx, vy float32) float32 {
	return math32.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// ParsePathData flattens SVG path data ("M0 0 L10 0 ...") into subpaths.
func ParsePathData(d string) ([]Subpath, error) {
	var (
		b        builder
		sc       = newScanner([]byte(d))
		pos      Vec2
		start    Vec2
		ctrl     Vec2
		cmd      byte
		last     byte
		drawing  bool
		readPair = func(rel bool) (Vec2, error) {
			p, err := sc.pair()
			if rel {
				p.X += pos.X
				p.Y += pos.Y
			}
			return p, err
		}
	)
	for {
		sc.skipSep()
		if sc.done() {
			break
		}
		c := sc.b[sc.i]
		switch {
		case isLetter(c):
			cmd = c
			sc.i++
		case isNumStart(c):
			switch last {
			case 0:
				return nil, fmt.Errorf("path data: number before first command")
			case 'Z', 'z':
				return nil, fmt.Errorf("path data: unexpected number after %c", last)
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			default:
				cmd = last
			}
		default:
			return nil, fmt.Errorf("path data: unexpected %q at offset %d", c, sc.i)
		}
		if last == 0 && cmd != 'M' && cmd != 'm' {
			return nil, fmt.Errorf("path data: must start with moveto, got %c", cmd)
		}

		rel := cmd >= 'a' && cmd <= 'z'
		upper := cmd &^ 0x20
		if upper != 'M' && upper != 'Z' && !drawing {
			// drawing after Z resumes from the subpath start
			b.moveTo(pos)
			drawing = true
		}
		prevCtrl := ctrl
		ctrl = Vec2{}
		var err error
		switch upper {
		case 'M':
			var p Vec2
			if p, err = readPair(rel); err == nil {
				b.moveTo(p)
				pos, start, drawing = p, p, true
			}
		case 'L':
			var p Vec2
			if p, err = readPair(rel); err == nil {
				b.lineTo(p)
				pos = p
			}
		case 'H':
			var x float32
			if x, err = sc.number(); err == nil {
				if rel {
					x += pos.X
				}
				pos = Vec2{x, pos.Y}
				b.lineTo(pos)
			}
		case 'V':
			var y float32
			if y, err = sc.number(); err == nil {
				if rel {
					y += pos.Y
				}
				pos = Vec2{pos.X, y}
				b.lineTo(pos)
			}
		case 'C', 'S':
			var c1, c2, p Vec2
			if upper == 'C' {
				c1, err = readPair(rel)
			} else if l := last &^ 0x20; l == 'C' || l == 'S' {
				c1 = Vec2{2*pos.X - prevCtrl.X, 2*pos.Y - prevCtrl.Y}
			} else {
				c1 = pos
			}
			if err == nil {
				c2, err = readPair(rel)
			}
			if err == nil {
				p, err = readPair(rel)
			}
			if err == nil {
				b.cubic(pos, c1, c2, p)
				pos, ctrl = p, c2
			}
		case 'Q', 'T':
			var c, p Vec2
			if upper == 'Q' {
				c, err = readPair(rel)
			} else if l := last &^ 0x20; l == 'Q' || l == 'T' {
				c = Vec2{2*pos.X - prevCtrl.X, 2*pos.Y - prevCtrl.Y}
			} else {
				c = pos
			}
			if err == nil {
				p, err = readPair(rel)
			}
			if err == nil {
				b.quad(pos, c, p)
				pos, ctrl = p, c
			}
		case 'A':
			var rx, ry, rot float32
			var large, sweep bool
			var p Vec2
			rx, err = sc.number()
			if err == nil {
				ry, err = sc.number()
			}
			if err == nil {
				rot, err = sc.number()
			}
			if err == nil {
				large, err = sc.flag()
			}
			if err == nil {
				sweep, err = sc.flag()
			}
			if err == nil {
				p, err = readPair(rel)
			}
			if err == nil {
				b.arc(pos, rx, ry, rot, large, sweep, p)
				pos = p
			}
		case 'Z':
			b.close()
			pos, drawing = start, false
		default:
			return nil, fmt.Errorf("path data: unknown command %c", cmd)
		}
		if err != nil {
			return nil, fmt.Errorf("path data: %c: %w", cmd, err)
		}
		last = cmd
	}
	return b.finish(), nil
}
