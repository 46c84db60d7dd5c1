package curves

import "github.com/chewxy/math32"

// DefaultArcLengthDivisions is the sample count used to measure a curve's length.
const DefaultArcLengthDivisions = 200

// tangentDelta is the parameter step used for finite-difference tangents.
const tangentDelta = 1e-4

// Curve is an open centripetal Catmull-Rom spline. It passes through every control
// point; point i sits at parameter i/(n-1). A Curve never changes after NewCurve, so it
// is safe to share between goroutines.
type Curve struct {
	id        string
	points    []Point3D
	divisions int
	lengths   []float32
}

// NewCurve fits a curve through pts. At least two points are required; two points give a
// straight segment. divisions <= 0 selects DefaultArcLengthDivisions.
func NewCurve(id string, pts []Point3D, divisions int) (*Curve, error) {
	if len(pts) < 2 {
		return nil, &GeometryError{ID: id, Points: len(pts)}
	}
	if divisions <= 0 {
		divisions = DefaultArcLengthDivisions
	}
	c := &Curve{
		id:        id,
		points:    append([]Point3D(nil), pts...),
		divisions: divisions,
	}
	c.lengths = c.Lengths(divisions)
	return c, nil
}

// ID is the identifier of the source path.
func (c *Curve) ID() string { return c.id }

// ArcLengthDivisions is the sample count behind Length and the arc-length methods.
func (c *Curve) ArcLengthDivisions() int { return c.divisions }

// ControlPoints returns a copy of the points the curve interpolates.
func (c *Curve) ControlPoints() []Point3D {
	return append([]Point3D(nil), c.points...)
}

// Point evaluates the curve at parameter t in [0,1]; t is clamped.
func (c *Curve) Point(t float32) Point3D {
	pts := c.points
	l := len(pts)
	t = math32.Max(0, math32.Min(1, t))

	p := float32(l-1) * t
	i := int(math32.Floor(p))
	w := p - float32(i)
	if i >= l-1 {
		i, w = l-2, 1
	}

	p1, p2 := pts[i], pts[i+1]
	var p0, p3 Point3D
	if i > 0 {
		p0 = pts[i-1]
	} else {
		// extrapolate a virtual point before the first one
		p0 = p1.Sub(p2).Add(p1)
	}
	if i+2 < l {
		p3 = pts[i+2]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	// centripetal: knot spacing is the square root of chord length
	dt0 := math32.Pow(p0.DistSq(p1), 0.25)
	dt1 := math32.Pow(p1.DistSq(p2), 0.25)
	dt2 := math32.Pow(p2.DistSq(p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}
	return Point3D{
		X: segment(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: segment(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: segment(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// segment evaluates one coordinate of the non-uniform Catmull-Rom span x1..x2 at w.
func segment(x0, x1, x2, x3, dt0, dt1, dt2, w float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + w*(c1+w*(c2+w*c3))
}

// Tangent is the unit direction of travel at parameter t.
func (c *Curve) Tangent(t float32) Point3D {
	t1 := math32.Max(0, t-tangentDelta)
	t2 := math32.Min(1, t+tangentDelta)
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// Lengths returns the cumulative polyline length after each of divisions+1 evenly
// parameter-spaced samples.
func (c *Curve) Lengths(divisions int) []float32 {
	if divisions == c.divisions && c.lengths != nil {
		return append([]float32(nil), c.lengths...)
	}
	out := make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / float32(divisions))
		sum += cur.Dist(last)
		out[i] = sum
		last = cur
	}
	return out
}

// Length is the approximate arc length.
func (c *Curve) Length() float32 {
	return c.lengths[len(c.lengths)-1]
}

// UtoT maps an arc-length fraction u in [0,1] to the curve parameter t.
func (c *Curve) UtoT(u float32) float32 {
	lengths := c.lengths
	il := len(lengths)
	target := math32.Max(0, math32.Min(1, u)) * lengths[il-1]

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		switch d := lengths[i] - target; {
		case d < 0:
			low = i + 1
		case d > 0:
			high = i - 1
		default:
			return float32(i) / float32(il-1)
		}
	}
	i := high
	if i < 0 {
		return 0
	}
	if i >= il-1 {
		return 1
	}
	before := lengths[i]
	seg := lengths[i+1] - before
	if seg == 0 {
		return float32(i) / float32(il-1)
	}
	return (float32(i) + (target-before)/seg) / float32(il-1)
}

// PointAt evaluates the curve at arc-length fraction u.
func (c *Curve) PointAt(u float32) Point3D { return c.Point(c.UtoT(u)) }

// TangentAt is the unit tangent at arc-length fraction u.
func (c *Curve) TangentAt(u float32) Point3D { return c.Tangent(c.UtoT(u)) }

// Points samples divisions+1 points evenly spaced in parameter.
func (c *Curve) Points(divisions int) []Point3D {
	divisions = max(divisions, 1)
	out := make([]Point3D, divisions+1)
	for i := range out {
		out[i] = c.Point(float32(i) / float32(divisions))
	}
	return out
}

// SpacedPoints samples divisions+1 points evenly spaced by arc length.
func (c *Curve) SpacedPoints(divisions int) []Point3D {
	divisions = max(divisions, 1)
	out := make([]Point3D, divisions+1)
	for i := range out {
		out[i] = c.PointAt(float32(i) / float32(divisions))
	}
	return out
}
