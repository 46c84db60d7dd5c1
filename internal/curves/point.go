package curves

import "github.com/chewxy/math32"

// Point3D is a position (or direction) in scene space.
type Point3D struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (p Point3D) Add(q Point3D) Point3D { return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

func (p Point3D) Sub(q Point3D) Point3D { return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

func (p Point3D) Scale(s float32) Point3D { return Point3D{p.X * s, p.Y * s, p.Z * s} }

// DistSq is the squared distance between p and q.
func (p Point3D) DistSq(q Point3D) float32 {
	d := p.Sub(q)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

func (p Point3D) Dist(q Point3D) float32 { return math32.Sqrt(p.DistSq(q)) }

func (p Point3D) Len() float32 { return math32.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

// Normalize returns p scaled to unit length, or the zero vector when p is zero.
func (p Point3D) Normalize() Point3D {
	l := p.Len()
	if l == 0 {
		return Point3D{}
	}
	return p.Scale(1 / l)
}
