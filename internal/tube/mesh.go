package tube

import (
	"github.com/chewxy/math32"

	"svgflow/internal/curves"
	"svgflow/internal/materials"
)

// Curve is what Build needs from a curve. *curves.Curve satisfies it.
type Curve interface {
	ID() string
	Length() float32
	ArcLengthDivisions() int
	SpacedPoints(divisions int) []curves.Point3D
}

// Mesh is a screen-space line strip in the MeshLine layout: two vertices per sample, one on
// each side, with the neighbours a shader needs to extrude the strip itself.
type Mesh struct {
	ID        string           `json:"id"`
	Positions []curves.Point3D `json:"positions"`
	Previous  []curves.Point3D `json:"previous"`
	Next      []curves.Point3D `json:"next"`
	Side      []float32        `json:"side"`
	Counters  []float32        `json:"counters"`
	UVs       [][2]float32     `json:"uvs"`
	Indices   []uint32         `json:"indices"`
	Width     float32          `json:"width"`
	Length    float32          `json:"length"`
	Material  materials.Config `json:"material"`

	sizeAttenuation bool
	lineWidth       float32
}

// Build samples c at Style.Resolution arc-length segments and lays a strip along the
// samples. It fails only when c has zero length.
func Build(c Curve, style Style) (*Mesh, error) {
	length := c.Length()
	if length == 0 || math32.IsNaN(length) {
		return nil, &DegenerateCurveError{ID: c.ID()}
	}
	res := style.Resolution
	if res <= 0 {
		res = c.ArcLengthDivisions()
	}
	pts := c.SpacedPoints(res)
	n := len(pts)

	m := &Mesh{
		ID:              c.ID(),
		Positions:       make([]curves.Point3D, 0, 2*n),
		Previous:        make([]curves.Point3D, 0, 2*n),
		Next:            make([]curves.Point3D, 0, 2*n),
		Side:            make([]float32, 0, 2*n),
		Counters:        make([]float32, 0, 2*n),
		UVs:             make([][2]float32, 0, 2*n),
		Indices:         make([]uint32, 0, 6*(n-1)),
		Width:           style.LineWidth / style.viewportHeight(),
		Length:          length,
		Material:        style.Material(),
		sizeAttenuation: style.SizeAttenuation,
		lineWidth:       style.LineWidth,
	}

	var travelled float32
	for i, p := range pts {
		if i > 0 {
			travelled += p.Dist(pts[i-1])
		}
		counter := travelled / length
		prev, next := pts[max(i-1, 0)], pts[min(i+1, n-1)]
		for side, s := range [2]float32{1, -1} {
			m.Positions = append(m.Positions, p)
			m.Previous = append(m.Previous, prev)
			m.Next = append(m.Next, next)
			m.Side = append(m.Side, s)
			m.Counters = append(m.Counters, counter)
			m.UVs = append(m.UVs, [2]float32{counter, float32(side)})
		}
	}
	for j := 0; j < n-1; j++ {
		k := uint32(2 * j)
		m.Indices = append(m.Indices, k, k+1, k+2, k+2, k+1, k+3)
	}
	return m, nil
}

// VertexCount is the number of strip vertices, two per sample.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// WorldWidth converts the normalized width to world units for a view viewHeight units
// tall. With size attenuation on the pixel width is used as world units directly.
func (m *Mesh) WorldWidth(viewHeight float32) float32 {
	if m.sizeAttenuation {
		return m.lineWidth
	}
	return m.Width * viewHeight
}

// Ribbon is a strip already extruded on the CPU.
type Ribbon struct {
	Vertices []curves.Point3D
	UVs      [][2]float32
	Indices  []uint32
}

// Expand extrudes the strip to worldWidth in the XY plane. Each vertex moves half the
// width along the normal of the direction from its previous to its next sample.
func (m *Mesh) Expand(worldWidth float32) Ribbon {
	r := Ribbon{
		Vertices: make([]curves.Point3D, len(m.Positions)),
		UVs:      append([][2]float32(nil), m.UVs...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	half := worldWidth / 2
	for i, p := range m.Positions {
		dx, dy := m.Next[i].X-m.Previous[i].X, m.Next[i].Y-m.Previous[i].Y
		l := math32.Hypot(dx, dy)
		if l == 0 {
			dx, dy, l = 1, 0, 1
		}
		nx, ny := -dy/l, dx/l
		s := m.Side[i] * half
		r.Vertices[i] = curves.Point3D{X: p.X + nx*s, Y: p.Y + ny*s, Z: p.Z}
	}
	return r
}
