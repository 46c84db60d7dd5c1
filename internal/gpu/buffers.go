package gpu

import (
	"svgflow/internal/curves"
	"svgflow/internal/tube"
)

// Buffers is indexed triangle geometry drawn through the batch renderer.
type Buffers struct {
	Vertices  []curves.Point3D
	Texcoords [][2]float32
	Indices   []uint32
}

// Triangles reports the triangle count.
func (b Buffers) Triangles() int { return len(b.Indices) / 3 }

// RibbonBuffers wraps an extruded tube.
func RibbonBuffers(r tube.Ribbon) Buffers {
	return Buffers{Vertices: r.Vertices, Texcoords: r.UVs, Indices: r.Indices}
}

// QuadBuffers is a w x h quad centred on the origin in the XY plane, texcoord (0,0) at
// the top left for a y-down view.
func QuadBuffers(w, h float32) Buffers {
	hw, hh := w/2, h/2
	return Buffers{
		Vertices:  []curves.Point3D{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: -hw, Y: hh}, {X: hw, Y: hh}},
		Texcoords: [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Indices:   []uint32{0, 2, 1, 1, 2, 3},
	}
}

// uniform converts a materials.Program uniform value to raylib's float layout. ok is false
// for types the renderer does not upload.
func uniform(v any) (data []float32, size int, ok bool) {
	switch x := v.(type) {
	case float32:
		return []float32{x}, 1, true
	case [2]float32:
		return x[:], 2, true
	case [3]float32:
		return x[:], 3, true
	case [4]float32:
		return x[:], 4, true
	}
	return nil, 0, false
}

// tint is the vertex color for a program: colDiffuse for the flat kinds, white otherwise
// (textured kinds tint in the shader).
func tint(p map[string]any) [4]uint8 {
	c, ok := p["colDiffuse"].([4]float32)
	if !ok {
		return [4]uint8{255, 255, 255, 255}
	}
	var out [4]uint8
	for i, f := range c {
		out[i] = uint8(min(max(f, 0), 1)*255 + 0.5)
	}
	return out
}
