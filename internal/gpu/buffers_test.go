package gpu

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgflow/internal/curves"
	"svgflow/internal/tube"
)

func TestRibbonBuffers(t *testing.T) {
	c, err := curves.NewCurve("p", []curves.Point3D{{}, {X: 10}}, 0)
	require.NoError(t, err)
	style := tube.DefaultStyle()
	style.Resolution = 3
	m, err := tube.Build(c, style)
	require.NoError(t, err)

	b := RibbonBuffers(m.Expand(4))
	assert.Len(t, b.Vertices, 8)
	assert.Len(t, b.Texcoords, 8)
	assert.Equal(t, 6, b.Triangles())
	for _, i := range b.Indices {
		assert.Less(t, int(i), len(b.Vertices))
	}
}

func TestQuadBuffers(t *testing.T) {
	b := QuadBuffers(50, 200)
	require.Len(t, b.Vertices, 4)
	assert.Equal(t, 2, b.Triangles())
	assert.Equal(t, curves.Point3D{X: -25, Y: -100}, b.Vertices[0])
	assert.Equal(t, curves.Point3D{X: 25, Y: 100}, b.Vertices[3])
	assert.Equal(t, [2]float32{0, 0}, b.Texcoords[0])
	assert.Equal(t, [2]float32{1, 1}, b.Texcoords[3])
}

func TestUniformLayout(t *testing.T) {
	cases := []struct {
		in   any
		size int
		ok   bool
	}{
		{float32(0.5), 1, true},
		{[2]float32{1, 1}, 2, true},
		{[3]float32{1, 0, 0}, 3, true},
		{[4]float32{1, 1, 1, 0.5}, 4, true},
		{"texture", 0, false},
		{0.5, 0, false},
	}
	for _, tc := range cases {
		data, size, ok := uniform(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.size, size, "%v", tc.in)
		assert.Len(t, data, tc.size)
	}
}

func TestTint(t *testing.T) {
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, tint(nil))
	assert.Equal(t, [4]uint8{255, 0, 0, 128}, tint(map[string]any{"colDiffuse": [4]float32{1, 0, 0, 0.5}}))
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, tint(map[string]any{"colDiffuse": [4]float32{2, -1, 0, 1}}))
}

func TestDrawWithoutMaterialIsNoop(t *testing.T) {
	var c Cache
	assert.NotPanics(t, func() {
		c.Draw(QuadBuffers(2, 2), nil, rl.Vector3{}, 0)
	})
}
