package tube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgflow/internal/curves"
	"svgflow/internal/materials"
)

func line(t *testing.T, pts ...curves.Point3D) *curves.Curve {
	t.Helper()
	c, err := curves.NewCurve("line", pts, 0)
	require.NoError(t, err)
	return c
}

func TestWidthIsNormalizedByViewport(t *testing.T) {
	c := line(t, curves.Point3D{}, curves.Point3D{X: 10})
	for _, h := range []float32{480, 1080, 2160} {
		style := DefaultStyle()
		style.ViewportHeight = h
		m, err := Build(c, style)
		require.NoError(t, err)
		assert.InDelta(t, 80/h, m.Width, 1e-7)
		assert.InDelta(t, 80, m.WorldWidth(h), 1e-4)
	}

	style := DefaultStyle()
	style.ViewportHeight = 0
	m, err := Build(c, style)
	require.NoError(t, err)
	assert.InDelta(t, 80.0/DefaultViewportHeight, m.Width, 1e-7)

	style.SizeAttenuation = true
	m, err = Build(c, style)
	require.NoError(t, err)
	assert.Equal(t, float32(80), m.WorldWidth(500))
}

func TestStripLayout(t *testing.T) {
	c := line(t, curves.Point3D{}, curves.Point3D{X: 5, Y: 5}, curves.Point3D{X: 10})
	style := DefaultStyle()
	style.Resolution = 10
	m, err := Build(c, style)
	require.NoError(t, err)

	assert.Equal(t, 22, m.VertexCount())
	assert.Len(t, m.Previous, 22)
	assert.Len(t, m.Next, 22)
	assert.Len(t, m.UVs, 22)
	assert.Len(t, m.Indices, 60)
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, m.Indices[:6])
	assert.Equal(t, uint32(21), m.Indices[len(m.Indices)-1])

	assert.Equal(t, float32(0), m.Counters[0])
	assert.InDelta(t, 1, m.Counters[len(m.Counters)-1], 1e-4)
	for i := 2; i < len(m.Counters); i += 2 {
		assert.Greater(t, m.Counters[i], m.Counters[i-2])
	}
	for i := 0; i < m.VertexCount(); i += 2 {
		assert.Equal(t, float32(1), m.Side[i])
		assert.Equal(t, float32(-1), m.Side[i+1])
		assert.Equal(t, float32(0), m.UVs[i][1])
		assert.Equal(t, float32(1), m.UVs[i+1][1])
		assert.Equal(t, m.Positions[i], m.Positions[i+1])
	}
	assert.Equal(t, m.Positions[0], m.Previous[0])
	assert.Equal(t, m.Positions[len(m.Positions)-1], m.Next[len(m.Next)-1])
	assert.Equal(t, "stroke", m.Material.Map)
	assert.Equal(t, materials.Line, m.Material.Kind)
}

func TestDefaultResolutionFollowsCurve(t *testing.T) {
	c := line(t, curves.Point3D{}, curves.Point3D{X: 10})
	m, err := Build(c, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, 2*(c.ArcLengthDivisions()+1), m.VertexCount())
}

func TestZeroLengthCurve(t *testing.T) {
	p := curves.Point3D{X: 3, Y: 3}
	c := line(t, p, p, p)
	_, err := Build(c, DefaultStyle())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateCurve)
	var de *DegenerateCurveError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "line", de.ID)
}

func TestExpand(t *testing.T) {
	c := line(t, curves.Point3D{}, curves.Point3D{X: 10})
	style := DefaultStyle()
	style.Resolution = 4
	m, err := Build(c, style)
	require.NoError(t, err)

	r := m.Expand(2)
	require.Len(t, r.Vertices, m.VertexCount())
	assert.Equal(t, m.Indices, r.Indices)
	for i, v := range r.Vertices {
		assert.InDelta(t, m.Positions[i].X, v.X, 1e-4)
		assert.InDelta(t, m.Side[i], v.Y, 1e-4)
	}

	r.Indices[0] = 99
	assert.Equal(t, uint32(0), m.Indices[0])
}

func TestMergeStyle(t *testing.T) {
	base := DefaultStyle()
	got, err := base.Merge(Style{LineWidth: 20, Color: materials.Color{R: 1}, SizeAttenuation: true})
	require.NoError(t, err)
	assert.Equal(t, float32(20), got.LineWidth)
	assert.Equal(t, float32(0.5), got.Opacity)
	assert.Equal(t, "stroke", got.Texture)
	assert.Equal(t, materials.Color{R: 1}, got.Color)
	assert.True(t, got.SizeAttenuation)
	assert.Equal(t, [2]float32{1, 1}, got.Repeat)

	same, err := base.Merge(Style{})
	require.NoError(t, err)
	assert.Equal(t, base, same)

	_, err = materials.Build(got.Material())
	assert.NoError(t, err)
}
