package curves

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgflow/internal/svgpath"
)

const scenario = `<svg width="100" height="100">
  <path id="path1" d="M0 0 L10 0 L10 10"/>
  <path id="path2" d="M0 0 L0 10"/>
</svg>`

func parse(t *testing.T, src string) []svgpath.VectorPath {
	t.Helper()
	doc, err := svgpath.ParseBytes([]byte(src))
	require.NoError(t, err)
	return doc.Paths
}

func assertNear(t *testing.T, want, got Point3D, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta)
	assert.InDelta(t, want.Y, got.Y, delta)
	assert.InDelta(t, want.Z, got.Z, delta)
}

func TestBuildScenario(t *testing.T) {
	c, err := Build(parse(t, scenario), Options{})
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, []string{"path1", "path2"}, c.IDs())

	assert.InDelta(t, 20, c["path1"].Length(), 1.0)
	assert.InDelta(t, 10, c["path2"].Length(), 1e-3)
	assert.Equal(t, "path1", c["path1"].ID())
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := []Point3D{{0, 0, 0}, {3, 7, 0}, {4, 1, 2}, {12, 12, 1}, {13, 0, 0}}
	c, err := NewCurve("p", pts, 0)
	require.NoError(t, err)
	n := len(pts)
	for i, p := range pts {
		assertNear(t, p, c.Point(float32(i)/float32(n-1)), 1e-3)
	}
	assertNear(t, pts[0], c.Point(-1), 1e-6)
	assertNear(t, pts[n-1], c.Point(2), 1e-3)
}

func TestTwoPointCurveIsLinear(t *testing.T) {
	c, err := NewCurve("line", []Point3D{{0, 0, 0}, {10, 0, 0}}, 0)
	require.NoError(t, err)
	for _, tt := range []float32{0.1, 0.25, 0.5, 0.9} {
		p := c.Point(tt)
		assert.InDelta(t, 10*tt, p.X, 1e-3)
		assert.InDelta(t, 0, p.Y, 1e-6)
	}
	assertNear(t, Point3D{X: 1}, c.Tangent(0.5), 1e-3)
}

func TestCoincidentPointsStayFinite(t *testing.T) {
	c, err := NewCurve("dup", []Point3D{{0, 0, 0}, {0, 0, 0}, {10, 0, 0}}, 0)
	require.NoError(t, err)
	for _, p := range c.Points(64) {
		assert.False(t, math32.IsNaN(p.X) || math32.IsNaN(p.Y) || math32.IsNaN(p.Z))
	}
	assert.InDelta(t, 10, c.Length(), 0.5)
}

func TestArcLengthSampling(t *testing.T) {
	c, err := NewCurve("p", []Point3D{{0, 0, 0}, {1, 0, 0}, {10, 0, 0}}, 0)
	require.NoError(t, err)
	pts := c.SpacedPoints(10)
	require.Len(t, pts, 11)
	for i := 1; i < len(pts); i++ {
		assert.InDelta(t, c.Length()/10, pts[i].Dist(pts[i-1]), 0.05)
	}
	assertNear(t, Point3D{}, c.PointAt(0), 1e-6)
	assertNear(t, Point3D{X: 10}, c.PointAt(1), 1e-3)
	assert.Len(t, c.Points(5), 6)
	assert.Len(t, c.Lengths(20), 21)
	assert.Equal(t, DefaultArcLengthDivisions, c.ArcLengthDivisions())
	assert.InDelta(t, 0, c.UtoT(0), 1e-6)
	assert.InDelta(t, 1, c.UtoT(1), 1e-6)
}

func TestEditPointDepthByIndex(t *testing.T) {
	var order []int
	record := func(p Point3D, index int, shape []Point3D, id string) Point3D {
		order = append(order, index)
		assert.Len(t, shape, 3)
		return p
	}
	c, err := Build(parse(t, `<svg><path id="a" d="M0 0 L10 0 L10 10"/></svg>`), Options{
		EditPoint: Chain(record, DepthByIndex(0.01)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)

	cps := c["a"].ControlPoints()
	for i, p := range cps {
		assert.InDelta(t, 0.01*float64(i), p.Z, 1e-6)
		if i > 0 {
			assert.Greater(t, p.Z, cps[i-1].Z)
		}
	}
}

func TestEditPointShapeIsPrivate(t *testing.T) {
	hook := func(p Point3D, index int, shape []Point3D, id string) Point3D {
		shape[len(shape)-1] = Point3D{X: 999}
		return p
	}
	c, err := Build(parse(t, scenario), Options{EditPoint: hook})
	require.NoError(t, err)
	cps := c["path1"].ControlPoints()
	assert.Equal(t, Point3D{X: 10, Y: 10}, cps[2])
}

func TestBuildIsDeterministic(t *testing.T) {
	opts := Options{EditPoint: DepthByIndex(0.5)}
	a, err := Build(parse(t, scenario), opts)
	require.NoError(t, err)
	b, err := Build(parse(t, scenario), opts)
	require.NoError(t, err)
	for _, id := range a.IDs() {
		assert.Equal(t, a[id].ControlPoints(), b[id].ControlPoints())
		assert.Equal(t, a[id].Points(50), b[id].Points(50))
	}
}

func TestBuildGeometryErrors(t *testing.T) {
	_, err := Build(parse(t, `<svg><path id="ok" d="M0 0 L1 1"/><path id="dot" d="M5 5"/></svg>`), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeometry)
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "dot", ge.ID)
	assert.Equal(t, 1, ge.Points)

	for src, id := range map[string]string{
		`<svg><path id="a" d="M0 0 L1 1"/><path id="empty" d=""/></svg>`: "empty",
		`<svg><path id="nod"/></svg>`:                                    "nod",
		`<svg><polygon id="poly" points=""/></svg>`:                      "poly",
		`<svg><circle id="c" r="0"/></svg>`:                              "c",
	} {
		col, err := Build(parse(t, src), Options{})
		assert.Nil(t, col, id)
		require.ErrorAs(t, err, &ge, id)
		assert.Equal(t, id, ge.ID)
		assert.Equal(t, 0, ge.Points)
	}

	_, err = NewCurve("empty", nil, 0)
	assert.ErrorIs(t, err, ErrGeometry)
}

func TestBuildDuplicateIDsLastWins(t *testing.T) {
	paths := parse(t, `<svg>
  <path id="p" d="M0 0 L1 0"/>
  <path id="q" d="M0 0 L2 0"/>
  <path id="p" d="M0 0 L5 0"/>
</svg>`)
	c, err := Build(paths, Options{})
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.InDelta(t, 5, c["p"].Length(), 1e-3)
	assert.Equal(t, []string{"p"}, Duplicates(paths))
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paths.svg")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0644))

	c, doc, err := LoadPaths(context.Background(), path, Options{EditPoint: DepthByIndex(0.01)})
	require.NoError(t, err)
	assert.Len(t, c, 2)
	assert.Equal(t, float32(100), doc.Width)

	_, _, err = LoadPaths(context.Background(), filepath.Join(dir, "missing.svg"), Options{})
	assert.ErrorIs(t, err, svgpath.ErrParse)

	bad := filepath.Join(dir, "bad.svg")
	require.NoError(t, os.WriteFile(bad, []byte("<svg><g></svg>"), 0644))
	_, _, err = LoadPaths(context.Background(), bad, Options{})
	assert.ErrorIs(t, err, svgpath.ErrParse)
}
