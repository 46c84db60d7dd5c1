package curves

import (
	"context"
	"sort"

	"svgflow/internal/fetch"
	"svgflow/internal/svgpath"
)

// EditPoint adjusts one extracted point before the curve is fitted. index is the point's
// position in its path, shape holds every unedited point of that path (a copy private to
// the build, so writes to it never reach the curve) and id is the path identifier.
// Build calls it once per point in strictly increasing index order, path by path, on
// the calling goroutine.
type EditPoint func(p Point3D, index int, shape []Point3D, id string) Point3D

// Identity leaves the point unchanged.
func Identity(p Point3D, _ int, _ []Point3D, _ string) Point3D { return p }

// DepthByIndex sets z = index*step, stacking later points of a path in front of earlier ones.
func DepthByIndex(step float32) EditPoint {
	return func(p Point3D, index int, _ []Point3D, _ string) Point3D {
		p.Z = float32(index) * step
		return p
	}
}

// Chain applies hooks left to right.
func Chain(hooks ...EditPoint) EditPoint {
	return func(p Point3D, index int, shape []Point3D, id string) Point3D {
		for _, h := range hooks {
			if h != nil {
				p = h(p, index, shape, id)
			}
		}
		return p
	}
}

// Options configure Build. The zero value uses the identity hook and the default arc
// length resolution.
type Options struct {
	EditPoint          EditPoint
	ArcLengthDivisions int
}

// Collection maps a path id to its curve.
type Collection map[string]*Curve

// IDs returns the keys in sorted order.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build fits one curve per path. Only the outline of each path's first shape is used;
// holes and further shapes are ignored. When two paths share an id the later one wins,
// which lets an author override a path by redefining it further down the document.
// Any path with fewer than two points aborts the whole build with a GeometryError.
func Build(paths []svgpath.VectorPath, opts Options) (Collection, error) {
	edit := opts.EditPoint
	if edit == nil {
		edit = Identity
	}
	out := make(Collection, len(paths))
	for _, p := range paths {
		outline := p.FirstOutline()
		shape := make([]Point3D, len(outline))
		for i, v := range outline {
			shape[i] = Point3D{X: v.X, Y: v.Y}
		}
		if len(shape) < 2 {
			return nil, &GeometryError{ID: p.ID, Points: len(shape)}
		}
		pts := make([]Point3D, len(shape))
		view := append([]Point3D(nil), shape...)
		for i := range shape {
			pts[i] = edit(shape[i], i, view, p.ID)
		}
		c, err := NewCurve(p.ID, pts, opts.ArcLengthDivisions)
		if err != nil {
			return nil, err
		}
		out[p.ID] = c
	}
	return out, nil
}

// Duplicates lists ids that occur more than once, in first-seen order.
func Duplicates(paths []svgpath.VectorPath) []string {
	seen := make(map[string]int, len(paths))
	var dups []string
	for _, p := range paths {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			dups = append(dups, p.ID)
		}
	}
	return dups
}

// LoadPaths fetches an SVG from src (URL or file path), parses it and builds its curves.
// Fetch and parse failures are reported as *svgpath.ParseError.
func LoadPaths(ctx context.Context, src string, opts Options) (Collection, *svgpath.Document, error) {
	data, err := fetch.Get(ctx, src)
	if err != nil {
		return nil, nil, &svgpath.ParseError{Err: err}
	}
	doc, err := svgpath.ParseBytes(data)
	if err != nil {
		return nil, nil, err
	}
	c, err := Build(doc.Paths, opts)
	if err != nil {
		return nil, nil, err
	}
	return c, doc, nil
}
