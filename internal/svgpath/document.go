package svgpath

// Vec2 is a 2D position in document space (after transforms).
type Vec2 struct {
	X, Y float32
}

// Subpath is one contour of a path: the flattened points in drawing order.
// A closed subpath repeats its first point at the end.
type Subpath struct {
	Points []Vec2
	Closed bool
}

// VectorPath is one identified outline of the drawing. Element is the SVG tag it came from
// (path, polygon, rect, ...). ID is empty when the element has no id attribute.
type VectorPath struct {
	ID       string
	Element  string
	Subpaths []Subpath
}

// Shape is a solid outline plus the holes cut out of it.
type Shape struct {
	Outline []Vec2
	Holes   [][]Vec2
}

// Document is a parsed SVG: its declared size and every drawable element in document order.
type Document struct {
	Width, Height float32
	ViewBox       [4]float32
	HasViewBox    bool
	Paths         []VectorPath
}

// Shapes groups the subpaths into solids and holes by orientation: a contour with
// signedArea >= 0 is a solid, any other is a hole. Solids keep document order. A hole
// belongs to the first solid containing its start point, or else to the solid before it
// (the first solid for leading holes). A single contour is always a solid, and a path with
// no solid contour treats every contour as its own solid.
func (p VectorPath) Shapes() []Shape {
	var contours [][]Vec2
	for _, sp := range p.Subpaths {
		if len(sp.Points) > 0 {
			contours = append(contours, sp.Points)
		}
	}
	if len(contours) == 1 {
		return []Shape{{Outline: contours[0]}}
	}

	var shapes []Shape
	isSolid := make([]bool, len(contours))
	owner := make([]int, len(contours)) // index into shapes; -1 for leading holes
	for i, c := range contours {
		if isSolid[i] = signedArea(c) >= 0; isSolid[i] {
			shapes = append(shapes, Shape{Outline: c})
		}
		owner[i] = len(shapes) - 1
	}
	if len(shapes) == 0 {
		for _, c := range contours {
			shapes = append(shapes, Shape{Outline: c})
		}
		return shapes
	}

	for i, c := range contours {
		if isSolid[i] {
			continue
		}
		to := max(owner[i], 0)
		for j := range shapes {
			if contains(shapes[j].Outline, c[0]) {
				to = j
				break
			}
		}
		shapes[to].Holes = append(shapes[to].Holes, c)
	}
	return shapes
}

// FirstOutline returns the outline of the first solid, or nil when the path has no points.
func (p VectorPath) FirstOutline() []Vec2 {
	shapes := p.Shapes()
	if len(shapes) == 0 {
		return nil
	}
	return shapes[0].Outline
}

// PathByID returns the last path with the given id, matching the last-wins rule used
// when paths are turned into curves.
func (d *Document) PathByID(id string) (VectorPath, bool) {
	for i := len(d.Paths) - 1; i >= 0; i-- {
		if d.Paths[i].ID == id {
			return d.Paths[i], true
		}
	}
	return VectorPath{}, false
}

// signedArea is positive for counter-clockwise contours in a y-up frame.
func signedArea(pts []Vec2) float32 {
	var a float32
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// contains is an even-odd ray cast.
func contains(poly []Vec2, pt Vec2) bool {
	in := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				in = !in
			}
		}
	}
	return in
}
