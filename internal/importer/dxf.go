package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the distance under which two line endpoints are joined.
const dxfTolerance = 0.01

// bounds is an axis-aligned bounding box in drawing units.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func emptyBounds() bounds {
	return bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
}

func (b bounds) merge(o bounds) bounds {
	b.add(o.minX, o.minY)
	b.add(o.maxX, o.maxY)
	return b
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

// ImportDXF reads sprite sizes from a DXF drawing. Every LWPOLYLINE, CIRCLE
// and group of connected LINE/ARC entities is one sprite sized by its
// bounding box, so a traced outline of each sprite is enough. Sprites are
// named "dxf sprite N", largest first.
func ImportDXF(path string) ImportResult {
	result := newResult(nil)

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []bounds
	var segs []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			shapes = append(shapes, polylineBounds(e))
		case *entity.Circle:
			c, r := e.Center, e.Radius
			shapes = append(shapes, bounds{c[0] - r, c[1] - r, c[0] + r, c[1] + r})
		case *entity.Arc:
			segs = append(segs, arcSegment(e))
		case *entity.Line:
			b := emptyBounds()
			b.add(e.Start[0], e.Start[1])
			b.add(e.End[0], e.End[1])
			segs = append(segs, segment{
				a:   [2]float64{e.Start[0], e.Start[1]},
				b:   [2]float64{e.End[0], e.End[1]},
				box: b,
			})
		}
	}

	shapes = append(shapes, groupSegments(segs)...)
	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No shapes found in DXF file")
		return result
	}

	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].width()*shapes[i].height() > shapes[j].width()*shapes[j].height()
	})

	n := 0
	for _, s := range shapes {
		w, h := s.width(), s.height()
		if !finite(w) || !finite(h) || w < dxfTolerance || h < dxfTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		n++
		sprite := model.NewRect(fmt.Sprintf("dxf sprite %d", n), w, h, model.Asset{})
		if err := result.Catalog.Add(sprite); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	if n == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

// polylineBounds covers the vertices and, for bulged edges, the arc between them.
func polylineBounds(lw *entity.LwPolyline) bounds {
	b := emptyBounds()
	for i, v := range lw.Vertices {
		b.add(v[0], v[1])
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			continue
		}
		next := lw.Vertices[(i+1)%len(lw.Vertices)]
		for _, p := range bulgePoints(v[0], v[1], next[0], next[1], lw.Bulges[i], 32) {
			b.add(p[0], p[1])
		}
	}
	return b
}

// bulgePoints samples the arc a DXF bulge describes between two vertices.
// The bulge is the tangent of a quarter of the included angle, positive
// for counter-clockwise arcs.
func bulgePoints(x1, y1, x2, y2, bulge float64, steps int) [][2]float64 {
	dx, dy := x2-x1, y2-y1
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return nil
	}
	theta := 4 * math.Atan(bulge)
	r := chord / (2 * math.Sin(theta/2))
	// Center sits on the chord's perpendicular bisector.
	d := r * math.Cos(theta/2)
	cx := (x1+x2)/2 - d*dy/chord
	cy := (y1+y2)/2 + d*dx/chord
	start := math.Atan2(y1-cy, x1-cx)

	pts := make([][2]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + theta*float64(i)/float64(steps)
		pts = append(pts, [2]float64{cx + math.Abs(r)*math.Cos(a), cy + math.Abs(r)*math.Sin(a)})
	}
	return pts
}

// segment is an open LINE or ARC with its endpoints and bounding box.
type segment struct {
	a, b [2]float64
	box  bounds
}

func arcSegment(a *entity.Arc) segment {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	b := emptyBounds()
	const steps = 32
	for i := 0; i <= steps; i++ {
		t := start + (end-start)*float64(i)/steps
		b.add(cx+r*math.Cos(t), cy+r*math.Sin(t))
	}
	return segment{
		a:   [2]float64{cx + r*math.Cos(start), cy + r*math.Sin(start)},
		b:   [2]float64{cx + r*math.Cos(end), cy + r*math.Sin(end)},
		box: b,
	}
}

// groupSegments joins segments sharing an endpoint and returns the bounds
// of each connected group.
func groupSegments(segs []segment) []bounds {
	parent := make([]int, len(segs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if touches(segs[i], segs[j]) {
				parent[find(j)] = find(i)
			}
		}
	}

	groups := make(map[int]bounds)
	var roots []int
	for i, s := range segs {
		root := find(i)
		g, ok := groups[root]
		if !ok {
			g = emptyBounds()
			roots = append(roots, root)
		}
		groups[root] = g.merge(s.box)
	}

	out := make([]bounds, 0, len(roots))
	for _, r := range roots {
		out = append(out, groups[r])
	}
	return out
}

func touches(s, o segment) bool {
	for _, p := range [][2]float64{s.a, s.b} {
		for _, q := range [][2]float64{o.a, o.b} {
			if math.Hypot(p[0]-q[0], p[1]-q[1]) <= dxfTolerance {
				return true
			}
		}
	}
	return false
}
