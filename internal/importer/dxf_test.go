package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
)

func TestBoundsMerge(t *testing.T) {
	a := emptyBounds()
	a.add(1, 2)
	a.add(4, 6)
	b := emptyBounds()
	b.add(-1, 3)

	m := a.merge(b)
	if m.minX != -1 || m.minY != 2 || m.maxX != 4 || m.maxY != 6 {
		t.Errorf("unexpected merge %+v", m)
	}
	if m.width() != 5 || m.height() != 4 {
		t.Errorf("expected 5x4, got %gx%g", m.width(), m.height())
	}
}

func TestBulgePoints_Semicircle(t *testing.T) {
	// Bulge 1 is a half circle; counter-clockwise from (0,0) to (2,0) dips below the chord.
	pts := bulgePoints(0, 0, 2, 0, 1, 16)
	if len(pts) != 17 {
		t.Fatalf("expected 17 points, got %d", len(pts))
	}
	mid := pts[8]
	if math.Abs(mid[0]-1) > 1e-9 || math.Abs(mid[1]+1) > 1e-9 {
		t.Errorf("expected midpoint (1,-1), got %v", mid)
	}
	last := pts[16]
	if math.Abs(last[0]-2) > 1e-9 || math.Abs(last[1]) > 1e-9 {
		t.Errorf("expected arc to end at (2,0), got %v", last)
	}
}

func TestGroupSegments(t *testing.T) {
	line := func(x1, y1, x2, y2 float64) segment {
		b := emptyBounds()
		b.add(x1, y1)
		b.add(x2, y2)
		return segment{a: [2]float64{x1, y1}, b: [2]float64{x2, y2}, box: b}
	}
	segs := []segment{
		line(0, 0, 10, 0), line(10, 0, 10, 5), line(10, 5, 0, 5), line(0, 5, 0, 0),
		line(20, 20, 23, 20), line(23, 20, 23, 24),
	}

	groups := groupSegments(segs)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].width() != 10 || groups[0].height() != 5 {
		t.Errorf("expected 10x5, got %gx%g", groups[0].width(), groups[0].height())
	}
	if groups[1].width() != 3 || groups[1].height() != 4 {
		t.Errorf("expected 3x4, got %gx%g", groups[1].width(), groups[1].height())
	}
}

func TestImportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.dxf")

	d := dxf.NewDrawing()
	rect := func(x, y, w, h float64) {
		pts := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
		for i, p := range pts {
			n := pts[(i+1)%4]
			if _, err := d.Line(p[0], p[1], 0, n[0], n[1], 0); err != nil {
				t.Fatalf("failed to add line: %v", err)
			}
		}
	}
	rect(0, 0, 64, 32)
	rect(100, 100, 16, 16)
	if _, err := d.Circle(300, 300, 0, 10); err != nil {
		t.Fatalf("failed to add circle: %v", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}

	result := ImportDXF(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	rects := result.Catalog.Rects()
	if len(rects) != 3 {
		t.Fatalf("expected 3 sprites, got %d", len(rects))
	}

	want := []struct {
		name string
		w, h float64
	}{
		{"dxf sprite 1", 64, 32},
		{"dxf sprite 2", 20, 20},
		{"dxf sprite 3", 16, 16},
	}
	for i, w := range want {
		r := rects[i]
		if r.Name != w.name || math.Abs(r.Width-w.w) > 1e-6 || math.Abs(r.Height-w.h) > 1e-6 {
			t.Errorf("sprite %d: expected %s %gx%g, got %s %gx%g", i, w.name, w.w, w.h, r.Name, r.Width, r.Height)
		}
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if result.OK() {
		t.Error("expected error for missing file")
	}
}
