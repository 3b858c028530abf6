package engine

import (
	"fmt"

	"github.com/piwi3910/SpritePack/internal/model"
)

type rect struct {
	x, y, w, h float64
}

func boxOf[T any](p model.PlacedRect[T]) rect {
	return rect{x: p.StartX, y: p.StartY, w: p.Width, h: p.Height}
}

// intersects uses half-open intervals: rects that only share an edge or a
// corner do not intersect.
func intersects(r1, r2 rect) bool {
	return r1.x < r2.x+r2.w && r1.x+r1.w > r2.x &&
		r1.y < r2.y+r2.h && r1.y+r1.h > r2.y
}

// Overlaps reports whether two placed sprites share any area.
func Overlaps[T any](a, b model.PlacedRect[T]) bool {
	return intersects(boxOf(a), boxOf(b))
}

// Verify checks a packing result against its input: every input name is
// placed exactly once with its original size, Order lists each placement
// once, positions are non-negative and no two sprites overlap. A failure
// indicates a packer defect or a tampered file.
func Verify[T any](input []model.NamedRect[T], result model.Result[T]) error {
	if len(input) != result.Len() {
		return fmt.Errorf("expected %d placements, got %d", len(input), result.Len())
	}
	if err := result.OrderError(); err != nil {
		return err
	}
	for _, r := range input {
		p, ok := result.Get(r.Name)
		if !ok {
			return fmt.Errorf("sprite %q missing from result", r.Name)
		}
		if p.Width != r.Width || p.Height != r.Height {
			return fmt.Errorf("sprite %q changed size: %gx%g -> %gx%g", r.Name, r.Width, r.Height, p.Width, p.Height)
		}
		if !positive(p.Width) || !positive(p.Height) {
			return &InvalidDimensionsError{Name: p.Name, Width: p.Width, Height: p.Height}
		}
		if p.StartX < 0 || p.StartY < 0 {
			return fmt.Errorf("sprite %q placed at negative position (%g, %g)", r.Name, p.StartX, p.StartY)
		}
	}

	placed := result.Sorted()
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			if Overlaps(placed[i], placed[j]) {
				return fmt.Errorf("sprites %q and %q overlap", placed[i].Name, placed[j].Name)
			}
		}
	}
	return nil
}
