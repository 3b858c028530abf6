// Package engine places sprites on a single canvas.
//
// The packer is a greedy corner search: sprites are sorted largest first, the
// first one goes to the origin and every following sprite is tried against the
// corners of the sprites already on the canvas, in the order they were placed.
// The layout is not optimal, but it is reproducible: the same input in the
// same order always yields the same placements.
package engine

import (
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/SpritePack/internal/model"
)

// Gutter is the spacing added between a sprite and the edge it is placed against.
const Gutter = 1.0

// Packer computes sprite sheet layouts. The zero value is ready to use.
type Packer[T any] struct {
	Logger *log.Logger
}

func New[T any](logger *log.Logger) *Packer[T] {
	return &Packer[T]{Logger: logger}
}

// Pack lays out rects with a silent packer.
func Pack[T any](rects []model.NamedRect[T]) (model.Result[T], error) {
	return New[T](nil).Pack(rects)
}

// Pack places every rect and returns the layout. Names must be unique and
// sizes positive; on any error no result is returned.
func (p *Packer[T]) Pack(rects []model.NamedRect[T]) (model.Result[T], error) {
	logger := p.logger()

	if err := validate(rects); err != nil {
		return model.Result[T]{}, err
	}

	ordered := order(rects)
	placed := make([]model.PlacedRect[T], 0, len(ordered))

	for _, r := range ordered {
		x, y, err := findPosition(r, placed)
		if err != nil {
			logger.Error("packing aborted", "sprite", r.Name, "err", err)
			return model.Result[T]{}, err
		}
		placed = append(placed, model.PlacedRect[T]{NamedRect: r, StartX: x, StartY: y})
		logger.Debug("placed sprite", "name", r.Name, "x", x, "y", y, "w", r.Width, "h", r.Height)
	}

	result := model.NewResult[T]()
	for _, pr := range placed {
		result.Placements[pr.Name] = pr
		result.Order = append(result.Order, pr.Name)
	}

	w, h := result.Extent()
	logger.Debug("packing complete", "sprites", result.Len(), "width", w, "height", h)
	return result, nil
}

func (p *Packer[T]) logger() *log.Logger {
	if p == nil || p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}

// Score is the sort key: larger scores are placed first.
func Score(w, h float64) float64 {
	return w*h - w - h
}

// order returns a copy of rects sorted by descending Score. Equal scores keep
// their input order.
func order[T any](rects []model.NamedRect[T]) []model.NamedRect[T] {
	out := make([]model.NamedRect[T], len(rects))
	copy(out, rects)
	sort.SliceStable(out, func(i, j int) bool {
		return Score(out[i].Width, out[i].Height) > Score(out[j].Width, out[j].Height)
	})
	return out
}

func validate[T any](rects []model.NamedRect[T]) error {
	seen := make(map[string]bool, len(rects))
	for _, r := range rects {
		if seen[r.Name] {
			return &model.DuplicateNameError{Name: r.Name}
		}
		seen[r.Name] = true
		if !positive(r.Width) || !positive(r.Height) {
			return &InvalidDimensionsError{Name: r.Name, Width: r.Width, Height: r.Height}
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// anchor is a candidate top-left corner.
type anchor struct {
	x, y float64
}

// findPosition returns where r goes given the sprites placed so far.
func findPosition[T any](r model.NamedRect[T], placed []model.PlacedRect[T]) (float64, float64, error) {
	if len(placed) == 0 {
		return 0, 0, nil
	}

	maxW, maxH := Extent(placed)
	tall := maxW < maxH

	for _, p := range placed {
		for _, c := range candidates(p, tall) {
			if fits(r, c, placed) {
				return c.x + Gutter, c.y + Gutter, nil
			}
		}
	}
	return 0, 0, &NoSpaceFoundError{Name: r.Name, Placed: len(placed)}
}

// candidates returns the anchors around p in trial order. A canvas that is
// taller than wide grows to the right first, otherwise downward first; the
// outer corner is always last.
func candidates[T any](p model.PlacedRect[T], tall bool) [3]anchor {
	right := anchor{x: p.Right(), y: p.StartY}
	below := anchor{x: p.StartX, y: p.Bottom()}
	corner := anchor{x: p.Right(), y: p.Bottom()}
	if tall {
		return [3]anchor{right, below, corner}
	}
	return [3]anchor{below, right, corner}
}

// fits reports whether r can use anchor c: the anchor itself and the
// gutter-shifted position r will actually occupy must both be free.
func fits[T any](r model.NamedRect[T], c anchor, placed []model.PlacedRect[T]) bool {
	at := rect{x: c.x, y: c.y, w: r.Width, h: r.Height}
	if collides(at, placed) {
		return false
	}
	at.x += Gutter
	at.y += Gutter
	return !collides(at, placed)
}

func collides[T any](r rect, placed []model.PlacedRect[T]) bool {
	for _, p := range placed {
		if intersects(r, boxOf(p)) {
			return true
		}
	}
	return false
}

// Extent returns the bounding extent of placed, anchored at the origin.
func Extent[T any](placed []model.PlacedRect[T]) (maxWidth, maxHeight float64) {
	for _, p := range placed {
		if p.Right() > maxWidth {
			maxWidth = p.Right()
		}
		if p.Bottom() > maxHeight {
			maxHeight = p.Bottom()
		}
	}
	return maxWidth, maxHeight
}
