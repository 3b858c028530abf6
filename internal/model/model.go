package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// NamedRect is a single sprite waiting to be packed. Payload travels with the
// rectangle untouched; the packer never inspects it.
type NamedRect[T any] struct {
	Name    string  `json:"name"`
	Width   float64 `json:"width"`  // px
	Height  float64 `json:"height"` // px
	Payload T       `json:"payload"`
}

func NewRect[T any](name string, w, h float64, payload T) NamedRect[T] {
	return NamedRect[T]{
		Name:    name,
		Width:   w,
		Height:  h,
		Payload: payload,
	}
}

// Area returns the rectangle area.
func (r NamedRect[T]) Area() float64 {
	return r.Width * r.Height
}

// PlacedRect is a NamedRect with its top-left corner on the canvas.
type PlacedRect[T any] struct {
	NamedRect[T]
	StartX float64 `json:"start_x"` // Position from left edge (px)
	StartY float64 `json:"start_y"` // Position from top edge (px)
}

// Right returns the x coordinate one past the right edge.
func (p PlacedRect[T]) Right() float64 {
	return p.StartX + p.Width
}

// Bottom returns the y coordinate one past the bottom edge.
func (p PlacedRect[T]) Bottom() float64 {
	return p.StartY + p.Height
}

// Result maps sprite names to their placements.
type Result[T any] struct {
	Placements map[string]PlacedRect[T] `json:"placements"`
	// Order lists names in the order the packer placed them.
	Order []string `json:"order"`
}

func NewResult[T any]() Result[T] {
	return Result[T]{
		Placements: map[string]PlacedRect[T]{},
		Order:      []string{},
	}
}

// Len returns the number of placed sprites.
func (r Result[T]) Len() int {
	return len(r.Placements)
}

// Get returns the placement for name.
func (r Result[T]) Get(name string) (PlacedRect[T], bool) {
	p, ok := r.Placements[name]
	return p, ok
}

// Extent returns the canvas size needed to hold every placement: the maximum
// right edge and the maximum bottom edge. An empty result has zero extent.
func (r Result[T]) Extent() (maxWidth, maxHeight float64) {
	for _, p := range r.Placements {
		if p.Right() > maxWidth {
			maxWidth = p.Right()
		}
		if p.Bottom() > maxHeight {
			maxHeight = p.Bottom()
		}
	}
	return maxWidth, maxHeight
}

// Names returns all placed names sorted alphabetically.
func (r Result[T]) Names() []string {
	names := make([]string, 0, len(r.Placements))
	for name := range r.Placements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the placements ordered by name.
func (r Result[T]) Sorted() []PlacedRect[T] {
	out := make([]PlacedRect[T], 0, len(r.Placements))
	for _, name := range r.Names() {
		out = append(out, r.Placements[name])
	}
	return out
}

// Placed returns the placements in placement order. When Order does not list
// every placement exactly once, as in a hand-edited file, it falls back to
// Sorted so no sprite is dropped or repeated.
func (r Result[T]) Placed() []PlacedRect[T] {
	if r.OrderError() != nil {
		return r.Sorted()
	}
	out := make([]PlacedRect[T], 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, r.Placements[name])
	}
	return out
}

// OrderError reports why Order is not a permutation of the placed names, or
// nil when it is.
func (r Result[T]) OrderError() error {
	if len(r.Order) != len(r.Placements) {
		return fmt.Errorf("order lists %d names for %d placements", len(r.Order), len(r.Placements))
	}
	seen := make(map[string]bool, len(r.Order))
	for _, name := range r.Order {
		if _, ok := r.Placements[name]; !ok {
			return fmt.Errorf("order names unknown sprite %q", name)
		}
		if seen[name] {
			return fmt.Errorf("order lists sprite %q twice", name)
		}
		seen[name] = true
	}
	return nil
}

// UsedArea returns the total area covered by sprites.
func (r Result[T]) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Area()
	}
	return total
}

// Coverage returns the share of the canvas covered by sprites as a percentage.
func (r Result[T]) Coverage() float64 {
	w, h := r.Extent()
	if w == 0 || h == 0 {
		return 0
	}
	return (r.UsedArea() / (w * h)) * 100.0
}

// Asset is the payload the CLI attaches to each sprite: where the image lives.
// Nothing in this module opens the file.
type Asset struct {
	Path string `json:"path,omitempty"`
}

// Project ties a manifest and its last packing together for save/load.
type Project struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Manifest string         `json:"manifest,omitempty"` // Source manifest path
	Sprites  []Sprite       `json:"sprites"`
	Result   *Result[Asset] `json:"result,omitempty"`
}

// Sprite is the serialised form of an intake entry.
type Sprite = NamedRect[Asset]

func NewProject(name string) Project {
	if name == "" {
		name = "Untitled"
	}
	return Project{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Sprites: []Sprite{},
	}
}
