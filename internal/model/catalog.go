package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is matched by every DuplicateNameError.
var ErrDuplicateName = errors.New("duplicate sprite name")

// DuplicateNameError reports a name that is already present in the working set.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate sprite name %q", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Catalog is the working set of sprites handed to the packer. Names are
// unique and insertion order is preserved so that packing is reproducible.
type Catalog[T any] struct {
	rects []NamedRect[T]
	index map[string]int
}

func NewCatalog[T any]() *Catalog[T] {
	return &Catalog[T]{index: map[string]int{}}
}

// Add appends r to the catalog. A name that is already present is rejected
// and the catalog is left unchanged.
func (c *Catalog[T]) Add(r NamedRect[T]) error {
	if c.index == nil {
		c.index = map[string]int{}
	}
	if _, ok := c.index[r.Name]; ok {
		return &DuplicateNameError{Name: r.Name}
	}
	c.index[r.Name] = len(c.rects)
	c.rects = append(c.rects, r)
	return nil
}

// Remove deletes the named sprite. It reports whether anything was removed.
func (c *Catalog[T]) Remove(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.rects = append(c.rects[:i], c.rects[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.rects); j++ {
		c.index[c.rects[j].Name] = j
	}
	return true
}

// Has reports whether name is in the catalog.
func (c *Catalog[T]) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of sprites.
func (c *Catalog[T]) Len() int {
	return len(c.rects)
}

// Rects returns a copy of the sprites in insertion order.
func (c *Catalog[T]) Rects() []NamedRect[T] {
	out := make([]NamedRect[T], len(c.rects))
	copy(out, c.rects)
	return out
}
