package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSpaceFound means every candidate anchor was rejected. Legitimate
	// input never triggers it; treat it as a packer defect.
	ErrNoSpaceFound = errors.New("no free space found")

	// ErrInvalidDimensions is returned for sprites whose width or height is
	// not a positive finite number.
	ErrInvalidDimensions = errors.New("invalid sprite dimensions")
)

// NoSpaceFoundError names the sprite that could not be placed.
type NoSpaceFoundError struct {
	Name   string
	Placed int // Sprites already on the canvas when the search gave up
}

func (e *NoSpaceFoundError) Error() string {
	return fmt.Sprintf("no free space found for %q after %d placements", e.Name, e.Placed)
}

func (e *NoSpaceFoundError) Is(target error) bool {
	return target == ErrNoSpaceFound
}

// InvalidDimensionsError names the offending sprite and its size.
type InvalidDimensionsError struct {
	Name   string
	Width  float64
	Height float64
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("sprite %q has invalid size %gx%g", e.Name, e.Width, e.Height)
}

func (e *InvalidDimensionsError) Is(target error) bool {
	return target == ErrInvalidDimensions
}
