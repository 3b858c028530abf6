package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/SpritePack/internal/model"
)

// CoordinateRecord is the portable per-sprite record other tools read:
// {"position": [x, y], "dimensions": [w, h]}.
type CoordinateRecord struct {
	Position   [2]float64 `json:"position"`
	Dimensions [2]float64 `json:"dimensions"`
}

// Coordinates converts a packing result into the coordinate contract.
func Coordinates[T any](result model.Result[T]) map[string]CoordinateRecord {
	coords := make(map[string]CoordinateRecord, result.Len())
	for name, p := range result.Placements {
		coords[name] = recordOf(p)
	}
	return coords
}

func recordOf[T any](p model.PlacedRect[T]) CoordinateRecord {
	return CoordinateRecord{
		Position:   [2]float64{p.StartX, p.StartY},
		Dimensions: [2]float64{p.Width, p.Height},
	}
}

// WriteCoordinatesJSON writes the coordinate contract as indented JSON.
// Keys come out sorted; an empty result writes {}.
func WriteCoordinatesJSON[T any](w io.Writer, result model.Result[T]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Coordinates(result)); err != nil {
		return fmt.Errorf("failed to encode coordinates: %w", err)
	}
	return nil
}

// ExportCoordinatesJSON writes the coordinate contract to path.
func ExportCoordinatesJSON[T any](path string, result model.Result[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCoordinatesJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ResultFromCoordinates rebuilds a packing result from coordinate records.
// Placement order is not part of the contract, so names are ordered
// alphabetically.
func ResultFromCoordinates(coords map[string]CoordinateRecord) model.Result[model.Asset] {
	result := model.NewResult[model.Asset]()
	for name, c := range coords {
		result.Placements[name] = model.PlacedRect[model.Asset]{
			NamedRect: model.NewRect(name, c.Dimensions[0], c.Dimensions[1], model.Asset{}),
			StartX:    c.Position[0],
			StartY:    c.Position[1],
		}
	}
	result.Order = result.Names()
	return result
}

// ReadCoordinatesJSON parses a coordinate contract written by WriteCoordinatesJSON.
func ReadCoordinatesJSON(r io.Reader) (map[string]CoordinateRecord, error) {
	var coords map[string]CoordinateRecord
	if err := json.NewDecoder(r).Decode(&coords); err != nil {
		return nil, fmt.Errorf("failed to parse coordinates: %w", err)
	}
	return coords, nil
}
