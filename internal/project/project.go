package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/model"
)

// FileVersion is the project file format version written by SaveProject.
const FileVersion = "1"

// Extension is the conventional project file extension.
const Extension = ".spritepack"

// File is the on-disk envelope of a project.
type File struct {
	Version string        `json:"version"`
	SavedAt string        `json:"saved_at"`
	Project model.Project `json:"project"`
}

// SaveProject writes p to path, creating parent directories.
func SaveProject(path string, p model.Project) error {
	file := File{
		Version: FileVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Project: p,
	}
	if err := writeJSON(path, file); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project written by SaveProject. A stored result is
// checked against the stored sprites so a hand-edited file cannot smuggle
// in overlapping or missing placements.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	switch file.Version {
	case FileVersion:
	case "":
		return model.Project{}, fmt.Errorf("invalid project file: missing version field")
	default:
		return model.Project{}, fmt.Errorf("unsupported project file version %q", file.Version)
	}

	p := file.Project
	if p.Sprites == nil {
		p.Sprites = []model.Sprite{}
	}
	if p.Result != nil {
		if p.Result.Placements == nil {
			return model.Project{}, fmt.Errorf("invalid project file: result has no placements")
		}
		if err := engine.Verify(p.Sprites, *p.Result); err != nil {
			return model.Project{}, fmt.Errorf("stored result does not match sprites: %w", err)
		}
	}
	return p, nil
}
