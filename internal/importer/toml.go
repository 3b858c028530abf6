package importer

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/SpritePack/internal/model"
)

// tomlManifest is the on-disk layout of a TOML manifest:
//
//	[[sprite]]
//	name = "hero"
//	width = 64
//	height = 32
//	path = "art/hero.png"
type tomlManifest struct {
	Sprites []tomlSprite `toml:"sprite"`
}

type tomlSprite struct {
	Name   string  `toml:"name"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Path   string  `toml:"path"`
}

// ImportTOML imports sprites from a TOML manifest file.
func ImportTOML(path string) ImportResult {
	var m tomlManifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		result := newResult(nil)
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read TOML manifest: %v", err))
		return result
	}
	return importTOML(m, md)
}

// ImportTOMLString imports sprites from TOML text.
func ImportTOMLString(data string) ImportResult {
	var m tomlManifest
	md, err := toml.Decode(data, &m)
	if err != nil {
		result := newResult(nil)
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read TOML manifest: %v", err))
		return result
	}
	return importTOML(m, md)
}

func importTOML(m tomlManifest, md toml.MetaData) ImportResult {
	result := newResult(nil)

	for _, key := range md.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown key '%s' ignored", key.String()))
	}

	if len(m.Sprites) == 0 {
		result.Errors = append(result.Errors, "No [[sprite]] entries found")
		return result
	}

	for i, s := range m.Sprites {
		label := fmt.Sprintf("Sprite %d", i+1)

		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = fmt.Sprintf("sprite %d", result.Catalog.Len()+1)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Missing name, using '%s'", label, name))
		}
		if !finite(s.Width) || !finite(s.Height) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be finite numbers", label))
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be positive", label))
			continue
		}

		sprite := model.NewRect(name, s.Width, s.Height, model.Asset{Path: strings.TrimSpace(s.Path)})
		if err := result.Catalog.Add(sprite); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
		}
	}

	return result
}
