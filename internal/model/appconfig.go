package model

// Export format names accepted in AppConfig.DefaultFormats and on the command line.
const (
	FormatJSON   = "json"
	FormatXLSX   = "xlsx"
	FormatPDF    = "pdf"
	FormatLabels = "labels"
	FormatDXF    = "dxf"
)

// AllFormats lists every supported export format.
var AllFormats = []string{FormatJSON, FormatXLSX, FormatPDF, FormatLabels, FormatDXF}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Output defaults applied when the command line does not say otherwise
	OutputBase     string   `json:"output_base"`     // Base name for written files, extension added per format
	DefaultFormats []string `json:"default_formats"` // Formats written by "pack"
	PageSize       string   `json:"page_size"`       // PDF report page size: "A4", "A3", "Letter"

	// Application preferences
	LogLevel        string   `json:"log_level"` // "debug", "info", "warn", "error"
	RecentManifests []string `json:"recent_manifests"`
}

// maxRecentManifests bounds the recent manifests list.
const maxRecentManifests = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OutputBase:      "spritesheet",
		DefaultFormats:  []string{FormatJSON},
		PageSize:        "A4",
		LogLevel:        "info",
		RecentManifests: []string{},
	}
}

// AddRecentManifest moves path to the front of the recent list.
func (c *AppConfig) AddRecentManifest(path string) {
	recent := []string{path}
	for _, p := range c.RecentManifests {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentManifests {
		recent = recent[:maxRecentManifests]
	}
	c.RecentManifests = recent
}

// IsKnownFormat reports whether name is a supported export format.
func IsKnownFormat(name string) bool {
	for _, f := range AllFormats {
		if f == name {
			return true
		}
	}
	return false
}
