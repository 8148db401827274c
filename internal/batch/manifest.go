package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered view in the output manifest.
type ManifestEntry struct {
	Name        string  `json:"name"`
	Heading     float64 `json:"heading"`
	Pitch       float64 `json:"pitch"`
	Roll        float64 `json:"roll"`
	FieldOfView float64 `json:"fov"`
	Image       string  `json:"image"`
}

// WriteManifest writes manifest.json listing the successful results. Image
// paths are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		img, err := filepath.Rel(dir, r.Path)
		if err != nil {
			img = r.Path
		}
		entries = append(entries, ManifestEntry{
			Name:        r.Name,
			Heading:     r.View.Heading,
			Pitch:       r.View.Pitch,
			Roll:        r.View.Roll,
			FieldOfView: r.View.FieldOfView,
			Image:       filepath.ToSlash(img),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
