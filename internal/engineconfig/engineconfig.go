package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PrefsPath is the viewer preferences file, relative to the process working directory.
const PrefsPath = "config/viewer.json"

// Prefs holds viewer-only toggles (debug overlays, helpers). Persisted across runs and
// kept apart from the scene config so toggling an overlay never rewrites the scene.
type Prefs struct {
	ShowFPS   bool `json:"show_fps"`
	ShowMode  bool `json:"show_mode"`
	ShowAxes  bool `json:"show_axes"`
	Wireframe bool `json:"wireframe"`
	NoPost    bool `json:"no_post,omitempty"`
}

// Default returns default preferences (axes helper on, overlays off).
func Default() Prefs {
	return Prefs{ShowAxes: true}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default()
// and does not create a file.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
