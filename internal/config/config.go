package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"svgflow/internal/assets"
	"svgflow/internal/follow"
	"svgflow/internal/materials"
	"svgflow/internal/tube"
)

// DefaultPath is where the scene config lives, relative to the working directory.
// SVGFLOW_CONFIG overrides it.
const DefaultPath = "config/scene.yaml"

// Sprite is the billboard that travels along the followed curve.
type Sprite struct {
	Material string  `yaml:"material"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
}

// Scene is everything the viewer needs to build and animate the scene.
type Scene struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	PixelDensity float32 `yaml:"pixel_density"`

	// ZOffset is the depth step per point; tubes sit at -ZOffset*10.
	ZOffset float32 `yaml:"z_offset"`

	Paths  string `yaml:"paths"`
	Follow string `yaml:"follow"`

	Speed       float32       `yaml:"speed"`
	QuietPeriod time.Duration `yaml:"quiet_period"`

	Sprite     Sprite                      `yaml:"sprite"`
	Tube       tube.Style                  `yaml:"tube"`
	Materials  map[string]materials.Config `yaml:"materials,omitempty"`
	Distortion float32                     `yaml:"distortion"`

	AssetsRoot string          `yaml:"assets_root"`
	Textures   assets.Manifest `yaml:"textures"`
}

// Default returns the stock scene: the bundled drawing, a person sprite following
// path1 and a stroke-textured tube per path.
func Default() Scene {
	return Scene{
		Width:        1280,
		Height:       720,
		PixelDensity: 1,
		ZOffset:      1,
		Paths:        "paths/paths.svg",
		Follow:       "path1",
		Speed:        follow.DefaultSpeed,
		QuietPeriod:  follow.DefaultQuietPeriod,
		Sprite:       Sprite{Material: "person", Width: 50, Height: 200},
		Tube:         tube.DefaultStyle(),
		Distortion:   materials.DefaultDistortion,
		AssetsRoot:   "assets",
		Textures: assets.Manifest{
			{Name: "stroke", Path: "textures/strokeline.png"},
			{Name: "person", Path: "sprites/person.png"},
			{Name: "drawing", Path: "videos/displace", Flipbook: true, FPS: 24},
		},
	}
}

// Load reads a scene from path on top of Default. A missing file yields Default.
func Load(path string) (Scene, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Save writes s as YAML, creating the directory if needed.
func Save(path string, s Scene) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the viewer cannot run with.
func (s Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("window size %dx%d", s.Width, s.Height)
	case s.Paths == "":
		return errors.New("paths source is empty")
	case s.Follow == "":
		return errors.New("follow path id is empty")
	case s.Speed < 0:
		return fmt.Errorf("negative speed %v", s.Speed)
	case s.QuietPeriod < 0:
		return fmt.Errorf("negative quiet period %v", s.QuietPeriod)
	}
	return nil
}

// TubeStyle is the tube style with the viewport height taken from the window when the
// file does not pin one.
func (s Scene) TubeStyle() tube.Style {
	st := s.Tube
	if st.ViewportHeight <= 0 {
		st.ViewportHeight = float32(s.Height)
	}
	return st
}

// MaterialConfigs merges the file's material entries over materials.Defaults. Zero fields
// in an entry keep the default value. The drawing pass takes Distortion.
func (s Scene) MaterialConfigs() (map[string]materials.Config, error) {
	out := materials.Defaults()
	if d, ok := out["drawing"]; ok && s.Distortion != 0 {
		d.Distortion = s.Distortion
		out["drawing"] = d
	}
	for name, override := range s.Materials {
		merged, ok := out[name]
		if !ok {
			out[name] = override
			continue
		}
		if err := copier.CopyWithOption(&merged, &override, copier.Option{IgnoreEmpty: true}); err != nil {
			return nil, fmt.Errorf("config: material %s: %w", name, err)
		}
		out[name] = merged
	}
	return out, nil
}
