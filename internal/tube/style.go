package tube

import (
	"fmt"

	"github.com/jinzhu/copier"

	"svgflow/internal/materials"
)

// DefaultViewportHeight is used when Style.ViewportHeight is not positive.
const DefaultViewportHeight = 1080

// Style is how a tube looks. LineWidth is in pixels and is normalized by ViewportHeight,
// so the apparent thickness does not depend on resolution.
type Style struct {
	LineWidth      float32 `yaml:"line_width" json:"line_width"`
	ViewportHeight float32 `yaml:"viewport_height,omitempty" json:"viewport_height,omitempty"`

	// SizeAttenuation scales width with camera distance. Off keeps it constant on screen.
	SizeAttenuation bool `yaml:"size_attenuation" json:"size_attenuation"`

	Opacity float32         `yaml:"opacity" json:"opacity"`
	Color   materials.Color `yaml:"color" json:"color"`

	// Texture names an image in the asset registry; empty means untextured.
	Texture string `yaml:"texture,omitempty" json:"texture,omitempty"`

	// Resolution is the number of arc-length segments; 0 uses the curve's divisions.
	Resolution int        `yaml:"resolution,omitempty" json:"resolution,omitempty"`
	DashArray  float32    `yaml:"dash_array,omitempty" json:"dash_array,omitempty"`
	DashOffset float32    `yaml:"dash_offset,omitempty" json:"dash_offset,omitempty"`
	DashRatio  float32    `yaml:"dash_ratio,omitempty" json:"dash_ratio,omitempty"`
	Repeat     [2]float32 `yaml:"repeat,omitempty" json:"repeat,omitempty"`
}

// DefaultStyle is the stroke look of the scene's tubes.
func DefaultStyle() Style {
	return Style{
		LineWidth:      80,
		ViewportHeight: DefaultViewportHeight,
		Opacity:        0.5,
		Color:          materials.White,
		Texture:        "stroke",
		Repeat:         [2]float32{1, 1},
	}
}

// Merge returns s with every non-zero field of override applied. Zero values in override
// never clear a field, so black cannot be set through Merge; set Color directly.
func (s Style) Merge(override Style) (Style, error) {
	out := s
	if err := copier.CopyWithOption(&out, &override, copier.Option{IgnoreEmpty: true}); err != nil {
		return s, fmt.Errorf("tube: merge style: %w", err)
	}
	return out, nil
}

// Material is the line material config matching the style.
func (s Style) Material() materials.Config {
	return materials.Config{
		Kind:       materials.Line,
		Color:      s.Color,
		Opacity:    s.Opacity,
		Map:        s.Texture,
		DashArray:  s.DashArray,
		DashOffset: s.DashOffset,
		DashRatio:  s.DashRatio,
		Repeat:     s.Repeat,
	}
}

func (s Style) viewportHeight() float32 {
	if s.ViewportHeight <= 0 {
		return DefaultViewportHeight
	}
	return s.ViewportHeight
}
