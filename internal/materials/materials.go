package materials

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/chewxy/math32"
)

// Kind selects one of the fixed material variants the scene uses. The zero Kind is unset:
// it builds as Basic, and a config merge leaves the target's kind alone.
type Kind int

const (
	// Basic is an untextured flat color.
	Basic Kind = iota + 1
	// Wire is Basic drawn as wireframe.
	Wire
	// HardMix derives alpha from how far a texel is from mid gray, so a white-background
	// drawing keys out to its strokes.
	HardMix
	// Line is the textured, dashable ribbon material for tubes.
	Line
	// Distortion is the full-screen pass that offsets the frame by a noise texture.
	Distortion
)

var kindNames = [...]string{"basic", "wire", "hardmix", "line", "distortion"}

func (k Kind) String() string {
	if k < Basic || int(k) > len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k-1]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i + 1), nil
		}
	}
	return 0, fmt.Errorf("materials: unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == 0 {
		return []byte(Basic.String()), nil
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// HardMixThreshold scales the distance from mid gray before it becomes alpha.
const HardMixThreshold = 4

// DefaultDistortion is the noise offset strength of the post-process pass.
const DefaultDistortion = 0.003

// WhiteTexture names the 1x1 white texture used when a textured material has no map.
const WhiteTexture = "white"

// Config is a material variant plus its parameters. Fields that a kind does not use are
// ignored. Opacity 0 means fully opaque; Repeat zero means (1,1).
type Config struct {
	Kind       Kind       `yaml:"kind" json:"kind"`
	Color      Color      `yaml:"color" json:"color"`
	Opacity    float32    `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	Map        string     `yaml:"map,omitempty" json:"map,omitempty"`
	Noise      string     `yaml:"noise,omitempty" json:"noise,omitempty"`
	Distortion float32    `yaml:"distortion,omitempty" json:"distortion,omitempty"`
	DashArray  float32    `yaml:"dash_array,omitempty" json:"dash_array,omitempty"`
	DashOffset float32    `yaml:"dash_offset,omitempty" json:"dash_offset,omitempty"`
	DashRatio  float32    `yaml:"dash_ratio,omitempty" json:"dash_ratio,omitempty"`
	Repeat     [2]float32 `yaml:"repeat,omitempty" json:"repeat,omitempty"`
}

// Program is a renderer-agnostic material: shader sources, uniform values and the
// textures bound to sampler uniforms (by asset name). Empty sources mean the renderer's
// default shader.
type Program struct {
	Kind           Kind
	VertexSource   string
	FragmentSource string
	Uniforms       map[string]any
	Textures       map[string]string
	Transparent    bool
	Wireframe      bool
}

// Build turns a Config into a Program.
func Build(cfg Config) (Program, error) {
	opacity := cfg.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	tint := [4]float32{cfg.Color.R, cfg.Color.G, cfg.Color.B, opacity}
	mapName := cfg.Map
	if mapName == "" {
		mapName = WhiteTexture
	}

	kind := cfg.Kind
	if kind == 0 {
		kind = Basic
	}
	p := Program{Kind: kind, Uniforms: map[string]any{}, Textures: map[string]string{}}
	switch kind {
	case Basic, Wire:
		p.Uniforms["colDiffuse"] = tint
		p.Wireframe = kind == Wire
		p.Transparent = opacity < 1

	case HardMix:
		p.VertexSource = vertexShader
		p.FragmentSource = hardMixFS
		p.Uniforms["color"] = [3]float32{cfg.Color.R, cfg.Color.G, cfg.Color.B}
		p.Textures["texture0"] = mapName
		p.Transparent = true

	case Line:
		repeat := cfg.Repeat
		if repeat == [2]float32{} {
			repeat = [2]float32{1, 1}
		}
		ratio := cfg.DashRatio
		if ratio <= 0 {
			ratio = 0.5
		}
		p.VertexSource = vertexShader
		p.FragmentSource = lineFS
		p.Uniforms["color"] = [3]float32{cfg.Color.R, cfg.Color.G, cfg.Color.B}
		p.Uniforms["opacity"] = opacity
		p.Uniforms["repeat"] = repeat
		p.Uniforms["dashArray"] = cfg.DashArray
		p.Uniforms["dashOffset"] = cfg.DashOffset
		p.Uniforms["dashRatio"] = ratio
		p.Textures["texture0"] = mapName
		p.Transparent = true

	case Distortion:
		if cfg.Noise == "" {
			return Program{}, fmt.Errorf("materials: distortion needs a noise texture")
		}
		amount := cfg.Distortion
		if amount == 0 {
			amount = DefaultDistortion
		}
		p.VertexSource = vertexShader
		p.FragmentSource = distortionFS
		p.Uniforms["distortion"] = amount
		p.Textures["tNoise"] = cfg.Noise

	default:
		return Program{}, fmt.Errorf("materials: unknown kind %v", cfg.Kind)
	}
	return p, nil
}

// HardMixAlpha mirrors the hard-mix fragment rule on the CPU: alpha is scaled by the mean
// distance of r, g and b from 0.5 times HardMixThreshold, clamped to [0,1].
func HardMixAlpha(r, g, b, a float32) float32 {
	gray := (math32.Abs(r-0.5) + math32.Abs(g-0.5) + math32.Abs(b-0.5)) * HardMixThreshold / 3
	return min(max(a*gray, 0), 1)
}

// BakeHardMix applies the hard-mix rule and tint to img on the CPU. The renderer uses it
// when the shader cannot be compiled.
func BakeHardMix(img image.Image, tint Color) *image.RGBA {
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		// bild hands over premultiplied values
		if c.A == 0 {
			return c
		}
		fa := float32(c.A) / 255
		r := float32(c.R) / 255 / fa
		g := float32(c.G) / 255 / fa
		b := float32(c.B) / 255 / fa
		alpha := HardMixAlpha(r, g, b, fa)
		return color.RGBA{
			R: channel(r * tint.R * alpha),
			G: channel(g * tint.G * alpha),
			B: channel(b * tint.B * alpha),
			A: channel(alpha),
		}
	})
}

// Defaults are the named materials of the scene.
func Defaults() map[string]Config {
	return map[string]Config{
		"basic":   {Kind: Basic, Color: White},
		"wire":    {Kind: Wire, Color: White},
		"sprite":  {Kind: HardMix, Color: White},
		"person":  {Kind: HardMix, Color: White, Map: "person"},
		"stroke":  {Kind: Line, Color: White, Opacity: 0.5, Map: "stroke"},
		"drawing": {Kind: Distortion, Noise: "drawing", Distortion: DefaultDistortion},
	}
}
