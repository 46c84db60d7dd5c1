package materials

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"white":    White,
		" Black ":  Black,
		"#f00":     {1, 0, 0},
		"#0000ff":  {0, 0, 1},
		"#FFFFFF":  White,
		"red":      {1, 0, 0},
		"#808080":  {128.0 / 255, 128.0 / 255, 128.0 / 255},
		"magenta":  {1, 0, 1},
		"#ffff00 ": {1, 1, 0},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want.R, got.R, 1e-6, in)
		assert.InDelta(t, want.G, got.G, 1e-6, in)
		assert.InDelta(t, want.B, got.B, 1e-6, in)
	}
	for _, bad := range []string{"", "chartreuse-ish", "#12", "#zzzzzz", "ff0000"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorText(t *testing.T) {
	assert.Equal(t, "#ffffff", White.Hex())
	assert.Equal(t, "#ff8000", Color{1, 0.5, 0}.Hex())
	r, g, b, a := Color{1, 0, 0}.RGBA(0.5)
	assert.Equal(t, []uint8{255, 0, 0, 128}, []uint8{r, g, b, a})

	var cfg struct {
		Tint Color `yaml:"tint"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("tint: blue\n"), &cfg))
	assert.Equal(t, Color{0, 0, 1}, cfg.Tint)
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "#0000ff")

	data, err := json.Marshal(White)
	require.NoError(t, err)
	assert.Equal(t, `"#ffffff"`, string(data))
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Basic, Wire, HardMix, Line, Distortion} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("phong")
	assert.Error(t, err)
	assert.Equal(t, "Kind(9)", Kind(9).String())

	assert.Equal(t, "Kind(0)", Kind(0).String())
	text, err := Kind(0).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "basic", string(text))

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("kind: HardMix\ncolor: red\nmap: person\n"), &cfg))
	assert.Equal(t, HardMix, cfg.Kind)
	assert.Equal(t, "person", cfg.Map)
}

func TestBuildEveryDefault(t *testing.T) {
	for name, cfg := range Defaults() {
		p, err := Build(cfg)
		require.NoError(t, err, name)
		assert.Equal(t, cfg.Kind, p.Kind, name)
		if cfg.Kind == Basic || cfg.Kind == Wire {
			assert.Empty(t, p.FragmentSource, name)
		} else {
			assert.Contains(t, p.VertexSource, "#version 330", name)
			assert.Contains(t, p.FragmentSource, "finalColor", name)
		}
	}
}

func TestBuildPrograms(t *testing.T) {
	p, err := Build(Config{Kind: Wire, Color: White})
	require.NoError(t, err)
	assert.True(t, p.Wireframe)
	assert.False(t, p.Transparent)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, p.Uniforms["colDiffuse"])

	p, err = Build(Config{Kind: HardMix, Color: White})
	require.NoError(t, err)
	assert.Equal(t, WhiteTexture, p.Textures["texture0"])
	assert.True(t, p.Transparent)
	assert.Contains(t, p.FragmentSource, "threshold 4.0")

	p, err = Build(Config{Kind: Line, Color: White, Opacity: 0.5, Map: "stroke", DashArray: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "stroke", p.Textures["texture0"])
	assert.Equal(t, float32(0.5), p.Uniforms["opacity"])
	assert.Equal(t, [2]float32{1, 1}, p.Uniforms["repeat"])
	assert.Equal(t, float32(0.5), p.Uniforms["dashRatio"])
	assert.Equal(t, float32(0.1), p.Uniforms["dashArray"])

	p, err = Build(Config{Kind: Distortion, Noise: "drawing"})
	require.NoError(t, err)
	assert.Equal(t, float32(DefaultDistortion), p.Uniforms["distortion"])
	assert.Equal(t, "drawing", p.Textures["tNoise"])

	_, err = Build(Config{Kind: Distortion})
	assert.Error(t, err)
	_, err = Build(Config{Kind: Kind(42)})
	assert.Error(t, err)

	p, err = Build(Config{Color: White})
	require.NoError(t, err)
	assert.Equal(t, Basic, p.Kind)
}

func TestHardMixAlpha(t *testing.T) {
	assert.InDelta(t, 0, HardMixAlpha(0.5, 0.5, 0.5, 1), 1e-6)
	assert.InDelta(t, 1, HardMixAlpha(1, 1, 1, 1), 1e-6)
	assert.InDelta(t, 1, HardMixAlpha(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, 0.5, HardMixAlpha(0.625, 0.625, 0.625, 1), 1e-6)
	assert.InDelta(t, 0.25, HardMixAlpha(0.625, 0.625, 0.625, 0.5), 1e-6)
	assert.InDelta(t, 0, HardMixAlpha(1, 1, 1, 0), 1e-6)
}

func TestBakeHardMix(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{128, 128, 128, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})
	img.Set(2, 0, color.RGBA{255, 255, 255, 255})

	out := BakeHardMix(img, Color{1, 0, 0})
	require.Equal(t, img.Bounds(), out.Bounds())
	assert.LessOrEqual(t, out.RGBAAt(0, 0).A, uint8(2))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(2, 0))
}
