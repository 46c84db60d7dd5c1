package gpu

import (
	"image"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"svgflow/internal/assets"
	"svgflow/internal/logger"
	"svgflow/internal/materials"
)

// Material is a compiled materials.Program. Programs without sources, and programs whose
// shader fails to compile (Fallback), draw with raylib's default shader; hard-mix textures
// are then baked on the CPU instead.
type Material struct {
	Name     string
	Program  materials.Program
	Config   materials.Config
	Shader   rl.Shader
	Fallback bool
	custom   bool
}

// Cache maps asset and material names to GPU resources. Resources are created on first
// use so that they are allocated after the window/OpenGL context exists.
type Cache struct {
	assets    *assets.Registry
	log       *logger.Logger
	textures  map[string]rl.Texture2D
	frames    map[string][]rl.Texture2D
	materials map[string]*Material
}

// NewCache returns an empty cache reading images from reg.
func NewCache(reg *assets.Registry, log *logger.Logger) *Cache {
	return &Cache{
		assets:    reg,
		log:       log,
		textures:  make(map[string]rl.Texture2D),
		frames:    make(map[string][]rl.Texture2D),
		materials: make(map[string]*Material),
	}
}

func upload(img image.Image) rl.Texture2D {
	ri := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(ri)
	rl.UnloadImage(ri)
	return tex
}

// Texture returns the texture for a still asset, uploading it on first use. Unknown names
// fall back to the white texture.
func (c *Cache) Texture(name string) rl.Texture2D {
	if tex, ok := c.textures[name]; ok {
		return tex
	}
	img, ok := c.assets.Image(name)
	if !ok {
		if name == materials.WhiteTexture {
			return rl.Texture2D{}
		}
		c.log.Logf("gpu: no texture %q, using white", name)
		tex := c.Texture(materials.WhiteTexture)
		c.textures[name] = tex
		return tex
	}
	tex := upload(img)
	c.textures[name] = tex
	return tex
}

// baked returns name with the hard-mix rule applied on the CPU.
func (c *Cache) baked(name string, tint materials.Color) rl.Texture2D {
	key := name + "#hardmix" + tint.Hex()
	if tex, ok := c.textures[key]; ok {
		return tex
	}
	img, ok := c.assets.Image(name)
	if !ok {
		return c.Texture(name)
	}
	tex := upload(materials.BakeHardMix(img, tint))
	c.textures[key] = tex
	return tex
}

// Frame returns flipbook frame i, uploading every frame on first use. A still asset of
// the same name stands in when there is no flipbook.
func (c *Cache) Frame(name string, i int) rl.Texture2D {
	frames, ok := c.frames[name]
	if !ok {
		fb, found := c.assets.Flipbook(name)
		if !found {
			return c.Texture(name)
		}
		for _, img := range fb.Frames {
			frames = append(frames, upload(img))
		}
		c.frames[name] = frames
	}
	if len(frames) == 0 {
		return c.Texture(materials.WhiteTexture)
	}
	return frames[i%len(frames)]
}

// Material builds and compiles the config under name once and returns it.
func (c *Cache) Material(name string, cfg materials.Config) (*Material, error) {
	if m, ok := c.materials[name]; ok {
		return m, nil
	}
	p, err := materials.Build(cfg)
	if err != nil {
		return nil, err
	}
	m := &Material{Name: name, Program: p, Config: cfg}
	if p.VertexSource != "" {
		shader := rl.LoadShaderFromMemory(p.VertexSource, p.FragmentSource)
		if rl.IsShaderValid(shader) {
			m.Shader = shader
			m.custom = true
		} else {
			m.Fallback = true
			c.log.Logf("gpu: %s shader did not compile, using default shader", name)
		}
	}
	c.materials[name] = m
	return m, nil
}

// bind uploads the program's uniforms in name order.
func (c *Cache) bind(m *Material) {
	if !m.custom {
		return
	}
	names := make([]string, 0, len(m.Program.Uniforms))
	for n := range m.Program.Uniforms {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		data, size, ok := uniform(m.Program.Uniforms[n])
		loc := rl.GetShaderLocation(m.Shader, n)
		if !ok || loc < 0 {
			continue
		}
		switch size {
		case 1:
			rl.SetShaderValue(m.Shader, loc, data, rl.ShaderUniformFloat)
		case 2:
			rl.SetShaderValueV(m.Shader, loc, data, rl.ShaderUniformVec2, 1)
		case 3:
			rl.SetShaderValueV(m.Shader, loc, data, rl.ShaderUniformVec3, 1)
		case 4:
			rl.SetShaderValueV(m.Shader, loc, data, rl.ShaderUniformVec4, 1)
		}
	}
}

// diffuse is the texture bound to texture0 for m.
func (c *Cache) diffuse(m *Material) rl.Texture2D {
	name, ok := m.Program.Textures["texture0"]
	if !ok {
		return rl.Texture2D{}
	}
	if m.Fallback && m.Program.Kind == materials.HardMix {
		return c.baked(name, m.Config.Color)
	}
	return c.Texture(name)
}

// SetTexture binds tex to a sampler uniform other than texture0 (e.g. the noise map).
func (c *Cache) SetTexture(m *Material, sampler string, tex rl.Texture2D) {
	if !m.custom {
		return
	}
	if loc := rl.GetShaderLocation(m.Shader, sampler); loc >= 0 {
		rl.SetShaderValueTexture(m.Shader, loc, tex)
	}
}

// Begin activates m's shader and uploads its uniforms. Pair with End.
func (c *Cache) Begin(m *Material) {
	if !m.custom {
		return
	}
	rl.BeginShaderMode(m.Shader)
	c.bind(m)
}

// End deactivates m's shader.
func (c *Cache) End(m *Material) {
	if m.custom {
		rl.EndShaderMode()
	}
}

// Draw draws b with m, translated to pos and rotated by angle degrees about Z. Must be
// called between BeginMode3D and EndMode3D. A nil material draws nothing.
func (c *Cache) Draw(b Buffers, m *Material, pos rl.Vector3, angle float32) {
	if m == nil || len(b.Indices) == 0 {
		return
	}
	if m.Program.Wireframe {
		rl.EnableWireMode()
		defer rl.DisableWireMode()
	}
	if m.Program.Transparent {
		rl.DisableDepthMask()
		defer rl.EnableDepthMask()
	}
	c.Begin(m)
	defer c.End(m)

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle, 0, 0, 1)

	tex := c.diffuse(m)
	rl.SetTexture(tex.ID)
	col := tint(m.Program.Uniforms)
	rl.Begin(rl.Triangles)
	rl.Color4ub(col[0], col[1], col[2], col[3])
	for _, i := range b.Indices {
		uv := b.Texcoords[i]
		v := b.Vertices[i]
		rl.TexCoord2f(uv[0], uv[1])
		rl.Vertex3f(v.X, v.Y, v.Z)
	}
	rl.End()
	rl.SetTexture(0)
	rl.PopMatrix()
}

// Unload frees every GPU resource the cache created.
func (c *Cache) Unload() {
	seen := map[uint32]bool{}
	for _, tex := range c.textures {
		if tex.ID != 0 && !seen[tex.ID] {
			seen[tex.ID] = true
			rl.UnloadTexture(tex)
		}
	}
	for _, frames := range c.frames {
		for _, tex := range frames {
			rl.UnloadTexture(tex)
		}
	}
	for _, m := range c.materials {
		if m.custom {
			rl.UnloadShader(m.Shader)
		}
	}
	c.textures = map[string]rl.Texture2D{}
	c.frames = map[string][]rl.Texture2D{}
	c.materials = map[string]*Material{}
}
