package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"svgflow/internal/gpu"
)

// Composer renders the scene off screen and draws the result through a post-process
// material, the drawing distortion pass.
type Composer struct {
	target rl.RenderTexture2D
	cache  *gpu.Cache
	pass   *gpu.Material
	// Noise returns the texture bound to the pass's tNoise sampler for this frame.
	Noise func() rl.Texture2D
	// Bypass draws the scene directly, skipping the pass.
	Bypass bool
}

// NewComposer allocates a render target of the given size. pass may be nil to draw the
// frame unchanged.
func NewComposer(width, height int, cache *gpu.Cache, pass *gpu.Material) *Composer {
	return &Composer{
		target: rl.LoadRenderTexture(int32(width), int32(height)),
		cache:  cache,
		pass:   pass,
	}
}

// Render draws the scene via drawScene into the render target, then blits it to the
// screen through the pass. Call between BeginDrawing and EndDrawing.
func (c *Composer) Render(drawScene func()) {
	if c.Bypass || c.pass == nil {
		drawScene()
		return
	}
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Black)
	drawScene()
	rl.EndTextureMode()

	c.cache.Begin(c.pass)
	if c.Noise != nil {
		c.cache.SetTexture(c.pass, "tNoise", c.Noise())
	}
	tex := c.target.Texture
	// render textures are stored bottom-up
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTextureRec(tex, src, rl.NewVector2(0, 0), rl.White)
	c.cache.End(c.pass)
}

// Unload frees the render target.
func (c *Composer) Unload() {
	rl.UnloadRenderTexture(c.target)
}
