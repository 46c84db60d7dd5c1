package scene

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"svgflow/internal/config"
	"svgflow/internal/curves"
	"svgflow/internal/follow"
	"svgflow/internal/gpu"
	"svgflow/internal/logger"
	"svgflow/internal/materials"
	"svgflow/internal/tube"
)

const (
	// cameraDistance keeps every curve depth between the near and far planes.
	cameraDistance = 500
	axesLength     = 25
	axisLineAlpha  = 220
	// tubeDepthSteps pushes tubes this many z-offsets behind the sprite.
	tubeDepthSteps = 10
)

// Tube is one curve's ribbon, ready to draw.
type Tube struct {
	ID      string
	Mesh    *tube.Mesh
	Buffers gpu.Buffers
}

// Scene holds the orthographic camera, the tubes and the sprite that follows the chosen
// curve. Build is pure; GPU work starts once Attach hands over a cache.
type Scene struct {
	Camera    rl.Camera3D
	Width     float32
	Height    float32
	Curves    curves.Collection
	Chosen    *curves.Curve
	Tubes     []Tube
	Follower  *follow.Follower
	ShowAxes  bool
	Wireframe bool

	tubeZ          float32
	sprite         gpu.Buffers
	spriteMaterial string
	materials      map[string]materials.Config
	cache          *gpu.Cache
	log            *logger.Logger
}

// NewCamera returns an orthographic camera mapping world (0,0) to the top-left corner and
// (w,h) to the bottom-right, like a screen.
func NewCamera(w, h float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(w/2, h/2, -cameraDistance),
		Target:     rl.NewVector3(w/2, h/2, 0),
		Up:         rl.NewVector3(0, -1, 0),
		Fovy:       h,
		Projection: rl.CameraOrthographic,
	}
}

// Build lays out a scene from cfg and the built curves: one tube per curve and a sprite on
// cfg.Follow. It fails when the followed id is missing or a tube is degenerate.
func Build(cfg config.Scene, col curves.Collection, log *logger.Logger) (*Scene, error) {
	chosen, ok := col[cfg.Follow]
	if !ok {
		return nil, fmt.Errorf("scene: no path %q to follow (have %v)", cfg.Follow, col.IDs())
	}
	mats, err := cfg.MaterialConfigs()
	if err != nil {
		return nil, err
	}
	// the tube style owns the stroke material
	style := cfg.TubeStyle()
	mats["stroke"] = style.Material()

	w, h := float32(cfg.Width), float32(cfg.Height)
	s := &Scene{
		Camera:         NewCamera(w, h),
		Width:          w,
		Height:         h,
		Curves:         col,
		Chosen:         chosen,
		Follower:       &follow.Follower{QuietPeriod: cfg.QuietPeriod, Speed: cfg.Speed},
		tubeZ:          -cfg.ZOffset * tubeDepthSteps,
		sprite:         gpu.QuadBuffers(cfg.Sprite.Width, cfg.Sprite.Height),
		spriteMaterial: cfg.Sprite.Material,
		materials:      mats,
		log:            log,
	}
	for _, id := range col.IDs() {
		m, err := tube.Build(col[id], style)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.Tubes = append(s.Tubes, Tube{ID: id, Mesh: m, Buffers: gpu.RibbonBuffers(m.Expand(m.WorldWidth(h)))})
	}
	log.Logf("scene: %d tubes, following %s (length %.1f)", len(s.Tubes), cfg.Follow, chosen.Length())
	return s, nil
}

// Attach hands the scene its GPU cache. Call after the window exists.
func (s *Scene) Attach(cache *gpu.Cache) {
	s.cache = cache
}

// SpritePose is where the sprite sits at arc-length fraction offset: the curve point and
// the tangent angle in degrees about Z.
func SpritePose(c *curves.Curve, offset float32) (curves.Point3D, float32) {
	p := c.PointAt(offset)
	t := c.TangentAt(offset)
	return p, math32.Atan2(t.Y, t.X) * 180 / math32.Pi
}

// Update runs once per frame: pointer movement switches the follower to manual scrubbing,
// then the follower advances.
func (s *Scene) Update(now time.Time) {
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		if sw := float32(rl.GetScreenWidth()); sw > 0 {
			s.Follower.PointerMoved(now, rl.GetMousePosition().X/sw)
		}
	}
	s.Follower.Tick(now, s.Chosen.Length())
}

// material compiles the named material, falling back to basic white when its config is
// invalid. It returns nil, after logging, when even the fallback cannot be built.
func (s *Scene) material(name string) *gpu.Material {
	cfg, ok := s.materials[name]
	if !ok {
		cfg = materials.Config{Kind: materials.Basic, Color: materials.White}
	}
	if s.Wireframe {
		cfg.Kind = materials.Wire
		name = "wire:" + name
	}
	m, err := s.cache.Material(name, cfg)
	if err == nil {
		return m
	}
	s.log.Logf("scene: material %s: %v", name, err)
	m, err = s.cache.Material("basic", materials.Config{Kind: materials.Basic, Color: materials.White})
	if err != nil {
		s.log.Logf("scene: fallback material: %v", err)
		return nil
	}
	return m
}

// Draw renders the tubes, the sprite and the axes helper. Call between BeginDrawing (or
// BeginTextureMode) and the 2D overlay.
func (s *Scene) Draw() {
	if s.cache == nil {
		return
	}
	rl.BeginMode3D(s.Camera)
	if stroke := s.material("stroke"); stroke != nil {
		for _, t := range s.Tubes {
			s.cache.Draw(t.Buffers, stroke, rl.NewVector3(0, 0, s.tubeZ), 0)
		}
	}
	if sprite := s.material(s.spriteMaterial); sprite != nil {
		pos, angle := SpritePose(s.Chosen, s.Follower.Offset())
		s.cache.Draw(s.sprite, sprite, rl.NewVector3(pos.X, pos.Y, pos.Z), angle)
	}
	if s.ShowAxes {
		drawAxes()
	}
	rl.EndMode3D()
}

// drawAxes draws the X (red), Y (green) and Z (blue) axes from the origin.
func drawAxes() {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(axesLength, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, axesLength, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, axesLength), rl.NewColor(80, 80, 220, axisLineAlpha))
}
