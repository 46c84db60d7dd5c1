package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Status is the follow state shown by the mode line.
type Status struct {
	Mode   string
	Offset float32
	Path   string
}

// Debug draws the runtime overlays (FPS, heap, follow mode) at the top right. All
// overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowMode     bool

	frameCount   uint32
	fpsText      string
	memText      string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Lines returns the overlay text for this frame. FPS and heap text are only recomputed
// every updateInterval frames; the mode line changes every frame.
func (d *Debug) Lines(fps int32, st Status) []string {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	var out []string
	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", fps)
		}
		out = append(out, d.fpsText)
	}
	if d.ShowMemAlloc {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		out = append(out, d.memText)
	}
	if d.ShowMode {
		out = append(out, fmt.Sprintf("%s %s %.3f", st.Path, st.Mode, st.Offset))
	}
	return out
}

// Draw renders the enabled overlays. Call after the scene in the draw loop.
func (d *Debug) Draw(st Status) {
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.Lines(rl.GetFPS(), st) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
