// Package follow decides where along the chosen curve the sprite sits: it advances on its
// own (Auto) until the pointer moves, then tracks the pointer (Manual) until the pointer
// has been still for QuietPeriod.
package follow

import (
	"time"

	"github.com/chewxy/math32"
)

// Mode is the follow state.
type Mode int

const (
	Auto Mode = iota
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto"
}

const (
	// DefaultQuietPeriod is how long the pointer must rest before Auto resumes.
	DefaultQuietPeriod = time.Second
	// DefaultSpeed is the distance travelled per tick, in curve units.
	DefaultSpeed = 3
)

// Follower holds the path offset in [0,1). It is driven from the frame loop only and is
// not safe for concurrent use.
type Follower struct {
	QuietPeriod time.Duration
	Speed       float32

	mode     Mode
	offset   float32
	lastMove time.Time
}

// New returns a Follower in Auto mode at offset 0 with the default tuning.
func New() *Follower {
	return &Follower{QuietPeriod: DefaultQuietPeriod, Speed: DefaultSpeed}
}

// Mode is the current state.
func (f *Follower) Mode() Mode { return f.mode }

// Offset is the current arc-length fraction along the curve.
func (f *Follower) Offset() float32 { return f.offset }

// PointerMoved jumps to x (a fraction of the window width, clamped to [0,1]) and enters
// Manual mode.
func (f *Follower) PointerMoved(now time.Time, x float32) {
	f.offset = math32.Max(0, math32.Min(1, x))
	f.mode = Manual
	f.lastMove = now
}

// Tick runs once per frame. It returns to Auto once QuietPeriod has passed since the last
// pointer move, and in Auto advances by Speed/curveLength, wrapping at 1. It returns the
// offset to draw at.
func (f *Follower) Tick(now time.Time, curveLength float32) float32 {
	if f.mode == Manual && now.Sub(f.lastMove) >= f.QuietPeriod {
		f.mode = Auto
	}
	if f.mode == Auto && curveLength > 0 {
		f.offset = math32.Mod(f.offset+f.Speed/curveLength, 1)
	}
	return f.offset
}
