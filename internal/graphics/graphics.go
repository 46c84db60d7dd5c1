package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the viewer window.
type Window struct {
	Width  int
	Height int
	Title  string
	// HighDPI requests a framebuffer at the monitor's pixel density.
	HighDPI bool
}

// Run opens the window and runs the main loop. Each frame it calls update (input,
// animation), then clears the screen and calls draw. setup runs once after the window
// and OpenGL context exist, teardown once before the window closes.
func Run(w Window, setup func() error, update, draw func(), teardown func()) error {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if w.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}
	if teardown != nil {
		defer teardown()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	return nil
}
