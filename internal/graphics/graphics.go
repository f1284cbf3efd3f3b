// Package graphics is the raylib viewer: a resizable window showing the editor's render, with
// keyboard bindings for the common edits.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const targetFPS = 60

// Run opens a w×h window and runs the main loop until it is closed. Each frame it calls
// update (input), then clears the screen and calls draw.
func Run(title string, w, h int, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), title)
	defer rl.CloseWindow()

	// ESC is a binding, not a way out; close via the window button.
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
