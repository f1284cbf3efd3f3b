package graphics

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Binding runs a console command when its key is pressed (or held long enough to repeat).
type Binding struct {
	Key  int32
	Line string
}

// Bindings are the viewer's keyboard shortcuts. They are ignored while the console is open.
var Bindings = []Binding{
	{rl.KeyW, "camera -move forward"},
	{rl.KeyS, "camera -move backward"},
	{rl.KeyA, "camera -move left"},
	{rl.KeyD, "camera -move right"},
	{rl.KeyE, "camera -move up"},
	{rl.KeyQ, "camera -move down"},
	{rl.KeyLeft, "camera -turn yawL"},
	{rl.KeyRight, "camera -turn yawR"},
	{rl.KeyUp, "camera -turn pitchU"},
	{rl.KeyDown, "camera -turn pitchD"},
	{rl.KeyZ, "camera -turn rollL"},
	{rl.KeyX, "camera -turn rollR"},
	{rl.KeyHome, "camera -reset"},
	{rl.KeyM, "mode"},
	{rl.KeyB, "add -type box"},
	{rl.KeyO, "add -type sphere"},
	{rl.KeyDelete, "delete"},
	{rl.KeyP, "pivot"},
	{rl.KeyC, "pivot -clear"},
	{rl.KeyK, "duplicate"},
}

// nextIndex cycles the selection through n objects: from none to the first, past the last
// back to none.
func nextIndex(cur, n int) int {
	if n == 0 || cur+1 >= n {
		return -1
	}
	return cur + 1
}

// selectLine is the console line that selects object i.
func selectLine(i int) string {
	return "select -index " + strconv.Itoa(i)
}
