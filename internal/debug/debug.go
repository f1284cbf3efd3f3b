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
	// updateInterval: FPS and memory text are refreshed every N frames.
	updateInterval = 30
)

// Status is what the overlay reports about the editing session.
type Status struct {
	Mode     string
	Selected string
	Pivot    string
	Objects  int
}

// Lines formats s for display, one fact per line.
func (s Status) Lines() []string {
	out := []string{fmt.Sprintf("%s | %d objects", s.Mode, s.Objects)}
	if s.Selected != "" {
		out = append(out, "selected: "+s.Selected)
	}
	if s.Pivot != "" {
		out = append(out, "pivot: "+s.Pivot)
	}
	return out
}

// Debug draws the viewer's top-right overlay: FPS, heap size and the session status.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	status       func() Status
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns an overlay that shows status() every frame. FPS and memory are off.
func New(status func() Status) *Debug {
	return &Debug{status: status}
}

// Toggle flips the FPS and memory counters together.
func (d *Debug) Toggle() {
	d.ShowFPS = !d.ShowFPS
	d.ShowMemAlloc = d.ShowFPS
}

// Draw renders the overlay. Call after the scene so it stays on top.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.lastFpsText == "") ||
		(d.ShowMemAlloc && d.lastMemText == "")

	var lines []string
	if d.status != nil {
		lines = d.status().Lines()
	}
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		lines = append(lines, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		lines = append(lines, d.lastMemText)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
