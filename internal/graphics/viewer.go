package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"cubetea/internal/debug"
	"cubetea/internal/editor"
	"cubetea/internal/logger"
	"cubetea/internal/render"
	"cubetea/internal/shade"
	"cubetea/internal/terminal"
)

// Viewer shows the editor's scene in a raylib window. Wireframe mode draws the frame items
// straight to the screen; raytrace mode renders an image and shows it as a texture, rebuilt
// only after something changed.
type Viewer struct {
	ed   *editor.Editor
	log  *logger.Logger
	term *terminal.Terminal
	hud  *debug.Debug

	tex   rl.Texture2D
	hasTx bool
	dirty bool
}

// NewViewer wires the console and status overlay to ed.
func NewViewer(ed *editor.Editor, log *logger.Logger) *Viewer {
	v := &Viewer{ed: ed, log: log, dirty: true}
	v.term = terminal.New(ed.Exec, ed.History)
	v.hud = debug.New(v.status)
	return v
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	vp := v.ed.Scene().Camera.Viewport
	Run("cubetea", vp[0], vp[1]+terminal.BarHeight, v.Update, v.Draw)
	v.unload()
}

func (v *Viewer) status() debug.Status {
	s := v.ed.Scene()
	st := debug.Status{Mode: v.ed.Mode().String(), Objects: s.Len()}
	if o, ok := s.At(v.ed.Selected()); ok {
		st.Selected = o.Base().Name
	}
	if o, ok := s.At(v.ed.Pivot()); ok {
		st.Pivot = o.Base().Name
	}
	return st
}

// Update handles input for one frame.
func (v *Viewer) Update() {
	if v.term.Update() {
		v.dirty = true
	}
	if v.term.IsOpen() {
		return
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		v.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.exec(selectLine(nextIndex(v.ed.Selected(), v.ed.Scene().Len())))
	}
	for _, b := range Bindings {
		if rl.IsKeyPressed(b.Key) || rl.IsKeyPressedRepeat(b.Key) {
			v.exec(b.Line)
		}
	}
}

func (v *Viewer) exec(line string) {
	// Failures are logged by the editor and show up in the console history.
	_ = v.ed.Exec(line)
	v.dirty = true
}

// Draw draws the scene, the console and the overlay.
func (v *Viewer) Draw() {
	cam := v.ed.Scene().Camera
	screenW, screenH := rl.GetScreenWidth(), rl.GetScreenHeight()
	if v.term.IsOpen() {
		screenH -= terminal.BarHeight
	}
	fit := FitTo(screenW, screenH, cam.Viewport[0], cam.Viewport[1])

	switch v.ed.Mode() {
	case render.Raytrace:
		v.drawTexture(fit)
	default:
		v.drawFrame(fit)
	}
	v.term.Draw()
	v.hud.Draw()
}

func (v *Viewer) drawFrame(fit Fit) {
	cam := v.ed.Scene().Camera
	rl.DrawRectangleRec(fit.Rect(cam.Viewport[0], cam.Viewport[1]), toColor(cam.Color()))
	drawItems(fit, render.Frame(cam, v.ed.Scene().Objects))
	drawItems(fit, v.ed.Overlay())
}

func drawItems(fit Fit, items []render.Item) {
	for _, it := range items {
		c := toColor(it.Color.Round())
		switch it.Kind {
		case render.Line:
			rl.DrawLineV(fit.Point(it.From), fit.Point(it.To), c)
		case render.Circle:
			rl.DrawCircleLinesV(fit.Point(it.Center), fit.Length(it.Radius), c)
		}
	}
}

func (v *Viewer) drawTexture(fit Fit) {
	if v.dirty || !v.hasTx {
		if err := v.reload(); err != nil {
			v.log.Error("raytrace failed", zap.Error(err))
			v.ed.SetMode(render.Wireframe)
			return
		}
	}
	cam := v.ed.Scene().Camera
	// The texture may be scaled by the editor's scale factor; fit it to the viewport size.
	scale := fit.Scale * float32(cam.Viewport[0]) / float32(v.tex.Width)
	rl.DrawTextureEx(v.tex, rl.NewVector2(fit.X, fit.Y), 0, scale, rl.White)
}

func (v *Viewer) reload() error {
	img, err := v.ed.RenderMode(context.Background(), render.Raytrace, false)
	if err != nil {
		return err
	}
	v.unload()
	rimg := rl.NewImageFromImage(img)
	v.tex = rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	v.hasTx, v.dirty = true, false
	return nil
}

func (v *Viewer) unload() {
	if v.hasTx {
		rl.UnloadTexture(v.tex)
		v.hasTx = false
	}
}

func toColor(c shade.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
