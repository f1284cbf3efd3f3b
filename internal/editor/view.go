package editor

import (
	"context"
	"image"

	"cubetea/internal/render"
)

// Overlay outlines the pivot in the pivot color or, when there is no pivot, the selection in
// the select color. It returns nil when neither is set.
func (e *Editor) Overlay() []render.Item {
	cam := e.scene.Camera
	if o, ok := e.scene.At(e.pivot); ok {
		return render.Outline(cam, o, e.prefs.Pivot())
	}
	if o, ok := e.scene.At(e.selected); ok {
		return render.Outline(cam, o, e.prefs.Select())
	}
	return nil
}

// Render draws the scene in the current mode with the overlay on top, scaled by the
// configured scale factor.
func (e *Editor) Render(ctx context.Context) (image.Image, error) {
	return e.RenderMode(ctx, e.mode, false)
}

// RenderMode is Render with an explicit mode. simple selects the unshaded raytrace preview.
func (e *Editor) RenderMode(ctx context.Context, mode render.Mode, simple bool) (image.Image, error) {
	cam := e.scene.Camera
	var img *image.NRGBA
	switch mode {
	case render.Raytrace:
		buf, err := render.Trace(ctx, cam, e.scene.Objects, render.Options{Simple: simple, Workers: e.prefs.Workers})
		if err != nil {
			return nil, err
		}
		img = buf.Image()
	default:
		img = render.Rasterize(cam, render.Frame(cam, e.scene.Objects))
	}
	render.Draw(img, e.Overlay())
	return render.Scale(img, e.prefs.ScaleFactor)
}
