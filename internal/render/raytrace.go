package render

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/raycast"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// Options tune a raytrace.
type Options struct {
	// Simple uses the unshaded tier preview instead of incidence shading.
	Simple bool
	// Workers bounds the number of rows traced at once. 0 means one per CPU.
	Workers int
}

// Trace renders objects through cam into a Viewport-sized buffer. Pixel (i, j) casts a ray
// along the camera's forward axis from the view-plane point i steps along right and j steps
// along up, with the plane's edges sampled inclusively. Rows are traced concurrently; each
// row only writes its own pixels, so the output does not depend on Workers.
func Trace(ctx context.Context, cam *scene.Camera, objects []scene.Entity, opts Options) (*Buffer, error) {
	resX, resY := cam.Viewport[0], cam.Viewport[1]
	if resX < 2 || resY < 2 {
		return nil, errors.Wrapf(common.ErrDegenerateResolution, "viewport %dx%d", resX, resY)
	}
	right, ray, up := cam.Right(), cam.Forward(), cam.Up()
	w, h := cam.ViewPlane.X, cam.ViewPlane.Y
	stepX, stepY := w/float64(resX-1), h/float64(resY-1)
	background := cam.Color()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	buf := NewBuffer(resX, resY)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := 0; j < resY; j++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowOrigin := r3.Add(cam.Position, r3.Scale(-0.5*h+float64(j)*stepY, up))
			for i := 0; i < resX; i++ {
				origin := r3.Add(rowOrigin, r3.Scale(-0.5*w+float64(i)*stepX, right))
				buf.Set(i, j, pixel(objects, origin, ray, background, opts.Simple))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}

func pixel(objects []scene.Entity, origin, ray r3.Vec, background shade.Color, simple bool) shade.Color {
	idx, _, hit := raycast.Nearest(objects, origin, ray)
	if idx < 0 {
		return background
	}
	obj := objects[idx]
	if simple {
		return raycast.SimpleColor(obj, hit).Round()
	}
	return obj.Base().Tiers().At(raycast.Incidence(obj, hit)).Round()
}
