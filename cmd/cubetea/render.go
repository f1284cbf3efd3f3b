package main

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cubetea/internal/render"
)

var renderOpts struct {
	out     string
	mode    string
	simple  bool
	scale   float64
	workers int
}

var renderCmd = &cobra.Command{
	Use:   "render SCENE",
	Short: "Render a scene file to an image",
	Long:  `Render a scene as a wireframe or a raytrace. The output format follows the file extension: .png, .jpg, .bmp or .tiff.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.out, "out", "o", "render.png", "output image")
	f.StringVarP(&renderOpts.mode, "mode", "m", "raytrace", "wireframe or raytrace")
	f.BoolVar(&renderOpts.simple, "simple", false, "unshaded raytrace preview")
	f.Float64Var(&renderOpts.scale, "scale", 0, "scale factor (default: from preferences)")
	f.IntVar(&renderOpts.workers, "workers", -1, "raytrace workers, 0 for one per CPU (default: from preferences)")
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := render.ParseMode(renderOpts.mode)
	if err != nil {
		return err
	}
	format, err := render.FormatFromPath(renderOpts.out)
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	sc, err := s.store.Load(args[0])
	if err != nil {
		return err
	}
	cam := sc.Camera
	var img *image.NRGBA
	switch mode {
	case render.Raytrace:
		workers := s.prefs.Workers
		if renderOpts.workers >= 0 {
			workers = renderOpts.workers
		}
		buf, err := render.Trace(cmd.Context(), cam, sc.Objects, render.Options{Simple: renderOpts.simple, Workers: workers})
		if err != nil {
			return err
		}
		img = buf.Image()
	default:
		img = render.Rasterize(cam, render.Frame(cam, sc.Objects))
	}

	scale := s.prefs.ScaleFactor
	if renderOpts.scale > 0 {
		scale = renderOpts.scale
	}
	out, err := render.Scale(img, scale)
	if err != nil {
		return err
	}
	f, err := os.Create(renderOpts.out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := render.Encode(f, out, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
