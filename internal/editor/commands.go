package editor

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/commands"
	"cubetea/internal/geom"
	"cubetea/internal/primitives"
	"cubetea/internal/render"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// registerCommands wires every console command. Commands registered through edit autosave the
// scene after they succeed.
func (e *Editor) registerCommands() *commands.Registry {
	r := commands.NewRegistry()
	edit := func(name, summary string, build func(fs *flag.FlagSet) commands.RunFunc) {
		r.Register(name, summary, func(fs *flag.FlagSet) commands.RunFunc {
			run := build(fs)
			return func(args []string) error {
				if err := run(args); err != nil {
					return err
				}
				e.autosave()
				return nil
			}
		})
	}

	edit("add", "add a primitive in front of the camera", func(fs *flag.FlagSet) commands.RunFunc {
		typ := fs.String("type", primitives.TypeBox, "primitive type (box or sphere)")
		return func([]string) error {
			_, err := e.Add(*typ)
			return err
		}
	})
	edit("delete", "delete an object (default: the selection)", func(fs *flag.FlagSet) commands.RunFunc {
		idx := fs.Int("index", NoIndex, "object index")
		return func([]string) error {
			i := *idx
			if i == NoIndex {
				i = e.selected
			}
			if i == NoIndex {
				return errNoSelection
			}
			return e.Delete(i)
		}
	})
	edit("duplicate", "copy the selection", func(fs *flag.FlagSet) commands.RunFunc {
		return func([]string) error {
			_, err := e.Duplicate()
			return err
		}
	})
	r.Register("select", "select an object by index (-1 clears)", func(fs *flag.FlagSet) commands.RunFunc {
		idx := fs.Int("index", NoIndex, "object index")
		return func(args []string) error {
			i := *idx
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrap(err, "select")
				}
				i = n
			}
			return e.Select(i)
		}
	})
	r.Register("pivot", "use an object as rotation pivot (default: the selection, -clear to drop)", func(fs *flag.FlagSet) commands.RunFunc {
		idx := fs.Int("index", NoIndex, "object index")
		drop := fs.Bool("clear", false, "drop the pivot")
		return func([]string) error {
			switch {
			case *drop:
				return e.SetPivot(NoIndex)
			case *idx != NoIndex:
				return e.SetPivot(*idx)
			case e.selected == NoIndex:
				return errNoSelection
			}
			return e.SetPivot(e.selected)
		}
	})
	edit("name", "rename the selection", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			o, err := e.selection()
			if err != nil {
				return err
			}
			o.Base().Name = strings.Join(args, " ")
			return nil
		}
	})
	edit("move", "translate the selection: move DX DY DZ", func(fs *flag.FlagSet) commands.RunFunc {
		return e.withVec(func(o scene.Entity, v r3.Vec) error {
			o.Base().Translate(v)
			return nil
		})
	})
	edit("position", "place the selection: position X Y Z", func(fs *flag.FlagSet) commands.RunFunc {
		return e.withVec(func(o scene.Entity, v r3.Vec) error {
			o.Base().SetPosition(v)
			return nil
		})
	})
	edit("euler", "set the selection's orientation from degrees: euler X Y Z", func(fs *flag.FlagSet) commands.RunFunc {
		return e.withVec(func(o scene.Entity, v r3.Vec) error {
			o.Base().SetEuler(v)
			return nil
		})
	})
	edit("dims", "resize the selected box: dims X Y Z", func(fs *flag.FlagSet) commands.RunFunc {
		return e.withVec(func(o scene.Entity, v r3.Vec) error {
			b, ok := o.(*scene.Box)
			if !ok {
				return errors.Errorf("%s is not a box", o.Base().Name)
			}
			return b.SetDims(v)
		})
	})
	edit("rotate", "rotate the selection about an axis, around the pivot if set", func(fs *flag.FlagSet) commands.RunFunc {
		axis := fs.String("axis", "z", "x, y, z or a vector \"x,y,z\"")
		deg := fs.Float64("deg", e.prefs.RotationStepDeg, "angle in degrees")
		return func([]string) error {
			a, err := parseAxis(*axis)
			if err != nil {
				return err
			}
			return e.RotateSelection(a, *deg)
		}
	})
	edit("quat", "set the selection's orientation: quat W X Y Z", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			o, err := e.selection()
			if err != nil {
				return err
			}
			v, err := parseFloats(args, 4)
			if err != nil {
				return err
			}
			q := geom.NewQuat(v[0], v[1], v[2], v[3])
			if q.Norm() == 0 {
				return errors.New("quaternion must not be zero")
			}
			o.Base().SetOrientation(q.Normalize())
			return nil
		}
	})
	edit("color", "set the selection's color: color R G B", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			o, err := e.selection()
			if err != nil {
				return err
			}
			c, err := parseColor(args)
			if err != nil {
				return err
			}
			o.Base().SetColor(c)
			return nil
		}
	})
	edit("radius", "resize the selected sphere: radius R", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			o, err := e.selection()
			if err != nil {
				return err
			}
			s, ok := o.(*scene.Sphere)
			if !ok {
				return errors.Errorf("%s is not a sphere", o.Base().Name)
			}
			v, err := parseFloats(args, 1)
			if err != nil {
				return err
			}
			return s.SetRadius(v[0])
		}
	})
	edit("camera", "move, turn, reset or reshape the camera", func(fs *flag.FlagSet) commands.RunFunc {
		move := fs.String("move", "", "up, down, forward, backward, left or right")
		turn := fs.String("turn", "", "rollL, rollR, pitchU, pitchD, yawL or yawR")
		steps := fs.Int("steps", 1, "repeat -move/-turn this many times")
		reset := fs.Bool("reset", false, "return to the home position")
		plane := fs.String("plane", "", "view plane size in world units, WxH")
		viewport := fs.String("viewport", "", "output resolution in pixels, WxH")
		background := fs.String("color", "", "background color, R,G,B")
		return func([]string) error {
			return e.cameraCommand(*move, *turn, *steps, *reset, *plane, *viewport, *background)
		}
	})
	r.Register("mode", "switch render mode: mode wireframe|raytrace (no argument toggles)", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			if len(args) == 0 {
				if e.mode == render.Raytrace {
					e.mode = render.Wireframe
				} else {
					e.mode = render.Raytrace
				}
				return nil
			}
			m, err := render.ParseMode(args[0])
			if err != nil {
				return err
			}
			e.mode = m
			return nil
		}
	})
	r.Register("render", "render the view to an image file", func(fs *flag.FlagSet) commands.RunFunc {
		out := fs.String("o", "render.png", "output file (.png, .jpg, .bmp or .tiff)")
		simple := fs.Bool("simple", false, "unshaded raytrace preview")
		mode := fs.String("mode", "", "wireframe or raytrace (default: current mode)")
		return func([]string) error {
			m := e.mode
			if *mode != "" {
				var err error
				if m, err = render.ParseMode(*mode); err != nil {
					return err
				}
			}
			if *simple {
				m = render.Raytrace
			}
			return e.renderTo(*out, m, *simple)
		}
	})
	edit("new", "start over with the default scene", func(fs *flag.FlagSet) commands.RunFunc {
		return func([]string) error {
			e.NewScene()
			return nil
		}
	})
	r.Register("save", "save the scene: save PATH", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			if len(args) != 1 {
				return errors.New("save needs a path")
			}
			return e.Save(args[0])
		}
	})
	edit("load", "load a scene: load PATH", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			if len(args) != 1 {
				return errors.New("load needs a path")
			}
			return e.Load(args[0])
		}
	})
	r.Register("help", "list commands or show one command's flags", func(fs *flag.FlagSet) commands.RunFunc {
		return func(args []string) error {
			if len(args) == 1 {
				u, err := r.Usage(args[0])
				if err != nil {
					return err
				}
				e.log.Log(u)
				return nil
			}
			for _, n := range r.Names() {
				e.log.Log(n + ": " + r.Summary(n))
			}
			return nil
		}
	})
	return r
}

// withVec runs fn on the selection with three positional numbers.
func (e *Editor) withVec(fn func(o scene.Entity, v r3.Vec) error) commands.RunFunc {
	return func(args []string) error {
		o, err := e.selection()
		if err != nil {
			return err
		}
		f, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		return fn(o, r3.Vec{X: f[0], Y: f[1], Z: f[2]})
	}
}

func (e *Editor) cameraCommand(move, turn string, steps int, reset bool, plane, viewport, background string) error {
	cam := e.scene.Camera
	if reset {
		cam.Reset()
	}
	for i := 0; i < steps; i++ {
		if move != "" {
			if err := e.MoveCamera(move); err != nil {
				return err
			}
		}
		if turn != "" {
			if err := e.TurnCamera(turn); err != nil {
				return err
			}
		}
	}
	if plane != "" {
		w, h, err := parsePair(plane)
		if err != nil {
			return err
		}
		if err := cam.SetViewPlane(r2.Vec{X: w, Y: h}); err != nil {
			return err
		}
	}
	if viewport != "" {
		w, h, err := parsePair(viewport)
		if err != nil {
			return err
		}
		if w != float64(int(w)) || h != float64(int(h)) {
			return errors.Errorf("viewport %q must be whole pixels", viewport)
		}
		if err := cam.SetViewport([2]int{int(w), int(h)}); err != nil {
			return err
		}
	}
	if background != "" {
		c, err := parseColor(strings.Split(background, ","))
		if err != nil {
			return err
		}
		cam.SetColor(c)
	}
	return nil
}

func (e *Editor) renderTo(path string, m render.Mode, simple bool) error {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := e.RenderMode(context.Background(), m, simple)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create render output")
	}
	if err := render.Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	e.log.Info("rendered", zap.String("path", path), zap.Stringer("mode", m))
	return nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, errors.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		out[i] = v
	}
	return out, nil
}

func parseColor(args []string) (shade.Color, error) {
	v, err := parseFloats(args, 3)
	if err != nil {
		return shade.Color{}, err
	}
	return shade.ColorFromArray([3]float64{v[0], v[1], v[2]}), nil
}

// parsePair reads "WxH".
func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	v, err := parseFloats(parts, 2)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "%q is not WxH", s)
	}
	return v[0], v[1], nil
}

func parseAxis(s string) (r3.Vec, error) {
	switch strings.ToLower(s) {
	case "x":
		return r3.Vec{X: 1}, nil
	case "y":
		return r3.Vec{Y: 1}, nil
	case "z":
		return r3.Vec{Z: 1}, nil
	}
	v, err := parseFloats(strings.Split(s, ","), 3)
	if err != nil {
		return r3.Vec{}, errors.Wrapf(err, "axis %q", s)
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
