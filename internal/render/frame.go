package render

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// ItemKind is the shape of a wireframe item.
type ItemKind int

const (
	Line ItemKind = iota
	Circle
)

func (k ItemKind) String() string {
	if k == Circle {
		return "Circle"
	}
	return "Line"
}

// Item is one projected wireframe primitive in viewport pixel coordinates. Lines use From and
// To; circles use Center and Radius. Depth is the distance along the camera's forward axis.
type Item struct {
	Kind   ItemKind
	From   r2.Vec
	To     r2.Vec
	Center r2.Vec
	Radius float64
	Color  shade.RGB
	Depth  float64
}

// boxEdges pairs corner indices of scene.Box.Corners into the 12 box edges.
var boxEdges = [12][2]int{
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
}

// Frame projects every object to wireframe items, ordered back to front. Items behind the
// camera (negative depth) are dropped.
func Frame(cam *scene.Camera, objects []scene.Entity) []Item {
	var items []Item
	for _, o := range objects {
		items = append(items, project(cam, o, nil)...)
	}
	return depthSort(items)
}

// Outline projects a single entity drawn entirely in c, ordered and culled like Frame.
func Outline(cam *scene.Camera, e scene.Entity, c shade.Color) []Item {
	return depthSort(project(cam, e, &c))
}

func depthSort(items []Item) []Item {
	sort.SliceStable(items, func(a, b int) bool { return items[a].Depth > items[b].Depth })
	out := items[:0]
	for _, it := range items {
		if it.Depth >= 0 {
			out = append(out, it)
		}
	}
	return out
}

func project(cam *scene.Camera, e scene.Entity, override *shade.Color) []Item {
	switch v := e.(type) {
	case *scene.Box:
		return projectBox(cam, v, override)
	case *scene.Sphere:
		return projectSphere(cam, v, override)
	default:
		return nil
	}
}

// toPixel maps a camera-space point to viewport pixels.
func toPixel(cam *scene.Camera, c r3.Vec) r2.Vec {
	ratio := cam.PixelRatio()
	return r2.Vec{
		X: ratio * (c.X + cam.ViewPlane.X/2),
		Y: ratio * (c.Z + cam.ViewPlane.Y/2),
	}
}

// projectBox emits the 12 edges. Edge color is shaded by relative depth: the nearest edges
// of the box get the brightest tier.
func projectBox(cam *scene.Camera, b *scene.Box, override *shade.Color) []Item {
	var local [8]r3.Vec
	minD, maxD := math.Inf(1), math.Inf(-1)
	for n, c := range b.Corners() {
		local[n] = cam.ToCamera(c)
		minD = math.Min(minD, local[n].Y)
		maxD = math.Max(maxD, local[n].Y)
	}
	spread := math.Max(1, maxD-minD)
	tiers := b.Tiers()

	items := make([]Item, 0, len(boxEdges))
	for _, e := range boxEdges {
		p, q := local[e[0]], local[e[1]]
		depth := 0.5 * (p.Y + q.Y)
		col := tiers.At(1 - (depth-minD)/spread)
		if override != nil {
			col = override.RGB()
		}
		items = append(items, Item{
			Kind:  Line,
			From:  toPixel(cam, p),
			To:    toPixel(cam, q),
			Color: col,
			Depth: depth,
		})
	}
	return items
}

func projectSphere(cam *scene.Camera, s *scene.Sphere, override *shade.Color) []Item {
	c := cam.ToCamera(s.Position)
	col := s.Color().RGB()
	if override != nil {
		col = override.RGB()
	}
	return []Item{{
		Kind:   Circle,
		Center: toPixel(cam, c),
		Radius: cam.PixelRatio() * s.Radius,
		Color:  col,
		Depth:  c.Y,
	}}
}
