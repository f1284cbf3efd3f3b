// Package raycast intersects orthographic rays with scene objects.
package raycast

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/geom"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// Miss is the distance reported for a ray that hits nothing.
var Miss = math.Inf(1)

// Hit is what an intersection remembers for shading. For a box, Ray is the unit ray in box
// space and Axis the local axis of the face that was entered. For a sphere, Ray and Origin
// are the world-space ray and T its parameter at the contact point.
type Hit struct {
	Ray    r3.Vec
	Origin r3.Vec
	T      float64
	Axis   int
}

// OrthoDistance returns how far along ray the entity is first met from origin, measured in
// world units. A miss returns (Miss, Hit{}) and is not an error. Cameras are never hit.
func OrthoDistance(e scene.Entity, origin, ray r3.Vec) (float64, Hit) {
	switch v := e.(type) {
	case *scene.Box:
		return boxDistance(v, origin, ray)
	case *scene.Sphere:
		return sphereDistance(v, origin, ray)
	default:
		return Miss, Hit{}
	}
}

// boxDistance is the slab test in box space.
func boxDistance(b *scene.Box, origin, ray r3.Vec) (float64, Hit) {
	basis := b.Basis()
	o := basis.MulVec(r3.Sub(origin, b.Position))
	r := basis.MulVec(ray)
	half := r3.Scale(0.5, b.Dims)

	tNear, tFar := math.Inf(-1), math.Inf(1)
	axis := -1
	for i := 0; i < 3; i++ {
		oi, ri, hi := geom.Component(o, i), geom.Component(r, i), geom.Component(half, i)
		if ri == 0 {
			if oi < -hi || oi > hi {
				return Miss, Hit{}
			}
			continue
		}
		t0 := (-hi - oi) / ri
		t1 := (hi - oi) / ri
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear, axis = t0, i
		}
		if t1 < tFar {
			tFar = t1
		}
	}
	if axis < 0 || tNear > tFar || tNear < 0 {
		return Miss, Hit{}
	}
	n := r3.Norm(r)
	return tNear * n, Hit{Ray: r3.Scale(1/n, r), Axis: axis}
}

func sphereDistance(s *scene.Sphere, origin, ray r3.Vec) (float64, Hit) {
	oc := r3.Sub(origin, s.Position)
	a := r3.Dot(ray, ray)
	b := 2 * r3.Dot(oc, ray)
	c := r3.Dot(oc, oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return Miss, Hit{}
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return Miss, Hit{}
	}
	return t * math.Sqrt(a), Hit{Ray: ray, Origin: origin, T: t}
}

// Nearest returns the index, distance and hit of the closest object along ray. Equal
// distances keep the earlier object. The index is -1 when nothing is hit.
func Nearest(objects []scene.Entity, origin, ray r3.Vec) (int, float64, Hit) {
	best, bestD := -1, Miss
	var bestHit Hit
	for i, o := range objects {
		d, h := OrthoDistance(o, origin, ray)
		if d < bestD {
			best, bestD, bestHit = i, d, h
		}
	}
	return best, bestD, bestHit
}

// Incidence is |cos| of the angle between the ray and the surface normal at the hit, in
// [0,1]. Entities that cannot be hit give -1.
func Incidence(e scene.Entity, h Hit) float64 {
	switch v := e.(type) {
	case *scene.Box:
		return math.Abs(geom.Component(h.Ray, h.Axis))
	case *scene.Sphere:
		contact := r3.Add(h.Origin, r3.Scale(h.T, h.Ray))
		normal := r3.Sub(contact, v.Position)
		nn, rn := r3.Norm(normal), r3.Norm(h.Ray)
		if nn == 0 || rn == 0 {
			return 0
		}
		return math.Abs(r3.Dot(normal, h.Ray) / (nn * rn))
	default:
		return -1
	}
}

// SimpleColor is the unshaded preview color. A box face gets the high, mid or low tier by how
// the hit axis ranks among the local ray components (largest gives high). Spheres keep their
// base color.
func SimpleColor(e scene.Entity, h Hit) shade.RGB {
	switch v := e.(type) {
	case *scene.Box:
		idx := []int{0, 1, 2}
		sort.SliceStable(idx, func(a, b int) bool {
			return math.Abs(geom.Component(h.Ray, idx[a])) < math.Abs(geom.Component(h.Ray, idx[b]))
		})
		rank := 0
		for i, ax := range idx {
			if ax == h.Axis {
				rank = i
			}
		}
		tiers := v.Tiers()
		switch rank {
		case 2:
			return tiers.High
		case 1:
			return tiers.Mid
		default:
			return tiers.Low
		}
	case *scene.Sphere:
		return v.Color().RGB()
	default:
		return shade.Black.RGB()
	}
}
