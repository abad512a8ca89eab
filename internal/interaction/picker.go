package interaction

import (
	"math"

	"github.com/san-kum/orrery/internal/geom"
)

// Sphere is a pickable bounding sphere.
type Sphere struct {
	Name   string
	Center geom.Vec3
	Radius float64
}

// SpherePicker casts a ray through the pointer and picks the nearest sphere.
// Spheres is refreshed by the owner every frame.
type SpherePicker struct {
	Cast    func(ndc geom.Vec2) geom.Ray
	Spheres []Sphere
}

func (p *SpherePicker) Pick(ndc geom.Vec2) (string, bool) {
	return Nearest(p.Cast(ndc), p.Spheres)
}

// Nearest returns the sphere hit closest to the ray origin.
func Nearest(ray geom.Ray, spheres []Sphere) (string, bool) {
	best, name := math.Inf(1), ""
	for _, s := range spheres {
		t, ok := ray.IntersectSphere(s.Center, s.Radius)
		if ok && t < best {
			best, name = t, s.Name
		}
	}
	return name, name != ""
}
