package viz

import (
	"math"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/interaction"
)

// extentPerDistance converts camera distance to the half-width of the
// visible world square.
const extentPerDistance = 2.0

// minPickSub is the smallest pick radius in sub-pixels, so tiny planets
// remain hoverable.
const minPickSub = 3.0

// View maps the XZ plane onto a canvas, looking down -Y. It follows the
// camera rig: the look-at target is the center and the camera distance sets
// the zoom.
type View struct {
	Center geom.Vec3
	Half   float64 // world half-extent of the shorter canvas side
	SubW   int
	SubH   int
}

// Follow re-centers the view on the rig.
func (v *View) Follow(r *camera.Rig) {
	v.Center = r.Target
	v.Half = r.Distance() * extentPerDistance
}

// Scale is sub-pixels per world unit.
func (v *View) Scale() float64 {
	m := float64(min(v.SubW, v.SubH))
	if v.Half <= 0 || m == 0 {
		return 1
	}
	return m / 2 / v.Half
}

// ToSub maps a world point to sub-pixel coordinates.
func (v *View) ToSub(p geom.Vec3) (int, int) {
	s := v.Scale()
	x := float64(v.SubW)/2 + (p.X-v.Center.X)*s
	y := float64(v.SubH)/2 + (p.Z-v.Center.Z)*s
	return int(math.Round(x)), int(math.Round(y))
}

// NDC maps a sub-pixel to normalized device coordinates.
func (v *View) NDC(x, y int) geom.Vec2 {
	if v.SubW == 0 || v.SubH == 0 {
		return geom.Vec2{}
	}
	return geom.Vec2{
		X: float64(x)/float64(v.SubW)*2 - 1,
		Y: -(float64(y)/float64(v.SubH)*2 - 1),
	}
}

// Unproject maps normalized device coordinates back onto the XZ plane.
func (v *View) Unproject(ndc geom.Vec2) geom.Vec3 {
	s := v.Scale()
	x := (ndc.X + 1) / 2 * float64(v.SubW)
	y := (1 - ndc.Y) / 2 * float64(v.SubH)
	return geom.Vec3{
		X: v.Center.X + (x-float64(v.SubW)/2)/s,
		Z: v.Center.Z + (y-float64(v.SubH)/2)/s,
	}
}

// Project maps a world point to NDC; visible is false outside the canvas.
func (v *View) Project(p geom.Vec3) (geom.Vec3, bool) {
	x, y := v.ToSub(p)
	n := v.NDC(x, y)
	return geom.Vec3{X: n.X, Y: n.Y}, math.Abs(n.X) <= 1 && math.Abs(n.Y) <= 1
}

// planePicker picks the planet closest to the pointer on the orbital plane.
type planePicker struct {
	view    *View
	spheres func() []interaction.Sphere
}

func (p *planePicker) Pick(ndc geom.Vec2) (string, bool) {
	at := p.view.Unproject(ndc)
	minR := minPickSub / p.view.Scale()

	best, name := math.Inf(1), ""
	for _, s := range p.spheres() {
		d := at.Dist(geom.Vec3{X: s.Center.X, Z: s.Center.Z})
		if d <= math.Max(s.Radius, minR) && d < best {
			best, name = d, s.Name
		}
	}
	return name, name != ""
}
