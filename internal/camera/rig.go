package camera

import (
	"math"

	"github.com/san-kum/orrery/internal/geom"
	"github.com/tanema/gween/ease"
)

const polarEpsilon = 1e-6

var up = geom.Vec3{Y: 1}

type Config struct {
	Position    geom.Vec3
	Target      geom.Vec3
	FOV         float64 // vertical, degrees
	Near, Far   float64
	MinDistance float64
	MaxDistance float64
	MaxPolar    float64
	Damping     float64
	Duration    float64 // seconds per transition
}

func DefaultConfig() Config {
	return Config{
		Position:    geom.Vec3{X: 0, Y: 50, Z: 100},
		FOV:         75,
		Near:        0.1,
		Far:         10000,
		MinDistance: 20,
		MaxDistance: 500,
		MaxPolar:    math.Pi * 0.9,
		Damping:     0.05,
		Duration:    1.5,
	}
}

// Rig is an orbit-style camera around a look-at target with animated
// transitions. At most one transition is active.
type Rig struct {
	cfg      Config
	Position geom.Vec3
	Target   geom.Vec3
	aspect   float64

	radius, theta, phi   float64
	deltaTheta, deltaPhi float64

	active *Transition
	easing ease.TweenFunc
}

func NewRig(cfg Config) *Rig {
	r := &Rig{
		cfg:      cfg,
		Position: cfg.Position,
		Target:   cfg.Target,
		aspect:   16.0 / 9.0,
		easing:   ease.InOutQuad,
	}
	r.sync()
	return r
}

func (r *Rig) Config() Config { return r.cfg }

// SetViewport updates the aspect ratio used for projection.
func (r *Rig) SetViewport(width, height float64) {
	if width > 0 && height > 0 {
		r.aspect = width / height
	}
}

func (r *Rig) Aspect() float64 { return r.aspect }

// Distance is the current distance between the camera and its target.
func (r *Rig) Distance() float64 { return r.radius }

// Polar is the angle between the view offset and the +Y axis.
func (r *Rig) Polar() float64 { return r.phi }

// Rotate queues an orbit around the target; it is applied with damping over
// the following updates.
func (r *Rig) Rotate(dTheta, dPhi float64) {
	if r.active != nil {
		return
	}
	r.deltaTheta += dTheta
	r.deltaPhi += dPhi
}

// Zoom scales the distance to the target by factor, within limits.
func (r *Rig) Zoom(factor float64) {
	if r.active != nil || factor <= 0 {
		return
	}
	r.radius *= factor
	r.apply()
}

// Pan moves the camera and its target along the view plane.
func (r *Rig) Pan(dx, dy float64) {
	if r.active != nil {
		return
	}
	_, right, u := r.basis()
	offset := right.Scale(dx).Add(u.Scale(dy))
	r.Target = r.Target.Add(offset)
	r.Position = r.Position.Add(offset)
}

// Reset animates back to the configured viewpoint.
func (r *Rig) Reset() {
	r.start(r.cfg.Position, r.cfg.Target)
}

// Focus animates toward a point offset outward and above p, looking at p.
func (r *Rig) Focus(p geom.Vec3) {
	r.start(FocusTarget(p), p)
}

// FocusTarget is the camera position used when focusing on p.
func FocusTarget(p geom.Vec3) geom.Vec3 {
	return geom.Vec3{X: p.X * 1.5, Y: p.Y + 10, Z: p.Z * 1.5}
}

func (r *Rig) start(pos, target geom.Vec3) {
	r.deltaTheta, r.deltaPhi = 0, 0
	r.active = NewTransition(r.Position, r.Target, pos, target, r.cfg.Duration, r.easing)
}

// Transitioning reports whether an animation is in flight.
func (r *Rig) Transitioning() bool { return r.active != nil }

// Transition returns the active transition, or nil.
func (r *Rig) Transition() *Transition { return r.active }

// Update advances the active transition or applies damped orbit input.
func (r *Rig) Update(dt float64) {
	if r.active != nil {
		pos, target, done := r.active.Update(dt)
		r.Position, r.Target = pos, target
		if done {
			r.active = nil
		}
		r.sync()
		return
	}

	if r.deltaTheta == 0 && r.deltaPhi == 0 {
		return
	}
	r.theta += r.deltaTheta * r.cfg.Damping
	r.phi += r.deltaPhi * r.cfg.Damping
	r.deltaTheta *= 1 - r.cfg.Damping
	r.deltaPhi *= 1 - r.cfg.Damping
	if math.Abs(r.deltaTheta) < 1e-9 {
		r.deltaTheta = 0
	}
	if math.Abs(r.deltaPhi) < 1e-9 {
		r.deltaPhi = 0
	}
	r.apply()
}

// sync derives spherical coordinates from Position and Target, moving the
// camera only when a limit is violated.
func (r *Rig) sync() {
	v := r.Position.Sub(r.Target)
	r.radius = v.Length()
	r.theta = math.Atan2(v.X, v.Z)
	if r.radius > 0 {
		r.phi = math.Acos(math.Max(-1, math.Min(1, v.Y/r.radius)))
	}
	if r.clamp() {
		r.place()
	}
}

func (r *Rig) apply() {
	r.clamp()
	r.place()
}

func (r *Rig) clamp() bool {
	changed := false
	if r.radius < r.cfg.MinDistance {
		r.radius, changed = r.cfg.MinDistance, true
	} else if r.radius > r.cfg.MaxDistance {
		r.radius, changed = r.cfg.MaxDistance, true
	}
	if r.phi < polarEpsilon {
		r.phi, changed = polarEpsilon, true
	} else if r.phi > r.cfg.MaxPolar {
		r.phi, changed = r.cfg.MaxPolar, true
	}
	return changed
}

func (r *Rig) place() {
	s := math.Sin(r.phi)
	r.Position = r.Target.Add(geom.Vec3{
		X: r.radius * s * math.Sin(r.theta),
		Y: r.radius * math.Cos(r.phi),
		Z: r.radius * s * math.Cos(r.theta),
	})
}

func (r *Rig) basis() (forward, right, upv geom.Vec3) {
	forward = r.Target.Sub(r.Position).Normalize()
	right = forward.Cross(up).Normalize()
	upv = right.Cross(forward)
	return
}

// Project maps a world point to normalized device coordinates. visible is
// false for points behind the camera or outside the view volume.
func (r *Rig) Project(p geom.Vec3) (ndc geom.Vec3, visible bool) {
	f, right, u := r.basis()
	d := p.Sub(r.Position)
	z := d.Dot(f)
	if z <= 0 {
		return geom.Vec3{}, false
	}
	tanHalf := math.Tan(r.cfg.FOV * math.Pi / 360)
	ndc.X = d.Dot(right) / (z * tanHalf * r.aspect)
	ndc.Y = d.Dot(u) / (z * tanHalf)
	n, fa := r.cfg.Near, r.cfg.Far
	ndc.Z = (fa+n)/(fa-n) - 2*fa*n/((fa-n)*z)
	visible = z >= n && z <= fa && math.Abs(ndc.X) <= 1 && math.Abs(ndc.Y) <= 1
	return ndc, visible
}

// Ray returns the world-space ray through a point in normalized device
// coordinates.
func (r *Rig) Ray(ndc geom.Vec2) geom.Ray {
	f, right, u := r.basis()
	tanHalf := math.Tan(r.cfg.FOV * math.Pi / 360)
	dir := f.Add(right.Scale(ndc.X * tanHalf * r.aspect)).Add(u.Scale(ndc.Y * tanHalf))
	return geom.Ray{Origin: r.Position, Dir: dir.Normalize()}
}
