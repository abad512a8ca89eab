package orbit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geom"
)

const (
	DefaultTimeScale = 10.0
	RingRate         = 0.002
	GlowSpinRate     = 0.001
)

var ErrUnknownBody = errors.New("orbit: unknown body")

// Body is the mutable runtime state of one descriptor.
type Body struct {
	Desc         body.Descriptor
	Angle        float64
	Spin         float64
	Speed        float64
	RingAngle    float64
	GuideVisible bool
}

// Position returns (d·cos a, 0, d·sin a).
func (b *Body) Position() geom.Vec3 {
	return geom.Vec3{
		X: b.Desc.Distance * math.Cos(b.Angle),
		Y: 0,
		Z: b.Desc.Distance * math.Sin(b.Angle),
	}
}

type System struct {
	bodies    []*Body
	index     map[string]*Body
	timeScale float64
	normalize bool
	glowSpin  float64
	rng       *rand.Rand
	angles    map[string]float64
}

type Option func(*System)

func WithSeed(seed int64) Option {
	return func(s *System) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithTimeScale(k float64) Option {
	return func(s *System) { s.timeScale = k }
}

func WithNormalize(on bool) Option {
	return func(s *System) { s.normalize = on }
}

// WithStartAngle pins a body's initial orbital angle instead of a random one.
func WithStartAngle(name string, angle float64) Option {
	return func(s *System) { s.angles[name] = angle }
}

// NewSystem creates one Body per descriptor. Planets start at a random angle
// in [0, 2π); bodies at the origin start at zero.
func NewSystem(reg *body.Registry, opts ...Option) *System {
	s := &System{
		index:     make(map[string]*Body, reg.Len()),
		timeScale: DefaultTimeScale,
		angles:    make(map[string]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}

	for _, d := range reg.All() {
		b := &Body{
			Desc:         d,
			Speed:        d.Speed,
			GuideVisible: true,
		}
		if a, ok := s.angles[d.Name]; ok {
			b.Angle = a
		} else if !d.IsStar() {
			b.Angle = s.rng.Float64() * 2 * math.Pi
		}
		s.bodies = append(s.bodies, b)
		s.index[d.Name] = b
	}
	return s
}

func (s *System) TimeScale() float64 { return s.timeScale }

// Bodies returns the bodies in registry order.
func (s *System) Bodies() []*Body { return s.bodies }

// Body returns the named body or nil.
func (s *System) Body(name string) *Body { return s.index[name] }

// Step advances every body by delta seconds unless paused.
func (s *System) Step(delta float64, paused bool) {
	if paused {
		return
	}
	k := delta * s.timeScale
	for _, b := range s.bodies {
		b.Angle += b.Speed * k
		b.Spin += b.Desc.RotationSpeed * k
		if b.Desc.HasRing {
			b.RingAngle += RingRate * k
		}
		if s.normalize {
			b.Angle = geom.WrapAngle(b.Angle)
			b.Spin = geom.WrapAngle(b.Spin)
			b.RingAngle = geom.WrapAngle(b.RingAngle)
		}
	}
	s.glowSpin += GlowSpinRate * k
}

// SetSpeed sets a body's current angular speed. Any value is accepted,
// including negative speeds which reverse the orbit.
func (s *System) SetSpeed(name string, speed float64) error {
	b, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownBody)
	}
	b.Speed = speed
	return nil
}

// ResetSpeeds restores every body's descriptor speed.
func (s *System) ResetSpeeds() {
	for _, b := range s.bodies {
		b.Speed = b.Desc.Speed
	}
}

func (s *System) SetGuidesVisible(on bool) {
	for _, b := range s.bodies {
		b.GuideVisible = on
	}
}

// GuidesVisible reports whether every guide is shown.
func (s *System) GuidesVisible() bool {
	for _, b := range s.bodies {
		if !b.GuideVisible {
			return false
		}
	}
	return true
}

// GlowSpin is the accumulated rotation of the sun's glow shell.
func (s *System) GlowSpin() float64 { return s.glowSpin }

// GlowScale is the pulsating scale of the sun's glow at elapsed seconds.
func GlowScale(elapsed float64) float64 {
	return 1 + math.Sin(elapsed*0.5)*0.05
}
