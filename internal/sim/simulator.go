// Package sim owns the per-session state of the orrery and advances it one
// frame at a time.
package sim

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/interaction"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/ui"
)

// Simulator holds every piece of mutable state: the orbiting bodies, the
// camera, the control panels and the hover state. Frontends feed it input
// events and a frame delta and render what it exposes.
type Simulator struct {
	Registry *body.Registry
	System   *orbit.System
	Rig      *camera.Rig
	Shell    *ui.Shell
	Labels   *interaction.Labels
	Info     *interaction.InfoPanel
	Sliders  []*ui.Slider
	Loading  *ui.Loading

	state   interaction.State
	picker  interaction.Picker
	spheres []interaction.Sphere
	elapsed float64
	frames  int
	log     zerolog.Logger
}

type config struct {
	camera   camera.Config
	orbit    []orbit.Option
	picker   func(*Simulator) interaction.Picker
	log      zerolog.Logger
	viewport [2]float64
}

type Option func(*config)

func WithCamera(c camera.Config) Option { return func(cfg *config) { cfg.camera = c } }

func WithOrbitOptions(opts ...orbit.Option) Option {
	return func(cfg *config) { cfg.orbit = append(cfg.orbit, opts...) }
}

// WithPicker replaces the default ray/sphere picker. The factory runs once
// the simulator is otherwise constructed.
func WithPicker(f func(*Simulator) interaction.Picker) Option {
	return func(cfg *config) { cfg.picker = f }
}

func WithLogger(l zerolog.Logger) Option { return func(cfg *config) { cfg.log = l } }

func WithViewport(width, height float64) Option {
	return func(cfg *config) { cfg.viewport = [2]float64{width, height} }
}

func New(reg *body.Registry, opts ...Option) *Simulator {
	cfg := config{camera: camera.DefaultConfig(), log: zerolog.Nop()}
	for _, o := range opts {
		o(&cfg)
	}

	s := &Simulator{
		Registry: reg,
		System:   orbit.NewSystem(reg, cfg.orbit...),
		Rig:      camera.NewRig(cfg.camera),
		Labels:   interaction.NewLabels(namesOf(reg.Planets())...),
		Info:     interaction.NewInfoPanel(),
		Loading:  &ui.Loading{},
		log:      cfg.log,
	}
	s.Shell = ui.NewShell(s.System, s.Rig)
	for _, d := range reg.Planets() {
		s.Sliders = append(s.Sliders, ui.NewSlider(d.Name, s.System.Body(d.Name).Speed, s.System))
	}
	if cfg.viewport[0] > 0 {
		s.SetViewport(cfg.viewport[0], cfg.viewport[1])
	}

	s.refreshSpheres()
	if cfg.picker != nil {
		s.picker = cfg.picker(s)
	} else {
		s.picker = &spherePicker{s}
	}

	s.log.Info().Int("bodies", reg.Len()).Float64("time_scale", s.System.TimeScale()).Msg("simulator ready")
	return s
}

func namesOf(ds []body.Descriptor) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}
	return names
}

// Frame advances one rendered frame: orbits, then the camera, then input.
// Labels are projected against the poses of this frame.
func (s *Simulator) Frame(delta float64, events []interaction.Event) {
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		delta = 0
	}
	s.frames++

	s.System.Step(delta, s.Shell.Paused)
	if !s.Shell.Paused {
		s.elapsed += delta
	}
	s.Rig.Update(delta)
	s.refreshSpheres()

	next, patch := interaction.Update(s.state, events, s)
	if next.Hovered != s.state.Hovered {
		s.log.Debug().Str("from", s.state.Hovered).Str("to", next.Hovered).Msg("hover")
	}
	s.state = next
	patch.Apply(s.Labels, s.Info, s.describe, s.focus)
}

func (s *Simulator) focus(p geom.Vec3) {
	s.log.Debug().Str("body", s.state.Hovered).
		Float64("x", p.X).Float64("z", p.Z).Msg("focus transition")
	s.Rig.Focus(p)
}

func (s *Simulator) describe(name string) string {
	d, err := s.Registry.Get(name)
	if err != nil {
		return ""
	}
	return d.Info
}

// refreshSpheres updates the pickable planets from their current positions.
func (s *Simulator) refreshSpheres() {
	s.spheres = s.spheres[:0]
	for _, b := range s.System.Bodies() {
		if b.Desc.IsStar() {
			continue
		}
		s.spheres = append(s.spheres, interaction.Sphere{
			Name:   b.Desc.Name,
			Center: b.Position(),
			Radius: b.Desc.Size,
		})
	}
}

// Spheres returns the pickable bodies as of the last frame.
func (s *Simulator) Spheres() []interaction.Sphere { return s.spheres }

func (s *Simulator) Pick(ndc geom.Vec2) (string, bool) { return s.picker.Pick(ndc) }

func (s *Simulator) Position(name string) (geom.Vec3, bool) {
	b := s.System.Body(name)
	if b == nil {
		return geom.Vec3{}, false
	}
	return b.Position(), true
}

func (s *Simulator) Project(p geom.Vec3) (geom.Vec3, bool) { return s.Rig.Project(p) }

// Hovered returns the hovered body, or "" when idle.
func (s *Simulator) Hovered() string { return s.state.Hovered }

func (s *Simulator) State() interaction.State { return s.state }

// Elapsed is the running (unpaused) time in seconds.
func (s *Simulator) Elapsed() float64 { return s.elapsed }

func (s *Simulator) Frames() int { return s.frames }

// GlowScale is the sun glow's current pulse scale.
func (s *Simulator) GlowScale() float64 { return orbit.GlowScale(s.elapsed) }

// Slider returns the speed slider of the named body, or nil.
func (s *Simulator) Slider(name string) *ui.Slider {
	for _, sl := range s.Sliders {
		if sl.Body == name {
			return sl
		}
	}
	return nil
}

// SetViewport propagates a window resize to the camera and layout.
func (s *Simulator) SetViewport(width, height float64) {
	s.Rig.SetViewport(width, height)
	s.Shell.SetMobile(int(width))
}

// ResetSpeeds restores every descriptor speed and moves the sliders with it.
func (s *Simulator) ResetSpeeds() {
	s.System.ResetSpeeds()
	for _, sl := range s.Sliders {
		sl.Sync(s.System.Body(sl.Body).Speed)
	}
}

type spherePicker struct{ s *Simulator }

func (p *spherePicker) Pick(ndc geom.Vec2) (string, bool) {
	return interaction.Nearest(p.s.Rig.Ray(ndc), p.s.spheres)
}
