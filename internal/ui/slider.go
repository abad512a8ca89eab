package ui

import "math"

const (
	SpeedMin  = 0.0
	SpeedMax  = 0.1
	SpeedStep = 0.001
)

// SpeedSetter receives slider changes.
type SpeedSetter interface {
	SetSpeed(name string, speed float64) error
}

// Slider is a range input bound to one body's angular speed. Unlike
// SpeedSetter, it constrains values to [Min, Max] on Step increments.
type Slider struct {
	Body           string
	Min, Max, Step float64

	value  float64
	target SpeedSetter
}

func NewSlider(name string, initial float64, target SpeedSetter) *Slider {
	s := &Slider{Body: name, Min: SpeedMin, Max: SpeedMax, Step: SpeedStep, target: target}
	s.value = s.snap(initial)
	return s
}

func (s *Slider) Value() float64 { return s.value }

// Fraction is the knob position in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}

// Set snaps v and forwards it to the target.
func (s *Slider) Set(v float64) error {
	s.value = s.snap(v)
	return s.target.SetSpeed(s.Body, s.value)
}

// Sync moves the knob without notifying the target.
func (s *Slider) Sync(v float64) { s.value = s.snap(v) }

// SetFraction sets the knob position, as from a drag.
func (s *Slider) SetFraction(f float64) error {
	return s.Set(s.Min + f*(s.Max-s.Min))
}

// Nudge moves the knob by n steps.
func (s *Slider) Nudge(n int) error {
	return s.Set(s.value + float64(n)*s.Step)
}

func (s *Slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = math.Round((s.Min+n*s.Step)*1e9) / 1e9
	}
	return math.Min(v, s.Max)
}
