package orbit

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orrery/internal/geom"
)

type Observer interface {
	OnStep(s *System, t float64)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type RunConfig struct {
	Dt       float64
	Duration float64
}

type Result struct {
	Times      []float64
	Angles     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
}

// Run integrates the system headlessly at a fixed step, recording every
// body's orbital angle after each step.
func (s *System) Run(ctx context.Context, cfg RunConfig, observers ...Observer) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Angles:  make(map[string][]float64, len(s.bodies)),
		Metrics: make(map[string]float64),
	}

	for _, o := range observers {
		if m, ok := o.(Metric); ok {
			m.Reset()
		}
	}

	record := func(t float64) {
		result.Times = append(result.Times, t)
		for _, b := range s.bodies {
			result.Angles[b.Desc.Name] = append(result.Angles[b.Desc.Name], b.Angle)
		}
		for _, o := range observers {
			o.OnStep(s, t)
		}
	}

	t := 0.0
	record(t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt, false)
		t += cfg.Dt
		result.StepsTaken++
		record(t)
	}

	for _, o := range observers {
		if m, ok := o.(Metric); ok {
			result.Metrics[m.Name()] = m.Value()
		}
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RadiusDrift records the largest deviation of any body from its orbit radius.
type RadiusDrift struct {
	max float64
}

func NewRadiusDrift() *RadiusDrift { return &RadiusDrift{} }

func (r *RadiusDrift) Name() string { return "radius_drift" }

func (r *RadiusDrift) OnStep(s *System, t float64) {
	for _, b := range s.bodies {
		p := b.Position()
		d := math.Abs(p.Dist(geom.Vec3{}) - b.Desc.Distance)
		r.max = math.Max(r.max, math.Max(d, math.Abs(p.Y)))
	}
}

func (r *RadiusDrift) Value() float64 { return r.max }
func (r *RadiusDrift) Reset()         { r.max = 0 }
