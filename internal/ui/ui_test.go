package ui

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

type recorder struct {
	name  string
	speed float64
	err   error
}

func (r *recorder) SetSpeed(name string, v float64) error {
	r.name, r.speed = name, v
	return r.err
}

func TestSliderSnapsAndClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.0172, 0.017},
		{0.0176, 0.018},
		{-0.5, 0},
		{0.5, 0.1},
		{0.1, 0.1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		rec := &recorder{}
		s := NewSlider("Earth", 0.01, rec)
		if err := s.Set(tt.in); err != nil {
			t.Fatal(err)
		}
		if s.Value() != tt.want {
			t.Errorf("Set(%v): expected %v, got %v", tt.in, tt.want, s.Value())
		}
		if rec.name != "Earth" || rec.speed != tt.want {
			t.Errorf("Set(%v): forwarded %s=%v", tt.in, rec.name, rec.speed)
		}
	}
}

func TestSliderFraction(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("Mars", 0.008, rec)
	if math.Abs(s.Fraction()-0.08) > 1e-9 {
		t.Errorf("expected 0.08, got %v", s.Fraction())
	}
	s.SetFraction(0.5)
	if s.Value() != 0.05 {
		t.Errorf("expected 0.05, got %v", s.Value())
	}
	s.Nudge(-3)
	if s.Value() != 0.047 {
		t.Errorf("expected 0.047, got %v", s.Value())
	}
}

func TestSliderPropagatesError(t *testing.T) {
	want := errors.New("boom")
	s := NewSlider("X", 0, &recorder{err: want})
	if err := s.Set(0.02); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestSliderDrivesSystem(t *testing.T) {
	sys := orbit.NewSystem(body.Default())
	s := NewSlider("Earth", sys.Body("Earth").Speed, sys)
	if err := s.Set(0.05); err != nil {
		t.Fatal(err)
	}
	if sys.Body("Earth").Speed != 0.05 {
		t.Errorf("expected system speed 0.05, got %v", sys.Body("Earth").Speed)
	}
}

func TestShellToggles(t *testing.T) {
	sys := orbit.NewSystem(body.Default())
	rig := camera.NewRig(camera.DefaultConfig())
	sh := NewShell(sys, rig)

	sh.TogglePause()
	if !sh.Paused || sh.PauseLabel() != "Resume" {
		t.Error("expected paused")
	}
	sh.TogglePause()
	if sh.Paused || sh.PauseLabel() != "Pause" {
		t.Error("expected running")
	}

	sh.ToggleTheme()
	if sh.Theme != Light || sh.ThemeLabel() != "Dark Mode" {
		t.Errorf("expected light theme, got %v", sh.Theme)
	}

	before := sys.GuidesVisible()
	sh.ToggleOrbits()
	for _, b := range sys.Bodies() {
		if b.GuideVisible == before {
			t.Fatalf("%s guide not toggled", b.Desc.Name)
		}
	}

	rig.Focus(geom.Vec3{X: 40})
	rig.Update(2)
	sh.ResetCamera()
	if !rig.Transitioning() {
		t.Error("reset should start a transition")
	}
}

func TestToggleOrbitsMixed(t *testing.T) {
	sys := orbit.NewSystem(body.Default())
	sh := NewShell(sys, camera.NewRig(camera.DefaultConfig()))

	sys.Body("Mars").GuideVisible = false
	sh.ToggleOrbits()
	if !sys.GuidesVisible() {
		t.Fatal("a partly hidden set should become fully visible")
	}
	sh.ToggleOrbits()
	for _, b := range sys.Bodies() {
		if b.GuideVisible {
			t.Fatalf("%s guide still visible", b.Desc.Name)
		}
	}
}

func TestShellPanels(t *testing.T) {
	sh := NewShell(orbit.NewSystem(body.Default()), camera.NewRig(camera.DefaultConfig()))

	sh.SetMobile(1280)
	if sh.Mobile || !sh.InfoVisible || !sh.ControlsVisible {
		t.Error("desktop shows both panels")
	}

	sh.SetMobile(600)
	if !sh.Mobile || !sh.InfoVisible || sh.ControlsVisible {
		t.Error("mobile starts on the info tab")
	}
	sh.ShowControls()
	if sh.InfoVisible || !sh.ControlsVisible || sh.InfoTab {
		t.Error("expected controls tab")
	}
	sh.CloseControls()
	if sh.ControlsVisible {
		t.Error("controls should be closed")
	}
	sh.ToggleMenu()
	if !sh.MenuCollapsed {
		t.Error("menu should collapse")
	}

	sh.SetMobile(1024)
	if sh.Mobile || sh.MenuCollapsed || !sh.InfoVisible || !sh.ControlsVisible {
		t.Error("desktop layout should restore panels")
	}
}

func TestLoadingProgress(t *testing.T) {
	var l Loading
	prev := 0.0
	for i := 0; i < 50; i++ {
		p := l.Tick(0.9)
		if p < prev {
			t.Fatalf("progress decreased: %v -> %v", prev, p)
		}
		prev = p
	}
	if l.Progress() != 100 {
		t.Errorf("expected cap at 100, got %v", l.Progress())
	}
}

func TestLoadingAdvance(t *testing.T) {
	var l Loading
	calls := 0
	rnd := func() float64 { calls++; return 0.5 }

	l.Advance(time.Second, rnd)
	if calls != 5 {
		t.Errorf("expected 5 ticks, got %d", calls)
	}
	if l.Progress() != 25 {
		t.Errorf("expected 25%%, got %v", l.Progress())
	}
	if l.Opacity() != 1 {
		t.Error("overlay should be opaque before the delay")
	}

	l.Advance(time.Second, rnd)
	if o := l.Opacity(); o <= 0 || o >= 1 {
		t.Errorf("expected fading overlay, got %v", o)
	}

	l.Advance(time.Second, rnd)
	if l.Visible() {
		t.Error("overlay should be gone")
	}
}

func TestThemePalette(t *testing.T) {
	if Dark.Palette() != DarkPalette || Light.Palette() != LightPalette {
		t.Error("unexpected palette mapping")
	}
	if ParseTheme("light") != Light || ParseTheme("solarized") != Dark {
		t.Error("unexpected theme parsing")
	}
	if Light.String() != "light" || Dark.String() != "dark" {
		t.Error("unexpected theme names")
	}
}

func TestFade(t *testing.T) {
	fg, bg := DarkPalette.Text, DarkPalette.Background
	if Fade(fg, bg, 1) != fg || Fade(fg, bg, 0) != bg {
		t.Error("endpoints should be exact")
	}
	mid := Fade(fg, bg, 0.5)
	if math.Abs(mid.R-0.5) > 1e-9 {
		t.Errorf("expected half gray, got %+v", mid)
	}
}
