// Package ui holds the frontend-independent state of the control panels:
// toggles, per-body speed sliders and the startup loading overlay.
package ui

import (
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/orbit"
)

// MobileWidth is the viewport width below which the compact layout is used.
const MobileWidth = 768

type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// ParseTheme accepts "light"; anything else is dark.
func ParseTheme(s string) Theme {
	if s == "light" {
		return Light
	}
	return Dark
}

// Shell issues one-off commands against the running system and camera.
type Shell struct {
	sys *orbit.System
	rig *camera.Rig

	Paused          bool
	Theme           Theme
	Mobile          bool
	MenuCollapsed   bool
	InfoVisible     bool
	ControlsVisible bool
	InfoTab         bool // compact layout: info tab selected rather than controls
}

func NewShell(sys *orbit.System, rig *camera.Rig) *Shell {
	return &Shell{
		sys:             sys,
		rig:             rig,
		InfoVisible:     true,
		ControlsVisible: true,
		InfoTab:         true,
	}
}

func (s *Shell) TogglePause() { s.Paused = !s.Paused }

// PauseLabel is the caption of the pause button.
func (s *Shell) PauseLabel() string {
	if s.Paused {
		return "Resume"
	}
	return "Pause"
}

func (s *Shell) ToggleTheme() {
	if s.Theme == Dark {
		s.Theme = Light
	} else {
		s.Theme = Dark
	}
}

// ThemeLabel names the theme the button switches to.
func (s *Shell) ThemeLabel() string {
	if s.Theme == Light {
		return "Dark Mode"
	}
	return "Light Mode"
}

// ToggleOrbits hides every orbit guide when all are shown, otherwise shows
// them all.
func (s *Shell) ToggleOrbits() {
	s.sys.SetGuidesVisible(!s.sys.GuidesVisible())
}

func (s *Shell) ResetCamera() { s.rig.Reset() }

func (s *Shell) ToggleMenu() { s.MenuCollapsed = !s.MenuCollapsed }

func (s *Shell) ShowInfo() {
	s.InfoVisible, s.ControlsVisible = true, false
	s.InfoTab = true
}

func (s *Shell) ShowControls() {
	s.InfoVisible, s.ControlsVisible = false, true
	s.InfoTab = false
}

func (s *Shell) CloseInfo()     { s.InfoVisible = false }
func (s *Shell) CloseControls() { s.ControlsVisible = false }

// SetMobile switches layout for a viewport width.
func (s *Shell) SetMobile(width int) {
	mobile := width > 0 && width < MobileWidth
	if mobile == s.Mobile {
		return
	}
	s.Mobile = mobile
	if mobile {
		s.ShowInfo()
	} else {
		s.InfoVisible, s.ControlsVisible = true, true
		s.MenuCollapsed = false
	}
}
