package config

import (
	"fmt"
	"sort"
)

// Preset is a named camera viewpoint.
type Preset struct {
	Position Vec
	Target   Vec
}

var Presets = map[string]Preset{
	"overview": {Position: Vec{Y: 50, Z: 100}},
	"top":      {Position: Vec{Y: 300, Z: 1}},
	"edge":     {Position: Vec{Y: 5, Z: 220}},
	"inner":    {Position: Vec{X: 30, Y: 25, Z: 60}},
	"outer":    {Position: Vec{Y: 160, Z: 420}},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the camera's home position and target.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: unknown camera preset %q", ErrInvalid, name)
	}
	c.Camera.Preset = name
	c.Camera.Position = p.Position
	c.Camera.Target = p.Target
	return nil
}
