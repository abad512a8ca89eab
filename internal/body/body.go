package body

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyName     = errors.New("body: empty name")
	ErrDuplicateName = errors.New("body: duplicate name")
	ErrInvalidSize   = errors.New("body: size and distance must be non-negative")
	ErrUnknownBody   = errors.New("body: unknown body")
)

// fallbackColor is used when a descriptor's color does not parse.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Descriptor is the static description of the sun or a planet.
type Descriptor struct {
	Name          string  `yaml:"name"`
	Texture       string  `yaml:"texture,omitempty"`
	Size          float64 `yaml:"size"`
	Distance      float64 `yaml:"distance"`
	Speed         float64 `yaml:"speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	Color         string  `yaml:"color"`
	HasRing       bool    `yaml:"has_ring,omitempty"`
	Info          string  `yaml:"info"`
}

// IsStar reports whether the body sits at the origin.
func (d Descriptor) IsStar() bool { return d.Distance == 0 }

// RGB parses Color, falling back to mid gray.
func (d Descriptor) RGB() colorful.Color {
	c, err := colorful.Hex(d.Color)
	if err != nil {
		return fallbackColor
	}
	return c
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.Size < 0 || d.Distance < 0 {
		return fmt.Errorf("%s: %w", d.Name, ErrInvalidSize)
	}
	return nil
}

// Registry is an ordered, name-unique set of descriptors.
type Registry struct {
	bodies []Descriptor
	index  map[string]int
}

func NewRegistry(ds ...Descriptor) (*Registry, error) {
	r := &Registry{
		bodies: make([]Descriptor, 0, len(ds)),
		index:  make(map[string]int, len(ds)),
	}
	for _, d := range ds {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, ok := r.index[d.Name]; ok {
			return nil, fmt.Errorf("%s: %w", d.Name, ErrDuplicateName)
		}
		r.index[d.Name] = len(r.bodies)
		r.bodies = append(r.bodies, d)
	}
	return r, nil
}

func (r *Registry) Len() int { return len(r.bodies) }

// All returns a copy of the descriptors in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.bodies))
	copy(out, r.bodies)
	return out
}

func (r *Registry) Get(name string) (Descriptor, error) {
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%s: %w", name, ErrUnknownBody)
	}
	return r.bodies[i], nil
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.bodies))
	for i, d := range r.bodies {
		names[i] = d.Name
	}
	return names
}

// Sun returns the first body at the origin, if any.
func (r *Registry) Sun() (Descriptor, bool) {
	for _, d := range r.bodies {
		if d.IsStar() {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Planets returns every body that orbits the origin.
func (r *Registry) Planets() []Descriptor {
	out := make([]Descriptor, 0, len(r.bodies))
	for _, d := range r.bodies {
		if !d.IsStar() {
			out = append(out, d)
		}
	}
	return out
}

// Textures returns the distinct non-empty texture references.
func (r *Registry) Textures() []string {
	seen := make(map[string]bool)
	refs := make([]string, 0, len(r.bodies))
	for _, d := range r.bodies {
		if d.Texture == "" || seen[d.Texture] {
			continue
		}
		seen[d.Texture] = true
		refs = append(refs, d.Texture)
	}
	return refs
}

type catalog struct {
	Bodies []Descriptor `yaml:"bodies"`
}

// Load reads a YAML body catalog.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return NewRegistry(c.Bodies...)
}

func Save(path string, r *Registry) error {
	data, err := yaml.Marshal(catalog{Bodies: r.All()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
