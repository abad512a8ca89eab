package scene

import (
	"image"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geom"
)

const (
	GuideSegments = 128
	GuideAlpha    = 0.2
	StarCount     = 10000
	StarExtent    = 2000.0
	GlowRadius    = 12.0
	GlowAlpha     = 0.3
	RingInner     = 1.5
	RingOuter     = 2.2
)

var (
	GuideColor = colorful.Color{R: 0x55 / 255.0, G: 0x55 / 255.0, B: 0x55 / 255.0}
	white      = colorful.Color{R: 1, G: 1, B: 1}
)

// TextureSource resolves a texture reference to a decoded image.
type TextureSource interface {
	Get(ref string) (image.Image, bool)
}

type Ring struct {
	Inner, Outer float64
	Color        colorful.Color
}

// Entity is one renderable sphere.
type Entity struct {
	Name    string
	Radius  float64
	Color   colorful.Color
	Texture image.Image
	Ring    *Ring
}

// Textured reports whether the entity carries a texture instead of a flat color.
func (e *Entity) Textured() bool { return e.Texture != nil }

// Guide is the closed orbit path of one body.
type Guide struct {
	Name   string
	Radius float64
	Points []geom.Vec3
}

type Scene struct {
	Entities []*Entity
	Guides   []Guide
	Stars    []geom.Vec3
	Glow     *Entity
	byName   map[string]*Entity
}

func (s *Scene) Entity(name string) *Entity { return s.byName[name] }

type Options struct {
	Seed       int64
	StarCount  int
	StarExtent float64
}

func DefaultOptions() Options {
	return Options{Seed: 1, StarCount: StarCount, StarExtent: StarExtent}
}

// Assemble builds the renderable scene for every descriptor. A body whose
// texture is missing from textures falls back to its flat color.
func Assemble(reg *body.Registry, textures TextureSource, opts Options) *Scene {
	s := &Scene{byName: make(map[string]*Entity, reg.Len())}

	for _, d := range reg.All() {
		e := &Entity{
			Name:   d.Name,
			Radius: d.Size,
			Color:  d.RGB(),
		}
		if textures != nil && d.Texture != "" {
			if img, ok := textures.Get(d.Texture); ok {
				e.Texture = img
				e.Color = white
			}
		}
		if d.HasRing {
			e.Ring = &Ring{Inner: d.Size * RingInner, Outer: d.Size * RingOuter, Color: d.RGB()}
		}
		s.Entities = append(s.Entities, e)
		s.byName[d.Name] = e

		if d.IsStar() {
			if s.Glow == nil {
				s.Glow = &Entity{Name: d.Name + " glow", Radius: GlowRadius, Color: d.RGB()}
			}
			continue
		}
		s.Guides = append(s.Guides, Guide{
			Name:   d.Name,
			Radius: d.Distance,
			Points: OrbitPath(d.Distance, GuideSegments),
		})
	}

	s.Stars = Starfield(rand.New(rand.NewSource(opts.Seed)), opts.StarCount, opts.StarExtent)
	return s
}

// OrbitPath returns segments+1 points on a circle of radius r in the XZ
// plane; the last point repeats the first.
func OrbitPath(r float64, segments int) []geom.Vec3 {
	pts := make([]geom.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		pts[i] = geom.Vec3{X: r * math.Cos(theta), Z: r * math.Sin(theta)}
	}
	return pts
}

// Starfield scatters n points uniformly in a cube of the given edge length.
func Starfield(rng *rand.Rand, n int, extent float64) []geom.Vec3 {
	stars := make([]geom.Vec3, n)
	for i := range stars {
		stars[i] = geom.Vec3{
			X: (rng.Float64() - 0.5) * extent,
			Y: (rng.Float64() - 0.5) * extent,
			Z: (rng.Float64() - 0.5) * extent,
		}
	}
	return stars
}
