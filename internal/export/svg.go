// Package export renders top-down snapshots of the orrery as SVG.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/ui"
)

type Options struct {
	Size    int // pixels per side
	Padding float64
	Theme   ui.Theme
	Labels  bool
	// MinRadius keeps small bodies visible at low scales.
	MinRadius float64
}

func DefaultOptions() Options {
	return Options{Size: 800, Padding: 0.05, Labels: true, MinRadius: 2}
}

// extent is the largest orbit radius plus the body and ring around it.
func extent(sys *orbit.System) float64 {
	ext := 1.0
	for _, b := range sys.Bodies() {
		r := b.Desc.Distance + b.Desc.Size*scene.RingOuter
		if r > ext {
			ext = r
		}
	}
	return ext
}

type plane struct {
	half, scale float64
}

func (p plane) xy(v geom.Vec3) (float64, float64) {
	return (v.X + p.half) * p.scale, (v.Z + p.half) * p.scale
}

// SystemToSVG draws the current system state viewed from above: guides,
// sun glow, bodies and rings. Entities from sc supply colors; sc may be nil.
func SystemToSVG(sys *orbit.System, sc *scene.Scene, opts Options) string {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	pal := opts.Theme.Palette()
	half := extent(sys) * (1 + opts.Padding)
	p := plane{half: half, scale: float64(opts.Size) / (2 * half)}
	size := float64(opts.Size)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Size, opts.Size, opts.Size, opts.Size, pal.Background.Hex()))

	cx, cy := size/2, size/2
	sb.WriteString(fmt.Sprintf("<g fill=\"none\" stroke=\"%s\" stroke-opacity=\"%.2f\">\n",
		scene.GuideColor.Hex(), scene.GuideAlpha))
	for _, b := range sys.Bodies() {
		if b.Desc.IsStar() || !b.GuideVisible {
			continue
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
			cx, cy, b.Desc.Distance*p.scale))
	}
	sb.WriteString("</g>\n")

	if sc != nil && sc.Glow != nil {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" fill-opacity=\"%.2f\"/>\n",
			cx, cy, sc.Glow.Radius*p.scale, sc.Glow.Color.Hex(), scene.GlowAlpha))
	}

	for _, b := range sys.Bodies() {
		x, y := p.xy(b.Position())
		r := math.Max(b.Desc.Size*p.scale, opts.MinRadius)
		col := bodyColor(b, sc)

		if b.Desc.HasRing {
			inner := b.Desc.Size * scene.RingInner * p.scale
			outer := b.Desc.Size * scene.RingOuter * p.scale
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.1f\" stroke-opacity=\"0.8\"/>\n",
				x, y, (inner+outer)/2, col.Hex(), math.Max(outer-inner, 1)))
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"><title>%s</title></circle>\n",
			x, y, r, col.Hex(), b.Desc.Name))
		if opts.Labels && !b.Desc.IsStar() {
			sb.WriteString(fmt.Sprintf("<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"11\" text-anchor=\"middle\">%s</text>\n",
				x, y-r-4, pal.Label.Hex(), b.Desc.Name))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// bodyColor uses the descriptor color; textured entities carry a white tint,
// which is useless in a flat drawing.
func bodyColor(b *orbit.Body, sc *scene.Scene) colorful.Color {
	if sc != nil {
		if e := sc.Entity(b.Desc.Name); e != nil && !e.Textured() {
			return e.Color
		}
	}
	return b.Desc.RGB()
}

// TrackToSVG draws a path in the XZ plane, as sampled from a body over time.
func TrackToSVG(points []geom.Vec3, size int, stroke string) string {
	if len(points) < 2 {
		return ""
	}

	half := 0.0
	for _, pt := range points {
		half = math.Max(half, math.Max(math.Abs(pt.X), math.Abs(pt.Z)))
	}
	if half == 0 {
		half = 1
	}
	half *= 1.1
	p := plane{half: half, scale: float64(size) / (2 * half)}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		size, size, size, size, stroke))

	for i, pt := range points {
		x, y := p.xy(pt)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Write writes svg to w.
func Write(w io.Writer, svg string) error {
	_, err := io.WriteString(w, svg)
	return err
}
