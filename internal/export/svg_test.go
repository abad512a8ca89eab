package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
)

func TestSystemToSVG(t *testing.T) {
	reg := body.Default()
	sys := orbit.NewSystem(reg, orbit.WithSeed(1))
	sc := scene.Assemble(reg, nil, scene.Options{Seed: 1})

	svg := SystemToSVG(sys, sc, DefaultOptions())

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a complete svg document")
	}
	for _, name := range reg.Names() {
		if !strings.Contains(svg, "<title>"+name+"</title>") {
			t.Errorf("missing body %s", name)
		}
	}
	if strings.Contains(svg, ">Sun</text>") {
		t.Error("the sun should not be labeled")
	}
	if got := strings.Count(svg, `r="`); got < 2*len(reg.Planets()) {
		t.Errorf("expected guides and bodies, got %d circles", got)
	}
}

func TestSystemToSVGHidesGuides(t *testing.T) {
	reg := body.Default()
	sys := orbit.NewSystem(reg, orbit.WithSeed(1))

	with := SystemToSVG(sys, nil, DefaultOptions())
	sys.SetGuidesVisible(false)
	without := SystemToSVG(sys, nil, DefaultOptions())

	if diff := strings.Count(with, "<circle") - strings.Count(without, "<circle"); diff != len(reg.Planets()) {
		t.Errorf("expected %d fewer circles, got %d", len(reg.Planets()), diff)
	}
}

func TestTrackToSVG(t *testing.T) {
	if TrackToSVG([]geom.Vec3{{X: 1}}, 100, "#fff") != "" {
		t.Error("a single point is not a track")
	}

	pts := scene.OrbitPath(62, 16)
	svg := TrackToSVG(pts, 200, "#4fc3f7")
	if got := strings.Count(svg, " L"); got != len(pts)-1 {
		t.Errorf("expected %d segments, got %d", len(pts)-1, got)
	}
	if !strings.Contains(svg, `stroke="#4fc3f7"`) {
		t.Error("stroke color not applied")
	}
}

func TestExtent(t *testing.T) {
	reg, err := body.NewRegistry(
		body.Descriptor{Name: "Sun", Size: 5},
		body.Descriptor{Name: "Ringed", Size: 2, Distance: 100, HasRing: true},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := extent(orbit.NewSystem(reg))
	if math.Abs(got-(100+2*scene.RingOuter)) > 1e-9 {
		t.Errorf("extent = %v", got)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<svg/>" {
		t.Errorf("got %q", buf.String())
	}
}
