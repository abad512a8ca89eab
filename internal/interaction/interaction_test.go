package interaction_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/interaction"
)

// fakeWorld picks by exact pointer X.
type fakeWorld struct {
	hits      map[float64]string
	positions map[string]geom.Vec3
}

func (w *fakeWorld) Pick(ndc geom.Vec2) (string, bool) {
	n, ok := w.hits[ndc.X]
	return n, ok
}

func (w *fakeWorld) Position(name string) (geom.Vec3, bool) {
	p, ok := w.positions[name]
	return p, ok
}

func (w *fakeWorld) Project(p geom.Vec3) (geom.Vec3, bool) {
	return geom.Vec3{X: p.X / 100, Y: p.Z / 100}, true
}

func move(x float64) interaction.Event { return interaction.PointerMove{NDC: geom.Vec2{X: x}} }

func kinds(p interaction.Patch) []interaction.OpKind {
	out := make([]interaction.OpKind, len(p))
	for i, op := range p {
		out[i] = op.Kind
	}
	return out
}

var _ = Describe("Update", func() {
	var world *fakeWorld

	BeforeEach(func() {
		world = &fakeWorld{
			hits: map[float64]string{0.1: "Earth", 0.2: "Mars"},
			positions: map[string]geom.Vec3{
				"Earth": {X: 50},
				"Mars":  {X: 0, Z: 62},
			},
		}
	})

	It("enters hovering on a hit", func() {
		s, patch := interaction.Update(interaction.State{}, []interaction.Event{move(0.1)}, world)
		Expect(s.Hovered).To(Equal("Earth"))
		Expect(kinds(patch)).To(Equal([]interaction.OpKind{interaction.LabelOn, interaction.ShowInfo, interaction.LabelMove}))
	})

	It("turns the old label off before the new one on", func() {
		s, patch := interaction.Update(interaction.State{Hovered: "Earth"}, []interaction.Event{move(0.2)}, world)
		Expect(s.Hovered).To(Equal("Mars"))
		Expect(kinds(patch)).To(Equal([]interaction.OpKind{interaction.LabelOff, interaction.LabelOn, interaction.ShowInfo, interaction.LabelMove}))
		Expect(patch[0].Body).To(Equal("Earth"))
		Expect(patch[1].Body).To(Equal("Mars"))
	})

	It("returns to idle on a miss", func() {
		s, patch := interaction.Update(interaction.State{Hovered: "Earth"}, []interaction.Event{move(0.9)}, world)
		Expect(s.Idle()).To(BeTrue())
		Expect(kinds(patch)).To(Equal([]interaction.OpKind{interaction.LabelOff, interaction.ShowPlaceholder}))
	})

	It("re-projects the label on every update while hovering", func() {
		s, _ := interaction.Update(interaction.State{}, []interaction.Event{move(0.1)}, world)

		world.positions["Earth"] = geom.Vec3{X: -50}
		s, patch := interaction.Update(s, nil, world)
		Expect(s.Hovered).To(Equal("Earth"))
		Expect(patch).To(HaveLen(1))
		Expect(patch[0].Kind).To(Equal(interaction.LabelMove))
		Expect(patch[0].Left).To(BeNumerically("~", 25, 1e-9))
		Expect(patch[0].Top).To(BeNumerically("~", 50, 1e-9))
	})

	It("does not repeat transitions for the same body", func() {
		s, _ := interaction.Update(interaction.State{}, []interaction.Event{move(0.1)}, world)
		_, patch := interaction.Update(s, []interaction.Event{move(0.1), move(0.1)}, world)
		Expect(kinds(patch)).To(Equal([]interaction.OpKind{interaction.LabelMove}))
	})

	Describe("Click", func() {
		It("focuses the hovered body at its current position", func() {
			_, patch := interaction.Update(interaction.State{Hovered: "Mars"}, []interaction.Event{interaction.Click{}}, world)
			Expect(kinds(patch)).To(Equal([]interaction.OpKind{interaction.Focus, interaction.LabelMove}))
			Expect(patch[0].At).To(Equal(geom.Vec3{Z: 62}))
		})

		It("is a no-op while idle", func() {
			s, patch := interaction.Update(interaction.State{}, []interaction.Event{interaction.Click{}}, world)
			Expect(s).To(Equal(interaction.State{}))
			Expect(patch).To(BeEmpty())
		})
	})
})

var _ = Describe("Patch.Apply", func() {
	var (
		labels *interaction.Labels
		info   *interaction.InfoPanel
		world  *fakeWorld
	)

	describe := func(name string) string { return name + " info" }

	BeforeEach(func() {
		labels = interaction.NewLabels("Earth", "Mars")
		info = interaction.NewInfoPanel()
		world = &fakeWorld{
			hits: map[float64]string{0.1: "Earth", 0.2: "Mars"},
			positions: map[string]geom.Vec3{
				"Earth": {X: 50},
				"Mars":  {Z: 62},
			},
		}
	})

	It("keeps at most one label active over a pointer sweep", func() {
		var s interaction.State
		for _, x := range []float64{0.1, 0.2, 0.1, 0.5, 0.2, 0.2, 0.9} {
			var patch interaction.Patch
			s, patch = interaction.Update(s, []interaction.Event{move(x)}, world)
			patch.Apply(labels, info, describe, nil)
			Expect(labels.ActiveCount()).To(BeNumerically("<=", 1))
		}
		Expect(labels.ActiveCount()).To(Equal(0))
	})

	It("fills the info panel and restores the placeholder once", func() {
		Expect(info.IsPlaceholder()).To(BeTrue())
		Expect(info.Text).To(Equal(interaction.Placeholder))
		base := info.Renders()

		s, patch := interaction.Update(interaction.State{}, []interaction.Event{move(0.2)}, world)
		patch.Apply(labels, info, describe, nil)
		Expect(info.Title).To(Equal("Mars"))
		Expect(info.Text).To(Equal("Mars info"))
		Expect(labels.Active().Name).To(Equal("Mars"))

		s, patch = interaction.Update(s, []interaction.Event{move(0.9)}, world)
		patch.Apply(labels, info, describe, nil)
		Expect(info.IsPlaceholder()).To(BeTrue())
		Expect(info.Renders()).To(Equal(base + 2))

		info.ShowPlaceholder()
		Expect(info.Renders()).To(Equal(base + 2))
		Expect(s.Idle()).To(BeTrue())
	})

	It("forwards focus to the camera", func() {
		var got []geom.Vec3
		_, patch := interaction.Update(interaction.State{Hovered: "Earth"}, []interaction.Event{interaction.Click{}}, world)
		patch.Apply(labels, info, describe, func(p geom.Vec3) { got = append(got, p) })
		Expect(got).To(Equal([]geom.Vec3{{X: 50}}))
	})
})

var _ = Describe("Nearest", func() {
	ray := geom.Ray{Dir: geom.Vec3{X: 1}}

	It("picks the closest hit along the ray", func() {
		name, ok := interaction.Nearest(ray, []interaction.Sphere{
			{Name: "far", Center: geom.Vec3{X: 50}, Radius: 5},
			{Name: "near", Center: geom.Vec3{X: 20}, Radius: 2},
		})
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("near"))
	})

	It("reports a miss", func() {
		_, ok := interaction.Nearest(ray, []interaction.Sphere{{Name: "off", Center: geom.Vec3{Y: 30}, Radius: 1}})
		Expect(ok).To(BeFalse())
	})

	It("works through a SpherePicker", func() {
		p := &interaction.SpherePicker{
			Cast:    func(geom.Vec2) geom.Ray { return ray },
			Spheres: []interaction.Sphere{{Name: "Earth", Center: geom.Vec3{X: 10}, Radius: 1}},
		}
		name, ok := p.Pick(geom.Vec2{})
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Earth"))
	})
})

var _ = Describe("LabelOffset", func() {
	It("maps the screen center to 50%", func() {
		l, t := interaction.LabelOffset(geom.Vec3{})
		Expect(l).To(Equal(50.0))
		Expect(t).To(Equal(50.0))
	})

	It("puts the top-left corner at 0%", func() {
		l, t := interaction.LabelOffset(geom.Vec3{X: -1, Y: 1})
		Expect(l).To(Equal(0.0))
		Expect(t).To(Equal(0.0))
	})
})
