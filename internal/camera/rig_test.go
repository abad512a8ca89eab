package camera_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
)

func settle(r *camera.Rig) {
	for i := 0; i < 4 && r.Transitioning(); i++ {
		r.Update(1)
	}
}

var _ = Describe("Rig", func() {
	var rig *camera.Rig

	BeforeEach(func() {
		rig = camera.NewRig(camera.DefaultConfig())
	})

	It("starts at the configured viewpoint", func() {
		Expect(rig.Position).To(Equal(geom.Vec3{X: 0, Y: 50, Z: 100}))
		Expect(rig.Target).To(Equal(geom.Vec3{}))
		Expect(rig.Transitioning()).To(BeFalse())
	})

	Describe("Focus", func() {
		It("lands outward and above the body, looking at it", func() {
			p := geom.Vec3{X: 62, Z: 0}
			rig.Focus(p)
			Expect(rig.Transitioning()).To(BeTrue())

			settle(rig)
			Expect(rig.Transitioning()).To(BeFalse())
			Expect(rig.Target).To(Equal(p))
			Expect(rig.Position).To(Equal(geom.Vec3{X: 93, Y: 10, Z: 0}))
		})

		It("takes the configured duration", func() {
			rig.Focus(geom.Vec3{X: 40})
			rig.Update(1.4)
			Expect(rig.Transitioning()).To(BeTrue())
			rig.Update(0.2)
			Expect(rig.Transitioning()).To(BeFalse())
		})

		It("eases through the midpoint", func() {
			rig.Focus(geom.Vec3{X: 40})
			rig.Update(0.75)
			Expect(rig.Transition().Progress()).To(BeNumerically("~", 0.5, 1e-3))
		})
	})

	Describe("Reset", func() {
		It("returns exactly to the initial viewpoint when issued mid-focus", func() {
			rig.Focus(geom.Vec3{X: 40})
			rig.Update(0.5)
			Expect(rig.Position).NotTo(Equal(geom.Vec3{X: 0, Y: 50, Z: 100}))

			rig.Reset()
			settle(rig)
			Expect(rig.Position).To(Equal(geom.Vec3{X: 0, Y: 50, Z: 100}))
			Expect(rig.Target).To(Equal(geom.Vec3{}))
		})
	})

	Describe("superseding transitions", func() {
		It("starts the new one from the current interpolated pose", func() {
			rig.Focus(geom.Vec3{X: 40})
			rig.Update(0.5)
			mid := rig.Position

			rig.Focus(geom.Vec3{X: -80})
			tr := rig.Transition()
			Expect(tr.FromPos).To(Equal(mid))
			Expect(tr.ToTarget).To(Equal(geom.Vec3{X: -80}))

			settle(rig)
			Expect(rig.Target).To(Equal(geom.Vec3{X: -80}))
		})

		It("ignores orbit input while animating", func() {
			rig.Reset()
			rig.Rotate(1, 0)
			rig.Zoom(0.1)
			settle(rig)
			Expect(rig.Position).To(Equal(geom.Vec3{X: 0, Y: 50, Z: 100}))
		})
	})

	Describe("limits", func() {
		It("clamps zoom to the distance range", func() {
			rig.Zoom(0.01)
			Expect(rig.Distance()).To(BeNumerically("~", 20, 1e-9))
			rig.Zoom(1000)
			Expect(rig.Distance()).To(BeNumerically("~", 500, 1e-9))
		})

		It("never orbits below the polar limit", func() {
			rig.Rotate(0, 50)
			for i := 0; i < 500; i++ {
				rig.Update(1.0 / 60)
			}
			Expect(rig.Polar()).To(BeNumerically("<=", 0.9*math.Pi+1e-9))
			Expect(rig.Polar()).To(BeNumerically("~", 0.9*math.Pi, 1e-6))
		})

		It("keeps distance while orbiting", func() {
			d := rig.Distance()
			rig.Rotate(2, 0)
			for i := 0; i < 100; i++ {
				rig.Update(1.0 / 60)
			}
			Expect(rig.Distance()).To(BeNumerically("~", d, 1e-6))
		})
	})

	Describe("projection", func() {
		It("maps the target to the screen center", func() {
			ndc, ok := rig.Project(geom.Vec3{})
			Expect(ok).To(BeTrue())
			Expect(ndc.X).To(BeNumerically("~", 0, 1e-9))
			Expect(ndc.Y).To(BeNumerically("~", 0, 1e-9))
		})

		It("rejects points behind the camera", func() {
			_, ok := rig.Project(geom.Vec3{Y: 60, Z: 200})
			Expect(ok).To(BeFalse())
		})

		It("casts rays back through projected points", func() {
			p := geom.Vec3{X: 20, Y: 3, Z: -10}
			ndc, ok := rig.Project(p)
			Expect(ok).To(BeTrue())

			ray := rig.Ray(geom.Vec2{X: ndc.X, Y: ndc.Y})
			t, hit := ray.IntersectSphere(p, 0.01)
			Expect(hit).To(BeTrue())
			Expect(ray.At(t).Dist(p)).To(BeNumerically("<", 0.02))
		})
	})
})
