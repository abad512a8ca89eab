package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/ui"
)

const (
	rad2deg   = 180 / math.Pi
	ringBands = 12
)

var (
	axisY = rl.NewVector3(0, 1, 0)
	axisX = rl.NewVector3(1, 0, 0)
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.colors.bg)

	rl.BeginMode3D(a.Camera)
	a.drawStars()
	a.drawGuides()
	a.drawBodies()
	a.drawGlow()
	rl.EndMode3D()

	a.drawHUD()
	a.drawLoading()
	rl.EndDrawing()
}

func (a *App) drawStars() {
	col := rl.NewColor(255, 255, 255, 200)
	if a.Sim.Shell.Theme == ui.Light {
		col = rgba(a.colors.Muted, 0.6)
	}
	for _, p := range a.Scene.Stars {
		rl.DrawPoint3D(vec3(p), col)
	}
}

func (a *App) drawGuides() {
	col := rgba(scene.GuideColor, scene.GuideAlpha)
	for _, g := range a.Scene.Guides {
		if b := a.Sim.System.Body(g.Name); b != nil && !b.GuideVisible {
			continue
		}
		for i := 1; i < len(g.Points); i++ {
			rl.DrawLine3D(vec3(g.Points[i-1]), vec3(g.Points[i]), col)
		}
	}
}

func (a *App) drawBodies() {
	for _, b := range a.Sim.System.Bodies() {
		e := a.Scene.Entity(b.Desc.Name)
		if e == nil {
			continue
		}
		pos := vec3(b.Position())
		tint := rgba(e.Color, 1)
		if model, ok := a.models[e.Name]; ok {
			rl.DrawModelEx(model, pos, axisY, float32(b.Spin*rad2deg), rl.NewVector3(1, 1, 1), tint)
		} else {
			rl.DrawSphere(pos, float32(e.Radius), tint)
		}
		if e.Ring != nil {
			a.drawRing(pos, e.Ring, b)
		}
	}
}

// drawRing draws concentric bands in the body's equatorial plane, with a
// radial spoke showing the ring's own rotation.
func (a *App) drawRing(center rl.Vector3, r *scene.Ring, b *orbit.Body) {
	col := rgba(r.Color, 0.8)
	for i := 0; i <= ringBands; i++ {
		radius := r.Inner + (r.Outer-r.Inner)*float64(i)/ringBands
		rl.DrawCircle3D(center, float32(radius), axisX, 90, col)
	}
	dir := rl.NewVector3(float32(math.Cos(b.RingAngle)), 0, float32(math.Sin(b.RingAngle)))
	rl.DrawLine3D(
		rl.Vector3Add(center, rl.Vector3Scale(dir, float32(r.Inner))),
		rl.Vector3Add(center, rl.Vector3Scale(dir, float32(r.Outer))),
		rgba(r.Color, 1),
	)
}

// drawGlow draws the pulsing, slowly turning additive halo around the sun.
func (a *App) drawGlow() {
	g := a.Scene.Glow
	if g == nil {
		return
	}
	size := float32(g.Radius * 2 * a.Sim.GlowScale())
	src := rl.NewRectangle(0, 0, float32(a.glowTex.Width), float32(a.glowTex.Height))
	spin := float32(a.Sim.System.GlowSpin() * rad2deg)
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawBillboardPro(a.Camera, a.glowTex, src, rl.NewVector3(0, 0, 0), axisY,
		rl.NewVector2(size, size), rl.NewVector2(size/2, size/2), spin, rgba(g.Color, scene.GlowAlpha))
	rl.EndBlendMode()
}
