package gui

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/interaction"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/ui"
)

const (
	DefaultFontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

	orbitSensitivity = 0.01
	panSensitivity   = 0.2
	zoomStep         = 0.95
	sphereRings      = 32
	sphereSlices     = 32
)

type Options struct {
	Width, Height int
	FPS           int
	Title         string
	FontPath      string
	Theme         ui.Theme
	Seed          int64
	Sim           []sim.Option
	Log           zerolog.Logger
}

type App struct {
	Sim    *sim.Simulator
	Scene  *scene.Scene
	Camera rl.Camera3D
	Font   rl.Font

	models   map[string]rl.Model
	textures []rl.Texture2D
	glowTex  rl.Texture2D
	colors   palette
	layout   layout
	rng      *rand.Rand

	dragging *ui.Slider
	pending  []interaction.Event
	lastNDC  geom.Vec2

	log      zerolog.Logger
	frameLog zerolog.Logger
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

// loadFont loads a TTF font, falling back to the raylib default.
func loadFont(path string) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp opens the window and uploads the scene. It must run on the main
// goroutine.
func NewApp(reg *body.Registry, sc *scene.Scene, o Options) *App {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Title == "" {
		o.Title = "orrery"
	}
	initWindow(o)

	a := &App{
		Scene:    sc,
		Font:     loadFont(o.FontPath),
		models:   make(map[string]rl.Model, len(sc.Entities)),
		rng:      rand.New(rand.NewSource(o.Seed)),
		log:      o.Log,
		frameLog: logging.Sampled(o.Log),
	}

	opts := append([]sim.Option{}, o.Sim...)
	opts = append(opts,
		sim.WithLogger(o.Log),
		sim.WithViewport(float64(o.Width), float64(o.Height)),
		sim.WithPicker(func(s *sim.Simulator) interaction.Picker {
			return &rayPicker{app: a, spheres: s.Spheres}
		}),
	)
	a.Sim = sim.New(reg, opts...)
	a.Sim.Shell.Theme = o.Theme
	a.colors = newPalette(o.Theme)

	rig := a.Sim.Rig.Config()
	a.Camera = rl.NewCamera3D(vec3(rig.Position), vec3(rig.Target), rl.NewVector3(0, 1, 0), float32(rig.FOV), rl.CameraPerspective)

	a.loadScene()
	a.relayout()
	return a
}

// loadScene uploads one sphere model per entity and the glow sprite.
func (a *App) loadScene() {
	for _, e := range a.Scene.Entities {
		model := rl.LoadModelFromMesh(rl.GenMeshSphere(float32(e.Radius), sphereRings, sphereSlices))
		if e.Textured() {
			img := rl.NewImageFromImage(e.Texture)
			tex := rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)
			a.textures = append(a.textures, tex)
		}
		a.models[e.Name] = model
	}

	img := rl.GenImageGradientRadial(64, 64, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	a.glowTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	a.log.Info().Int("models", len(a.models)).Int("textures", len(a.textures)).Msg("scene uploaded")
}

func (a *App) relayout() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.Sim.SetViewport(float64(w), float64(h))
	a.layout = newLayout(w, h, a.Sim.Shell, len(a.Sim.Sliders))
}

// Run drives the frame loop until the window closes.
func (a *App) Run() {
	defer a.Close()
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	for _, m := range a.models {
		rl.UnloadModel(m)
	}
	for _, t := range a.textures {
		rl.UnloadTexture(t)
	}
	rl.UnloadTexture(a.glowTex)
	rl.CloseWindow()
}

func (a *App) Update() {
	dt := float64(rl.GetFrameTime())
	if rl.IsWindowResized() {
		a.relayout()
	}

	a.Sim.Loading.Advance(time.Duration(dt*float64(time.Second)), a.rng.Float64)
	a.handleKeys()
	a.handleMouse()

	a.Sim.Frame(dt, a.pending)
	a.pending = a.pending[:0]
	a.syncCamera()

	a.frameLog.Debug().
		Int("frame", a.Sim.Frames()).
		Int32("fps", rl.GetFPS()).
		Str("hovered", a.Sim.Hovered()).
		Msg("frame")
}

// syncCamera copies the rig pose into the raylib camera.
func (a *App) syncCamera() {
	a.Camera.Position = vec3(a.Sim.Rig.Position)
	a.Camera.Target = vec3(a.Sim.Rig.Target)
}

func (a *App) handleKeys() {
	sh := a.Sim.Shell
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		sh.TogglePause()
	case rl.IsKeyPressed(rl.KeyO):
		sh.ToggleOrbits()
	case rl.IsKeyPressed(rl.KeyR):
		sh.ResetCamera()
	case rl.IsKeyPressed(rl.KeyT):
		a.toggleTheme()
	case rl.IsKeyPressed(rl.KeyI):
		sh.ShowInfo()
		a.relayout()
	case rl.IsKeyPressed(rl.KeyC):
		sh.ShowControls()
		a.relayout()
	case rl.IsKeyPressed(rl.KeyM):
		sh.ToggleMenu()
		a.relayout()
	case rl.IsKeyPressed(rl.KeyZero):
		a.Sim.ResetSpeeds()
	}
}

func (a *App) toggleTheme() {
	a.Sim.Shell.ToggleTheme()
	a.colors = newPalette(a.Sim.Shell.Theme)
	a.log.Info().Stringer("theme", a.Sim.Shell.Theme).Msg("theme changed")
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()

	if a.dragging != nil {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			a.dragSlider(a.dragging, mouse)
			return
		}
		a.dragging = nil
	}

	if a.layout.covers(mouse) {
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			a.clickUI(mouse)
		}
		return
	}

	ndc := a.toNDC(mouse)
	if ndc != a.lastNDC {
		a.pending = append(a.pending, interaction.PointerMove{NDC: ndc})
		a.lastNDC = ndc
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.pending = append(a.pending, interaction.Click{})
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			a.Sim.Rig.Rotate(-float64(d.X)*orbitSensitivity, -float64(d.Y)*orbitSensitivity)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		a.Sim.Rig.Pan(-float64(d.X)*panSensitivity, float64(d.Y)*panSensitivity)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Sim.Rig.Zoom(math.Pow(zoomStep, float64(wheel)))
	}
}

func (a *App) clickUI(mouse rl.Vector2) {
	sh := a.Sim.Shell
	if id, ok := a.layout.button(mouse); ok {
		switch id {
		case btnPause:
			sh.TogglePause()
		case btnOrbits:
			sh.ToggleOrbits()
		case btnReset:
			sh.ResetCamera()
		case btnTheme:
			a.toggleTheme()
		case btnMenu:
			sh.ToggleMenu()
		case btnInfoTab:
			sh.ShowInfo()
		case btnControlsTab:
			sh.ShowControls()
		case btnCloseInfo:
			sh.CloseInfo()
		case btnCloseControls:
			sh.CloseControls()
		}
		a.relayout()
		return
	}
	if i, ok := a.layout.slider(mouse); ok && i < len(a.Sim.Sliders) {
		a.dragging = a.Sim.Sliders[i]
		a.dragSlider(a.dragging, mouse)
	}
}

func (a *App) dragSlider(s *ui.Slider, mouse rl.Vector2) {
	for i, sl := range a.Sim.Sliders {
		if sl != s {
			continue
		}
		track := a.layout.sliders[i]
		f := float64((mouse.X - track.X) / track.Width)
		if err := s.SetFraction(math.Max(0, math.Min(1, f))); err != nil {
			a.log.Warn().Err(err).Str("body", s.Body).Msg("speed rejected")
		}
		return
	}
}

// toNDC maps a window pixel to normalized device coordinates.
func (a *App) toNDC(p rl.Vector2) geom.Vec2 {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	return geom.Vec2{
		X: float64(p.X)/w*2 - 1,
		Y: -(float64(p.Y)/h*2 - 1),
	}
}

func (a *App) fromNDC(ndc geom.Vec2) rl.Vector2 {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	return rl.NewVector2((float32(ndc.X)+1)/2*w, (1-float32(ndc.Y))/2*h)
}

// rayPicker casts the raylib mouse ray through the current camera and returns
// the closest sphere it enters.
type rayPicker struct {
	app     *App
	spheres func() []interaction.Sphere
}

func (p *rayPicker) Pick(ndc geom.Vec2) (string, bool) {
	p.app.syncCamera()
	ray := rl.GetMouseRay(p.app.fromNDC(ndc), p.app.Camera)
	best, bestDist := "", float32(math.MaxFloat32)
	for _, s := range p.spheres() {
		hit := rl.GetRayCollisionSphere(ray, vec3(s.Center), float32(s.Radius))
		if hit.Hit && hit.Distance < bestDist {
			best, bestDist = s.Name, hit.Distance
		}
	}
	return best, best != ""
}

func vec3(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func (a *App) drawText(text string, x, y float32, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(x, y), size, 1, color)
}

func (a *App) measure(text string, size float32) float32 {
	return rl.MeasureTextEx(a.Font, text, size, 1).X
}

func speedText(v float64) string { return fmt.Sprintf("%.3f", v) }
