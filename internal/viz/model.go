package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/interaction"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/ui"
)

const (
	panelWidth      = 40
	historyCapacity = 600
	frameInterval   = time.Second / 60
	cellPixelsW     = 8
	cellPixelsH     = 16
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model of the terminal orrery.
type Model struct {
	sim    *sim.Simulator
	scene  *scene.Scene
	view   *View
	canvas *Canvas
	theme  Theme
	styles Styles
	rng    *rand.Rand

	width, height int
	lastTick      time.Time
	pending       []interaction.Event
	selected      int
	history       []float64
	showHelp      bool
}

// NewModel wires a simulator whose picker works on the top-down view.
func NewModel(reg *body.Registry, sc *scene.Scene, theme ui.Theme, seed int64, opts ...sim.Option) Model {
	view := &View{}
	opts = append(opts, sim.WithPicker(func(s *sim.Simulator) interaction.Picker {
		return &planePicker{view: view, spheres: s.Spheres}
	}))
	s := sim.New(reg, opts...)
	s.Shell.Theme = theme

	m := Model{
		sim:   s,
		scene: sc,
		view:  view,
		rng:   rand.New(rand.NewSource(seed)),
	}
	m.applyTheme()
	m.resize(100, 30)
	return m
}

func (m *Model) applyTheme() {
	m.theme = NewTheme(m.sim.Shell.Theme)
	m.styles = NewStyles(m.theme)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := w - panelWidth - 4
	if m.sim.Shell.MenuCollapsed {
		cw = w - 2
	}
	m.canvas = NewCanvas(cw, h-2)
	m.view.SubW, m.view.SubH = m.canvas.SubWidth(), m.canvas.SubHeight()
	m.sim.SetViewport(float64(w*cellPixelsW), float64(h*cellPixelsH))
}

// Simulator exposes the driven simulator.
func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		x, y := msg.X-1, msg.Y-1 // canvas padding
		if x >= 0 && y >= 0 && x < m.canvas.Width && y < m.canvas.Height {
			ndc := m.view.NDC(x*2+1, y*4+2)
			m.pending = append(m.pending, interaction.PointerMove{NDC: ndc})
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				m.pending = append(m.pending, interaction.Click{})
			}
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.sim.Rig.Zoom(0.9)
		} else if msg.Button == tea.MouseButtonWheelDown {
			m.sim.Rig.Zoom(1 / 0.9)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		now := time.Time(msg)
		delta := 0.0
		if !m.lastTick.IsZero() {
			delta = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		m.frame(delta)
		return m, tick()
	}
	return m, nil
}

// frame advances the simulator and redraws the canvas.
func (m *Model) frame(delta float64) {
	m.sim.Loading.Advance(time.Duration(delta*float64(time.Second)), m.rng.Float64)
	m.sim.Frame(delta, m.pending)
	m.pending = m.pending[:0]
	m.view.Follow(m.sim.Rig)

	if !m.sim.Shell.Paused {
		if b := m.selectedBody(); b != nil {
			m.history = append(m.history, b.Position().X)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
	}
	m.draw()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sh := m.sim.Shell
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		sh.TogglePause()
	case "o":
		sh.ToggleOrbits()
	case "t":
		sh.ToggleTheme()
		m.applyTheme()
	case "r":
		sh.ResetCamera()
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "up", "k":
		m.nudge(1)
	case "down", "j":
		m.nudge(-1)
	case "0":
		m.sim.ResetSpeeds()
	case "enter":
		if b := m.selectedBody(); b != nil {
			m.sim.Rig.Focus(b.Position())
		}
	case "+", "=":
		m.sim.Rig.Zoom(0.8)
	case "-", "_":
		m.sim.Rig.Zoom(1.25)
	case "i":
		sh.ShowInfo()
	case "c":
		sh.ShowControls()
	case "I":
		sh.CloseInfo()
	case "C":
		sh.CloseControls()
	case "m":
		sh.ToggleMenu()
		m.resize(m.width, m.height)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) cycle(dir int) {
	n := len(m.sim.Sliders)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
	m.history = m.history[:0]
}

func (m *Model) nudge(steps int) {
	if len(m.sim.Sliders) == 0 {
		return
	}
	_ = m.sim.Sliders[m.selected].Nudge(steps)
}

func (m *Model) selectedBody() *orbit.Body {
	if len(m.sim.Sliders) == 0 {
		return nil
	}
	return m.sim.System.Body(m.sim.Sliders[m.selected].Body)
}

func (m *Model) draw() {
	c, v, t := m.canvas, m.view, m.theme
	c.Clear()
	s := v.Scale()

	// seen from above the whole cube overlaps the system; thin it out
	for i, p := range m.scene.Stars {
		if i%8 != 0 {
			continue
		}
		x, y := v.ToSub(p)
		c.Set(x, y, t.Star)
	}

	for _, g := range m.scene.Guides {
		if b := m.sim.System.Body(g.Name); b == nil || !b.GuideVisible {
			continue
		}
		for i := 1; i < len(g.Points); i++ {
			x0, y0 := v.ToSub(g.Points[i-1])
			x1, y1 := v.ToSub(g.Points[i])
			c.DrawLine(x0, y0, x1, y1, t.Guide)
		}
	}

	if g := m.scene.Glow; g != nil {
		x, y := v.ToSub(geom.Vec3{})
		c.DrawCircle(x, y, g.Radius*m.sim.GlowScale()*s, t.Body(g.Color, scene.GlowAlpha+0.2))
	}

	for _, b := range m.sim.System.Bodies() {
		e := m.scene.Entity(b.Desc.Name)
		if e == nil {
			continue
		}
		x, y := v.ToSub(b.Position())
		col := t.Body(b.Desc.RGB(), 1)
		c.FillDisc(x, y, math.Max(e.Radius*s, 1), col)
		if e.Ring != nil {
			c.DrawCircle(x, y, (e.Ring.Inner+e.Ring.Outer)/2*s, t.Body(e.Ring.Color, 0.8))
		}
	}

	if lb := m.sim.Labels.Active(); lb != nil {
		if b := m.sim.System.Body(lb.Name); b != nil {
			x, y := v.ToSub(b.Position())
			c.DrawCircle(x, y, math.Max(b.Desc.Size*s, 1)+3, t.Label)
			c.Text(x/2+3, y/4-1, b.Desc.Name, t.Label)
		}
	}
}

func (m Model) View() string {
	if m.sim.Loading.Visible() {
		return m.loadingView()
	}

	st := m.styles
	canvasView := lipgloss.NewStyle().Padding(1, 1, 0, 1).Render(m.canvas.Render())
	if m.showHelp {
		return m.helpView() + "\n" + canvasView
	}
	if m.sim.Shell.MenuCollapsed {
		return canvasView
	}

	var panels []string
	if m.sim.Shell.InfoVisible {
		panels = append(panels, st.Panel.Width(panelWidth).Render(m.infoPanel()))
	}
	if m.sim.Shell.ControlsVisible {
		panels = append(panels, st.Panel.Width(panelWidth).Render(m.controlsPanel()))
	}
	side := lipgloss.JoinVertical(lipgloss.Left, panels...)
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, side)
}

func (m Model) infoPanel() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(GradientText("ORRERY", m.theme.Palette().Accent, sunColor(m.sim.Registry)) + "  ")
	if m.sim.Shell.Paused {
		b.WriteString(st.Paused.Render("PAUSED"))
	} else {
		b.WriteString(st.Status.Render("RUNNING"))
	}
	b.WriteString("\n\n")

	info := m.sim.Info
	if info.IsPlaceholder() {
		b.WriteString(st.Muted.Render(strings.Join(Wrap(info.Text, panelWidth-4), "\n")))
	} else {
		b.WriteString(st.Header.Render(info.Title) + "\n")
		b.WriteString(st.Value.Render(strings.Join(Wrap(info.Text, panelWidth-4), "\n")))
	}
	b.WriteString("\n\n")
	b.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.1fs", m.sim.Elapsed())) + "\n")
	b.WriteString(st.Label.Render("Camera") + st.Value.Render(fmt.Sprintf("%.0f", m.sim.Rig.Distance())))
	if m.sim.Rig.Transitioning() {
		b.WriteString(st.Muted.Render(" moving"))
	}
	b.WriteString("\n")
	b.WriteString(st.Label.Render("Theme") + st.Value.Render(m.theme.Name))
	return b.String()
}

func (m Model) controlsPanel() string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Header.Render("SPEEDS") + "\n")
	for i, sl := range m.sim.Sliders {
		line := fmt.Sprintf("%-8s %s %.3f", sl.Body, SliderBar(sl.Fraction(), 10), m.sim.System.Body(sl.Body).Speed)
		if i == m.selected {
			b.WriteString(st.Active.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + st.Muted.Render(line) + "\n")
		}
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption(m.sim.Sliders[m.selected].Body+" x"))
		b.WriteString("\n" + st.Graph.Render(chart) + "\n")
	}
	b.WriteString(st.Help.Render("\n" + Separator(panelWidth-4) + "\nSP:" + m.sim.Shell.PauseLabel() + " O:Orbits T:" + m.sim.Shell.ThemeLabel() + "\nR:Reset ↑↓:Speed ⏎:Focus ?:Help Q:Quit"))
	return b.String()
}

func (m Model) loadingView() string {
	l := m.sim.Loading
	fade := m.theme.Faded(l.Opacity())
	box := m.styles.Box.BorderForeground(fade).Foreground(fade).Render(
		"Loading Solar System...\n\n" +
			ProgressBar(l.Progress(), 30) + fmt.Sprintf(" %3.0f%%", l.Progress()),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) helpView() string {
	return m.styles.Box.Render(`KEYBOARD SHORTCUTS

Space    Pause/Resume
O        Toggle orbit guides
T        Toggle theme
R        Reset camera
Tab      Select next planet
Up/Down  Adjust speed
0        Restore speeds
Enter    Focus selected planet
+/-      Zoom
I/C      Info/controls panel
M        Collapse panels
Mouse    Hover and click planets
?        Toggle this help`)
}

func sunColor(reg *body.Registry) colorful.Color {
	if d, ok := reg.Sun(); ok {
		return d.RGB()
	}
	return ui.DarkPalette.Warning
}

// Run starts the terminal program and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
