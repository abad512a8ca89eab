package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orrery/internal/ui"
)

const (
	textSize  = 16
	titleSize = 20
)

func (a *App) drawHUD() {
	a.drawLabel()
	a.drawButtons()
	if a.layout.showInfo {
		a.drawInfo(a.layout.info)
	}
	if a.layout.showCtl {
		a.drawControls(a.layout.controls)
	}
}

// drawLabel draws the hovered body's name at its projected position.
func (a *App) drawLabel() {
	lb := a.Sim.Labels.Active()
	if lb == nil {
		return
	}
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	x := float32(lb.Left) / 100 * w
	y := float32(lb.Top) / 100 * h
	tw := a.measure(lb.Name, textSize)
	rl.DrawRectangleRounded(rl.NewRectangle(x-tw/2-6, y-28, tw+12, 22), 0.4, 6, a.colors.panel)
	a.drawText(lb.Name, x-tw/2, y-25, textSize, a.colors.label)
}

func (a *App) drawButtons() {
	sh := a.Sim.Shell
	for _, b := range a.layout.buttons {
		var text string
		active := false
		switch b.id {
		case btnPause:
			text = sh.PauseLabel()
		case btnOrbits:
			text = "Toggle Orbits"
		case btnReset:
			text = "Reset Camera"
		case btnTheme:
			text = sh.ThemeLabel()
		case btnMenu:
			text = "Menu"
			active = !sh.MenuCollapsed
		case btnInfoTab:
			text, active = "Info", sh.InfoTab
		case btnControlsTab:
			text, active = "Controls", !sh.InfoTab
		case btnCloseInfo, btnCloseControls:
			a.drawText("x", b.rect.X+5, b.rect.Y, titleSize, a.colors.muted)
			continue
		}
		a.drawButton(b.rect, text, active)
	}
}

func (a *App) drawButton(r rl.Rectangle, text string, active bool) {
	fill := a.colors.panel
	if active || rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
		fill = rgba(a.colors.Accent, 0.35)
	}
	rl.DrawRectangleRounded(r, 0.3, 6, fill)
	rl.DrawRectangleLinesEx(r, 1, a.colors.border)
	tw := a.measure(text, textSize)
	a.drawText(text, r.X+(r.Width-tw)/2, r.Y+6, textSize, a.colors.text)
}

func (a *App) drawPanel(r rl.Rectangle, title string) {
	rl.DrawRectangleRounded(r, 0.05, 8, a.colors.panel)
	rl.DrawRectangleLinesEx(r, 1, a.colors.border)
	a.drawText(title, r.X+12, r.Y+8, titleSize, a.colors.accent)
}

func (a *App) drawInfo(r rl.Rectangle) {
	info := a.Sim.Info
	title := "Planet Info"
	if !info.IsPlaceholder() {
		title = info.Title
	}
	a.drawPanel(r, title)
	y := r.Y + headerH
	for _, line := range a.wrap(info.Text, textSize, r.Width-24) {
		if y+textSize > r.Y+r.Height-8 {
			break
		}
		a.drawText(line, r.X+12, y, textSize, a.colors.text)
		y += textSize + 4
	}
}

func (a *App) drawControls(r rl.Rectangle) {
	a.drawPanel(r, "Orbit Speeds")
	for i, s := range a.Sim.Sliders {
		if i >= len(a.layout.sliders) {
			break
		}
		a.drawSlider(a.layout.sliders[i], s)
	}
}

func (a *App) drawSlider(track rl.Rectangle, s *ui.Slider) {
	a.drawText(s.Body, track.X-80, track.Y-6, textSize, a.colors.text)
	rl.DrawRectangleRounded(track, 1, 4, a.colors.border)
	filled := track
	filled.Width = track.Width * float32(s.Fraction())
	rl.DrawRectangleRounded(filled, 1, 4, a.colors.accent)
	rl.DrawCircleV(rl.NewVector2(track.X+filled.Width, track.Y+track.Height/2), 7, a.colors.text)
	a.drawText(speedText(s.Value()), track.X+track.Width+10, track.Y-6, textSize, a.colors.muted)
}

// drawLoading draws the startup overlay while it has any opacity left.
func (a *App) drawLoading() {
	l := a.Sim.Loading
	if !l.Visible() {
		return
	}
	op := float32(l.Opacity())
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.ColorAlpha(a.colors.bg, op))

	title := "Loading Solar System..."
	tw := a.measure(title, titleSize)
	a.drawText(title, (w-tw)/2, h/2-40, titleSize, rl.ColorAlpha(a.colors.text, op))

	bar := rl.NewRectangle(w/2-150, h/2, 300, 10)
	rl.DrawRectangleRec(bar, rl.ColorAlpha(a.colors.border, op))
	bar.Width *= float32(l.Progress() / 100)
	rl.DrawRectangleRec(bar, rl.ColorAlpha(a.colors.accent, op))

	pct := fmt.Sprintf("%.0f%%", l.Progress())
	pw := a.measure(pct, textSize)
	a.drawText(pct, (w-pw)/2, h/2+20, textSize, rl.ColorAlpha(a.colors.muted, op))
}

// wrap breaks text into lines no wider than width.
func (a *App) wrap(text string, size, width float32) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() == 0 {
			cur.WriteString(word)
			continue
		}
		if a.measure(cur.String()+" "+word, size) > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			continue
		}
		cur.WriteString(" ")
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
