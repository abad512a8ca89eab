package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/ui"
)

const (
	margin      = 16
	buttonW     = 130
	buttonH     = 28
	panelW      = 300
	infoH       = 170
	sliderRowH  = 36
	headerH     = 34
	closeSize   = 18
	tabH        = 30
	compactTabW = 120
)

type buttonID int

const (
	btnPause buttonID = iota
	btnOrbits
	btnReset
	btnTheme
	btnMenu
	btnInfoTab
	btnControlsTab
	btnCloseInfo
	btnCloseControls
)

type button struct {
	id   buttonID
	rect rl.Rectangle
}

// layout is the screen-space placement of every 2D widget for one window
// size and shell state.
type layout struct {
	buttons  []button
	info     rl.Rectangle
	controls rl.Rectangle
	sliders  []rl.Rectangle
	showInfo bool
	showCtl  bool
}

func newLayout(w, h int, sh *ui.Shell, sliders int) layout {
	var l layout
	x := float32(margin)

	if sh.Mobile {
		l.add(btnMenu, x, margin, 48)
		x += 48 + 8
	}
	if !sh.Mobile || !sh.MenuCollapsed {
		for _, id := range []buttonID{btnPause, btnOrbits, btnReset, btnTheme} {
			l.add(id, x, margin, buttonW)
			x += buttonW + 8
		}
	}

	ctlH := float32(headerH + sliders*sliderRowH + 12)
	if sh.Mobile {
		top := float32(h) - infoH - tabH - margin
		if !sh.InfoTab {
			top = float32(h) - ctlH - tabH - margin
		}
		if top < margin+buttonH+8 {
			top = margin + buttonH + 8
		}
		l.add(btnInfoTab, margin, top, compactTabW)
		l.add(btnControlsTab, margin+compactTabW+4, top, compactTabW)
		panel := rl.NewRectangle(margin, top+tabH, float32(w)-2*margin, float32(h)-top-tabH-margin)
		if sh.InfoVisible {
			l.showInfo, l.info = true, panel
		}
		if sh.ControlsVisible {
			l.showCtl, l.controls = true, panel
		}
	} else {
		px := float32(w) - panelW - margin
		y := float32(margin)
		if sh.InfoVisible {
			l.showInfo = true
			l.info = rl.NewRectangle(px, y, panelW, infoH)
			l.addClose(btnCloseInfo, l.info)
			y += infoH + margin
		}
		if sh.ControlsVisible {
			l.showCtl = true
			l.controls = rl.NewRectangle(px, y, panelW, ctlH)
			l.addClose(btnCloseControls, l.controls)
		}
	}

	if l.showCtl {
		for i := 0; i < sliders; i++ {
			y := l.controls.Y + headerH + float32(i)*sliderRowH + 16
			l.sliders = append(l.sliders, rl.NewRectangle(l.controls.X+90, y, l.controls.Width-150, 8))
		}
	}
	return l
}

func (l *layout) add(id buttonID, x, y, w float32) {
	l.buttons = append(l.buttons, button{id: id, rect: rl.NewRectangle(x, y, w, buttonH)})
}

func (l *layout) addClose(id buttonID, panel rl.Rectangle) {
	l.buttons = append(l.buttons, button{
		id:   id,
		rect: rl.NewRectangle(panel.X+panel.Width-closeSize-8, panel.Y+8, closeSize, closeSize),
	})
}

func (l layout) button(p rl.Vector2) (buttonID, bool) {
	for _, b := range l.buttons {
		if rl.CheckCollisionPointRec(p, b.rect) {
			return b.id, true
		}
	}
	return 0, false
}

// slider returns the index of the slider track under p, with a grab margin.
func (l layout) slider(p rl.Vector2) (int, bool) {
	for i, r := range l.sliders {
		grab := rl.NewRectangle(r.X-6, r.Y-10, r.Width+12, r.Height+20)
		if rl.CheckCollisionPointRec(p, grab) {
			return i, true
		}
	}
	return 0, false
}

// covers reports whether p is over any widget, in which case the scene
// does not receive the pointer.
func (l layout) covers(p rl.Vector2) bool {
	if _, ok := l.button(p); ok {
		return true
	}
	if l.showInfo && rl.CheckCollisionPointRec(p, l.info) {
		return true
	}
	return l.showCtl && rl.CheckCollisionPointRec(p, l.controls)
}

// palette is a ui theme in raylib colors.
type palette struct {
	ui.Palette
	bg, panel, border, text, muted, accent, label, warning rl.Color
}

func newPalette(t ui.Theme) palette {
	p := t.Palette()
	return palette{
		Palette: p,
		bg:      rgba(p.Background, 1),
		panel:   rgba(p.Panel, 0.85),
		border:  rgba(p.Border, 1),
		text:    rgba(p.Text, 1),
		muted:   rgba(p.Muted, 1),
		accent:  rgba(p.Accent, 1),
		label:   rgba(p.Label, 1),
		warning: rgba(p.Warning, 1),
	}
}

func rgba(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(alpha*255))
}
