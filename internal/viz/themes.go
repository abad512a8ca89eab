package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/ui"
)

// Theme is a ui.Palette resolved to terminal colors.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Panel      lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Label      lipgloss.Color
	Warning    lipgloss.Color
	Guide      lipgloss.Color
	Star       lipgloss.Color

	palette ui.Palette
}

func hex(c colorful.Color) lipgloss.Color { return lipgloss.Color(c.Clamped().Hex()) }

func NewTheme(t ui.Theme) Theme {
	p := t.Palette()
	return Theme{
		Name:       t.String(),
		Background: hex(p.Background),
		Panel:      hex(p.Panel),
		Border:     hex(p.Border),
		Text:       hex(p.Text),
		Muted:      hex(p.Muted),
		Accent:     hex(p.Accent),
		Label:      hex(p.Label),
		Warning:    hex(p.Warning),
		// guides and stars are translucent in 3D; here they are pre-blended
		// onto the background
		Guide:   hex(ui.Fade(colorful.Color{R: 0x55 / 255.0, G: 0x55 / 255.0, B: 0x55 / 255.0}, p.Background, 0.6)),
		Star:    hex(ui.Fade(p.Text, p.Background, 0.35)),
		palette: p,
	}
}

// Body returns the terminal color of a body, faded by opacity.
func (t Theme) Body(c colorful.Color, opacity float64) lipgloss.Color {
	return hex(ui.Fade(c, t.palette.Background, opacity))
}

// Faded returns the theme's text color faded toward the background.
func (t Theme) Faded(opacity float64) lipgloss.Color {
	return hex(ui.Fade(t.palette.Text, t.palette.Background, opacity))
}

func (t Theme) Palette() ui.Palette { return t.palette }
