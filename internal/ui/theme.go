package ui

import "github.com/lucasb-eyer/go-colorful"

// Palette is the color scheme of one theme.
type Palette struct {
	Background colorful.Color
	Panel      colorful.Color
	Border     colorful.Color
	Text       colorful.Color
	Muted      colorful.Color
	Accent     colorful.Color
	Label      colorful.Color
	Warning    colorful.Color
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	DarkPalette = Palette{
		Background: mustHex("#000000"),
		Panel:      mustHex("#10101c"),
		Border:     mustHex("#2e2e4a"),
		Text:       mustHex("#ffffff"),
		Muted:      mustHex("#8a8aa8"),
		Accent:     mustHex("#4fc3f7"),
		Label:      mustHex("#ffffff"),
		Warning:    mustHex("#ffaa00"),
	}

	LightPalette = Palette{
		Background: mustHex("#e8eef5"),
		Panel:      mustHex("#ffffff"),
		Border:     mustHex("#b8c4d4"),
		Text:       mustHex("#1a1a2e"),
		Muted:      mustHex("#5c6370"),
		Accent:     mustHex("#1565c0"),
		Label:      mustHex("#1a1a2e"),
		Warning:    mustHex("#c77700"),
	}
)

func (t Theme) Palette() Palette {
	if t == Light {
		return LightPalette
	}
	return DarkPalette
}

// Fade blends fg toward bg as opacity goes from 1 to 0.
func Fade(fg, bg colorful.Color, opacity float64) colorful.Color {
	if opacity >= 1 {
		return fg
	}
	if opacity <= 0 {
		return bg
	}
	return bg.BlendRgb(fg, opacity).Clamped()
}
