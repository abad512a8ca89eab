package interaction

import "github.com/san-kum/orrery/internal/geom"

const Placeholder = "Hover or click on a planet to see details"

// Label is the floating name tag of one body.
type Label struct {
	Name      string
	Active    bool
	Left, Top float64
}

// Labels holds one label per body; at most one is active.
type Labels struct {
	byName map[string]*Label
	order  []string
}

func NewLabels(names ...string) *Labels {
	l := &Labels{byName: make(map[string]*Label, len(names))}
	for _, n := range names {
		l.byName[n] = &Label{Name: n}
		l.order = append(l.order, n)
	}
	return l
}

func (l *Labels) Get(name string) *Label { return l.byName[name] }

// Active returns the active label, or nil.
func (l *Labels) Active() *Label {
	for _, n := range l.order {
		if lb := l.byName[n]; lb.Active {
			return lb
		}
	}
	return nil
}

// ActiveCount is the number of active labels.
func (l *Labels) ActiveCount() int {
	c := 0
	for _, lb := range l.byName {
		if lb.Active {
			c++
		}
	}
	return c
}

func (l *Labels) set(name string, active bool) {
	if lb, ok := l.byName[name]; ok {
		lb.Active = active
	}
}

// InfoPanel shows either a body's name and description or the placeholder.
type InfoPanel struct {
	Title string
	Text  string

	placeholder bool
	renders     int
}

func NewInfoPanel() *InfoPanel {
	p := &InfoPanel{}
	p.ShowPlaceholder()
	return p
}

func (p *InfoPanel) Show(title, text string) {
	p.Title, p.Text = title, text
	p.placeholder = false
	p.renders++
}

// ShowPlaceholder is a no-op when the placeholder is already shown.
func (p *InfoPanel) ShowPlaceholder() {
	if p.placeholder {
		return
	}
	p.Title, p.Text = "", Placeholder
	p.placeholder = true
	p.renders++
}

func (p *InfoPanel) IsPlaceholder() bool { return p.placeholder }

// Renders counts content replacements.
func (p *InfoPanel) Renders() int { return p.renders }

// Describer returns the descriptive text of a body.
type Describer func(name string) string

// Apply performs the patch in order. focus may be nil.
func (pt Patch) Apply(labels *Labels, info *InfoPanel, describe Describer, focus func(geom.Vec3)) {
	for _, op := range pt {
		switch op.Kind {
		case LabelOff:
			labels.set(op.Body, false)
		case LabelOn:
			labels.set(op.Body, true)
		case LabelMove:
			if lb := labels.Get(op.Body); lb != nil {
				lb.Left, lb.Top = op.Left, op.Top
			}
		case ShowInfo:
			text := ""
			if describe != nil {
				text = describe(op.Body)
			}
			info.Show(op.Body, text)
		case ShowPlaceholder:
			info.ShowPlaceholder()
		case Focus:
			if focus != nil {
				focus(op.At)
			}
		}
	}
}
