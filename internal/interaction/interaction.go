// Package interaction maps pointer input to hover, label and focus changes.
//
// Update is a pure function of the previous State, a batch of input events
// and a read-only view of the world. It returns the next State together with
// an ordered Patch that the frontend applies to its labels, info panel and
// camera.
package interaction

import (
	"github.com/san-kum/orrery/internal/geom"
)

// State is Idle when Hovered is empty, otherwise Hovering(Hovered).
type State struct {
	Hovered string
}

func (s State) Idle() bool { return s.Hovered == "" }

type Event interface {
	event()
}

// PointerMove carries the pointer position in normalized device coordinates.
type PointerMove struct {
	NDC geom.Vec2
}

type Click struct{}

func (PointerMove) event() {}
func (Click) event()       {}

type OpKind int

const (
	LabelOff OpKind = iota
	LabelOn
	LabelMove
	ShowInfo
	ShowPlaceholder
	Focus
)

func (k OpKind) String() string {
	switch k {
	case LabelOff:
		return "label-off"
	case LabelOn:
		return "label-on"
	case LabelMove:
		return "label-move"
	case ShowInfo:
		return "show-info"
	case ShowPlaceholder:
		return "show-placeholder"
	case Focus:
		return "focus"
	}
	return "unknown"
}

// Op is one side effect. Left and Top are percentage offsets for LabelMove;
// At is the body's world position for Focus.
type Op struct {
	Kind      OpKind
	Body      string
	Left, Top float64
	At        geom.Vec3
}

type Patch []Op

// Picker returns the body nearest along the ray through ndc.
type Picker interface {
	Pick(ndc geom.Vec2) (name string, ok bool)
}

// World is the read-only view Update needs.
type World interface {
	Picker
	Position(name string) (geom.Vec3, bool)
	Project(p geom.Vec3) (ndc geom.Vec3, visible bool)
}

// Update applies events in order. While hovering, the label is re-projected
// from the body's current position at the end of every call.
func Update(s State, events []Event, w World) (State, Patch) {
	var patch Patch

	for _, ev := range events {
		switch ev := ev.(type) {
		case PointerMove:
			name, ok := w.Pick(ev.NDC)
			if !ok {
				name = ""
			}
			if name == s.Hovered {
				continue
			}
			if s.Hovered != "" {
				patch = append(patch, Op{Kind: LabelOff, Body: s.Hovered})
			}
			if name == "" {
				patch = append(patch, Op{Kind: ShowPlaceholder})
			} else {
				patch = append(patch,
					Op{Kind: LabelOn, Body: name},
					Op{Kind: ShowInfo, Body: name},
				)
			}
			s.Hovered = name

		case Click:
			if s.Hovered == "" {
				continue
			}
			if p, ok := w.Position(s.Hovered); ok {
				patch = append(patch, Op{Kind: Focus, Body: s.Hovered, At: p})
			}
		}
	}

	if s.Hovered != "" {
		if p, ok := w.Position(s.Hovered); ok {
			ndc, _ := w.Project(p)
			left, top := LabelOffset(ndc)
			patch = append(patch, Op{Kind: LabelMove, Body: s.Hovered, Left: left, Top: top})
		}
	}

	return s, patch
}

// LabelOffset maps NDC to left/top screen percentages.
func LabelOffset(ndc geom.Vec3) (left, top float64) {
	return (ndc.X*0.5 + 0.5) * 100, (-(ndc.Y * 0.5) + 0.5) * 100
}
