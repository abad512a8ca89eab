package camera

import (
	"github.com/san-kum/orrery/internal/geom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates camera position and target together over a fixed
// duration. On completion both land exactly on their end values.
type Transition struct {
	FromPos, ToPos       geom.Vec3
	FromTarget, ToTarget geom.Vec3

	tween    *gween.Tween
	progress float64
	done     bool
}

func NewTransition(fromPos, fromTarget, toPos, toTarget geom.Vec3, duration float64, easing ease.TweenFunc) *Transition {
	if easing == nil {
		easing = ease.InOutQuad
	}
	return &Transition{
		FromPos:    fromPos,
		ToPos:      toPos,
		FromTarget: fromTarget,
		ToTarget:   toTarget,
		tween:      gween.New(0, 1, float32(duration), easing),
		done:       duration <= 0,
	}
}

// Update advances the animation by dt seconds.
func (t *Transition) Update(dt float64) (pos, target geom.Vec3, done bool) {
	if !t.done {
		p, finished := t.tween.Update(float32(dt))
		t.progress = float64(p)
		t.done = finished
	}
	if t.done {
		t.progress = 1
		return t.ToPos, t.ToTarget, true
	}
	return t.FromPos.Lerp(t.ToPos, t.progress), t.FromTarget.Lerp(t.ToTarget, t.progress), false
}

// Progress is the eased completion fraction in [0, 1].
func (t *Transition) Progress() float64 { return t.progress }

func (t *Transition) InProgress() bool { return !t.done }
