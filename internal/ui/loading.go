package ui

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	LoadingInterval = 200 * time.Millisecond
	OverlayDelay    = 1500 * time.Millisecond
	FadeDuration    = time.Second
)

// Loading is the simulated startup progress indicator.
type Loading struct {
	progress float64
	elapsed  time.Duration
	pending  time.Duration
}

func (l *Loading) Progress() float64 { return l.progress }

// Tick adds r·10 percent, capped at 100. r is expected in [0, 1).
func (l *Loading) Tick(r float64) float64 {
	if r > 0 {
		l.progress = math.Min(100, l.progress+r*10)
	}
	return l.progress
}

// Advance moves the overlay clock by dt, ticking progress once per
// LoadingInterval with a value drawn from rnd.
func (l *Loading) Advance(dt time.Duration, rnd func() float64) {
	if dt <= 0 {
		return
	}
	l.elapsed += dt
	l.pending += dt
	for l.pending >= LoadingInterval {
		l.pending -= LoadingInterval
		if l.progress < 100 {
			l.Tick(rnd())
		}
	}
}

func (l *Loading) Elapsed() time.Duration { return l.elapsed }

// Opacity is 1 until OverlayDelay, then fades to 0 over FadeDuration.
func (l *Loading) Opacity() float64 {
	if l.elapsed < OverlayDelay {
		return 1
	}
	t := l.elapsed - OverlayDelay
	if t >= FadeDuration {
		return 0
	}
	return 1 - float64(ease.OutQuad(float32(t.Seconds()), 0, 1, float32(FadeDuration.Seconds())))
}

// Visible reports whether the overlay is still drawn.
func (l *Loading) Visible() bool { return l.Opacity() > 0 }
