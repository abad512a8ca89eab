package geom

import (
	"math"
	"testing"
)

func TestIntersectSphere(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		center Vec3
		radius float64
		hit    bool
		dist   float64
	}{
		{"head on", Ray{Vec3{0, 0, 10}, Vec3{0, 0, -1}}, Vec3{}, 1, true, 9},
		{"miss", Ray{Vec3{0, 5, 10}, Vec3{0, 0, -1}}, Vec3{}, 1, false, 0},
		{"behind", Ray{Vec3{0, 0, 10}, Vec3{0, 0, 1}}, Vec3{}, 1, false, 0},
		{"inside", Ray{Vec3{}, Vec3{1, 0, 0}}, Vec3{}, 2, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.ray.IntersectSphere(tt.center, tt.radius)
			if ok != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, ok)
			}
			if ok && math.Abs(d-tt.dist) > 1e-9 {
				t.Errorf("expected distance %.3f, got %.3f", tt.dist, d)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	for _, a := range []float64{-7, -0.1, 0, 3, 6.3, 1000} {
		w := WrapAngle(a)
		if w < 0 || w >= 2*math.Pi {
			t.Errorf("WrapAngle(%f) = %f out of range", a, w)
		}
		if math.Abs(math.Sin(w)-math.Sin(a)) > 1e-9 {
			t.Errorf("WrapAngle(%f) changed sin", a)
		}
	}
}

func TestLerp(t *testing.T) {
	a, b := Vec3{0, 0, 0}, Vec3{10, -10, 4}
	mid := a.Lerp(b, 0.5)
	if mid != (Vec3{5, -5, 2}) {
		t.Errorf("unexpected midpoint %+v", mid)
	}
	if a.Lerp(b, 1) != b {
		t.Error("lerp at 1 should land on target")
	}
}
