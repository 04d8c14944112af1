package geom

import (
	"math"
	"testing"
)

func TestNormZeroVectorIsSafe(t *testing.T) {
	n := (Vec2{}).Norm()
	if n.X != 0 || n.Y != 0 {
		t.Fatalf("norm of zero vector should be zero, got (%.4f, %.4f)", n.X, n.Y)
	}
}

func TestNormIsUnitLength(t *testing.T) {
	n := (Vec2{X: 3, Y: -4}).Norm()
	if !almostEq(n.Len(), 1) {
		t.Fatalf("normalized length should be 1, got %.6f", n.Len())
	}
	if !almostEq(n.X, 0.6) || !almostEq(n.Y, -0.8) {
		t.Fatalf("unexpected direction: (%.4f, %.4f)", n.X, n.Y)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	for _, rad := range []float64{0, math.Pi / 3, math.Pi, -math.Pi / 2} {
		v := FromAngle(rad)
		if !almostEq(v.Len(), 1) {
			t.Fatalf("FromAngle(%.3f) not unit length: %.6f", rad, v.Len())
		}
		got := (Vec2{}).AngleTo(v)
		want := math.Atan2(math.Sin(rad), math.Cos(rad))
		if !almostEq(got, want) {
			t.Fatalf("angle round trip mismatch: got %.6f want %.6f", got, want)
		}
	}
}

func TestDistMatchesDist2(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}
	if !almostEq(Dist(a, b), 5) {
		t.Fatalf("dist mismatch: got %.6f want 5", Dist(a, b))
	}
	if !almostEq(Dist2(a, b), 25) {
		t.Fatalf("dist2 mismatch: got %.6f want 25", Dist2(a, b))
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp above: got %.4f want 3", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp below: got %.4f want 0", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Fatalf("clamp inside: got %.4f want 2", got)
	}
}

func almostEq(a, b float64) bool {
	const eps = 1e-6
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
