package geom

import "math"

// Vec2 is a 2D vector. The zero value is the origin.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64  { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

// Norm returns the unit vector, or the zero vector for zero-length input.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns the unit vector pointing along rad.
func FromAngle(rad float64) Vec2 {
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// AngleTo returns the angle of the vector from v to o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

func Dist(a, b Vec2) float64  { return a.Sub(b).Len() }
func Dist2(a, b Vec2) float64 { return a.Sub(b).Len2() }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between from and to.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
