// Package vec provides float32 vector math for 2D simulation.
package vec

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Len2 is the squared length, avoiding the sqrt when only comparisons
// against a squared radius are needed.
func (v Vec2) Len2() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float32 {
	return Sqrt(v.Len2())
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Plane is a 2D half-plane equation (unit normal N, signed offset D).
// The signed distance of point p is Dot(N, p) + D; positive on the
// interior side.
type Plane struct {
	N Vec2
	D float32
}

// Distance returns the signed distance of p, equivalent to the
// homogeneous dot product ((p.X, p.Y, 1) · (N.X, N.Y, D)).
func (pl Plane) Distance(p Vec2) float32 {
	return pl.N.Dot(p) + pl.D
}

func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func isFinite(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
