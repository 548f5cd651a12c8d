package sph

import (
	"math"

	"github.com/hmaier/fluidlab/internal/vec"
)

// Params holds the user-facing simulation parameters. Everything derived
// (kernel normalization coefficients, wall planes) lives in Constants.
type Params struct {
	RestDensity     float32
	PressureCoef    float32
	Mass            float32
	EffectiveRadius float32
	TimeStep        float32
	Viscosity       float32
	WallStiffness   float32
	ParticleGap     float32
	Gravity         vec.Vec2
	MinBound        vec.Vec2
	MaxBound        vec.Vec2
	N               int
}

// Constants is the immutable per-tick configuration handed to every stage.
// It is shared read-only across all parallel tasks; nothing in this package
// mutates it after construction.
type Constants struct {
	Params

	// H2 is EffectiveRadius squared, precomputed for the r² cutoff tests.
	H2 float32

	// Kernel normalization coefficients, derived from the effective radius:
	//   Poly6 = 315 / (64·π·h⁹)
	//   Spiky = -45 / (π·h⁶)
	//   Lap   = 45 / (π·h⁶)
	Poly6 float32
	Spiky float32
	Lap   float32

	// Walls are the four domain half-planes with unit inward normals.
	// Interior points have positive signed distance to every wall.
	Walls [4]vec.Plane
}

// NewConstants derives kernel coefficients and wall planes from p.
// Coefficients are computed in float64 and narrowed once, so the h⁹ term
// does not lose precision along the way.
func NewConstants(p Params) *Constants {
	h := float64(p.EffectiveRadius)
	h3 := h * h * h
	h6 := h3 * h3
	h9 := h6 * h3

	c := &Constants{
		Params: p,
		H2:     p.EffectiveRadius * p.EffectiveRadius,
		Poly6:  float32(315.0 / (64.0 * math.Pi * h9)),
		Spiky:  float32(-45.0 / (math.Pi * h6)),
		Lap:    float32(45.0 / (math.Pi * h6)),
	}

	c.Walls = [4]vec.Plane{
		{N: vec.Vec2{X: 1, Y: 0}, D: -p.MinBound.X},
		{N: vec.Vec2{X: -1, Y: 0}, D: p.MaxBound.X},
		{N: vec.Vec2{X: 0, Y: 1}, D: -p.MinBound.Y},
		{N: vec.Vec2{X: 0, Y: -1}, D: p.MaxBound.Y},
	}

	return c
}
