package sph

import "github.com/hmaier/fluidlab/internal/vec"

// Smoothing kernels. Three distinct kernel shapes are used, following the
// standard SPH formulation:
//
//   - poly6 for density estimation,
//   - spiky gradient for the pressure force,
//   - viscosity Laplacian for the damping force.
//
// All of them are pure functions of the pair geometry and the precomputed
// normalization coefficients in Constants.

// densityTerm is one particle's kernel-weighted mass contribution at squared
// distance r2. Valid only for r2 < c.H2; the stages test the cutoff before
// calling. The self-pair (r2 = 0) contributes mass·Poly6·h⁶.
func (c *Constants) densityTerm(r2 float32) float32 {
	d := c.H2 - r2
	return c.Mass * c.Poly6 * d * d * d
}

// pressure converts density to pressure via a Tait equation of state,
// cubic in the density ratio and clamped so the fluid never pulls
// (no tensile pressure).
func (c *Constants) pressure(density float32) float32 {
	q := density / c.RestDensity
	p := c.PressureCoef * (q*q*q - 1)
	if p < 0 {
		return 0
	}
	return p
}

// gradPressureTerm is the symmetrized pairwise pressure-gradient force.
// diff points from the particle to its neighbor; with the negative Spiky
// coefficient the result points away from the neighbor when pressures are
// positive. Divides by the neighbor's density and by r: the caller must
// guarantee r > 0.
func (c *Constants) gradPressureTerm(r, ownPressure, neighborPressure, neighborDensity float32, diff vec.Vec2) vec.Vec2 {
	d := c.EffectiveRadius - r
	s := c.Mass * c.Spiky * 0.5 * (ownPressure + neighborPressure) / neighborDensity * d * d / r
	return diff.Scale(s)
}

// viscosityTerm is the pairwise relative-velocity damping force.
func (c *Constants) viscosityTerm(r float32, ownVel, neighborVel vec.Vec2, neighborDensity float32) vec.Vec2 {
	s := c.Mass * c.Viscosity * c.Lap / neighborDensity * (c.EffectiveRadius - r)
	return neighborVel.Sub(ownVel).Scale(s)
}
