// Package sph implements the 2D Smoothed Particle Hydrodynamics core:
// smoothing-kernel math, the double-buffered particle store, and the
// three data-parallel compute stages of one tick:
//
//   - [DensityStage]: poly6 kernel sum over all pairs within the
//     effective radius (self-pair included)
//   - [ForceStage]: Tait pressure, spiky pressure-gradient and viscosity
//     Laplacian forces per pair
//   - [IntegrateStage]: wall penalty forces, gravity, semi-implicit Euler
//
// The neighbor loops are brute-force all-pairs on purpose: a spatial
// acceleration structure would change which pairs are summed and in what
// order, so it belongs in a separately validated optimization.
//
// # Execution contract
//
// Within a stage every particle task reads shared read-only buffers and
// writes only its own output slot, so stages need no locks. Stages must
// run in order with a full barrier between them, and outputs become
// visible only through the [State] swap methods; the sim package owns
// that sequence.
package sph
