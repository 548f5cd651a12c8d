// Package sim orchestrates the SPH tick pipeline.
//
// One tick runs three data-parallel stages over the particle pool:
//
//	Density -> Force -> Integrate
//
// with a full barrier between stages (each stage call returns only after
// every particle task has finished) and a buffer swap publishing each
// stage's output. The [Simulator] owns that sequence; the stages
// themselves live in the sph package and never see each other's
// in-progress output.
//
// # Thread Safety
//
// A Simulator is NOT safe for concurrent use. To run several scenarios
// at once, use [Sweep], which gives each run its own state.
package sim
