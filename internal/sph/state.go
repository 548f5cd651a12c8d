package sph

import (
	"math"

	"github.com/hmaier/fluidlab/internal/vec"
)

// Particle is one element of the fluid: a position and a velocity.
// The pool has a fixed size; particles are never created or destroyed
// while the simulation runs.
type Particle struct {
	Pos vec.Vec2
	Vel vec.Vec2
}

// State holds the double-buffered particle arrays for one simulation.
// Every particle-indexed array comes as a current/next pair: stages read
// the current buffers and write only into the next buffer of their own
// output array, so no locks are needed inside a stage. The orchestrator
// publishes results by swapping a pair after the stage's barrier.
//
// Index semantics are shared: index i refers to the same particle in
// Particles, Density and Accel.
type State struct {
	Particles    []Particle
	NextParticle []Particle

	Density     []float32
	NextDensity []float32

	Accel     []vec.Vec2
	NextAccel []vec.Vec2
}

// NewState allocates buffers for n particles, all zeroed.
func NewState(n int) *State {
	return &State{
		Particles:    make([]Particle, n),
		NextParticle: make([]Particle, n),
		Density:      make([]float32, n),
		NextDensity:  make([]float32, n),
		Accel:        make([]vec.Vec2, n),
		NextAccel:    make([]vec.Vec2, n),
	}
}

func (s *State) Len() int { return len(s.Particles) }

// SwapParticles publishes the integrated positions/velocities as the next
// tick's input. Orchestrator only; never called inside a stage.
func (s *State) SwapParticles() {
	s.Particles, s.NextParticle = s.NextParticle, s.Particles
}

// SwapDensity publishes the density stage's output for the force stage.
func (s *State) SwapDensity() {
	s.Density, s.NextDensity = s.NextDensity, s.Density
}

// SwapAccel publishes the force stage's output for integration.
func (s *State) SwapAccel() {
	s.Accel, s.NextAccel = s.NextAccel, s.Accel
}

// IsValid reports whether every current position and velocity is finite.
func (s *State) IsValid() bool {
	for i := range s.Particles {
		if !s.Particles[i].Pos.IsFinite() || !s.Particles[i].Vel.IsFinite() {
			return false
		}
	}
	return true
}

// SeedGrid lays the pool out as a square-ish block of rows spaced by gap,
// anchored at origin, at rest. This is the initial dam-break style column;
// the presets choose origin and gap.
func (s *State) SeedGrid(gap float32, origin vec.Vec2) {
	n := s.Len()
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	for i := range s.Particles {
		row, col := i/cols, i%cols
		s.Particles[i] = Particle{
			Pos: vec.Vec2{
				X: origin.X + float32(col)*gap,
				Y: origin.Y + float32(row)*gap,
			},
		}
	}
}
