package sph

import "github.com/hmaier/fluidlab/internal/vec"

// The three compute stages of one tick. Each is a data-parallel map over
// the particle index range: task i reads the shared input buffers and
// writes only slot i of its output buffer. The neighbor loops are
// deliberately brute-force all-pairs; a spatial grid would change which
// pairs are summed and in what order, and belongs in a separately
// validated optimization.
//
// Callers must run the stages in order (density, forces, integrate) and
// swap the matching buffer pair between them; see sim.Simulator.

// DensityStage computes the smoothed local mass density for every
// particle from the current positions, writing into st.NextDensity.
// The self-pair is included: an isolated particle has density
// mass·Poly6·h⁶, not zero.
func DensityStage(c *Constants, st *State, workers int) {
	particles := st.Particles
	out := st.NextDensity

	parallelFor(len(particles), workers, func(start, end int) {
		for i := start; i < end; i++ {
			pos := particles[i].Pos
			var density float32
			for j := range particles {
				r2 := particles[j].Pos.Sub(pos).Len2()
				if r2 < c.H2 {
					density += c.densityTerm(r2)
				}
			}
			out[i] = density
		}
	})
}

// ForceStage accumulates the pairwise pressure-gradient and viscosity
// forces for every particle and writes the resulting acceleration into
// st.NextAccel. Gravity and wall penalties are deferred to integration.
// Reads the current positions, velocities and densities.
func ForceStage(c *Constants, st *State, workers int) {
	particles := st.Particles
	density := st.Density
	out := st.NextAccel

	parallelFor(len(particles), workers, func(start, end int) {
		for i := start; i < end; i++ {
			own := particles[i]
			ownDensity := density[i]
			ownPressure := c.pressure(ownDensity)

			var acc vec.Vec2
			for j := range particles {
				if j == i {
					continue
				}
				diff := particles[j].Pos.Sub(own.Pos)
				r2 := diff.Len2()
				if r2 >= c.H2 {
					continue
				}
				r := vec.Sqrt(r2)
				neighborPressure := c.pressure(density[j])
				acc = acc.Add(c.gradPressureTerm(r, ownPressure, neighborPressure, density[j], diff))
				acc = acc.Add(c.viscosityTerm(r, own.Vel, particles[j].Vel, density[j]))
			}

			out[i] = acc.Scale(1 / ownDensity)
		}
	})
}

// IntegrateStage adds the boundary penalty forces and gravity to each
// particle's stored acceleration, then advances it one step of
// semi-implicit Euler: velocity first, position from the new velocity.
// Writes the next tick's particles into st.NextParticle.
func IntegrateStage(c *Constants, st *State, workers int) {
	particles := st.Particles
	accel := st.Accel
	out := st.NextParticle

	parallelFor(len(particles), workers, func(start, end int) {
		for i := start; i < end; i++ {
			p := particles[i]
			acc := accel[i]

			// Penalty force per wall, proportional to penetration depth.
			// min(d, 0) keeps non-penetrating walls at zero contribution.
			for _, wall := range c.Walls {
				d := wall.Distance(p.Pos)
				if d < 0 {
					acc = acc.Add(wall.N.Scale(-c.WallStiffness * d))
				}
			}

			acc = acc.Add(c.Gravity)

			vel := p.Vel.Add(acc.Scale(c.TimeStep))
			pos := p.Pos.Add(vel.Scale(c.TimeStep))
			out[i] = Particle{Pos: pos, Vel: vel}
		}
	})
}
