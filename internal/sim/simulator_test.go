package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hmaier/fluidlab/internal/sim"
	"github.com/hmaier/fluidlab/internal/sph"
	"github.com/hmaier/fluidlab/internal/vec"
)

func baseParams(n int) sph.Params {
	return sph.Params{
		RestDensity:     1000,
		PressureCoef:    200,
		Mass:            0.02,
		EffectiveRadius: 0.1,
		TimeStep:        0.005,
		Viscosity:       0.1,
		WallStiffness:   3000,
		ParticleGap:     0.03,
		Gravity:         vec.Vec2{Y: -9.8},
		MinBound:        vec.Vec2{X: 0, Y: 0},
		MaxBound:        vec.Vec2{X: 1, Y: 1},
		N:               n,
	}
}

func seeded(p sph.Params) *sph.State {
	st := sph.NewState(p.N)
	st.SeedGrid(p.ParticleGap, vec.Vec2{X: 0.2, Y: 0.2})
	return st
}

// tickCounter counts how many times it observed the state.
type tickCounter struct {
	ticks int
}

func (c *tickCounter) Name() string { return "ticks_observed" }

func (c *tickCounter) Observe(st *sph.State, t float64) { c.ticks++ }

func (c *tickCounter) Value() float64 { return float64(c.ticks) }

func (c *tickCounter) Reset() { c.ticks = 0 }

var _ = Describe("Simulator", func() {
	var p sph.Params

	BeforeEach(func() {
		p = baseParams(25)
	})

	It("rejects a non-positive tick count", func() {
		s := sim.New(sph.NewConstants(p), seeded(p))
		_, err := s.Run(context.Background(), sim.Config{Ticks: 0})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a state that does not match the configured particle count", func() {
		s := sim.New(sph.NewConstants(p), sph.NewState(p.N+1))
		_, err := s.Run(context.Background(), sim.Config{Ticks: 1})
		Expect(err).To(MatchError(sim.ErrDimensionMismatch))
	})

	It("runs the configured number of ticks and reports metrics", func() {
		s := sim.New(sph.NewConstants(p), seeded(p))
		counter := &tickCounter{}
		s.AddMetric(counter)

		result, err := s.Run(context.Background(), sim.Config{Ticks: 10, Workers: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.TicksTaken).To(Equal(10))
		Expect(result.Metrics).To(HaveKeyWithValue("ticks_observed", 10.0))
	})

	It("samples frames at the configured stride", func() {
		s := sim.New(sph.NewConstants(p), seeded(p))

		result, err := s.Run(context.Background(), sim.Config{Ticks: 10, SampleEvery: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(HaveLen(2))
		Expect(result.Frames[0].Particles).To(HaveLen(p.N))
		// Frames are copies, not views into the live buffers.
		Expect(&result.Frames[0].Particles[0]).NotTo(BeIdenticalTo(&s.State().Particles[0]))
	})

	It("stops between ticks when the context is cancelled", func() {
		s := sim.New(sph.NewConstants(p), seeded(p))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := s.Run(ctx, sim.Config{Ticks: 100})
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.TicksTaken).To(Equal(0))
	})

	It("lets gravity pull an isolated particle down", func() {
		p.N = 1
		st := sph.NewState(1)
		st.Particles[0].Pos = vec.Vec2{X: 0.5, Y: 0.5}

		s := sim.New(sph.NewConstants(p), st)
		_, err := s.Run(context.Background(), sim.Config{Ticks: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(float64(s.State().Particles[0].Vel.Y)).To(BeNumerically("<", 0))
		Expect(float64(s.State().Particles[0].Pos.Y)).To(BeNumerically("<", 0.5))
	})

	It("flags a run that produces non-finite state", func() {
		// Two coincident particles hit the unguarded r = 0 division in the
		// pairwise force terms.
		p.N = 2
		st := sph.NewState(2)
		st.Particles[0].Pos = vec.Vec2{X: 0.5, Y: 0.5}
		st.Particles[1].Pos = vec.Vec2{X: 0.5, Y: 0.5}

		s := sim.New(sph.NewConstants(p), st)
		result, err := s.Run(context.Background(), sim.Config{Ticks: 5, ValidateState: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).NotTo(BeEmpty())
		Expect(result.Errors[0]).To(MatchError(sim.ErrInvalidState))
		Expect(result.TicksTaken).To(BeNumerically("<", 5))
	})

	It("produces the same trajectory for any worker count", func() {
		serial := sim.New(sph.NewConstants(p), seeded(p))
		parallel := sim.New(sph.NewConstants(p), seeded(p))

		_, err := serial.Run(context.Background(), sim.Config{Ticks: 20, Workers: 1})
		Expect(err).NotTo(HaveOccurred())
		_, err = parallel.Run(context.Background(), sim.Config{Ticks: 20, Workers: 8})
		Expect(err).NotTo(HaveOccurred())

		a := serial.State().Particles
		b := parallel.State().Particles
		for i := range a {
			Expect(float64(a[i].Pos.Sub(b[i].Pos).Len())).To(BeNumerically("~", 0, 1e-4))
		}
	})
})

var _ = Describe("Sweep", func() {
	It("runs every variant and keeps variant order", func() {
		variants := []sim.Variant{}
		for _, mu := range []float32{0.05, 0.1, 0.2} {
			p := baseParams(16)
			p.Viscosity = mu
			variants = append(variants, sim.Variant{
				Name:   "viscosity",
				Params: p,
				Seed: func(st *sph.State) {
					st.SeedGrid(p.ParticleGap, vec.Vec2{X: 0.2, Y: 0.2})
				},
			})
		}

		sw := sim.NewSweep(variants, func() []sim.Metric {
			return []sim.Metric{&tickCounter{}}
		})

		results, err := sw.Run(context.Background(), sim.Config{Ticks: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.TicksTaken).To(Equal(5))
			Expect(r.Metrics).To(HaveKeyWithValue("ticks_observed", 5.0))
		}
	})
})
