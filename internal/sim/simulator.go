package sim

import (
	"context"
	"fmt"

	"github.com/hmaier/fluidlab/internal/sph"
)

// Metric observes the particle state each tick and reduces it to a value.
type Metric interface {
	Name() string
	Observe(st *sph.State, t float64)
	Value() float64
	Reset()
}

// Observer receives the published state after every tick.
type Observer interface {
	OnTick(st *sph.State, tick int, t float64)
}

// Config controls one simulation run.
type Config struct {
	Ticks         int
	Workers       int // goroutines per stage; <= 0 means GOMAXPROCS
	SampleEvery   int // keep every k-th frame in the result; 0 keeps none
	ValidateState bool
}

// Frame is a sampled copy of the particle buffer at one tick.
type Frame struct {
	Tick      int
	Time      float64
	Particles []sph.Particle
}

// Result collects the output of a run.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	TicksTaken int
	Errors     []error
}

// Simulator drives the density/force/integrate pipeline over a particle
// state. Constants are treated as immutable; the state is advanced in
// place through its double buffers.
type Simulator struct {
	consts    *sph.Constants
	state     *sph.State
	metrics   []Metric
	observers []Observer
}

func New(c *sph.Constants, st *sph.State) *Simulator {
	return &Simulator{
		consts: c,
		state:  st,
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() *sph.State { return s.state }

func (s *Simulator) Constants() *sph.Constants { return s.consts }

// Step advances the simulation by one tick. Each stage call is a barrier:
// it returns only when every particle task has written its output slot.
// The swap after each stage publishes that output as the next stage's
// input; nothing reads a buffer that is still being written.
func (s *Simulator) Step(workers int) {
	sph.DensityStage(s.consts, s.state, workers)
	s.state.SwapDensity()

	sph.ForceStage(s.consts, s.state, workers)
	s.state.SwapAccel()

	sph.IntegrateStage(s.consts, s.state, workers)
	s.state.SwapParticles()
}

// Run executes cfg.Ticks ticks, driving metrics and observers on the
// published state each tick. Cancellation via ctx stops between ticks and
// returns the partial result alongside the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	dt := float64(s.consts.TimeStep)

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Workers)
		t := float64(tick+1) * dt
		result.TicksTaken++

		if cfg.ValidateState && !s.state.IsValid() {
			result.Errors = append(result.Errors, &TickError{Tick: tick, Time: t, Wrapped: ErrInvalidState})
			break
		}

		for _, m := range s.metrics {
			m.Observe(s.state, t)
		}
		for _, o := range s.observers {
			o.OnTick(s.state, tick, t)
		}

		if cfg.SampleEvery > 0 && (tick+1)%cfg.SampleEvery == 0 {
			frame := Frame{
				Tick:      tick,
				Time:      t,
				Particles: make([]sph.Particle, len(s.state.Particles)),
			}
			copy(frame.Particles, s.state.Particles)
			result.Frames = append(result.Frames, frame)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validate(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("sim: ticks must be positive, got %d", cfg.Ticks)
	}
	if s.consts.TimeStep <= 0 {
		return fmt.Errorf("sim: timestep must be positive, got %f", s.consts.TimeStep)
	}
	if s.state.Len() != s.consts.N {
		return fmt.Errorf("%w: state has %d particles, constants say %d",
			ErrDimensionMismatch, s.state.Len(), s.consts.N)
	}
	return nil
}
