package metrics

import "github.com/hmaier/fluidlab/internal/sph"

// Escaped counts particles that left the domain box by more than the
// effective radius at any point in the run. The wall penalty forces are
// soft, so brief overshoot is normal; an escape beyond h means the
// penalty stiffness lost against the pressure forces.
type Escaped struct {
	consts *sph.Constants
	worst  int
}

func NewEscaped(c *sph.Constants) *Escaped {
	return &Escaped{consts: c}
}

func (e *Escaped) Name() string { return "escaped" }

func (e *Escaped) Observe(st *sph.State, t float64) {
	h := e.consts.EffectiveRadius
	min, max := e.consts.MinBound, e.consts.MaxBound

	count := 0
	for i := range st.Particles {
		p := st.Particles[i].Pos
		if p.X < min.X-h || p.X > max.X+h || p.Y < min.Y-h || p.Y > max.Y+h {
			count++
		}
	}
	if count > e.worst {
		e.worst = count
	}
}

func (e *Escaped) Value() float64 {
	return float64(e.worst)
}

func (e *Escaped) Reset() {
	e.worst = 0
}
