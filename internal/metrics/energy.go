// Package metrics provides per-tick observers reducing the particle state
// to scalar run statistics.
package metrics

import "github.com/hmaier/fluidlab/internal/sph"

// KineticEnergy reports the mean total kinetic energy over the run.
type KineticEnergy struct {
	mass    float32
	total   float64
	samples int
	history []float64
}

func NewKineticEnergy(mass float32) *KineticEnergy {
	return &KineticEnergy{mass: mass}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(st *sph.State, t float64) {
	var e float64
	for i := range st.Particles {
		e += float64(st.Particles[i].Vel.Len2())
	}
	e *= 0.5 * float64(k.mass)
	k.total += e
	k.history = append(k.history, e)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// History returns the per-tick energy series, for plotting.
func (k *KineticEnergy) History() []float64 {
	return k.history
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
	k.history = nil
}
