package metrics

import (
	"math"

	"github.com/hmaier/fluidlab/internal/sph"
)

// DensityDeviation reports the worst relative deviation from rest density
// seen during the run. Near-incompressible behavior shows up as a small
// value; a blow-up shows up immediately.
type DensityDeviation struct {
	restDensity float32
	maxDev      float64
}

func NewDensityDeviation(restDensity float32) *DensityDeviation {
	return &DensityDeviation{restDensity: restDensity}
}

func (d *DensityDeviation) Name() string { return "density_deviation" }

func (d *DensityDeviation) Observe(st *sph.State, t float64) {
	rest := float64(d.restDensity)
	if rest == 0 {
		return
	}
	for _, rho := range st.Density {
		dev := math.Abs(float64(rho)-rest) / rest
		if dev > d.maxDev {
			d.maxDev = dev
		}
	}
}

func (d *DensityDeviation) Value() float64 {
	return d.maxDev
}

func (d *DensityDeviation) Reset() {
	d.maxDev = 0
}
