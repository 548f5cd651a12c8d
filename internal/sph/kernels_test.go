package sph

import (
	"math"
	"testing"

	"github.com/hmaier/fluidlab/internal/vec"
)

func testParams() Params {
	return Params{
		RestDensity:     1000,
		PressureCoef:    200,
		Mass:            0.02,
		EffectiveRadius: 0.1,
		TimeStep:        0.005,
		Viscosity:       0.1,
		WallStiffness:   3000,
		ParticleGap:     0.03,
		MinBound:        vec.Vec2{X: 0, Y: 0},
		MaxBound:        vec.Vec2{X: 1, Y: 1},
		N:               4,
	}
}

func TestKernelCoefficients(t *testing.T) {
	c := NewConstants(testParams())

	h := float64(c.EffectiveRadius)
	h6 := math.Pow(h, 6)
	h9 := math.Pow(h, 9)

	cases := []struct {
		name string
		got  float32
		want float64
	}{
		{"poly6", c.Poly6, 315.0 / (64.0 * math.Pi * h9)},
		{"spiky", c.Spiky, -45.0 / (math.Pi * h6)},
		{"laplacian", c.Lap, 45.0 / (math.Pi * h6)},
	}

	for _, tc := range cases {
		rel := math.Abs(float64(tc.got)-tc.want) / math.Abs(tc.want)
		if rel > 1e-6 {
			t.Errorf("%s coefficient: got %g, want %g", tc.name, tc.got, tc.want)
		}
	}
}

func TestWallPlanesFromBounds(t *testing.T) {
	c := NewConstants(testParams())

	interior := vec.Vec2{X: 0.5, Y: 0.5}
	for i, wall := range c.Walls {
		if d := wall.Distance(interior); d <= 0 {
			t.Errorf("wall %d: interior point has non-positive distance %g", i, d)
		}
		if l := wall.N.Len(); math.Abs(float64(l)-1) > 1e-6 {
			t.Errorf("wall %d: normal not unit length (%g)", i, l)
		}
	}

	// A corner touches two walls exactly.
	corner := c.MinBound
	onZero := 0
	for _, wall := range c.Walls {
		if wall.Distance(corner) == 0 {
			onZero++
		}
	}
	if onZero != 2 {
		t.Errorf("corner should sit on exactly 2 walls, got %d", onZero)
	}
}

func TestPressureClampsTensile(t *testing.T) {
	c := NewConstants(testParams())

	if p := c.pressure(c.RestDensity); p != 0 {
		t.Errorf("rest density must give zero pressure, got %g", p)
	}
	if p := c.pressure(c.RestDensity / 2); p != 0 {
		t.Errorf("sub-rest density must clamp to zero, got %g", p)
	}
	if p := c.pressure(c.RestDensity * 2); p <= 0 {
		t.Errorf("compressed fluid must have positive pressure, got %g", p)
	}
}

func TestDensitySelfTerm(t *testing.T) {
	c := NewConstants(testParams())

	want := c.Mass * c.Poly6 * c.H2 * c.H2 * c.H2
	if got := c.densityTerm(0); got != want {
		t.Errorf("self term: got %g, want mass*poly6*h^6 = %g", got, want)
	}
}

func TestGradPressureIsRepulsive(t *testing.T) {
	c := NewConstants(testParams())

	// Neighbor to the right; positive pressures must push left.
	diff := vec.Vec2{X: 0.05, Y: 0}
	f := c.gradPressureTerm(diff.Len(), 10, 10, c.RestDensity, diff)
	if f.X >= 0 {
		t.Errorf("pressure force should point away from neighbor, got %+v", f)
	}
	if f.Y != 0 {
		t.Errorf("force should be along the pair axis, got %+v", f)
	}
}

func TestViscosityDampsRelativeMotion(t *testing.T) {
	c := NewConstants(testParams())

	own := vec.Vec2{X: 1, Y: 0}
	neighbor := vec.Vec2{X: -1, Y: 0}
	f := c.viscosityTerm(0.05, own, neighbor, c.RestDensity)
	if f.X >= 0 {
		t.Errorf("viscosity should pull velocities together, got %+v", f)
	}
}
