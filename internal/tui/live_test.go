package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hmaier/fluidlab/internal/sph"
	"github.com/hmaier/fluidlab/internal/vec"
)

func testModel() *Model {
	params := sph.Params{
		RestDensity:     1000,
		PressureCoef:    200,
		Mass:            0.02,
		EffectiveRadius: 0.05,
		TimeStep:        0.005,
		Viscosity:       0.1,
		WallStiffness:   3000,
		ParticleGap:     0.025,
		Gravity:         vec.Vec2{Y: -9.8},
		MaxBound:        vec.Vec2{X: 1, Y: 1},
		N:               16,
	}
	return NewModel(params, vec.Vec2{X: 0.2, Y: 0.2}, 1)
}

func TestTickAdvancesSimulation(t *testing.T) {
	m := testModel()

	updated, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	if got := updated.(*Model).tick; got != 1 {
		t.Errorf("tick count %d, want 1", got)
	}
	if len(m.energy) != 1 {
		t.Errorf("energy history length %d, want 1", len(m.energy))
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := testModel()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m.Update(TickMsg(time.Now()))
	if m.tick != 0 {
		t.Errorf("paused model stepped to tick %d", m.tick)
	}
}

func TestGravityToggleSwapsConstants(t *testing.T) {
	m := testModel()

	if m.active().Constants().Gravity.Y >= 0 {
		t.Fatal("model should start with gravity on")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.active().Constants().Gravity != (vec.Vec2{}) {
		t.Error("gravity toggle did not switch to the zero-gravity constants")
	}
}

func TestResetReseeds(t *testing.T) {
	m := testModel()

	for i := 0; i < 5; i++ {
		m.Update(TickMsg(time.Now()))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.tick != 0 {
		t.Errorf("reset kept tick %d", m.tick)
	}
	if m.state.Particles[0].Vel != (vec.Vec2{}) {
		t.Error("reset kept velocity on the first particle")
	}
	if m.state.Particles[0].Pos != (vec.Vec2{X: 0.2, Y: 0.2}) {
		t.Errorf("first particle at %+v after reset", m.state.Particles[0].Pos)
	}
}

func TestViewRenders(t *testing.T) {
	m := testModel()
	m.Update(TickMsg(time.Now()))

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
}
