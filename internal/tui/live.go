// Package tui is the interactive terminal front end: it steps the
// simulation once per frame and renders the particle field live.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmaier/fluidlab/internal/sim"
	"github.com/hmaier/fluidlab/internal/sph"
	"github.com/hmaier/fluidlab/internal/vec"
	"github.com/hmaier/fluidlab/internal/viz"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	frameRate    = 30
	historyWidth = 60
)

type TickMsg time.Time

// Model drives one simulator and renders its published state. Gravity
// toggling swaps between two prebuilt constant sets; the constants
// themselves stay immutable, as the stages require.
type Model struct {
	state     *sph.State
	withG     *sim.Simulator
	withoutG  *sim.Simulator
	renderer  *viz.Renderer
	workers   int
	seed      vec.Vec2
	gap       float32
	tick      int
	running   bool
	gravityOn bool
	energy    []float64
}

func NewModel(params sph.Params, seed vec.Vec2, workers int) *Model {
	st := sph.NewState(params.N)
	st.SeedGrid(params.ParticleGap, seed)

	noG := params
	noG.Gravity = vec.Vec2{}

	withG := sim.New(sph.NewConstants(params), st)

	return &Model{
		state:     st,
		withG:     withG,
		withoutG:  sim.New(sph.NewConstants(noG), st),
		renderer:  viz.NewRenderer(canvasWidth, canvasHeight, withG.Constants()),
		workers:   workers,
		seed:      seed,
		gap:       params.ParticleGap,
		running:   true,
		gravityOn: true,
	}
}

func (m *Model) active() *sim.Simulator {
	if m.gravityOn {
		return m.withG
	}
	return m.withoutG
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "g":
			m.gravityOn = !m.gravityOn
		case "r":
			m.state.SeedGrid(m.gap, m.seed)
			m.tick = 0
			m.energy = m.energy[:0]
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.active().Step(m.workers)
			m.tick++
			m.energy = append(m.energy, m.kineticEnergy())
			if len(m.energy) > 4*historyWidth {
				m.energy = m.energy[len(m.energy)-2*historyWidth:]
			}
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) kineticEnergy() float64 {
	var e float64
	for i := range m.state.Particles {
		e += float64(m.state.Particles[i].Vel.Len2())
	}
	return 0.5 * float64(m.active().Constants().Mass) * e
}

func (m *Model) maxDensity() float32 {
	var max float32
	for _, rho := range m.state.Density {
		if rho > max {
			max = rho
		}
	}
	return max
}

func (m *Model) View() string {
	c := m.active().Constants()

	status := viz.StatusRunning.Render("running")
	if !m.running {
		status = viz.StatusPaused.Render("paused")
	}
	gravity := "on"
	if !m.gravityOn {
		gravity = "off"
	}

	var energy float64
	if len(m.energy) > 0 {
		energy = m.energy[len(m.energy)-1]
	}

	stats := viz.StatsPanel("fluidlab", [][2]string{
		{"status", status},
		{"tick", fmt.Sprintf("%d", m.tick)},
		{"time", fmt.Sprintf("%.2fs", float64(m.tick)*float64(c.TimeStep))},
		{"particles", fmt.Sprintf("%d", m.state.Len())},
		{"gravity", gravity},
		{"kinetic E", fmt.Sprintf("%.4f", energy)},
		{"max density", fmt.Sprintf("%.1f", m.maxDensity())},
	})

	canvas := viz.CanvasStyle.Render(m.renderer.Frame(m.state))
	top := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", stats)

	graph := viz.Sparkline(m.energy, "kinetic energy", historyWidth)
	help := viz.HelpStyle.Render("space pause · g gravity · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, graph, help)
}

// Run starts the live view and blocks until the user quits.
func Run(params sph.Params, seed vec.Vec2, workers int) error {
	p := tea.NewProgram(NewModel(params, seed, workers))
	_, err := p.Run()
	return err
}
