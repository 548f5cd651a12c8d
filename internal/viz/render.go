package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/hmaier/fluidlab/internal/sph"
)

// Renderer maps domain coordinates onto a braille canvas. Y is flipped so
// the domain floor sits at the bottom of the terminal.
type Renderer struct {
	canvas *Canvas
	consts *sph.Constants
}

func NewRenderer(w, h int, c *sph.Constants) *Renderer {
	return &Renderer{
		canvas: NewCanvas(w, h),
		consts: c,
	}
}

// Frame draws the current particle positions and returns the canvas text.
func (r *Renderer) Frame(st *sph.State) string {
	r.canvas.Clear()

	min, max := r.consts.MinBound, r.consts.MaxBound
	spanX := float64(max.X - min.X)
	spanY := float64(max.Y - min.Y)
	dotsX := float64(r.canvas.Width * 2)
	dotsY := float64(r.canvas.Height * 4)

	for i := range st.Particles {
		p := st.Particles[i].Pos
		x := int(float64(p.X-min.X) / spanX * dotsX)
		y := int((1 - float64(p.Y-min.Y)/spanY) * dotsY)
		r.canvas.Set(x, y)
	}
	return r.canvas.String()
}

func (r *Renderer) Canvas() *Canvas { return r.canvas }

// StatsPanel renders the labeled values of the side panel.
func StatsPanel(title string, rows [][2]string) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(title))
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString(LabelStyle.Render(row[0]))
		sb.WriteString(ValueStyle.Render(row[1]))
		sb.WriteByte('\n')
	}
	return PanelStyle.Render(sb.String())
}

// Sparkline plots a metric history as a small asciigraph.
func Sparkline(series []float64, caption string, width int) string {
	if len(series) < 2 {
		return ""
	}
	// asciigraph needs bounded input width to stay readable.
	if len(series) > width {
		series = series[len(series)-width:]
	}
	return asciigraph.Plot(series,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// FormatMetric renders one metric table row for CLI output.
func FormatMetric(name string, value float64) string {
	return fmt.Sprintf("%-20s %12.6f", name, value)
}
