package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armdyn/internal/sim"
)

// PlotTrajectories renders one chart per joint angle from a recorded
// run. nj is the joint count; states are [q; qdot] rows.
func PlotTrajectories(states []sim.State, nj, width, height int) string {
	if len(states) == 0 || nj == 0 {
		return ""
	}
	var b strings.Builder
	series := make([]float64, len(states))
	for j := 0; j < nj; j++ {
		for i, x := range states {
			if j < len(x) {
				series[i] = x[j]
			}
		}
		chart := asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("q%d [rad]", j)))
		b.WriteString(chart)
		b.WriteString("\n\n")
	}
	return b.String()
}

// PlotSeries renders a single labeled series.
func PlotSeries(values []float64, label string, width, height int) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(label))
}
