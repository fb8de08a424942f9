// Package export renders recorded runs as standalone SVG files.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/viz"
)

// ArmTrajectorySVG draws the end-effector path of a recorded run plus
// evenly spaced arm poses, dim to bright over time. States are [q; qdot]
// rows for the chain.
func ArmTrajectorySVG(ch *chain.Chain, states [][]float64, plane viz.Plane, width, height, snapshots int) string {
	nj := ch.NumJoints()
	if len(states) == 0 || nj == 0 {
		return ""
	}

	// end-effector path and overall bounds, base included
	path := make([][2]float64, 0, len(states))
	minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
	for _, x := range states {
		if len(x) < nj {
			continue
		}
		poses := ch.Poses(x[:nj])
		for _, f := range poses {
			px, py := plane.Project(f.P)
			minX, maxX = widen(minX, maxX, px)
			minY, maxY = widen(minY, maxY, py)
		}
		ex, ey := plane.Project(poses[len(poses)-1].P)
		path = append(path, [2]float64{ex, ey})
	}
	if len(path) < 2 {
		return ""
	}

	pad := 0.08 * (maxX - minX + maxY - minY)
	if pad == 0 {
		pad = 0.1
	}
	minX, maxX = minX-pad, maxX+pad
	minY, maxY = minY-pad, maxY+pad

	toPx := func(x, y float64) (float64, float64) {
		px := (x - minX) / (maxX - minX) * float64(width)
		py := float64(height) - (y-minY)/(maxY-minY)*float64(height)
		return px, py
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if snapshots > 1 {
		for s := 0; s < snapshots; s++ {
			idx := s * (len(states) - 1) / (snapshots - 1)
			x := states[idx]
			if len(x) < nj {
				continue
			}
			opacity := 0.25 + 0.75*float64(s)/float64(snapshots-1)
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#3399ff" stroke-width="2" stroke-opacity="%.2f" points="`, opacity))
			bx, by := toPx(0, 0)
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", bx, by))
			for _, f := range ch.Poses(x[:nj]) {
				wx, wy := plane.Project(f.P)
				px, py := toPx(wx, wy)
				sb.WriteString(fmt.Sprintf(" %.1f,%.1f", px, py))
			}
			sb.WriteString("\"/>\n")
		}
	}

	sb.WriteString(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`)
	for i, p := range path {
		px, py := toPx(p[0], p[1])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// SeriesSVG draws a single time series as a polyline chart.
func SeriesSVG(values, times []float64, width, height int, strokeColor string) string {
	if len(values) < 2 || len(values) != len(times) {
		return ""
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV, maxV = widen(minV, maxV, v)
	}
	if maxV == minV {
		maxV = minV + 1
	}
	t0, t1 := times[0], times[len(times)-1]
	if t1 == t0 {
		t1 = t0 + 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`, width, height, width, height, strokeColor))
	for i := range values {
		px := (times[i] - t0) / (t1 - t0) * float64(width)
		py := float64(height) - (values[i]-minV)/(maxV-minV)*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func widen(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}
