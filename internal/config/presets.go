package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"pendulum": {
		Name:    "pendulum",
		Gravity: [3]float64{0, -9.81, 0},
		Segments: []SegmentConfig{
			{Name: "link1", Joint: "rotz", Tip: [3]float64{1, 0, 0}, Mass: 1.0, COG: [3]float64{1, 0, 0}},
		},
		Solver: SolverConfig{SVDEps: DefaultSVDEps},
		Sim: SimConfig{
			Dt: 0.001, Duration: 10.0, Integrator: "rk4", Controller: "none",
			Q: []float64{0.3},
		},
	},
	"planar-2r": {
		Name:    "planar-2r",
		Gravity: [3]float64{0, -9.81, 0},
		Segments: []SegmentConfig{
			{Name: "link1", Joint: "rotz", Tip: [3]float64{0.5, 0, 0}, Mass: 1.0, COG: [3]float64{0.5, 0, 0}},
			{Name: "link2", Joint: "rotz", Tip: [3]float64{0.4, 0, 0}, Mass: 0.8, COG: [3]float64{0.4, 0, 0}},
		},
		Solver: SolverConfig{SVDEps: DefaultSVDEps},
		Sim: SimConfig{
			Dt: 0.001, Duration: 10.0, Integrator: "rk4", Controller: "none",
			Q: []float64{0.5, -0.3},
		},
	},
	"planar-3r": {
		Name:    "planar-3r",
		Gravity: [3]float64{0, -9.81, 0},
		Segments: []SegmentConfig{
			{Name: "link1", Joint: "rotz", Tip: [3]float64{0.5, 0, 0}, Mass: 1.2, COG: [3]float64{0.25, 0, 0}, Inertia: [3]float64{0, 0, 0.025}},
			{Name: "link2", Joint: "rotz", Tip: [3]float64{0.4, 0, 0}, Mass: 0.9, COG: [3]float64{0.2, 0, 0}, Inertia: [3]float64{0, 0, 0.012}},
			{Name: "link3", Joint: "rotz", Tip: [3]float64{0.3, 0, 0}, Mass: 0.5, COG: [3]float64{0.15, 0, 0}, Inertia: [3]float64{0, 0, 0.004}},
		},
		Solver: SolverConfig{SVDEps: DefaultSVDEps},
		Sim: SimConfig{
			Dt: 0.0005, Duration: 8.0, Integrator: "rk4", Controller: "none",
			Q: []float64{1.0, -0.5, 0.3},
		},
	},
	"arm-6dof": {
		Name:    "arm-6dof",
		Gravity: [3]float64{0, 0, -9.81},
		Segments: []SegmentConfig{
			{Name: "base", Joint: "rotz", Tip: [3]float64{0, 0, 0.3}, Mass: 4.0, COG: [3]float64{0, 0, 0.15}, Inertia: [3]float64{0.05, 0.05, 0.02}},
			{Name: "shoulder", Joint: "roty", Tip: [3]float64{0, 0, 0.4}, Mass: 3.0, COG: [3]float64{0, 0, 0.2}, Inertia: [3]float64{0.04, 0.04, 0.01}},
			{Name: "elbow", Joint: "roty", Tip: [3]float64{0, 0, 0.35}, Mass: 2.0, COG: [3]float64{0, 0, 0.18}, Inertia: [3]float64{0.02, 0.02, 0.006}},
			{Name: "wrist1", Joint: "rotz", Tip: [3]float64{0, 0, 0.1}, Mass: 0.8, COG: [3]float64{0, 0, 0.05}, Inertia: [3]float64{0.002, 0.002, 0.001}},
			{Name: "wrist2", Joint: "roty", Tip: [3]float64{0, 0, 0.1}, Mass: 0.8, COG: [3]float64{0, 0, 0.05}, Inertia: [3]float64{0.002, 0.002, 0.001}},
			{Name: "wrist3", Joint: "rotz", Tip: [3]float64{0, 0, 0.08}, Mass: 0.4, COG: [3]float64{0, 0, 0.04}, Inertia: [3]float64{0.001, 0.001, 0.0005}},
			{Name: "tool", Joint: "fixed", Tip: [3]float64{0, 0, 0.05}, Mass: 0.2, COG: [3]float64{0, 0, 0.02}},
		},
		Solver: SolverConfig{SVDEps: DefaultSVDEps},
		Sim: SimConfig{
			Dt: 0.0005, Duration: 5.0, Integrator: "rk4", Controller: "pid",
			Q:  []float64{0, 0.5, -1.0, 0, 0.5, 0},
			Kp: 80, Ki: 0, Kd: 15,
		},
	},
}

func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (try: %v)", name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
