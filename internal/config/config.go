// Package config loads arm descriptions and run parameters from YAML
// and builds kinematic chains from them.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/armdyn/internal/chain"
	"github.com/san-kum/armdyn/internal/spatial"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 5.0
	DefaultSVDEps   = 1e-12
	DefaultKp       = 50.0
	DefaultKi       = 0.0
	DefaultKd       = 10.0
)

type Config struct {
	Name     string          `yaml:"name"`
	Gravity  [3]float64      `yaml:"gravity"`
	Segments []SegmentConfig `yaml:"segments"`
	Solver   SolverConfig    `yaml:"solver"`
	Sim      SimConfig       `yaml:"sim"`
}

// SegmentConfig describes one link: joint type at the root, tip offset,
// and a lumped inertia. Inertia is the diagonal of the rotational
// inertia about the center of gravity. COG and Inertia are given in the
// joint root frame, the same frame the tip offset is written in;
// BuildChain moves them into the tip frame the solvers expect.
type SegmentConfig struct {
	Name    string     `yaml:"name"`
	Joint   string     `yaml:"joint"`
	Axis    [3]float64 `yaml:"axis"`
	Tip     [3]float64 `yaml:"tip"`
	TipRPY  [3]float64 `yaml:"tip_rpy"`
	Mass    float64    `yaml:"mass"`
	COG     [3]float64 `yaml:"cog"`
	Inertia [3]float64 `yaml:"inertia"`
}

type SolverConfig struct {
	Constraints int     `yaml:"constraints"`
	SVDEps      float64 `yaml:"svd_eps"`
}

type SimConfig struct {
	Dt         float64   `yaml:"dt"`
	Duration   float64   `yaml:"duration"`
	Integrator string    `yaml:"integrator"`
	Controller string    `yaml:"controller"`
	Q          []float64 `yaml:"q"`
	QDot       []float64 `yaml:"qdot"`
	Torques    []float64 `yaml:"torques"`
	Kp         float64   `yaml:"kp"`
	Ki         float64   `yaml:"ki"`
	Kd         float64   `yaml:"kd"`
	Target     []float64 `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "pendulum",
		Gravity: [3]float64{0, -9.81, 0},
		Segments: []SegmentConfig{
			{Name: "link1", Joint: "rotz", Tip: [3]float64{1, 0, 0}, Mass: 1.0, COG: [3]float64{1, 0, 0}},
		},
		Solver: SolverConfig{SVDEps: DefaultSVDEps},
		Sim: SimConfig{
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Integrator: "rk4",
			Controller: "none",
			Kp:         DefaultKp,
			Ki:         DefaultKi,
			Kd:         DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Segments = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Segments) == 0 {
		return nil, fmt.Errorf("config %s: no segments", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GravityVec returns the gravity field as a spatial vector.
func (c *Config) GravityVec() spatial.Vec {
	return spatial.Vec{X: c.Gravity[0], Y: c.Gravity[1], Z: c.Gravity[2]}
}

// BuildChain constructs the kinematic chain described by the config.
func (c *Config) BuildChain() (*chain.Chain, error) {
	ch := chain.New()
	for i, sc := range c.Segments {
		jt, err := parseJoint(sc.Joint)
		if err != nil {
			return nil, fmt.Errorf("segment %d (%s): %w", i, sc.Name, err)
		}
		var j chain.Joint
		if jt == chain.RotAxis || jt == chain.TransAxis {
			axis := spatial.Vec{X: sc.Axis[0], Y: sc.Axis[1], Z: sc.Axis[2]}
			if axis.Norm() == 0 {
				return nil, fmt.Errorf("segment %d (%s): %s joint needs a nonzero axis", i, sc.Name, sc.Joint)
			}
			j = chain.NewJointAxis(jt, axis)
		} else {
			j = chain.NewJoint(jt)
		}
		tip := spatial.Frame{
			M: spatial.RotRPY(sc.TipRPY[0], sc.TipRPY[1], sc.TipRPY[2]),
			P: spatial.Vec{X: sc.Tip[0], Y: sc.Tip[1], Z: sc.Tip[2]},
		}
		// cog and inertia are authored in the joint root frame; the
		// chain stores segment inertia in the tip frame
		cog := tip.Inverse().Apply(spatial.Vec{X: sc.COG[0], Y: sc.COG[1], Z: sc.COG[2]})
		rt := spatial.Mat3(tip.M.Inverse())
		ic := rt.Mul(spatial.Mat3Diag(sc.Inertia[0], sc.Inertia[1], sc.Inertia[2])).Mul(rt.Transpose())
		ch.Add(chain.Segment{
			Name:    sc.Name,
			Joint:   j,
			Tip:     tip,
			Inertia: spatial.NewRigidBodyInertia(sc.Mass, cog, ic),
		})
	}
	return ch, nil
}

func parseJoint(s string) (chain.JointType, error) {
	switch strings.ToLower(s) {
	case "rotx":
		return chain.RotX, nil
	case "roty":
		return chain.RotY, nil
	case "rotz":
		return chain.RotZ, nil
	case "transx":
		return chain.TransX, nil
	case "transy":
		return chain.TransY, nil
	case "transz":
		return chain.TransZ, nil
	case "rotaxis":
		return chain.RotAxis, nil
	case "transaxis":
		return chain.TransAxis, nil
	case "fixed", "":
		return chain.Fixed, nil
	}
	return chain.Fixed, fmt.Errorf("unknown joint type %q", s)
}
