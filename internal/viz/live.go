package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armdyn/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	frameRate       = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type tickMsg time.Time

// Model runs and renders a live arm simulation.
type Model struct {
	arm        *sim.Arm
	integrator sim.Integrator
	controller sim.Controller
	state      sim.State
	initState  sim.State
	t, dt      float64
	speed      float64
	name       string
	plane      Plane

	canvas        *Canvas
	viewport      *Viewport
	trail         [][2]float64
	energyHistory []float64
	running       bool
	showTrail     bool
}

func NewModel(arm *sim.Arm, integ sim.Integrator, ctrl sim.Controller, initState []float64, dt float64, name string, plane Plane) Model {
	st := make(sim.State, len(initState))
	copy(st, initState)
	init := make(sim.State, len(initState))
	copy(init, initState)

	canvas := NewCanvas(canvasWidth, canvasHeight)
	q, _ := arm.Joints(st)
	reach := Reach(arm.Chain().Poses(q), plane)
	m := reach * 1.15
	aspect := float64(canvasWidth*2) / float64(canvasHeight*4)

	return Model{
		arm:           arm,
		integrator:    integ,
		controller:    ctrl,
		state:         st,
		initState:     init,
		dt:            dt,
		speed:         1.0,
		name:          name,
		plane:         plane,
		canvas:        canvas,
		viewport:      NewViewport(canvas, -m*aspect, m*aspect, -m, m),
		trail:         make([][2]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
		showTrail:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.showTrail = !m.showTrail
			if !m.showTrail {
				m.trail = m.trail[:0]
			}
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		}
	case tickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

// step advances the physics by one display frame of simulated time,
// substepping at the integrator dt.
func (m *Model) step() {
	frame := m.speed / frameRate
	for elapsed := 0.0; elapsed < frame; elapsed += m.dt {
		u := m.controller.Compute(m.state, m.t)
		m.state = m.integrator.Step(m.arm, m.state, u, m.t, m.dt)
		m.t += m.dt
	}

	m.energyHistory = append(m.energyHistory, m.arm.Energy(m.state))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if m.showTrail {
		q, _ := m.arm.Joints(m.state)
		poses := m.arm.Chain().Poses(q)
		if len(poses) > 0 {
			x, y := m.plane.Project(poses[len(poses)-1].P)
			m.trail = append(m.trail, [2]float64{x, y})
			if len(m.trail) > historyCapacity {
				m.trail = m.trail[1:]
			}
		}
	}
}

func (m *Model) reset() {
	m.t = 0
	copy(m.state, m.initState)
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
}

func (m Model) View() string {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.viewport.Point(p[0], p[1])
	}
	q, qdot := m.arm.Joints(m.state)
	DrawArm(m.viewport, m.arm.Chain().Poses(q), m.plane)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")
	if len(m.energyHistory) > 0 {
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f J", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}
	if code := m.arm.LastCode(); code != 0 {
		s.WriteString(labelStyle.Render("Solver") + valueStyle.Render(code.String()) + "\n")
	}
	s.WriteString("\nJOINTS\n")
	for j := range q {
		s.WriteString(fmt.Sprintf("  q%d %8.3f rad  %8.3f rad/s\n", j, q[j], qdot[j]))
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Trail +/-:Speed"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
