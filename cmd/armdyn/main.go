package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/armdyn/internal/analysis"
	"github.com/san-kum/armdyn/internal/config"
	"github.com/san-kum/armdyn/internal/control"
	"github.com/san-kum/armdyn/internal/dynamics"
	"github.com/san-kum/armdyn/internal/export"
	"github.com/san-kum/armdyn/internal/integrators"
	"github.com/san-kum/armdyn/internal/metrics"
	"github.com/san-kum/armdyn/internal/optim"
	"github.com/san-kum/armdyn/internal/sim"
	"github.com/san-kum/armdyn/internal/spatial"
	"github.com/san-kum/armdyn/internal/storage"
	"github.com/san-kum/armdyn/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	integrator string
	controller string
	kp, ki, kd float64
	qFlag      string
	qdotFlag   string
	tauFlag    string
	targetFlag string
	kpGrid     string
	kdGrid     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "armdyn",
		Short: "serial arm dynamics lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armdyn", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate an arm and record the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "arm config file (overrides preset)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "euler, rk4, rk45")
	runCmd.Flags().StringVar(&controller, "controller", "", "none, pid")
	runCmd.Flags().Float64Var(&kp, "kp", 0, "pid proportional gain")
	runCmd.Flags().Float64Var(&ki, "ki", 0, "pid integral gain")
	runCmd.Flags().Float64Var(&kd, "kd", 0, "pid derivative gain")
	runCmd.Flags().StringVar(&qFlag, "q", "", "initial joint angles, comma separated")
	runCmd.Flags().StringVar(&qdotFlag, "qdot", "", "initial joint velocities, comma separated")
	runCmd.Flags().StringVar(&targetFlag, "target", "", "pid joint targets, comma separated")

	solveCmd := &cobra.Command{
		Use:   "solve [preset]",
		Short: "one forward dynamics evaluation at a given state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&configFile, "config", "", "arm config file (overrides preset)")
	solveCmd.Flags().StringVar(&qFlag, "q", "", "joint angles, comma separated")
	solveCmd.Flags().StringVar(&qdotFlag, "qdot", "", "joint velocities, comma separated")
	solveCmd.Flags().StringVar(&tauFlag, "tau", "", "joint torques, comma separated")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "arm config file (overrides preset)")
	liveCmd.Flags().StringVar(&controller, "controller", "", "none, pid")
	liveCmd.Flags().StringVar(&qFlag, "q", "", "initial joint angles, comma separated")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded joint trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded run as an svg file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportSVG,
	}
	exportSVGCmd.Flags().StringVar(&configFile, "config", "", "arm config file (defaults to the run's preset)")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search pid gains against a target pose",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&configFile, "config", "", "arm config file (overrides preset)")
	tuneCmd.Flags().StringVar(&kpGrid, "kp-grid", "10,25,50,100", "kp candidates, comma separated")
	tuneCmd.Flags().StringVar(&kdGrid, "kd-grid", "1,5,10,20", "kd candidates, comma separated")
	tuneCmd.Flags().StringVar(&targetFlag, "target", "", "target joint angles, comma separated")
	tuneCmd.Flags().Float64Var(&duration, "time", 3.0, "trial duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in arm presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.Presets[name]
				fmt.Printf("%-12s %d segments, %d dof\n", name, len(cfg.Segments), dofCount(cfg))
			}
		},
	}

	rootCmd.AddCommand(runCmd, solveCmd, liveCmd, plotCmd, analyzeCmd, listCmd, exportCmd, exportSVGCmd, tuneCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func dofCount(cfg *config.Config) int {
	n := 0
	for _, s := range cfg.Segments {
		if strings.ToLower(s.Joint) != "fixed" && s.Joint != "" {
			n++
		}
	}
	return n
}

// loadConfig resolves preset name and config file into a single config,
// then folds the command line flags on top.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		preset, err := config.GetPreset(args[0])
		if err != nil {
			return nil, err
		}
		cfg = preset
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if cmd.Flags().Changed("controller") {
		cfg.Sim.Controller = controller
	}
	if cmd.Flags().Changed("kp") {
		cfg.Sim.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Sim.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Sim.Kd = kd
	}
	if qFlag != "" {
		q, err := parseFloats(qFlag)
		if err != nil {
			return nil, fmt.Errorf("bad --q: %w", err)
		}
		cfg.Sim.Q = q
	}
	if qdotFlag != "" {
		qd, err := parseFloats(qdotFlag)
		if err != nil {
			return nil, fmt.Errorf("bad --qdot: %w", err)
		}
		cfg.Sim.QDot = qd
	}
	if targetFlag != "" {
		tg, err := parseFloats(targetFlag)
		if err != nil {
			return nil, fmt.Errorf("bad --target: %w", err)
		}
		cfg.Sim.Target = tg
	}
	return cfg, nil
}

// buildArm constructs the chain, solver, and initial state for a config.
func buildArm(cfg *config.Config) (*sim.Arm, sim.State, error) {
	ch, err := cfg.BuildChain()
	if err != nil {
		return nil, nil, err
	}
	gravity := cfg.GravityVec()
	solver := dynamics.NewVereshchagin(ch, spatial.Twist{Vel: gravity.Neg()}, cfg.Solver.Constraints)
	if cfg.Solver.SVDEps > 0 {
		solver.SetSVDEps(cfg.Solver.SVDEps)
	}
	arm := sim.NewArm(ch, solver, gravity)

	nj := ch.NumJoints()
	x0 := make(sim.State, 2*nj)
	copy(x0[:nj], cfg.Sim.Q)
	copy(x0[nj:], cfg.Sim.QDot)
	return arm, x0, nil
}

func getIntegrator(name string) (sim.Integrator, error) {
	switch strings.ToLower(name) {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4", "":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	}
	return nil, fmt.Errorf("unknown integrator %q", name)
}

func getController(cfg *config.Config, nj int) (sim.Controller, error) {
	switch strings.ToLower(cfg.Sim.Controller) {
	case "none", "":
		return control.NewNone(nj), nil
	case "pid":
		target := cfg.Sim.Target
		if len(target) == 0 {
			target = make([]float64, nj)
		}
		if len(target) != nj {
			return nil, fmt.Errorf("pid target has %d entries, arm has %d joints", len(target), nj)
		}
		return control.NewPID(cfg.Sim.Kp, cfg.Sim.Ki, cfg.Sim.Kd, target), nil
	}
	return nil, fmt.Errorf("unknown controller %q", cfg.Sim.Controller)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	arm, x0, err := buildArm(cfg)
	if err != nil {
		return err
	}
	integ, err := getIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := getController(cfg, arm.Chain().NumJoints())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(arm, integ, ctrl)
	gravity := cfg.GravityVec()
	s.AddMetric(metrics.NewChainEnergy(arm.Chain(), gravity))
	s.AddMetric(metrics.NewEnergyDrift(arm.Chain(), gravity))
	s.AddMetric(metrics.NewControlEffort())
	s.AddMetric(metrics.NewMaxAbsState())

	fmt.Printf("running %s for %.2fs at dt=%g...\n", cfg.Name, cfg.Sim.Duration, cfg.Sim.Dt)
	start := time.Now()
	result, err := s.Run(context.Background(), x0, sim.Config{
		Dt:            cfg.Sim.Dt,
		Duration:      cfg.Sim.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Arm:         cfg.Name,
		Joints:      arm.Chain().NumJoints(),
		Dt:          cfg.Sim.Dt,
		Duration:    cfg.Sim.Duration,
		Integrator:  cfg.Sim.Integrator,
		Controller:  cfg.Sim.Controller,
		Constraints: cfg.Solver.Constraints,
		Gravity:     cfg.Gravity,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ch, err := cfg.BuildChain()
	if err != nil {
		return err
	}
	nj := ch.NumJoints()

	q := make([]float64, nj)
	qdot := make([]float64, nj)
	torques := make([]float64, nj)
	copy(q, cfg.Sim.Q)
	copy(qdot, cfg.Sim.QDot)
	copy(torques, cfg.Sim.Torques)
	if qFlag != "" {
		v, err := parseFloats(qFlag)
		if err != nil {
			return err
		}
		copy(q, v)
	}
	if qdotFlag != "" {
		v, err := parseFloats(qdotFlag)
		if err != nil {
			return err
		}
		copy(qdot, v)
	}
	if tauFlag != "" {
		v, err := parseFloats(tauFlag)
		if err != nil {
			return err
		}
		copy(torques, v)
	}

	gravity := cfg.GravityVec()
	solver := dynamics.NewVereshchagin(ch, spatial.Twist{Vel: gravity.Neg()}, cfg.Solver.Constraints)
	qdd := make([]float64, nj)
	alfa := make([]spatial.Wrench, cfg.Solver.Constraints)
	beta := make([]float64, cfg.Solver.Constraints)
	fext := make([]spatial.Wrench, ch.NumSegments())

	if code := solver.CartToJnt(q, qdot, qdd, alfa, beta, fext, torques); code != dynamics.CodeOK {
		return fmt.Errorf("solver failed: %s", code)
	}

	accs := make([]spatial.Twist, ch.NumSegments()+1)
	if code := solver.TransformedLinkAccelerations(accs); code != dynamics.CodeOK {
		return fmt.Errorf("link accelerations: %s", code)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "joint\tq\tqdot\tqdd\ttau")
	for j := 0; j < nj; j++ {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.6f\t%.4f\n", j, q[j], qdot[j], qdd[j], torques[j])
	}
	fmt.Fprintln(w, "\nsegment\tlinear acc\tangular acc")
	for i := 1; i < len(accs); i++ {
		a := accs[i]
		fmt.Fprintf(w, "%s\t(%.4f %.4f %.4f)\t(%.4f %.4f %.4f)\n",
			ch.Segment(i-1).Name, a.Vel.X, a.Vel.Y, a.Vel.Z, a.Rot.X, a.Rot.Y, a.Rot.Z)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	arm, x0, err := buildArm(cfg)
	if err != nil {
		return err
	}
	integ, err := getIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := getController(cfg, arm.Chain().NumJoints())
	if err != nil {
		return err
	}

	plane := viz.PlaneForGravity(cfg.GravityVec())
	model := viz.NewModel(arm, integ, ctrl, x0, cfg.Sim.Dt, cfg.Name, plane)
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

func runPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	rows := make([]sim.State, len(states))
	for i, s := range states {
		rows[i] = s
	}
	fmt.Printf("%s (%d joints, %d samples)\n\n", meta.ID, meta.Joints, len(states))
	fmt.Print(viz.PlotTrajectories(rows, meta.Joints, 70, 8))
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(times) < 4 {
		return fmt.Errorf("run %s has too few samples", args[0])
	}
	rate := float64(len(times)-1) / (times[len(times)-1] - times[0])

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "joint\tdominant freq [Hz]\tsettling [s]")
	signal := make([]float64, len(states))
	for j := 0; j < meta.Joints; j++ {
		for i, s := range states {
			if j < len(s) {
				signal[i] = s[j]
			}
		}
		freq := analysis.DominantFrequency(signal, rate)
		settle := analysis.SettlingTime(signal, times, 0.02)
		if settle < 0 {
			fmt.Fprintf(w, "%d\t%.4f\tnever\n", j, freq)
		} else {
			fmt.Fprintf(w, "%d\t%.4f\t%.2f\n", j, freq, settle)
		}
	}
	return w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tarm\tjoints\tduration\tintegrator\tcontroller\twhen")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%s\t%s\t%s\n",
			r.ID, r.Arm, r.Joints, r.Duration, r.Integrator, r.Controller,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Times  []float64            `json:"times"`
		States [][]float64          `json:"states"`
	}{meta, times, states}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	var cfg *config.Config
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.GetPreset(meta.Arm)
	}
	if err != nil {
		return fmt.Errorf("cannot rebuild arm %q, pass --config: %w", meta.Arm, err)
	}
	ch, err := cfg.BuildChain()
	if err != nil {
		return err
	}

	plane := viz.PlaneForGravity(cfg.GravityVec())
	svg := export.ArmTrajectorySVG(ch, states, plane, 800, 600, 6)
	if svg == "" {
		return fmt.Errorf("run %s has no drawable trajectory", args[0])
	}

	outPath := args[0] + ".svg"
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Println("wrote", outPath)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ch, err := cfg.BuildChain()
	if err != nil {
		return err
	}
	nj := ch.NumJoints()

	target := cfg.Sim.Target
	if len(target) == 0 {
		target = make([]float64, nj)
	}
	if len(target) != nj {
		return fmt.Errorf("target has %d entries, arm has %d joints", len(target), nj)
	}

	kps, err := parseFloats(kpGrid)
	if err != nil {
		return fmt.Errorf("bad --kp-grid: %w", err)
	}
	kds, err := parseFloats(kdGrid)
	if err != nil {
		return fmt.Errorf("bad --kd-grid: %w", err)
	}

	trial := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		arm, x0, err := buildArm(cfg)
		if err != nil {
			return nil, err
		}
		pid := control.NewPID(params["kp"], 0, params["kd"], target)
		s := sim.New(arm, integrators.NewRK4(), pid)
		s.AddMetric(optim.NewTrackingError(target))
		s.AddMetric(metrics.NewControlEffort())

		result, err := s.Run(ctx, x0, sim.Config{
			Dt:            cfg.Sim.Dt,
			Duration:      duration,
			ValidateState: true,
		})
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}

	fmt.Printf("tuning %s over %d gain pairs...\n", cfg.Name, len(kps)*len(kds))
	gs := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kps, kds})
	best, score, err := gs.Search(context.Background(), trial, "tracking_error")
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("every trial failed or diverged")
	}
	fmt.Printf("best gains: kp=%g kd=%g (tracking error %.6g)\n", best["kp"], best["kd"], score)
	return nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
