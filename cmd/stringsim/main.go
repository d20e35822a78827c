package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/analysis"
	"github.com/san-kum/stringsim/internal/config"
	"github.com/san-kum/stringsim/internal/export"
	"github.com/san-kum/stringsim/internal/render"
	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/store"
	"github.com/san-kum/stringsim/internal/viz"
)

var (
	dataDir  string
	logLevel string

	dt       float64
	steps    int
	length   float64
	tension  float64
	density  float64
	memory   int
	examp    float64
	expuls   float64
	pmass    float64
	ppuls    float64
	animate  bool
	files    bool
	progress bool
	width    int
	height   int
	fdur     int

	configFile string
	preset     string

	// plot/spectrum/export options
	cell      int
	svgWidth  int
	svgHeight int
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stringsim",
		Short: "vibrating string simulation with coupled point masses",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stringsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep [s]")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	runCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "string length [m]")
	runCmd.Flags().Float64Var(&tension, "tension", config.DefaultTension, "string tension [N]")
	runCmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "linear density [kg/m]")
	runCmd.Flags().IntVar(&memory, "memory", 0, "retained time steps (0 = all)")
	runCmd.Flags().Float64Var(&examp, "examp", config.DefaultAmplitude, "excitation amplitude [m]")
	runCmd.Flags().Float64Var(&expuls, "expuls", config.DefaultPulsation, "excitation pulsation [rad/s]")
	runCmd.Flags().Float64Var(&pmass, "mass", 0.01, "particle mass for the center preset [kg]")
	runCmd.Flags().Float64Var(&ppuls, "pulsation", 0, "particle pulsation for the center preset [rad/s]")
	runCmd.Flags().BoolVar(&animate, "anim", false, "record a GIF animation")
	runCmd.Flags().BoolVar(&files, "files", true, "write field/particle streams")
	runCmd.Flags().BoolVar(&progress, "log", true, "report per-step progress")
	runCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "animation width [px]")
	runCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "animation height [px]")
	runCmd.Flags().IntVar(&fdur, "fdur", config.DefaultFrameMs, "frame duration [ms]")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "free", "preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one cell's time series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&cell, "cell", -1, "spatial cell (-1 = center)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum of one cell's time series",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&cell, "cell", -1, "spatial cell (-1 = center)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the final state as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().IntVar(&svgWidth, "width", 640, "SVG width [px]")
	exportCmd.Flags().IntVar(&svgHeight, "height", 360, "SVG height [px]")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  liveRun,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "replay frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, spectrumCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
	}

	// Explicit flags override both preset and file values.
	set := cmd.Flags().Changed
	if set("dt") {
		cfg.Dt = dt
	}
	if set("steps") {
		cfg.Steps = steps
	}
	if set("length") {
		cfg.Length = length
	}
	if set("tension") {
		cfg.Tension = tension
	}
	if set("density") {
		cfg.Density = density
	}
	if set("memory") {
		cfg.Memory = memory
	}
	if set("examp") || set("expuls") {
		cfg.Left = config.EdgeConfig{Kind: "sin-absorber", Amplitude: examp, Pulsation: expuls}
	}
	if set("mass") || set("pulsation") {
		for i := range cfg.Particles {
			if set("mass") {
				cfg.Particles[i].Mass = pmass
			}
			if set("pulsation") {
				cfg.Particles[i].Pulsation = ppuls
			}
		}
	}
	if set("anim") {
		cfg.Output.Animate = animate
	}
	if set("files") {
		cfg.Output.WriteFiles = files
	}
	if set("log") {
		cfg.Output.Log = progress
	}
	if set("width") {
		cfg.Output.Width = width
	}
	if set("height") {
		cfg.Output.Height = height
	}
	if set("fdur") {
		cfg.Output.FrameDuration = fdur
	}
	cfg.Output.Dir = dataDir
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.Build()
	if err != nil {
		return err
	}

	st := store.New(cfg.Output.Dir)
	if err := st.Init(); err != nil {
		return err
	}
	runID := store.NewRunID(cfg.Preset)
	if err := os.MkdirAll(st.RunDir(runID), 0755); err != nil {
		return err
	}

	if cfg.Output.WriteFiles {
		w, err := st.CreateRun(runID, cfg.Describe(s.Model.Cells))
		if err != nil {
			return err
		}
		s.Driver.SetWriter(w)
	}

	var animator *render.Animator
	if cfg.Output.Animate {
		dest := filepath.Join(st.RunDir(runID), "animation.gif")
		animator = render.NewAnimator(dest, cfg.Output.Width, cfg.Output.Height, cfg.Output.FrameDuration)
		s.Driver.SetAnimator(animator)
	}

	logrus.Infof("run %s: %s", runID, cfg.Describe(s.Model.Cells))
	summary, err := s.Driver.Run(context.Background(), sim.RunOptions{Log: cfg.Output.Log})
	if err != nil {
		return err
	}

	meta := store.RunMetadata{
		ID:        runID,
		Preset:    cfg.Preset,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Steps:     summary.Steps,
		Cells:     summary.Cells,
		Length:    cfg.Length,
		Tension:   cfg.Tension,
		Density:   cfg.Density,
		Memory:    cfg.Memory,
		Particles: len(cfg.Particles),
		Metrics:   summary.Metrics,
		Animation: summary.AnimationPath,
	}
	if err := st.WriteMetadata(runID, meta); err != nil {
		return err
	}

	logrus.Infof("finished %d steps in %s", summary.Steps, summary.Wall)
	if summary.AnimationPath != "" {
		logrus.Infof("animation: %s", summary.AnimationPath)
	}
	fmt.Println(runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSTEPS\tCELLS\tPARTICLES\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Preset, r.Steps, r.Cells, r.Particles, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func cellSeries(st *store.Store, runID string) ([]float64, *store.RunMetadata, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := st.LoadField(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("run %s has no stored steps", runID)
	}

	n := cell
	if n < 0 {
		n = len(rows[0]) / 2
	}
	if n >= len(rows[0]) {
		return nil, nil, fmt.Errorf("cell %d out of range, run has %d cells", n, len(rows[0]))
	}

	series := make([]float64, len(rows))
	for i, row := range rows {
		series[i] = row[n]
	}
	return series, meta, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, meta, err := cellSeries(st, args[0])
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(20),
		asciigraph.Width(100),
		asciigraph.Caption(fmt.Sprintf("run %s, dt=%gs", meta.ID, meta.Dt)))
	fmt.Println(graph)
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, meta, err := cellSeries(st, args[0])
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(series)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(20),
		asciigraph.Width(100),
		asciigraph.Caption(fmt.Sprintf("power spectrum, dominant %.1f Hz",
			analysis.DominantFrequency(series, meta.Dt))))
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	rows, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %s has no stored steps", args[0])
	}
	positions, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}

	last := len(rows) - 1
	pos := []int(nil)
	if last < len(positions) {
		pos = positions[last]
	}
	svg := export.RowToSVG(rows[last], pos, svgWidth, svgHeight)

	out := filepath.Join(st.RunDir(args[0]), "final.svg")
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func liveRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	positions, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}

	return viz.Run(viz.NewModel(meta.ID, rows, positions, meta.Dt, frameRate))
}
