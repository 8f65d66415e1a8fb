package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/parallax/internal/config"
	"github.com/san-kum/parallax/internal/export"
	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/metrics"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/storage"
	"github.com/san-kum/parallax/internal/sweep"
	"github.com/san-kum/parallax/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	sceneName  string
	logLevel   string
	// Pointer position; unset unless a flag is given
	pointerX float64
	pointerY float64
	// Sweep range
	from    float64
	to      float64
	step    float64
	workers int
	// Output
	asJSON  bool
	outFile string
	element string
	columns []string
	width   int
	height  int
	// Live view
	theme     string
	frameRate int
)

// main exits with status 1 when the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers commands and flags. With no subcommand it launches
// the live preview.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "parallax",
		Short:        "scroll and pointer parallax transform engine",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".parallax", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&sceneName, "scene", "", "built-in scene (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	evalCmd := &cobra.Command{
		Use:   "eval [scroll]",
		Short: "evaluate every element at one scroll offset",
		Args:  cobra.ExactArgs(1),
		RunE:  evalFrame,
	}
	addPointerFlags(evalCmd)
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print the frame as JSON")

	cssCmd := &cobra.Command{
		Use:   "css [scroll]",
		Short: "print the style sheet for one scroll offset",
		Args:  cobra.ExactArgs(1),
		RunE:  printCSS,
	}
	addPointerFlags(cssCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate a scroll range and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addPointerFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&from, "from", sweep.DefaultFrom, "first scroll offset")
	sweepCmd.Flags().Float64Var(&to, "to", sweep.DefaultTo, "last scroll offset")
	sweepCmd.Flags().Float64Var(&step, "step", sweep.DefaultStep, "offset step")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = sequential, -1 = one per CPU)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&element, "element", "", "only plot this element's terms")
	plotCmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to plot (element.term)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.json)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run columns as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to draw (element.term)")
	exportSVGCmd.Flags().StringVar(&element, "element", "", "draw this element's terms")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 400, "image height")
	exportSVGCmd.Flags().StringVar(&theme, "theme", "", "palette theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s scene=%s theme=%s step=%g\n", name, p.Scene, p.Theme, p.Sweep.Step)
			}
			fmt.Println("scenes:")
			for _, name := range scene.BuiltinNames() {
				sc := scene.Builtin(name)
				fmt.Printf("  %-14s %d layers, %d sections\n", name, len(sc.Layers), len(sc.Sections))
			}
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [config]",
		Short: "validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			sc, err := cfg.Build()
			if err != nil {
				return err
			}
			fmt.Printf("ok: scene %s, %d layers, %d sections\n", sc.Name, len(sc.Layers), len(sc.Sections))
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal preview",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		c.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	}

	rootCmd.AddCommand(evalCmd, cssCmd, sweepCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, validateCmd, liveCmd)

	return rootCmd
}

func addPointerFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&pointerX, "x", 0, "pointer x (CSS px)")
	cmd.Flags().Float64Var(&pointerY, "y", 0, "pointer y (CSS px)")
}

func pointerFrom(cmd *cobra.Command) input.Pointer {
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		return input.At(pointerX, pointerY)
	}
	return input.Unset()
}

// resolve layers preset, config file and flags, in that order.
func resolve(cmd *cobra.Command) (*config.Config, *scene.Scene, *zap.Logger, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("scene") {
		cfg.Scene = sceneName
		cfg.Layers, cfg.Sections, cfg.Viewport = nil, nil, nil
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	sc, err := cfg.Build()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, sc, log, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}

func parseScroll(arg string) (float64, error) {
	s, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scroll offset %q: %w", arg, err)
	}
	return s, nil
}

// frameAt feeds one scroll and pointer event through a tracker bounded by
// the scene, so offsets clamp exactly as they would on the page.
func frameAt(cmd *cobra.Command, sc *scene.Scene, arg string) (scene.Frame, error) {
	s, err := parseScroll(arg)
	if err != nil {
		return scene.Frame{}, err
	}
	tr := input.NewTracker(sc.Viewport.Bounds())
	tr.OnScroll(s)
	if p := pointerFrom(cmd); p.Set {
		tr.OnPointerMove(p.X, p.Y)
	}
	snap := tr.Snapshot()
	return sc.FrameAt(snap.Scroll, snap.Pointer), nil
}

func evalFrame(cmd *cobra.Command, args []string) error {
	_, sc, log, err := resolve(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	f, err := frameAt(cmd, sc, args[0])
	if err != nil {
		return err
	}
	log.Debug("evaluated frame", zap.String("scene", sc.Name), zap.Float64("scroll", f.Scroll), zap.Stringer("pointer", f.Pointer))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}

	fmt.Printf("scene: %s  scroll: %g  pointer: %s\n\n", sc.Name, f.Scroll, f.Pointer)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTRANSFORM")
	for _, e := range f.Entries {
		css := e.Descriptor.CSS()
		if css == "" {
			css = "none"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Kind, css)
	}
	return w.Flush()
}

func printCSS(cmd *cobra.Command, args []string) error {
	_, sc, _, err := resolve(cmd)
	if err != nil {
		return err
	}
	f, err := frameAt(cmd, sc, args[0])
	if err != nil {
		return err
	}
	fmt.Print(export.StyleSheet(f))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, sc, log, err := resolve(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sweepCfg := cfg.SweepConfig()
	if cmd.Flags().Changed("from") {
		sweepCfg.From = from
	}
	if cmd.Flags().Changed("to") {
		sweepCfg.To = to
	}
	if cmd.Flags().Changed("step") {
		sweepCfg.Step = step
	}
	sweepCfg.Pointer = pointerFrom(cmd)
	n := cfg.Sweep.Workers
	if cmd.Flags().Changed("workers") {
		n = workers
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sw := sweep.New(sc, log)
	unbounded := metrics.NewUnbounded(metrics.DefaultScaleLimit, metrics.DefaultRotateLimit)
	sw.AddMetric(metrics.NewMaxDisplacement())
	sw.AddMetric(metrics.NewMinScale())
	sw.AddMetric(metrics.NewMaxRotation())
	sw.AddMetric(unbounded)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s from %g to %g step %g...\n", sc.Name, sweepCfg.From, sweepCfg.To, sweepCfg.Step)
	start := time.Now()

	var result *sweep.Result
	if n != 0 {
		result, err = sw.RunParallel(ctx, sweepCfg, n)
	} else {
		result, err = sw.Run(ctx, sweepCfg)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}
	log.Info("run saved", zap.String("run", runID), zap.Int("frames", len(result.Frames)), zap.Duration("elapsed", elapsed))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if off := unbounded.Offenders(); len(off) > 0 {
		fmt.Println("\nunbounded elements (first offset):")
		ids := make([]string, 0, len(off))
		for id := range off {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %s: %g\n", id, off[id])
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tRANGE\tSTEP\tFRAMES\tPOINTER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g-%g\t%g\t%d\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From, run.To,
			run.Step,
			run.Frames,
			run.Pointer,
		)
	}

	return w.Flush()
}

// selectColumns picks explicit columns, an element's columns, or all.
func selectColumns(table *storage.Table, limit int) ([]string, error) {
	if len(columns) > 0 {
		for _, c := range columns {
			if _, ok := table.Column(c); !ok {
				return nil, fmt.Errorf("unknown column: %s", c)
			}
		}
		return columns, nil
	}

	out := make([]string, 0)
	for _, c := range table.Columns {
		id, _, err := storage.SplitColumn(c)
		if err != nil {
			return nil, err
		}
		if element == "" || id == element {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no columns for element: %s", element)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}
	if len(table.Offsets) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(table.Offsets))

	cols, err := selectColumns(table, 6)
	if err != nil {
		return err
	}
	for _, c := range cols {
		data, _ := table.Column(c)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c+" vs scroll"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.WriteCSV(os.Stdout, table)
	}
	if err := export.ExportCSV(outFile, table); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".json"
	}
	if err := export.ExportJSON(path, meta, table); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}

	cols, err := selectColumns(table, 0)
	if err != nil {
		return err
	}
	set := make([]export.Series, len(cols))
	for i, c := range cols {
		values, _ := table.Column(c)
		set[i] = export.Series{Name: c, Values: values}
	}

	th := viz.GetTheme(theme)
	svg := export.SeriesSetToSVG(table.Offsets, set, width, height, string(th.LayerFrom), string(th.LayerTo))
	if svg == "" {
		return fmt.Errorf("not enough data to draw")
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %d series to %s\n", len(set), path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sc, log, err := resolve(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := viz.Options{Theme: cfg.Theme, FPS: cfg.FPS, Logger: log}
	if cmd.Flags().Changed("theme") {
		opts.Theme = theme
	}
	if cmd.Flags().Changed("fps") {
		opts.FPS = frameRate
	}
	return viz.Run(sc, opts)
}
