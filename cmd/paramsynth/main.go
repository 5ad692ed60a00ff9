package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/paramsynth/internal/analysis"
	"github.com/san-kum/paramsynth/internal/config"
	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/experiment"
	"github.com/san-kum/paramsynth/internal/metrics"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/storage"
	"github.com/san-kum/paramsynth/internal/telemetry"
	"github.com/san-kum/paramsynth/internal/ts"
	"github.com/san-kum/paramsynth/internal/viz"
)

var (
	dataDir     string
	logLevel    string
	traceExp    string
	configFile  string
	pivot       string
	parallel    bool
	workers     int
	metricsAddr string
	outFile     string
	low         float64
	high        float64
	jsonOut     bool
	limit       int
	steps       int
	plotHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "paramsynth",
		Short:         "parameter synthesis by colored attractor decomposition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(logLevel))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&traceExp, "trace", config.DefaultTrace, "trace exporter (none, stdout)")

	runCmd := &cobra.Command{
		Use:   "run [model] [preset]",
		Short: "generate a model, decompose it and store the run",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runDecomposition,
	}
	addRunFlags(runCmd)

	genCmd := &cobra.Command{
		Use:   "gen [model] [preset]",
		Short: "write a generated transition system to a file",
		Args:  cobra.MaximumNArgs(2),
		RunE:  genSystem,
	}
	genCmd.Flags().StringVarP(&outFile, "out", "o", "ts.bin", "output file")

	decomposeCmd := &cobra.Command{
		Use:   "decompose [file]",
		Short: "decompose a transition system file",
		Args:  cobra.ExactArgs(1),
		RunE:  decomposeFile,
	}
	addRunFlags(decomposeCmd)
	decomposeCmd.Flags().Float64Var(&low, "low", config.DefaultLow, "lower parameter bound")
	decomposeCmd.Flags().Float64Var(&high, "high", config.DefaultHigh, "upper parameter bound")
	decomposeCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&limit, "limit", 20, "components to list (0 for all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the attractor count over the parameter axis",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&steps, "steps", 80, "sample count")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse stored runs interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			runs, err := st.List()
			if err != nil {
				return err
			}
			return viz.RunBrowser(runs, st.LoadResult)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models := config.ListModels()
			if len(args) > 0 {
				models = args
			}
			for _, m := range models {
				presets := config.ListPresets(m)
				if len(presets) == 0 {
					fmt.Printf("no presets for model: %s\n", m)
					continue
				}
				fmt.Printf("%s: %s\n", m, strings.Join(presets, ", "))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, genCmd, decomposeCmd, listCmd, showCmd, plotCmd, browseCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pivot, "pivot", config.DefaultPivot, "pivot strategy ("+strings.Join(decomp.ChooserNames(), ", ")+")")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "decompose independent branches concurrently")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "concurrent branches in parallel mode")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// resolveConfig layers the configuration: defaults or the named preset, then
// the config file, then the environment, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch len(args) {
	case 1:
		cfg.Model.Kind = args[0]
	case 2:
		cfg = config.GetPreset(args[0], args[1])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[1], config.ListPresets(args[0]))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("trace") {
		cfg.Trace = traceExp
	}
	if flags.Changed("pivot") {
		cfg.Pivot = pivot
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("low") {
		cfg.Domain.Low = low
	}
	if flags.Changed("high") {
		cfg.Domain.High = high
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newObserver starts the metrics endpoint when an address is given.
func newObserver() (*metrics.Decomposition, decomp.Observer) {
	if metricsAddr == "" {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	m := metrics.NewDecomposition(reg)
	go func() {
		slog.Info("serving metrics", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "err", err)
		}
	}()
	return m, m
}

// startTracing installs the configured span exporter. Spans go to stderr.
func startTracing(ctx context.Context, cfg *config.Config) (func(), error) {
	shutdown, err := telemetry.Init(ctx, telemetry.Config{Exporter: cfg.Trace, ServiceName: "paramsynth"})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("flush traces", "err", err)
		}
	}, nil
}

func execute(cmd *cobra.Command, e *experiment.Experiment, m *metrics.Decomposition) (*experiment.Report, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.SetAttractors(len(report.Result.Counts))
	}
	return report, nil
}

func runDecomposition(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	stopTracing, err := startTracing(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer stopTracing()

	m, observer := newObserver()
	e := experiment.New(cfg, experiment.Options{Logger: slog.Default(), Observer: observer})
	if err := e.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	report, err := execute(cmd, e, m)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, report, e.System())
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderSummary(meta))
	fmt.Println()
	fmt.Println(viz.RenderBands(analysis.Bands(e.Solver(), report.Result.Counts)))
	return nil
}

func genSystem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	model, err := experiment.NewRegistry().GetModel(cfg.Model)
	if err != nil {
		return err
	}
	sys, err := model.Build(interval.NewSolver(cfg.Domain.Low, cfg.Domain.High))
	if err != nil {
		return err
	}
	if err := storage.WriteSystem(outFile, sys); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d states, %d edges, domain (%g, %g)\n",
		outFile, sys.NumStates(), sys.NumEdges(), cfg.Domain.Low, cfg.Domain.High)
	return nil
}

func decomposeFile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	sv := interval.NewSolver(cfg.Domain.Low, cfg.Domain.High)
	sys, err := storage.ReadSystem(args[0], sv)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if err := ts.Validate(sys); err != nil {
		if errors.Is(err, ts.ErrOutOfDomain) {
			return fmt.Errorf("read %s: %w (set --low and --high to the domain it was generated on)", args[0], err)
		}
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	stopTracing, err := startTracing(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer stopTracing()

	m, observer := newObserver()
	e := experiment.New(cfg, experiment.Options{Logger: slog.Default(), Observer: observer})
	if err := e.SetupSystem(sv, sys); err != nil {
		return err
	}
	report, err := execute(cmd, e, m)
	if err != nil {
		return err
	}

	if jsonOut {
		return storage.EncodeJSON(os.Stdout, storage.NewResultFile(sv, report.Result))
	}
	fmt.Printf("%d states, %d edges, %d components, %d iterations in %s\n\n",
		report.States, report.Edges, len(report.Result.Components), report.Result.Iterations, report.Elapsed)
	fmt.Println(viz.RenderBands(analysis.Bands(sv, report.Result.Counts)))
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTATES\tCOMPONENTS\tMAX\tPIVOT\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%.2fms\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.States,
			run.Components,
			run.MaxAttractors,
			run.Pivot,
			run.ElapsedMillis,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rf, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	sv := interval.NewSolver(meta.Low, meta.High)
	fmt.Println(viz.RenderSummary(meta))
	fmt.Println()
	fmt.Println(viz.RenderBands(analysis.Bands(sv, rf.Counts())))
	fmt.Println()
	fmt.Println(viz.RenderComponents(rf.Components, limit))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rf, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	points := analysis.Sweep(rf.Counts(), meta.Low, meta.High, steps)
	fmt.Println(viz.Plot(points, steps, plotHeight))
	return nil
}
