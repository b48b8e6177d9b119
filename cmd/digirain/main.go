package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/digirain/internal/config"
	"github.com/san-kum/digirain/internal/logger"
	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/sim"
	"github.com/san-kum/digirain/internal/term"
	"github.com/san-kum/digirain/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	backend    string
	tickMS     int
	seed       uint64
	spawn      string
	logFile    string
	logLevel   string

	densityTicks  int
	densitySize   string
	snapshotTicks int
	snapshotSize  string
	benchTicks    int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Logger.Error().Err(err).Msg("exit")
		fmt.Fprintln(os.Stderr, "digirain:", err)
		os.Exit(1)
	}
}

// newRootCmd registers every command and binds the flag variables to their
// defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "digirain",
		Short:         "digital rain in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRain,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&spawn, "spawn", config.DefaultSpawn, "spawn policy: literal or single")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "terminal backend: tea or tcell")
	rootCmd.Flags().IntVar(&tickMS, "tick", config.DefaultTickMS, "tick length in milliseconds")

	densityCmd := &cobra.Command{
		Use:   "density",
		Short: "plot live streams per tick from a headless run",
		Args:  cobra.NoArgs,
		RunE:  runDensity,
	}
	densityCmd.Flags().IntVar(&densityTicks, "ticks", 400, "ticks to simulate")
	densityCmd.Flags().StringVar(&densitySize, "size", "80x24", "screen size COLSxROWS")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "print the frame after a headless run",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotTicks, "ticks", 60, "ticks to simulate")
	snapshotCmd.Flags().StringVar(&snapshotSize, "size", "80x24", "screen size COLSxROWS")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure headless tick throughput",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 2000, "ticks per run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}

	rootCmd.AddCommand(densityCmd, snapshotCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, the preset, the config file and finally any
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("tick") {
		cfg.TickMS = tickMS
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("spawn") {
		cfg.Spawn = spawn
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config, cols, rows int) (*rain.Engine, error) {
	policy, err := rain.ParseSpawnPolicy(cfg.Spawn)
	if err != nil {
		return nil, err
	}
	return rain.New(cols, rows, rain.WithSeed(cfg.Seed), rain.WithSpawnPolicy(policy)), nil
}

func runRain(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real size arrives from the terminal once the backend starts.
	eng, err := newEngine(cfg, 0, 0)
	if err != nil {
		return err
	}

	log := logger.With("main")
	log.Info().Str("backend", cfg.Backend).Int("tick_ms", cfg.TickMS).
		Uint64("seed", cfg.Seed).Str("spawn", cfg.Spawn).Msg("starting")

	switch cfg.Backend {
	case config.BackendTcell:
		err = runTcell(ctx, log, eng, cfg.Interval())
	default:
		var played int
		played, err = viz.Run(ctx, eng, cfg.Interval())
		log.Info().Int("ticks", played).Msg("stopped")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTcell(ctx context.Context, log zerolog.Logger, eng *rain.Engine, interval time.Duration) error {
	drv, err := term.NewTcell()
	if err != nil {
		return err
	}
	s := sim.New(eng, drv)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	res, err := s.Run(ctx, sim.Config{Interval: interval})
	if res != nil {
		log.Info().Str("reason", string(res.Reason)).Int("ticks", res.Ticks).
			Int("peak", res.Peak).Dur("elapsed", res.Elapsed).Msg("stopped")
	}
	return err
}

// headless runs n ticks against an off-screen driver.
func headless(cmd *cobra.Command, cols, rows, n int, observers ...sim.Observer) (*sim.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	eng, err := newEngine(cfg, cols, rows)
	if err != nil {
		return nil, err
	}
	s := sim.New(eng, term.NewHeadless(cols, rows))
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	for _, o := range observers {
		s.AddObserver(o)
	}
	return s.Run(cmd.Context(), sim.Config{MaxTicks: n})
}

func runDensity(cmd *cobra.Command, args []string) error {
	cols, rows, err := parseSize(densitySize)
	if err != nil {
		return err
	}
	if densityTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", densityTicks)
	}
	res, err := headless(cmd, cols, rows, densityTicks)
	if err != nil {
		return err
	}

	fmt.Printf("live streams, %dx%d, %d ticks\n", cols, rows, res.Ticks)
	fmt.Println(viz.Plot(res.Live, 70, 12, "live streams per tick"))
	fmt.Println()
	fmt.Print(viz.Summary(res))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cols, rows, err := parseSize(snapshotSize)
	if err != nil {
		return err
	}
	if snapshotTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", snapshotTicks)
	}
	var last *rain.Frame
	_, err = headless(cmd, cols, rows, snapshotTicks, sim.ObserverFunc(func(t sim.TickInfo) {
		last = t.Frame
	}))
	if err != nil {
		return err
	}
	fmt.Println(viz.NewRenderer(nil).Render(last))
	return nil
}

var benchSizes = [][2]int{{80, 24}, {160, 48}, {320, 96}}

func runBench(cmd *cobra.Command, args []string) error {
	if benchTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", benchTicks)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var specs []sim.Spec
	for _, sz := range benchSizes {
		for _, p := range []rain.SpawnPolicy{rain.SpawnLiteral, rain.SpawnSingle} {
			specs = append(specs, sim.Spec{Cols: sz[0], Rows: sz[1], Seed: cfg.Seed, Policy: p})
		}
	}

	results, err := sim.NewEnsemble(benchTicks, nil, specs...).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d ticks per run\n\n", benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSPAWN\tTICKS\tPEAK\tTIME\tTICKS/SEC")
	for i, res := range results {
		spec := specs[i]
		perSec := float64(res.Ticks) / res.Elapsed.Seconds()
		fmt.Fprintf(w, "%dx%d\t%s\t%d\t%d\t%v\t%.0f\n",
			spec.Cols, spec.Rows, spec.Policy, res.Ticks, res.Peak, res.Elapsed.Round(time.Microsecond), perSec)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tTICK\tSPAWN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%dms\t%s\n", name, p.Backend, p.TickMS, p.Spawn)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return config.Write(os.Stdout, cfg)
}
