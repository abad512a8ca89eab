package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/ui"
	"github.com/san-kum/orrery/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dataDir    string
	configFile string
	fontPath   string
)

// traceFlags holds the trace command's flags.
type traceFlags struct {
	dt       float64
	duration float64
	out      string
	size     int
	save     bool
}

type snapshotFlags struct {
	dt       float64
	duration float64
	out      string
	size     int
}

// env is everything a command needs after flags, config and logging are
// resolved.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	reg     *body.Registry
	logFile *os.File
}

func (e *env) Close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) orbitOptions() []orbit.Option {
	return []orbit.Option{
		orbit.WithSeed(e.cfg.Seed),
		orbit.WithTimeScale(e.cfg.Orbit.TimeScale),
		orbit.WithNormalize(e.cfg.Orbit.Normalize),
	}
}

func (e *env) simOptions() []sim.Option {
	return []sim.Option{
		sim.WithCamera(e.cfg.Camera.Rig()),
		sim.WithOrbitOptions(e.orbitOptions()...),
		sim.WithLogger(e.log),
	}
}

// assemble loads textures when withTextures is set and builds the scene.
// Missing textures never fail the command.
func (e *env) assemble(ctx context.Context, withTextures bool) *scene.Scene {
	var textures scene.TextureSource
	if withTextures {
		set := assets.LoadAll(ctx, assets.DirFetcher{Root: e.cfg.AssetsDir}, e.reg.Textures(), e.log)
		e.log.Info().Int("loaded", set.Loaded()).Int("failed", set.Failed()).Msg("textures")
		textures = set
	}
	return scene.Assemble(e.reg, textures, scene.Options{
		Seed:       e.cfg.Seed,
		StarCount:  e.cfg.Starfield.Count,
		StarExtent: e.cfg.Starfield.Extent,
	})
}

// main is the entry point for the orrery CLI; with no subcommand it opens
// the 3D window.
func main() {
	rootCmd, err := newRootCmd(viper.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree with its flags bound to v.
func newRootCmd(v *viper.Viper) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "interactive solar system orrery",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(v)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml)")
	pf.StringVar(&dataDir, "data", ".orrery", "directory for saved runs")
	pf.String("bodies", "", "body catalog (yaml); built-in solar system when empty")
	pf.String("assets", config.DefaultAssetsDir, "texture directory")
	pf.Int64("seed", config.DefaultSeed, "random seed for start angles and stars")
	pf.String("log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	pf.String("log-file", "", "also write logs to this file")
	pf.Float64("time-scale", config.DefaultTimeScale, "orbit time scale")
	pf.Bool("normalize", false, "wrap angles into [0, 2π)")
	pf.String("theme", config.DefaultTheme, "color theme (dark, light)")
	pf.String("preset", "", "camera preset")

	for key, flag := range map[string]string{
		"bodies_file":      "bodies",
		"assets_dir":       "assets",
		"seed":             "seed",
		"log_level":        "log-level",
		"log_file":         "log-file",
		"orbit.time_scale": "time-scale",
		"orbit.normalize":  "normalize",
		"theme":            "theme",
		"camera.preset":    "preset",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3D window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(v)
		},
	}
	guiCmd.Flags().StringVar(&fontPath, "font", gui.DefaultFontPath, "TTF font for the HUD")
	rootCmd.Flags().StringVar(&fontPath, "font", gui.DefaultFontPath, "TTF font for the HUD")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the orrery in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(v)
		},
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the body catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBodies(v)
		},
	}

	var tf traceFlags
	traceCmd := &cobra.Command{
		Use:   "trace [body]",
		Short: "integrate headlessly and plot a body's orbit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return trace(cmd.Context(), v, args[0], tf)
		},
	}
	traceCmd.Flags().Float64Var(&tf.dt, "dt", 1.0/60, "step (seconds)")
	traceCmd.Flags().Float64VarP(&tf.duration, "time", "t", 60, "duration (seconds)")
	traceCmd.Flags().StringVarP(&tf.out, "out", "o", "", "also write the track as svg")
	traceCmd.Flags().IntVar(&tf.size, "size", 600, "svg size (pixels)")
	traceCmd.Flags().BoolVar(&tf.save, "save", false, "store the run under --data")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	var sf snapshotFlags
	snapshotCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "write a top-down svg snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSVG(cmd.Context(), v, sf)
		},
	}
	snapshotCmd.Flags().Float64VarP(&sf.duration, "time", "t", 0, "advance this many seconds first")
	snapshotCmd.Flags().Float64Var(&sf.dt, "dt", 1.0/60, "step (seconds)")
	snapshotCmd.Flags().StringVarP(&sf.out, "out", "o", "orrery.svg", "output file (- for stdout)")
	snapshotCmd.Flags().IntVar(&sf.size, "size", 800, "svg size (pixels)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list camera presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOSITION\tTARGET")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, vecString(p.Position), vecString(p.Target))
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(v, io.Discard)
			if err != nil {
				return err
			}
			defer e.Close()
			path := "orrery.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, e.cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, bodiesCmd, traceCmd, runsCmd, plotCmd, exportJSONCmd, snapshotCmd, presetsCmd, configCmd)
	return rootCmd, nil
}

// setup resolves configuration, logging and the body catalog. Logs go to
// console; the tui passes io.Discard so only the log file receives them.
func setup(v *viper.Viper, console io.Writer) (*env, error) {
	cfg, err := config.FromViper(v, configFile)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	var file io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.logFile, file = f, f
	}
	e.log = logging.Setup(console, file, cfg.LogLevel)

	if cfg.BodiesFile != "" {
		e.reg, err = body.Load(cfg.BodiesFile)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("load bodies: %w", err)
		}
	} else {
		e.reg = body.Default()
	}
	e.log.Debug().Int("bodies", e.reg.Len()).Str("config", configFile).Msg("configured")
	return e, nil
}

func runGUI(v *viper.Viper) error {
	e, err := setup(v, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	sc := e.assemble(context.Background(), true)
	app := gui.NewApp(e.reg, sc, gui.Options{
		Width:    e.cfg.Window.Width,
		Height:   e.cfg.Window.Height,
		FPS:      e.cfg.Window.FPS,
		FontPath: fontPath,
		Theme:    ui.ParseTheme(e.cfg.Theme),
		Seed:     e.cfg.Seed,
		Sim:      e.simOptions(),
		Log:      e.log,
	})
	app.Run()
	return nil
}

func runTUI(v *viper.Viper) error {
	e, err := setup(v, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	sc := e.assemble(context.Background(), false)
	m := viz.NewModel(e.reg, sc, ui.ParseTheme(e.cfg.Theme), e.cfg.Seed, e.simOptions()...)
	return viz.Run(m)
}

func listBodies(v *viper.Viper) error {
	e, err := setup(v, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tDISTANCE\tSPEED\tSPIN\tCOLOR\tRING\tTEXTURE")
	for _, d := range e.reg.All() {
		ring := ""
		if d.HasRing {
			ring = "yes"
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.0f\t%.3f\t%.3f\t%s\t%s\t%s\n",
			d.Name, d.Size, d.Distance, d.Speed, d.RotationSpeed, d.Color, ring, d.Texture)
	}
	return w.Flush()
}

func trace(ctx context.Context, v *viper.Viper, name string, f traceFlags) error {
	e, err := setup(v, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	d, err := e.reg.Get(name)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(e.reg.Names(), ", "))
	}

	sys := orbit.NewSystem(e.reg, e.orbitOptions()...)
	drift := orbit.NewRadiusDrift()
	res, err := sys.Run(ctx, orbit.RunConfig{Dt: f.dt, Duration: f.duration}, drift)
	if err != nil {
		return err
	}

	angles := res.Angles[d.Name]
	xs := make([]float64, len(angles))
	track := make([]geom.Vec3, len(angles))
	for i, a := range angles {
		track[i] = geom.Vec3{X: d.Distance * math.Cos(a), Z: d.Distance * math.Sin(a)}
		xs[i] = track[i].X
	}

	fmt.Printf("body: %s\n", d.Name)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	fmt.Printf("time scale: %.2f\n\n", sys.TimeScale())

	fmt.Println(asciigraph.Plot(angles,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("angle (rad)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(xs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("x"),
	))
	fmt.Printf("\n%s: %.3e\n", drift.Name(), res.Metrics[drift.Name()])

	if f.save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Body:      d.Name,
			Seed:      e.cfg.Seed,
			Dt:        f.dt,
			Duration:  f.duration,
			TimeScale: sys.TimeScale(),
			Bodies:    e.reg.Names(),
		}, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}

	if f.out == "" {
		return nil
	}
	if err := writeFile(f.out, export.TrackToSVG(track, f.size, d.RGB().Hex())); err != nil {
		return err
	}
	e.log.Info().Str("file", f.out).Msg("track written")
	return nil
}

func exportSVG(ctx context.Context, v *viper.Viper, f snapshotFlags) error {
	e, err := setup(v, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	sys := orbit.NewSystem(e.reg, e.orbitOptions()...)
	if f.duration > 0 {
		if _, err := sys.Run(ctx, orbit.RunConfig{Dt: f.dt, Duration: f.duration}); err != nil {
			return err
		}
	}

	opts := export.DefaultOptions()
	opts.Size = f.size
	opts.Theme = ui.ParseTheme(e.cfg.Theme)
	svg := export.SystemToSVG(sys, e.assemble(ctx, false), opts)

	if f.out == "-" {
		return export.Write(os.Stdout, svg)
	}
	if err := writeFile(f.out, svg); err != nil {
		return err
	}
	e.log.Info().Str("file", f.out).Float64("t", f.duration).Msg("snapshot written")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBODY\tTIME\tDURATION\tDT\tSCALE\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%.1f\t%d\n",
			run.ID,
			run.Body,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.TimeScale,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, angles, err := st.LoadAngles(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("body: %s\n", meta.Body)
	fmt.Printf("samples: %d\n\n", meta.Steps+1)

	names := []string{meta.Body}
	if meta.Body == "" {
		names = meta.Bodies
	}
	for _, name := range names {
		data := angles[name]
		if len(data) == 0 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" angle (rad)"),
		))
		fmt.Println()
	}
	for k, v := range meta.Metrics {
		fmt.Printf("%s: %.3e\n", k, v)
	}
	return nil
}

func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func vecString(v config.Vec) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
