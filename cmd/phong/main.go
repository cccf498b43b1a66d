// phong - software 3D renderer with a movable light
//
// Renders a scene of meshes with flat Phong shading, drawing faces back to
// front without a depth buffer. The light direction is rotated from the
// keyboard.
//
// Controls:
//
//	A/D  - Rotate light around Y
//	W/S  - Rotate light around X
//	Q/E  - Rotate light around Z
//	Esc  - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/phong/internal/config"
	"github.com/taigrr/phong/internal/logger"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath  string
	logLevel    string
	logFile     string
	width       int
	height      int
	perspective float64
	nodes       bool
	edges       bool
	faces       bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "phong",
		Short: "Software 3D renderer with a movable light",
		Long: `phong - software 3D renderer with a movable light

Renders a striped sphere with flat Phong shading in the terminal or in a
window. The light direction rotates while a key is held.

Controls:
  A/D  - Rotate light around Y
  W/S  - Rotate light around X
  Q/E  - Rotate light around Z
  Esc  - Quit`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flags.IntVar(&opts.width, "width", 0, "Viewport width in pixels")
	flags.IntVar(&opts.height, "height", 0, "Viewport height in pixels")
	flags.Float64Var(&opts.perspective, "perspective", 0, "Perspective distance for edges (0 disables)")
	flags.BoolVar(&opts.nodes, "nodes", false, "Draw node markers")
	flags.BoolVar(&opts.edges, "edges", false, "Draw edges")
	flags.BoolVar(&opts.faces, "faces", true, "Draw faces")

	run := newRunCmd(&opts)
	root.AddCommand(run, newSnapshotCmd(&opts), newInfoCmd(&opts), newConfigCmd(&opts))
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())

	return root
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	base := config.Default()
	base.Display.Edges = false // the demo sphere is drawn without edges
	cfg, err := config.LoadOver(base, opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.LogFile = opts.logFile
	}
	if flags.Changed("width") {
		cfg.Window.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = opts.height
	}
	if flags.Changed("perspective") {
		cfg.Display.Perspective = opts.perspective
	}
	if flags.Changed("nodes") {
		cfg.Display.Nodes = opts.nodes
	}
	if flags.Changed("edges") {
		cfg.Display.Edges = opts.edges
	}
	if flags.Changed("faces") {
		cfg.Display.Faces = opts.faces
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for cfg. console is false while the terminal
// backend owns the screen.
func newLogger(cfg *config.Config, console bool) (*zap.Logger, error) {
	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Console: console,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.New(opts)
}
