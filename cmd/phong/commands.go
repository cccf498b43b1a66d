package main

import (
	"context"
	"fmt"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/phong/internal/config"
	"github.com/taigrr/phong/internal/window"
	"github.com/taigrr/phong/pkg/input"
	"github.com/taigrr/phong/pkg/render"
	"github.com/taigrr/phong/pkg/viewer"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		backend string
		scale   int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			switch backend {
			case "terminal":
				return runTerminal(cmd.Context(), cfg)
			case "window":
				return runWindow(cfg, scale)
			default:
				return fmt.Errorf("unknown backend %q (use terminal or window)", backend)
			}
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", "terminal", "Display backend: terminal or window")
	cmd.Flags().IntVar(&scale, "scale", 1, "Window pixels per framebuffer pixel")
	return cmd
}

func runTerminal(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg, err := demoScene()
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			log.Warn("terminal shutdown", zap.Error(err))
		}
	}()

	presenter := render.NewTerminalPresenter(term, cols, rows)
	display := render.NewDisplay(cfg.Window.Width, cfg.Window.Height, presenter)

	v := viewer.New(cfg.RenderContext(), reg, display,
		viewer.WithLogger(log),
		viewer.WithStep(cfg.Input.Step),
		viewer.WithResize(func(w, h int) {
			term.Erase()
			term.Resize(w, h)
			presenter.Resize(w, h)
		}),
	)
	return v.Run(ctx, input.NewTerminalSource(term.Events(), cfg.Window.FPS))
}

func runWindow(cfg *config.Config, scale int) error {
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg, err := demoScene()
	if err != nil {
		return err
	}

	display := render.NewDisplay(cfg.Window.Width, cfg.Window.Height, nil)
	v := viewer.New(cfg.RenderContext(), reg, display,
		viewer.WithLogger(log),
		viewer.WithStep(cfg.Input.Step),
	)
	log.Info("window opened", zap.String("title", cfg.Window.Title))
	return window.Run(v, display, window.Options{
		Title: cfg.Window.Title,
		Scale: scale,
		FPS:   cfg.Window.FPS,
	})
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var (
		out  string
		keys string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG file",
		Long: `Render one frame of the demo scene to a PNG file without opening a display.

--keys applies a sequence of key presses first, one frame each, so
"ddd" rotates the light three steps around Y.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			seq, err := input.ParseKeys(keys)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, true)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			reg, err := demoScene()
			if err != nil {
				return err
			}

			display := render.NewDisplay(cfg.Window.Width, cfg.Window.Height, nil)
			v := viewer.New(cfg.RenderContext(), reg, display,
				viewer.WithLogger(log),
				viewer.WithStep(cfg.Input.Step),
			)
			for _, k := range seq {
				v.Apply(input.Event{Kind: input.KeyTap, Key: k})
			}

			stats, err := v.Render()
			if err != nil {
				return err
			}
			if err := display.SavePNG(out); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			log.Info("snapshot written",
				zap.String("path", out),
				zap.Stringer("light", v.Light()),
				zap.Int("faces_drawn", stats.FacesDrawn),
				zap.Int("faces_culled", stats.FacesCulled),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "phong.png", "Output PNG path")
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "Keys to apply before rendering, e.g. ddwq")
	return cmd
}

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display scene information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			reg, err := demoScene()
			if err != nil {
				return err
			}
			rc := cfg.RenderContext()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Viewport:    %dx%d\n", cfg.Window.Width, cfg.Window.Height)
			fmt.Fprintf(w, "Layers:      %s\n", layers(cfg))
			fmt.Fprintf(w, "Perspective: %g\n", cfg.Display.Perspective)
			fmt.Fprintf(w, "Light:       %v\n", cfg.Lighting.Light.Vec3())
			for name, m := range reg.All() {
				vis, _ := reg.Visibility(name)
				box := render.MeshBounds(m)
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Mesh:        %s (%v)\n", name, vis)
				fmt.Fprintf(w, "Nodes:       %d\n", m.NodeCount())
				fmt.Fprintf(w, "Edges:       %d\n", m.EdgeCount())
				fmt.Fprintf(w, "Faces:       %d\n", m.FaceCount())
				fmt.Fprintf(w, "Bounds:      %v - %v\n", box.Min, box.Max)
				fmt.Fprintf(w, "Center:      %v\n", box.Center())
				fmt.Fprintf(w, "Size:        %v\n", box.Size())
				fmt.Fprintf(w, "On screen:   %t\n", box.OnScreen(&rc))
			}
			return nil
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the configuration the viewer would run with, after the config file
and flags are applied, to a YAML file that --config can read back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := cfg.SaveTo(out); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "phong.yaml", "Output YAML path")
	return cmd
}

func layers(cfg *config.Config) string {
	var on []string
	if cfg.Display.Faces {
		on = append(on, "faces")
	}
	if cfg.Display.Edges {
		on = append(on, "edges")
	}
	if cfg.Display.Nodes {
		on = append(on, "nodes")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}
