// Package viewer runs the frame loop: poll input, rotate the light, render
// the scene and present it, until the user quits.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/phong/pkg/input"
	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/render"
)

// Viewer owns the render context and drives frames. All of its state is
// confined to the goroutine calling Run or Tick.
type Viewer struct {
	rc         render.Context
	scene      render.Scene
	surface    render.Surface
	controller *input.Controller

	log      *zap.Logger
	onResize func(width, height int)

	frames     int
	window     render.FrameStats
	lastReport time.Time
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithStep sets the light rotation per frame in degrees.
func WithStep(degrees float64) Option {
	return func(v *Viewer) { v.controller = input.NewController(degrees) }
}

// WithResize registers a function called for Resize events.
func WithResize(fn func(width, height int)) Option {
	return func(v *Viewer) { v.onResize = fn }
}

// New creates a viewer drawing sc onto s.
func New(rc render.Context, sc render.Scene, s render.Surface, opts ...Option) *Viewer {
	v := &Viewer{
		rc:         rc,
		scene:      sc,
		surface:    s,
		controller: input.NewController(input.DefaultStep),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Light returns the current light direction.
func (v *Viewer) Light() math3d.Vec3 {
	return v.rc.Light
}

// Frames returns the number of frames rendered so far.
func (v *Viewer) Frames() int {
	return v.frames
}

// Run polls src and renders a frame per batch until a Quit event arrives
// or ctx is done. Cancellation is not an error.
func (v *Viewer) Run(ctx context.Context, src input.Source) error {
	v.log.Info("viewer started",
		zap.Int("width", v.rc.Width),
		zap.Int("height", v.rc.Height),
		zap.Float64("perspective", v.rc.Perspective),
	)
	defer func() { v.log.Info("viewer stopped", zap.Int("frames", v.frames)) }()

	for {
		if ctx.Err() != nil {
			return nil
		}
		events, err := src.Poll(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("poll input: %w", err)
		}
		done, err := v.Tick(events)
		if err != nil || done {
			return err
		}
	}
}

// Tick handles one batch of events and, unless one of them is Quit,
// advances the light and renders a frame. done reports that the loop
// should stop.
func (v *Viewer) Tick(events []input.Event) (done bool, err error) {
	for _, ev := range events {
		v.handle(ev)
	}
	if v.controller.Quit() {
		return true, nil
	}

	if v.controller.Active() {
		v.rc.Light = v.controller.Step(v.rc.Light)
		v.log.Debug("light rotated", zap.Stringer("light", v.rc.Light))
	}

	if _, err := v.Render(); err != nil {
		return true, err
	}
	return false, nil
}

// Render draws and presents one frame without consuming input.
func (v *Viewer) Render() (render.FrameStats, error) {
	stats, err := render.Frame(&v.rc, v.surface, v.scene)
	if err != nil {
		return stats, fmt.Errorf("frame %d: %w", v.frames, err)
	}
	v.frames++
	v.report(stats)
	return stats, nil
}

// Apply feeds events to the controller and advances the light by one
// frame without rendering.
func (v *Viewer) Apply(events ...input.Event) {
	for _, ev := range events {
		v.handle(ev)
	}
	v.rc.Light = v.controller.Step(v.rc.Light)
}

func (v *Viewer) handle(ev input.Event) {
	switch ev.Kind {
	case input.Resize:
		v.log.Debug("resize", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
		if v.onResize != nil {
			v.onResize(ev.Width, ev.Height)
		}
	case input.Quit:
		v.log.Debug("quit requested")
	default:
		v.log.Debug("key", zap.Stringer("kind", ev.Kind), zap.Stringer("key", ev.Key))
	}
	v.controller.Handle(ev)
}

// report logs accumulated frame stats about once a second.
func (v *Viewer) report(s render.FrameStats) {
	v.window.FacesDrawn += s.FacesDrawn
	v.window.FacesCulled += s.FacesCulled
	v.window.EdgesDrawn += s.EdgesDrawn

	now := time.Now()
	if v.lastReport.IsZero() {
		v.lastReport = now
		return
	}
	if now.Sub(v.lastReport) < time.Second {
		return
	}
	v.log.Debug("frame stats",
		zap.Int("frames", v.frames),
		zap.Int("faces_drawn", v.window.FacesDrawn),
		zap.Int("faces_culled", v.window.FacesCulled),
		zap.Int("edges_drawn", v.window.EdgesDrawn),
		zap.Duration("window", now.Sub(v.lastReport)),
	)
	v.window = render.FrameStats{}
	v.lastReport = now
}
