package viewer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"github.com/taigrr/phong/pkg/input"
	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/render"
	"github.com/taigrr/phong/pkg/scene"
	"github.com/taigrr/phong/pkg/shapes"
)

// scripted replays batches of events, then reports Quit.
type scripted struct {
	batches [][]input.Event
	polls   int
}

func (s *scripted) Poll(context.Context) ([]input.Event, error) {
	s.polls++
	if len(s.batches) == 0 {
		return []input.Event{{Kind: input.Quit}}, nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b, nil
}

type failingSource struct{ err error }

func (f failingSource) Poll(context.Context) ([]input.Event, error) { return nil, f.err }

type countingSurface struct {
	*render.Display
	presents int
	err      error
}

func (c *countingSurface) Present() error {
	c.presents++
	return c.err
}

func testScene(t *testing.T) *scene.Registry {
	t.Helper()
	cube, err := shapes.Cuboid(math3d.V3(20, 20, 0), math3d.V3(40, 40, 40))
	if err != nil {
		t.Fatal(err)
	}
	reg := scene.NewRegistry()
	if err := reg.AddMesh("cube", cube); err != nil {
		t.Fatal(err)
	}
	return reg
}

func newTestViewer(t *testing.T, opts ...Option) (*Viewer, *countingSurface) {
	t.Helper()
	s := &countingSurface{Display: render.NewDisplay(80, 80, nil)}
	return New(render.DefaultContext(80, 80), testScene(t), s, opts...), s
}

func TestRunHeldKeyRotatesEveryFrame(t *testing.T) {
	v, s := newTestViewer(t)
	src := &scripted{batches: [][]input.Event{
		{{Kind: input.KeyDown, Key: input.KeyD}},
		nil,
		{{Kind: input.KeyUp, Key: input.KeyD}},
	}}

	if err := v.Run(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	// Two frames with d held; the release frame does not rotate.
	want := math3d.V3(0, 0, -1)
	for range 2 {
		want = input.ApplyHeldKey(want, input.KeyD, input.DefaultStep)
	}
	if !v.Light().ApproxEqual(want, 1e-9) {
		t.Errorf("light = %v, want %v", v.Light(), want)
	}
	if v.Frames() != 3 || s.presents != 3 {
		t.Errorf("frames = %d, presents = %d, want 3", v.Frames(), s.presents)
	}
	if src.polls != 4 {
		t.Errorf("polls = %d, want 4", src.polls)
	}
}

func TestRunQuitBeforeRendering(t *testing.T) {
	v, s := newTestViewer(t)
	src := &scripted{batches: [][]input.Event{
		{{Kind: input.KeyDown, Key: input.KeyW}, {Kind: input.Quit}},
	}}
	if err := v.Run(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if s.presents != 0 {
		t.Errorf("presents = %d, want 0", s.presents)
	}
}

func TestRunPresentError(t *testing.T) {
	v, s := newTestViewer(t)
	s.err = errors.New("display gone")
	err := v.Run(context.Background(), &scripted{batches: [][]input.Event{nil}})
	if !errors.Is(err, s.err) {
		t.Errorf("err = %v, want %v", err, s.err)
	}
}

func TestRunPollError(t *testing.T) {
	v, _ := newTestViewer(t)
	boom := errors.New("boom")
	if err := v.Run(context.Background(), failingSource{boom}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if err := v.Run(context.Background(), failingSource{context.Canceled}); err != nil {
		t.Errorf("cancelled poll: err = %v, want nil", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	v, _ := newTestViewer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &scripted{}
	if err := v.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
	if src.polls != 0 {
		t.Errorf("polled %d times after cancellation", src.polls)
	}
}

func TestResizeAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var gotW, gotH int
	v, _ := newTestViewer(t,
		WithLogger(zap.New(core)),
		WithStep(90),
		WithResize(func(w, h int) { gotW, gotH = w, h }),
	)

	done, err := v.Tick([]input.Event{
		{Kind: input.Resize, Width: 120, Height: 40},
		{Kind: input.KeyTap, Key: input.KeyA},
	})
	if err != nil || done {
		t.Fatalf("Tick = %v, %v", done, err)
	}
	if gotW != 120 || gotH != 40 {
		t.Errorf("resize = %d,%d", gotW, gotH)
	}
	// 90 degrees about Y takes -z to -x.
	if !v.Light().ApproxEqual(math3d.V3(-1, 0, 0), 1e-9) {
		t.Errorf("light = %v", v.Light())
	}
	if logs.FilterMessage("light rotated").Len() != 1 {
		t.Errorf("expected one light rotated entry, got %v", logs.All())
	}
}

func TestApplyWithoutRendering(t *testing.T) {
	v, s := newTestViewer(t)
	v.Apply(input.Event{Kind: input.KeyTap, Key: input.KeyS})
	want := input.ApplyHeldKey(math3d.V3(0, 0, -1), input.KeyS, input.DefaultStep)
	if !v.Light().ApproxEqual(want, 1e-9) {
		t.Errorf("light = %v, want %v", v.Light(), want)
	}
	if s.presents != 0 {
		t.Errorf("Apply presented a frame")
	}

	stats, err := v.Render()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FacesDrawn == 0 || stats.FacesCulled == 0 {
		t.Errorf("stats = %+v", stats)
	}
}
