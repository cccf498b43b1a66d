// Package window shows the viewer in a desktop window using ebiten.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/phong/pkg/input"
	"github.com/taigrr/phong/pkg/render"
	"github.com/taigrr/phong/pkg/viewer"
)

// keymap binds ebiten keys to viewer keys.
var keymap = []struct {
	ebiten ebiten.Key
	key    input.Key
}{
	{ebiten.KeyA, input.KeyA},
	{ebiten.KeyD, input.KeyD},
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyQ, input.KeyQ},
	{ebiten.KeyE, input.KeyE},
}

// Options configures the window.
type Options struct {
	Title string
	Scale int // window pixels per framebuffer pixel
	FPS   int
}

// Run opens a window showing display and drives v from ebiten's update
// loop. It blocks until the window is closed or the viewer quits.
func Run(v *viewer.Viewer, display *render.Display, opts Options) error {
	scale := max(opts.Scale, 1)
	g := &game{viewer: v, display: display}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}
	return ebiten.RunGame(g)
}

type game struct {
	viewer  *viewer.Viewer
	display *render.Display
	fbImg   *ebiten.Image
}

func (g *game) Update() error {
	events := keyEvents(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased)
	done, err := g.viewer.Tick(events)
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.display.Framebuffer
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.fbImg.WritePixels(fb.Image().Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.Width, g.display.Height
}

// keyEvents turns this tick's key transitions into viewer events. Escape
// quits.
func keyEvents(pressed, released func(ebiten.Key) bool) []input.Event {
	var events []input.Event
	if pressed(ebiten.KeyEscape) {
		events = append(events, input.Event{Kind: input.Quit})
	}
	for _, m := range keymap {
		if pressed(m.ebiten) {
			events = append(events, input.Event{Kind: input.KeyDown, Key: m.key})
		}
		if released(m.ebiten) {
			events = append(events, input.Event{Kind: input.KeyUp, Key: m.key})
		}
	}
	return events
}
