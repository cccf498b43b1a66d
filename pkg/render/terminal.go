package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalScreen is the part of *uv.Terminal the presenter needs.
type TerminalScreen interface {
	uv.Screen
	Display() error
}

// TerminalPresenter shows framebuffers on a terminal using half-block cells.
// Each cell carries two vertically stacked pixels: ▀ with fg=top, bg=bottom.
// Framebuffers of any size are sampled down (or up) to fit the cell grid.
type TerminalPresenter struct {
	screen TerminalScreen
	cols   int
	rows   int
}

// NewTerminalPresenter creates a presenter for a cols x rows cell area.
func NewTerminalPresenter(screen TerminalScreen, cols, rows int) *TerminalPresenter {
	return &TerminalPresenter{screen: screen, cols: cols, rows: rows}
}

// Resize changes the cell area, typically after a window size event.
func (t *TerminalPresenter) Resize(cols, rows int) {
	t.cols, t.rows = cols, rows
}

// Present draws fb on the screen and flushes it to the terminal.
func (t *TerminalPresenter) Present(fb *Framebuffer) error {
	t.Draw(fb, uv.Rect(0, 0, t.cols, t.rows))
	return t.screen.Display()
}

// Draw converts fb to terminal cells inside area without flushing.
func (t *TerminalPresenter) Draw(fb *Framebuffer, area uv.Rectangle) {
	if fb.Width == 0 || fb.Height == 0 || area.Dx() == 0 || area.Dy() == 0 {
		return
	}
	subRows := area.Dy() * 2

	for row := area.Min.Y; row < area.Max.Y; row++ {
		r := row - area.Min.Y
		topY := (2 * r) * fb.Height / subRows
		botY := (2*r + 1) * fb.Height / subRows

		for col := area.Min.X; col < area.Max.X; col++ {
			x := (col - area.Min.X) * fb.Width / area.Dx()

			t.screen.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
