package render

// Point is a position in screen space, in pixels.
type Point struct {
	X, Y float64
}

// Surface is the display the pipeline draws on. Implementations own the
// pixels; the pipeline only issues draw calls.
type Surface interface {
	Clear(c Color)
	FillPolygon(c Color, pts []Point)
	Line(c Color, p1, p2 Point)
	FillCircle(c Color, center Point, radius float64)
	Present() error
}

// Presenter shows a finished framebuffer somewhere: a terminal, a window,
// a PNG file.
type Presenter interface {
	Present(fb *Framebuffer) error
}

// Display is a Surface made of a Framebuffer and a Presenter.
type Display struct {
	*Framebuffer
	presenter Presenter
}

// NewDisplay creates a width x height display. A nil presenter makes
// Present a no-op, which is what headless rendering wants.
func NewDisplay(width, height int, p Presenter) *Display {
	return &Display{
		Framebuffer: NewFramebuffer(width, height),
		presenter:   p,
	}
}

// Present hands the composed framebuffer to the presenter.
func (d *Display) Present() error {
	if d.presenter == nil {
		return nil
	}
	return d.presenter.Present(d.Framebuffer)
}
