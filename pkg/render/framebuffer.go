// Package render turns a scene of meshes into frames: flat Phong lighting,
// painter's-order polygon fill, anti-aliased edges and node markers, drawn on
// an in-memory framebuffer and handed to a presenter.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// Framebuffer is an RGBA pixel buffer with the drawing primitives the
// pipeline needs. Polygons and circles are filled without anti-aliasing so
// neighbouring faces meet without seams; lines are anti-aliased.
type Framebuffer struct {
	Width  int
	Height int

	img    *image.RGBA
	raster *vector.Rasterizer
	mask   []uint8 // scratch coverage for polygon fills
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(0, 0),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	pix := fb.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.img.SetRGBA(x, y, c)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.img.RGBAAt(x, y)
}

// FillPolygon fills the polygon through pts. A pixel is set when about half
// of it or more is covered, so faces sharing an edge leave no gap.
func (fb *Framebuffer) FillPolygon(c Color, pts []Point) {
	if len(pts) < 3 {
		return
	}
	bb := pointBounds(pts).Intersect(fb.img.Bounds())
	if bb.Empty() {
		return
	}

	w, h := bb.Dx(), bb.Dy()
	if cap(fb.mask) < w*h {
		fb.mask = make([]uint8, w*h)
	}
	mask := &image.Alpha{Pix: fb.mask[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}

	fb.trace(pts, bb)
	fb.raster.DrawOp = draw.Src
	fb.raster.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	for y := range h {
		row := mask.Pix[y*w : (y+1)*w]
		for x, a := range row {
			if a >= 0x7f {
				fb.img.SetRGBA(bb.Min.X+x, bb.Min.Y+y, c)
			}
		}
	}
}

// Line draws an anti-aliased one pixel wide segment from p1 to p2.
func (fb *Framebuffer) Line(c Color, p1, p2 Point) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Half-width offset perpendicular to the segment.
	nx, ny := -dy/l*0.5, dx/l*0.5

	quad := []Point{
		{p1.X + nx, p1.Y + ny},
		{p2.X + nx, p2.Y + ny},
		{p2.X - nx, p2.Y - ny},
		{p1.X - nx, p1.Y - ny},
	}
	bb := pointBounds(quad).Intersect(fb.img.Bounds())
	if bb.Empty() {
		return
	}

	fb.trace(quad, bb)
	fb.raster.DrawOp = draw.Over
	fb.raster.Draw(fb.img, bb, image.NewUniform(c), image.Point{})
}

// FillCircle fills a circle of the given radius around center.
func (fb *Framebuffer) FillCircle(c Color, center Point, radius float64) {
	if radius <= 0 {
		return
	}
	segments := max(12, int(math.Ceil(2*math.Pi*radius)))
	pts := make([]Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)}
	}
	fb.FillPolygon(c, pts)
}

// trace resets the rasterizer to the size of clip and adds the closed path
// through pts, translated so that clip.Min is the origin. The rasterizer
// clips whatever falls outside.
func (fb *Framebuffer) trace(pts []Point, clip image.Rectangle) {
	fb.raster.Reset(clip.Dx(), clip.Dy())
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	fb.raster.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		fb.raster.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	fb.raster.ClosePath()
}

// pointBounds returns the smallest integer rectangle containing pts.
func pointBounds(pts []Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// Image returns the backing image. It is overwritten by the next frame.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// ToImage returns a copy of the framebuffer as a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.img.Rect)
	copy(img.Pix, fb.img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.img)
}
