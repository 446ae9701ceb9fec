package paint

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"MaskBoard/internal/geom"
	"MaskBoard/internal/state"
)

// Overlay draws polygons on a transparent canvas.
type Overlay struct {
	StrokeWidth float64
	HandleSize  float64

	ras *vector.Rasterizer // reused between frames
}

func NewOverlay(strokeWidth float64) *Overlay {
	if strokeWidth <= 0 {
		strokeWidth = 2
	}
	return &Overlay{
		StrokeWidth: strokeWidth,
		HandleSize:  4,
		ras:         vector.NewRasterizer(0, 0),
	}
}

// Render returns a w x h image with every polygon painted in order: closed
// polygons are filled and outlined, open ones get an outline without the
// closing edge plus a handle on each vertex.
//
// Fills use the vector rasterizer's non-zero accumulation, which only
// differs from the mask's even-odd rule on self-intersecting shapes.
func (o *Overlay) Render(polys []state.Polygon, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if w <= 0 || h <= 0 {
		return dst
	}
	for _, p := range polys {
		stroke := MustParseColor(p.Stroke, named["blue"])
		if p.Closed && len(p.Points) >= 3 {
			o.fill(dst, p.Points, MustParseColor(p.Fill, color.NRGBA{}))
		}
		o.outline(dst, p.Points, p.Closed, stroke)
		if !p.Closed {
			for _, pt := range p.Points {
				o.handle(dst, pt, stroke)
			}
		}
	}
	return dst
}

func (o *Overlay) fill(dst *image.RGBA, pts []geom.Point, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	b := dst.Bounds()
	o.ras.Reset(b.Dx(), b.Dy())
	o.ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		o.ras.LineTo(float32(p.X), float32(p.Y))
	}
	o.ras.ClosePath()
	o.ras.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func (o *Overlay) outline(dst *image.RGBA, pts []geom.Point, closed bool, c color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		o.segment(dst, pts[i-1], pts[i], c)
	}
	if closed && len(pts) > 2 {
		o.segment(dst, pts[len(pts)-1], pts[0], c)
	}
}

// segment paints a-b as a quad StrokeWidth wide.
func (o *Overlay) segment(dst *image.RGBA, a, b geom.Point, c color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*o.StrokeWidth/2, dx/l*o.StrokeWidth/2
	o.quad(dst, c,
		geom.Pt(a.X+nx, a.Y+ny), geom.Pt(b.X+nx, b.Y+ny),
		geom.Pt(b.X-nx, b.Y-ny), geom.Pt(a.X-nx, a.Y-ny))
}

func (o *Overlay) handle(dst *image.RGBA, p geom.Point, c color.NRGBA) {
	r := o.HandleSize / 2
	o.quad(dst, c,
		geom.Pt(p.X-r, p.Y-r), geom.Pt(p.X+r, p.Y-r),
		geom.Pt(p.X+r, p.Y+r), geom.Pt(p.X-r, p.Y+r))
}

func (o *Overlay) quad(dst *image.RGBA, c color.NRGBA, p0, p1, p2, p3 geom.Point) {
	b := dst.Bounds()
	o.ras.Reset(b.Dx(), b.Dy())
	o.ras.MoveTo(float32(p0.X), float32(p0.Y))
	o.ras.LineTo(float32(p1.X), float32(p1.Y))
	o.ras.LineTo(float32(p2.X), float32(p2.Y))
	o.ras.LineTo(float32(p3.X), float32(p3.Y))
	o.ras.ClosePath()
	o.ras.Draw(dst, b, image.NewUniform(c), image.Point{})
}
