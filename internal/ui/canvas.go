package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"MaskBoard/internal/control"
	"MaskBoard/internal/paint"
	"MaskBoard/internal/state"
)

// MaskCanvas is the stage: it shows the background and the mask and turns
// taps into click actions. It is a control.Surface, so the session pushes
// every mask change into it.
type MaskCanvas struct {
	widget.BaseWidget

	overlay *paint.Overlay
	pending []state.Polygon
	shapes  []state.Polygon

	background image.Image
	bgAt       image.Rectangle

	OnAction func(control.Action)
	OnResize func(w, h int)
}

var _ fyne.Widget = (*MaskCanvas)(nil)
var _ fyne.Tappable = (*MaskCanvas)(nil)
var _ control.Surface = (*MaskCanvas)(nil)
var _ control.Backdrop = (*MaskCanvas)(nil)

func NewMaskCanvas(strokeWidth float64) *MaskCanvas {
	c := &MaskCanvas{overlay: paint.NewOverlay(strokeWidth)}
	c.ExtendBaseWidget(c)
	return c
}

func (c *MaskCanvas) Clear()                   { c.pending = c.pending[:0] }
func (c *MaskCanvas) AddShape(p state.Polygon) { c.pending = append(c.pending, p) }

func (c *MaskCanvas) Draw() {
	c.shapes = append(c.shapes[:0], c.pending...)
	c.Refresh()
}

func (c *MaskCanvas) SetBackground(img image.Image, at image.Rectangle) {
	c.background, c.bgAt = img, at
	c.Refresh()
}

func (c *MaskCanvas) Tapped(ev *fyne.PointEvent) {
	if c.OnAction != nil {
		c.OnAction(control.Click(float64(ev.Position.X), float64(ev.Position.Y)))
	}
}

func (c *MaskCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &maskCanvasRenderer{
		board:      c,
		background: canvas.NewRectangle(color.White),
		image:      canvas.NewImageFromImage(nil),
		mask:       canvas.NewImageFromImage(nil),
	}
	r.image.FillMode = canvas.ImageFillStretch
	r.mask.FillMode = canvas.ImageFillStretch
	r.mask.ScaleMode = canvas.ImageScalePixels
	return r
}

type maskCanvasRenderer struct {
	board      *MaskCanvas
	background *canvas.Rectangle
	image      *canvas.Image
	mask       *canvas.Image
	size       fyne.Size
}

func (r *maskCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image, r.mask}
}

func (r *maskCanvasRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.mask.Resize(size)
	if size != r.size {
		r.size = size
		if r.board.OnResize != nil {
			r.board.OnResize(int(size.Width), int(size.Height))
		}
		r.Refresh()
		return
	}
	r.placeImage()
}

func (r *maskCanvasRenderer) placeImage() {
	b := r.board
	if b.background == nil {
		r.image.Image = nil
		r.image.Hide()
		return
	}
	r.image.Image = b.background
	r.image.Move(fyne.NewPos(float32(b.bgAt.Min.X), float32(b.bgAt.Min.Y)))
	r.image.Resize(fyne.NewSize(float32(b.bgAt.Dx()), float32(b.bgAt.Dy())))
	r.image.Show()
}

func (r *maskCanvasRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *maskCanvasRenderer) Refresh() {
	r.placeImage()
	r.mask.Image = r.board.overlay.Render(r.board.shapes, int(r.size.Width), int(r.size.Height))
	canvas.Refresh(r.image)
	canvas.Refresh(r.mask)
}

func (r *maskCanvasRenderer) Destroy() {}
