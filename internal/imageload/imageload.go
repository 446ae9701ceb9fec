// Package imageload decodes the background image and works out where it
// sits on the stage. The mask never looks at the pixels; only the size and
// placement matter to it.
package imageload

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"MaskBoard/internal/logging"
)

// ErrImageDecode is returned when the selected file is not a readable image.
var ErrImageDecode = errors.New("image could not be decoded")

// Image is a decoded background.
type Image struct {
	Image  image.Image
	Format string
}

func (i *Image) Width() int  { return i.Image.Bounds().Dx() }
func (i *Image) Height() int { return i.Image.Bounds().Dy() }

// Decode reads an image in any registered format.
func Decode(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}
	logging.Debugf("[IMAGE] Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return &Image{Image: img, Format: format}, nil
}

// Placement is where a background lands on the stage, in stage pixels.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Scale         float64
}

// Rect rounds the placement to whole pixels.
func (p Placement) Rect() image.Rectangle {
	x0, y0 := int(math.Round(p.X)), int(math.Round(p.Y))
	return image.Rect(x0, y0, x0+int(math.Round(p.Width)), y0+int(math.Round(p.Height)))
}

// Fit scales an image uniformly so it fits inside the stage and centres it.
func Fit(stageW, stageH, imgW, imgH int) Placement {
	if stageW <= 0 || stageH <= 0 || imgW <= 0 || imgH <= 0 {
		return Placement{}
	}
	scale := math.Min(float64(stageW)/float64(imgW), float64(stageH)/float64(imgH))
	w, h := float64(imgW)*scale, float64(imgH)*scale
	return Placement{
		X:      (float64(stageW) - w) / 2,
		Y:      (float64(stageH) - h) / 2,
		Width:  w,
		Height: h,
		Scale:  scale,
	}
}

// Scale resamples img to the placement size for display.
func Scale(img image.Image, p Placement) *image.RGBA {
	r := p.Rect()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if r.Empty() {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
