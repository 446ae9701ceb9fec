package geom

import (
	"image"
	"math"
	"slices"
)

// Bitmap is a width x height grid of filled/background cells in row-major
// order. Rasterize is the only writer; treat a returned Bitmap as read-only.
type Bitmap struct {
	Width  int
	Height int
	bits   []bool
}

func newBitmap(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Bitmap{Width: w, Height: h, bits: make([]bool, w*h)}
}

// Filled reports whether the cell at (x, y) is set. Out of range cells are
// background.
func (b *Bitmap) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.bits[y*b.Width+x]
}

// Count returns the number of filled cells.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.bits {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether two bitmaps have the same size and content.
func (b *Bitmap) Equal(o *Bitmap) bool {
	return b.Width == o.Width && b.Height == o.Height && slices.Equal(b.bits, o.bits)
}

// Gray converts the bitmap to a two-tone image: white background, black fill.
func (b *Bitmap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for i, v := range b.bits {
		if v {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
	return img
}

// Rasterize scan-converts the interiors of polys into a w x h bitmap.
//
// A cell is filled when its centre lies inside a polygon under the same
// crossing rule PointInPolygon uses. Polygons with fewer than three vertices
// are skipped. Every polygon sets cells unconditionally, so overlaps stay
// filled rather than cancelling out.
func Rasterize(polys [][]Point, w, h int) *Bitmap {
	bm := newBitmap(w, h)
	if bm.Width == 0 || bm.Height == 0 {
		return bm
	}

	var xs []float64
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		lo, hi := Bounds(poly)
		y0 := clamp(math.Floor(lo.Y-0.5), bm.Height)
		y1 := clamp(math.Ceil(hi.Y+0.5), bm.Height)
		for y := y0; y < y1; y++ {
			cy := float64(y) + 0.5
			xs = xs[:0]
			for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
				a, b := poly[i], poly[j]
				if a.Y == b.Y || (a.Y > cy) == (b.Y > cy) {
					continue
				}
				xs = append(xs, (b.X-a.X)*(cy-a.Y)/(b.Y-a.Y)+a.X)
			}
			slices.Sort(xs)
			row := bm.bits[y*bm.Width : (y+1)*bm.Width]
			for k := 0; k+1 < len(xs); k += 2 {
				// centre cx is inside when xs[k] <= cx < xs[k+1]
				from := clamp(math.Ceil(xs[k]-0.5), bm.Width)
				to := clamp(math.Ceil(xs[k+1]-0.5), bm.Width)
				for x := from; x < to; x++ {
					row[x] = true
				}
			}
		}
	}
	return bm
}

// clamp limits v to [0, hi] before the int conversion.
func clamp(v float64, hi int) int {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= float64(hi):
		return hi
	}
	return int(v)
}
