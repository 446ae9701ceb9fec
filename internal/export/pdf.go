package export

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/jung-kurt/gofpdf"

	"MaskBoard/internal/paint"
	"MaskBoard/internal/state"
)

// ToPDF draws the closed polygons onto a single page the size of the stage,
// one point per stage pixel. Polygons with fewer than three vertices are
// skipped, as in the raster export.
func ToPDF(polys []state.Polygon, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	shapes := Shapes(polys)
	if len(shapes) == 0 {
		return nil, ErrNothingToExport
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineWidth(1)

	for _, s := range shapes {
		if len(s.Points) < 6 {
			continue
		}
		pts := make([]gofpdf.PointType, 0, len(s.Points)/2)
		for k := 0; k < len(s.Points); k += 2 {
			pts = append(pts, gofpdf.PointType{X: s.Points[k], Y: s.Points[k+1]})
		}

		fill := paint.MustParseColor(s.Fill, color.NRGBA{})
		stroke := paint.MustParseColor(s.Color, color.NRGBA{A: 255})

		if fill.A > 0 {
			p.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			p.SetAlpha(float64(fill.A)/255, "Normal")
			p.Polygon(pts, "F")
		}
		p.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
		p.SetAlpha(float64(stroke.A)/255, "Normal")
		p.Polygon(pts, "D")
	}
	p.SetAlpha(1, "Normal")

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
