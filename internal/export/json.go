// Package export turns the finalized mask into downloadable artifacts: the
// vector JSON document, a binary raster image and a vector PDF.
package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"MaskBoard/internal/geom"
	"MaskBoard/internal/state"
)

// ErrNothingToExport is returned by the vector exports when the mask has no
// finalized polygons. No artifact is produced in that case.
var ErrNothingToExport = errors.New("nothing to export")

// Shape is one polygon in the vector document. Points holds the vertices
// flattened as x0, y0, x1, y1, ...
type Shape struct {
	Points []float64 `json:"points"`
	Color  string    `json:"color"`
	Fill   string    `json:"fill"`
}

// Shapes converts closed polygons to their document form, keeping order.
// Open polygons are left out.
func Shapes(polys []state.Polygon) []Shape {
	out := make([]Shape, 0, len(polys))
	for _, p := range polys {
		if !p.Closed {
			continue
		}
		out = append(out, ShapeOf(p))
	}
	return out
}

// ShapeOf flattens a single polygon regardless of its state.
func ShapeOf(p state.Polygon) Shape {
	flat := make([]float64, 0, 2*len(p.Points))
	for _, pt := range p.Points {
		flat = append(flat, pt.X, pt.Y)
	}
	return Shape{Points: flat, Color: p.Stroke, Fill: p.Fill}
}

// ToJSON encodes the finalized polygons as an indented JSON array.
func ToJSON(polys []state.Polygon) ([]byte, error) {
	shapes := Shapes(polys)
	if len(shapes) == 0 {
		return nil, ErrNothingToExport
	}
	data, err := json.MarshalIndent(shapes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal mask: %w", err)
	}
	return data, nil
}

// ParseJSON reads a document written by ToJSON back into closed polygons.
func ParseJSON(data []byte) ([]state.Polygon, error) {
	var shapes []Shape
	if err := json.Unmarshal(data, &shapes); err != nil {
		return nil, fmt.Errorf("parse mask: %w", err)
	}
	polys := make([]state.Polygon, 0, len(shapes))
	for i, s := range shapes {
		if len(s.Points)%2 != 0 {
			return nil, fmt.Errorf("parse mask: shape %d has an odd number of coordinates (%d)", i, len(s.Points))
		}
		pts := make([]geom.Point, 0, len(s.Points)/2)
		for k := 0; k < len(s.Points); k += 2 {
			pts = append(pts, geom.Pt(s.Points[k], s.Points[k+1]))
		}
		polys = append(polys, state.Polygon{
			Points: pts,
			Closed: true,
			Stroke: s.Color,
			Fill:   s.Fill,
		})
	}
	return polys, nil
}
