package state

import (
	"slices"

	"MaskBoard/internal/geom"
)

// Style holds the display attributes stamped onto new polygons. The editor
// never interprets them; they are carried through to the exports.
type Style struct {
	Stroke string `toml:"stroke"`
	Fill   string `toml:"fill"`
}

// DefaultStyle matches the colours the mask tool has always used.
var DefaultStyle = Style{
	Stroke: "blue",
	Fill:   "rgba(0, 0, 255, 0.3)",
}

// Polygon is a mask shape. Closed polygons are finalized and never change;
// the single open polygon is the one being drawn.
type Polygon struct {
	ID     string
	Points []geom.Point
	Closed bool
	Stroke string
	Fill   string
}

// Clone returns a deep copy so callers never alias store-owned vertices.
func (p Polygon) Clone() Polygon {
	p.Points = slices.Clone(p.Points)
	return p
}

// Contains reports whether pt is inside the polygon (even-odd rule).
func (p Polygon) Contains(pt geom.Point) bool {
	return geom.PointInPolygon(pt, p.Points)
}

// Vertices returns the vertex lists of polys, for the rasterizer.
func Vertices(polys []Polygon) [][]geom.Point {
	out := make([][]geom.Point, 0, len(polys))
	for _, p := range polys {
		out = append(out, p.Points)
	}
	return out
}
