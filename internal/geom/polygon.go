// Package geom holds the pure geometry used by the mask editor: containment
// tests, polygon measurements and the binary rasterizer.
package geom

import "math"

// Point is a position in stage coordinates.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// PointInPolygon reports whether p lies inside poly using the even-odd rule.
// A horizontal ray is cast from p towards +x and every edge it crosses
// toggles the result, including the closing edge from the last vertex back
// to the first.
//
// Points lying exactly on an edge or vertex have no defined classification;
// callers must not rely on either answer for them.
func PointInPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		if crosses(p, poly[i], poly[j]) {
			inside = !inside
		}
	}
	return inside
}

// crosses reports whether the ray from p towards +x crosses edge a-b.
func crosses(p, a, b Point) bool {
	if a.Y == b.Y {
		return false
	}
	if (a.Y > p.Y) == (b.Y > p.Y) {
		return false
	}
	return p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X
}

// Area returns the signed area of poly (positive when the vertices run
// counter-clockwise in a y-up frame).
func Area(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		sum += poly[j].X*poly[i].Y - poly[i].X*poly[j].Y
	}
	return sum / 2
}

// Valid reports whether poly can enclose anything: at least three vertices
// and a non-zero area.
func Valid(poly []Point) bool {
	return len(poly) >= 3 && Area(poly) != 0
}

// Centroid returns the area centroid of poly. For degenerate input it falls
// back to the vertex average.
func Centroid(poly []Point) Point {
	if len(poly) == 0 {
		return Point{}
	}
	a := Area(poly)
	if a == 0 {
		var c Point
		for _, p := range poly {
			c.X += p.X
			c.Y += p.Y
		}
		n := float64(len(poly))
		return Point{X: c.X / n, Y: c.Y / n}
	}
	var cx, cy float64
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		f := poly[j].X*poly[i].Y - poly[i].X*poly[j].Y
		cx += (poly[j].X + poly[i].X) * f
		cy += (poly[j].Y + poly[i].Y) * f
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Bounds returns the axis aligned bounding box of poly.
func Bounds(poly []Point) (lo, hi Point) {
	if len(poly) == 0 {
		return Point{}, Point{}
	}
	lo = Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range poly {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
