// Package geo implements the small amount of planar geometry the region
// resolver needs: point-in-polygon tests, polygon intersection predicates
// and the NZTM2000 projection used by network supply point coordinates.
package geo

import "math"

// Point is a 2D coordinate. For geographic data X is longitude and Y is
// latitude, both in degrees.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is a closed sequence of vertices. The closing edge from the last
// vertex back to the first is implicit.
type Ring []Point

// Polygon is a shell ring with optional hole rings.
type Polygon struct {
	Shell Ring
	Holes []Ring
}

// MultiPolygon groups disjoint polygons belonging to one feature.
type MultiPolygon []Polygon

// Feature is a named geometry, e.g. one territorial authority or one grid
// zone. Name carries the code/name attribute relevant to the collection.
type Feature struct {
	Name     string
	Geometry MultiPolygon
}

// Collection is an ordered set of features. Order matters: spatial joins
// visit features in collection order.
type Collection struct {
	Features []Feature
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies within the box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects reports whether two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Bounds returns the bounding box of the ring. Empty rings return an
// inverted box that contains nothing.
func (r Ring) Bounds() BBox {
	b := BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range r {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Bounds returns the bounding box of the whole geometry.
func (mp MultiPolygon) Bounds() BBox {
	b := BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, poly := range mp {
		sb := poly.Shell.Bounds()
		b.MinX = math.Min(b.MinX, sb.MinX)
		b.MinY = math.Min(b.MinY, sb.MinY)
		b.MaxX = math.Max(b.MaxX, sb.MaxX)
		b.MaxY = math.Max(b.MaxY, sb.MaxY)
	}
	return b
}

// SignedArea returns the signed area of the ring using the shoelace
// formula. Positive for counterclockwise winding.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r[i].X * r[j].Y
		area -= r[j].X * r[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the ring.
func (r Ring) Area() float64 { return math.Abs(r.SignedArea()) }
