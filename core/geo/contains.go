package geo

// ContainsPoint reports whether p lies inside the ring, using the even-odd
// ray casting rule. Points exactly on an edge may fall on either side; the
// data this package is used with never puts meaningful points on borders.
func (r Ring) ContainsPoint(p Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := r[i], r[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsPoint reports whether p lies inside the polygon shell and outside
// all holes.
func (py Polygon) ContainsPoint(p Point) bool {
	if !py.Shell.ContainsPoint(p) {
		return false
	}
	for _, h := range py.Holes {
		if h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside any member polygon.
func (mp MultiPolygon) ContainsPoint(p Point) bool {
	for _, py := range mp {
		if py.ContainsPoint(p) {
			return true
		}
	}
	return false
}

func segmentsCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Intersects reports whether the two geometries share any area or boundary:
// a vertex of one inside the other, or any pair of crossing edges.
func (mp MultiPolygon) Intersects(o MultiPolygon) bool {
	if !mp.Bounds().Intersects(o.Bounds()) {
		return false
	}
	for _, a := range mp {
		for _, v := range a.Shell {
			if o.ContainsPoint(v) {
				return true
			}
		}
	}
	for _, b := range o {
		for _, v := range b.Shell {
			if mp.ContainsPoint(v) {
				return true
			}
		}
	}
	for _, a := range mp {
		for _, b := range o {
			if shellsCross(a.Shell, b.Shell) {
				return true
			}
		}
	}
	return false
}

func shellsCross(a, b Ring) bool {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if segmentsCross(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return false
}

// OverlapSamples estimates how much of mp lies inside o by testing a fixed
// grid of sample points over mp's bounding box. The count is deterministic
// for identical inputs and is used to break spatial join ties.
func (mp MultiPolygon) OverlapSamples(o MultiPolygon, gridSize int) int {
	if gridSize < 2 {
		gridSize = 2
	}
	b := mp.Bounds()
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return 0
	}
	count := 0
	stepX := (b.MaxX - b.MinX) / float64(gridSize-1)
	stepY := (b.MaxY - b.MinY) / float64(gridSize-1)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			p := Point{X: b.MinX + float64(i)*stepX, Y: b.MinY + float64(j)*stepY}
			if mp.ContainsPoint(p) && o.ContainsPoint(p) {
				count++
			}
		}
	}
	return count
}

// Repair normalises a geometry the way buffer(0) cleans invalid polygons in
// GIS tooling: duplicate consecutive vertices are dropped, explicit closing
// vertices removed and rings with fewer than 3 distinct vertices discarded.
func (mp MultiPolygon) Repair() MultiPolygon {
	var out MultiPolygon
	for _, py := range mp {
		shell := repairRing(py.Shell)
		if len(shell) < 3 {
			continue
		}
		rp := Polygon{Shell: shell}
		for _, h := range py.Holes {
			if hr := repairRing(h); len(hr) >= 3 {
				rp.Holes = append(rp.Holes, hr)
			}
		}
		out = append(out, rp)
	}
	return out
}

func repairRing(r Ring) Ring {
	if len(r) == 0 {
		return nil
	}
	var out Ring
	for _, p := range r {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	// drop an explicit closing vertex, the closing edge is implicit
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
