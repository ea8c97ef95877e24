package spatial

import (
	"math"
	"sort"
)

const clipEps = 1e-9

// ClipSegmentToPolygon returns the portions of segment a-b that lie inside
// the polygon, ordered from a to b. A segment entirely outside yields nil.
func ClipSegmentToPolygon(a, b Point, poly Polygon) []Polyline {
	if len(poly) == 0 {
		return nil
	}
	ts := []float64{0, 1}
	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			c := ring[i]
			d := ring[(i+1)%n]
			if t, ok := segmentParam(a, b, c, d); ok {
				ts = append(ts, t)
			}
		}
	}
	sort.Float64s(ts)

	var pieces []Polyline
	for i := 1; i < len(ts); i++ {
		t0, t1 := ts[i-1], ts[i]
		if t1-t0 < clipEps {
			continue
		}
		mid := lerp(a, b, (t0+t1)/2)
		if !poly.Contains(mid) {
			continue
		}
		p0 := lerp(a, b, t0)
		p1 := lerp(a, b, t1)
		// Extend the previous piece when contiguous.
		if n := len(pieces); n > 0 {
			last := pieces[n-1]
			if last[len(last)-1].Sub(p0).Norm() < clipEps {
				pieces[n-1] = append(last, p1)
				continue
			}
		}
		pieces = append(pieces, Polyline{p0, p1})
	}
	return pieces
}

// ClipPolylineToPolygon clips every segment of the polyline to the polygon
// interior, stitching contiguous pieces back together. The result may be
// multiple parts when the line leaves and re-enters the polygon.
func ClipPolylineToPolygon(line Polyline, poly Polygon) []Polyline {
	if len(line) < 2 {
		return nil
	}
	var parts []Polyline
	for i := 1; i < len(line); i++ {
		for _, piece := range ClipSegmentToPolygon(line[i-1], line[i], poly) {
			if n := len(parts); n > 0 {
				last := parts[n-1]
				if last[len(last)-1].Sub(piece[0]).Norm() < clipEps {
					parts[n-1] = append(last, piece[1:]...)
					continue
				}
			}
			parts = append(parts, piece)
		}
	}
	return parts
}

// LineIntersectsPolygon reports whether any part of the polyline lies
// inside or crosses the polygon. Bounding boxes are checked first.
func LineIntersectsPolygon(line Polyline, poly Polygon) bool {
	if len(line) == 0 || len(poly) == 0 {
		return false
	}
	if !line.Bounds().Intersects(poly.Bounds()) {
		return false
	}
	for _, p := range line {
		if poly.Contains(p) {
			return true
		}
	}
	return len(ClipPolylineToPolygon(line, poly)) > 0
}

// segmentParam returns the parameter t along a-b where it crosses segment
// c-d, if the segments properly intersect.
func segmentParam(a, b, c, d Point) (float64, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if math.Abs(denom) < clipEps {
		return 0, false // parallel or collinear
	}
	ca := c.Sub(a)
	t := ca.Cross(s) / denom
	u := ca.Cross(r) / denom
	if t < -clipEps || t > 1+clipEps || u < -clipEps || u > 1+clipEps {
		return 0, false
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t, true
}

func lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).Mul(t))
}

// DistanceTo returns the minimum distance from the point to the polyline.
func (l Polyline) DistanceTo(p Point) float64 {
	if len(l) == 0 {
		return math.Inf(1)
	}
	if len(l) == 1 {
		return l[0].Sub(p).Norm()
	}
	min := math.Inf(1)
	for i := 1; i < len(l); i++ {
		if d := pointSegmentDistance(p, l[i-1], l[i]); d < min {
			min = d
		}
	}
	return min
}

func pointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 == 0 {
		return p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(ab) / len2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mul(t))).Norm()
}
