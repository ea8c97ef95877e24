// Package spatial provides the planar geometry operations the sampling
// pipelines depend on: bearing and length measurement, positioning along
// lines, clipping, buffering and containment tests. All coordinates are
// projected planar units (UTM metres); nothing here is geodesic.
package spatial

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
)

// Point is a planar coordinate pair.
type Point = r2.Point

// Polyline is an ordered vertex chain with at least two vertices.
type Polyline []Point

// Ring is a closed vertex loop; the closing edge from the last vertex back
// to the first is implicit.
type Ring []Point

// Polygon is an exterior ring followed by zero or more hole rings.
type Polygon []Ring

// ErrZeroLength is returned by operations that cannot work on degenerate
// lines, such as computing an extension angle.
var ErrZeroLength = errors.New("spatial: zero-length line")

// Length returns the total planar length of the polyline.
func (l Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(l); i++ {
		total += l[i].Sub(l[i-1]).Norm()
	}
	return total
}

// PointAlong returns the point at the given fraction [0,1] of the
// polyline's length. A zero-length or single-vertex line yields its first
// vertex, so degenerate lines still accept a position-0 sample.
func (l Polyline) PointAlong(frac float64) Point {
	if len(l) == 0 {
		return Point{}
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	total := l.Length()
	if total == 0 || len(l) == 1 {
		return l[0]
	}
	target := frac * total
	var walked float64
	for i := 1; i < len(l); i++ {
		seg := l[i].Sub(l[i-1])
		segLen := seg.Norm()
		if walked+segLen >= target {
			if segLen == 0 {
				continue
			}
			t := (target - walked) / segLen
			return l[i-1].Add(seg.Mul(t))
		}
		walked += segLen
	}
	return l[len(l)-1]
}

// Endpoints returns the first and last vertices of the polyline.
func (l Polyline) Endpoints() (Point, Point) {
	return l[0], l[len(l)-1]
}

// Midpoint returns the point halfway along the polyline's length.
func (l Polyline) Midpoint() Point {
	return l.PointAlong(0.5)
}

// Extend lengthens the line outward from both endpoints along the angle of
// the endpoint-to-endpoint axis, producing a three-vertex polyline of
// (extended start, original end, extended end). The total length grows by
// exactly twice the extension distance.
func (l Polyline) Extend(distance float64) (Polyline, error) {
	if len(l) < 2 {
		return nil, ErrZeroLength
	}
	start, end := l.Endpoints()
	axis := end.Sub(start)
	if axis.Norm() == 0 {
		return nil, ErrZeroLength
	}
	angle := math.Atan2(axis.Y, axis.X)
	dir := Point{X: math.Cos(angle), Y: math.Sin(angle)}
	extStart := start.Sub(dir.Mul(distance))
	extEnd := end.Add(dir.Mul(distance))
	return Polyline{extStart, end, extEnd}, nil
}

// Bounds returns the axis-aligned bounding rectangle of the polyline.
func (l Polyline) Bounds() r2.Rect {
	return boundsOf(l)
}

// signedArea is the shoelace sum of the ring: positive for counterclockwise
// winding.
func (r Ring) signedArea() float64 {
	var sum float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Area returns the absolute area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.signedArea())
}

// Centroid returns the area centroid of the ring.
func (r Ring) Centroid() Point {
	a := r.signedArea()
	if a == 0 {
		// Degenerate ring: fall back to the vertex mean.
		var sum Point
		for _, p := range r {
			sum = sum.Add(p)
		}
		return sum.Mul(1 / float64(len(r)))
	}
	var cx, cy float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r[i].X*r[j].Y - r[j].X*r[i].Y
		cx += (r[i].X + r[j].X) * cross
		cy += (r[i].Y + r[j].Y) * cross
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// ccw returns the ring wound counterclockwise.
func (r Ring) ccw() Ring {
	if r.signedArea() >= 0 {
		return r
	}
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Area returns the polygon area: exterior minus holes.
func (p Polygon) Area() float64 {
	if len(p) == 0 {
		return 0
	}
	a := p[0].Area()
	for _, hole := range p[1:] {
		a -= hole.Area()
	}
	return a
}

// Centroid returns the planar centroid of the polygon's exterior ring.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	return p[0].Centroid()
}

// Contains reports whether the point lies inside the exterior ring and
// outside every hole. Ray casting, boundary points are indeterminate.
func (p Polygon) Contains(pt Point) bool {
	if len(p) == 0 || !p[0].contains(pt) {
		return false
	}
	for _, hole := range p[1:] {
		if hole.contains(pt) {
			return false
		}
	}
	return true
}

// contains is the even-odd ray cast over one ring.
func (r Ring) contains(pt Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i].X, r[i].Y
		xj, yj := r[j].X, r[j].Y
		if (yi > pt.Y) != (yj > pt.Y) &&
			pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding rectangle of the polygon's
// exterior ring.
func (p Polygon) Bounds() r2.Rect {
	if len(p) == 0 {
		return r2.EmptyRect()
	}
	return boundsOf(p[0])
}

func boundsOf(pts []Point) r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range pts {
		rect = rect.AddPoint(p)
	}
	return rect
}
