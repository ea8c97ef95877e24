package spatial

import (
	"errors"
	"math"
)

// circleSegments controls how finely buffer arcs are approximated.
const circleSegments = 64

// ErrBadBuffer is returned for non-positive or inverted buffer distances.
var ErrBadBuffer = errors.New("spatial: invalid buffer distance")

// CircleBuffer returns a polygon approximating the disc of the given
// radius around the centre. Used to materialize circular sampling plots.
func CircleBuffer(center Point, radius float64) (Polygon, error) {
	if radius <= 0 {
		return nil, ErrBadBuffer
	}
	ring := make(Ring, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		})
	}
	return Polygon{ring}, nil
}

// OffsetRing returns the ring offset outward by the given distance: the
// boundary of the Minkowski sum of the ring's polygon with a disc. Vertex
// joins are rounded with arcs. The ring must be convex; concave pads are
// digitized as their convex outline before ring buffering.
func OffsetRing(r Ring, distance float64) (Ring, error) {
	if distance <= 0 {
		return nil, ErrBadBuffer
	}
	if len(r) < 3 {
		return nil, ErrZeroLength
	}
	src := r.ccw()
	// Zero-length edges have no normal; drop repeated vertices.
	dedup := make(Ring, 0, len(src))
	for i, p := range src {
		if i > 0 && p == dedup[len(dedup)-1] {
			continue
		}
		dedup = append(dedup, p)
	}
	if len(dedup) > 1 && dedup[0] == dedup[len(dedup)-1] {
		dedup = dedup[:len(dedup)-1]
	}
	src = dedup
	if len(src) < 3 {
		return nil, ErrZeroLength
	}
	n := len(src)
	var out Ring
	for i := 0; i < n; i++ {
		prev := src[(i-1+n)%n]
		cur := src[i]
		next := src[(i+1)%n]

		nPrev := outwardNormal(prev, cur)
		nNext := outwardNormal(cur, next)

		// Start of the join arc at this vertex.
		out = append(out, cur.Add(nPrev.Mul(distance)))

		// Sweep the arc between the two edge normals.
		a0 := math.Atan2(nPrev.Y, nPrev.X)
		a1 := math.Atan2(nNext.Y, nNext.X)
		sweep := math.Mod(a1-a0+4*math.Pi, 2*math.Pi)
		if sweep > 0 && sweep < math.Pi {
			steps := int(math.Ceil(sweep / (2 * math.Pi / circleSegments)))
			for s := 1; s < steps; s++ {
				theta := a0 + sweep*float64(s)/float64(steps)
				out = append(out, Point{
					X: cur.X + distance*math.Cos(theta),
					Y: cur.Y + distance*math.Sin(theta),
				})
			}
		}

		out = append(out, cur.Add(nNext.Mul(distance)))
	}
	return out, nil
}

// RingBuffer builds the annulus between two outward offsets of the pad
// boundary: the outer offset becomes the exterior ring and the inner offset
// becomes a hole, which is the erase of the smaller buffer from the larger.
// The result is a fixed-width ring at inner..outer distance from the pad
// edge.
func RingBuffer(pad Ring, inner, outer float64) (Polygon, error) {
	if inner <= 0 || outer <= inner {
		return nil, ErrBadBuffer
	}
	outerRing, err := OffsetRing(pad, outer)
	if err != nil {
		return nil, err
	}
	innerRing, err := OffsetRing(pad, inner)
	if err != nil {
		return nil, err
	}
	// Holes are wound opposite to the exterior.
	hole := make(Ring, len(innerRing))
	for i, p := range innerRing {
		hole[len(innerRing)-1-i] = p
	}
	return Polygon{outerRing, hole}, nil
}

// outwardNormal is the unit normal pointing out of a counterclockwise ring
// for the edge a-b.
func outwardNormal(a, b Point) Point {
	d := b.Sub(a)
	n := Point{X: d.Y, Y: -d.X}
	norm := n.Norm()
	if norm == 0 {
		return Point{}
	}
	return n.Mul(1 / norm)
}
