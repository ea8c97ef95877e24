package spatial

import "math"

// Direction is the orientation class of a linear feature.
type Direction string

const (
	DirNS      Direction = "N_S"
	DirEW      Direction = "E_W"
	DirSWNE    Direction = "SW_NE"
	DirNWSE    Direction = "NW_SE"
	DirUnknown Direction = "Unknown"
)

// bearingWindows are checked in declaration order; the first inclusive
// match wins. N_S needs three entries because its window wraps past 0/360.
// Exact boundary bearings (22.5, 67.5, ...) fall in two adjacent windows
// and resolve to whichever is declared first; keep this order.
var bearingWindows = []struct {
	lo, hi float64
	dir    Direction
}{
	{0, 22.5, DirNS},
	{157.5, 202.5, DirNS},
	{337.5, 360, DirNS},
	{67.5, 112.5, DirEW},
	{247.5, 292.5, DirEW},
	{22.5, 67.5, DirSWNE},
	{202.5, 247.5, DirSWNE},
	{112.5, 157.5, DirNWSE},
	{292.5, 337.5, DirNWSE},
}

// ClassifyDirection maps a bearing in degrees to a direction class. Inputs
// outside [0,360] match no window and yield DirUnknown.
func ClassifyDirection(bearing float64) Direction {
	for _, w := range bearingWindows {
		if bearing >= w.lo && bearing <= w.hi {
			return w.dir
		}
	}
	return DirUnknown
}

// Perpendicular returns the direction class orthogonal to d, for the two
// cardinal classes. Diagonal and unknown classes have no perpendicular in
// this workflow and return DirUnknown.
func (d Direction) Perpendicular() Direction {
	switch d {
	case DirNS:
		return DirEW
	case DirEW:
		return DirNS
	default:
		return DirUnknown
	}
}

// Cardinal reports whether the direction is one of the two classes the
// matrix builder can orient a bearing line against.
func (d Direction) Cardinal() bool {
	return d == DirNS || d == DirEW
}

// Bearing returns the bearing of the polyline's endpoint-to-endpoint axis
// in degrees clockwise from north, normalized to [0,360).
func (l Polyline) Bearing() float64 {
	if len(l) < 2 {
		return 0
	}
	start, end := l.Endpoints()
	d := end.Sub(start)
	deg := math.Atan2(d.X, d.Y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
