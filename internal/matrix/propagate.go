package matrix

import (
	"errors"
	"log"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// ErrNoIntersection is returned when the intersect step of an attribute
// transfer produces zero rows, short-circuiting before the join.
var ErrNoIntersection = errors.New("matrix: intersection produced no features")

// joinTolerance is the containment slack for point-on-line and
// point-on-point matches during attribute joins.
const joinTolerance = 1e-6

// TransferAttributes re-associates the attributes of the richer source
// layer with every feature of the target layer: a spatial intersect
// establishes correspondence, then a one-to-one join copies every source
// attribute onto the first matching target feature. Target features with
// no match are dropped (join keeps common records only). Existing target
// attributes are never overwritten.
func TransferAttributes(source, target *models.FeatureCollection) (*models.FeatureCollection, error) {
	matched := 0
	out := models.NewFeatureCollection(target.GeomType)
	for _, t := range target.Features {
		var hit *models.Feature
		for _, s := range source.Features {
			if featuresIntersect(s, source.GeomType, t, target.GeomType) {
				hit = s
				break
			}
		}
		if hit == nil {
			continue
		}
		matched++
		c := t.Clone()
		for k, v := range hit.Attrs {
			if _, exists := c.Attrs[k]; !exists {
				c.Attrs[k] = v
			}
		}
		out.Add(c)
	}
	if matched == 0 {
		log.Printf("No features found in the intersection output")
		return nil, ErrNoIntersection
	}
	return out, nil
}

// featuresIntersect tests spatial correspondence across the geometry-type
// combinations the propagation steps produce.
func featuresIntersect(a *models.Feature, aType models.GeomType, b *models.Feature, bType models.GeomType) bool {
	switch {
	case aType == models.GeomPoint && bType == models.GeomPoint:
		return a.Point.Sub(b.Point).Norm() <= joinTolerance
	case aType == models.GeomPoint && bType == models.GeomLine:
		return b.Line.DistanceTo(a.Point) <= joinTolerance
	case aType == models.GeomLine && bType == models.GeomPoint:
		return a.Line.DistanceTo(b.Point) <= joinTolerance
	case aType == models.GeomPoint && bType == models.GeomPolygon:
		return b.Polygon.Contains(a.Point)
	case aType == models.GeomPolygon && bType == models.GeomPoint:
		return a.Polygon.Contains(b.Point)
	case aType == models.GeomLine && bType == models.GeomPolygon:
		return spatial.LineIntersectsPolygon(a.Line, b.Polygon)
	case aType == models.GeomPolygon && bType == models.GeomLine:
		return spatial.LineIntersectsPolygon(b.Line, a.Polygon)
	case aType == models.GeomLine && bType == models.GeomLine:
		return polylinesTouch(a.Line, b.Line)
	case aType == models.GeomPolygon && bType == models.GeomPolygon:
		return a.Polygon.Contains(b.Polygon.Centroid()) || b.Polygon.Contains(a.Polygon.Centroid())
	default:
		return false
	}
}

func polylinesTouch(a, b spatial.Polyline) bool {
	if !a.Bounds().Intersects(b.Bounds()) {
		return false
	}
	for _, p := range a {
		if b.DistanceTo(p) <= joinTolerance {
			return true
		}
	}
	for _, p := range b {
		if a.DistanceTo(p) <= joinTolerance {
			return true
		}
	}
	return false
}
