package matrix

import (
	"fmt"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// AddUniqueIDs assigns a sequential Uni_ID to every feature, starting at 1,
// so derived geometries stay linkable to their parent pad.
func AddUniqueIDs(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(fc.GeomType)
	for i, f := range fc.Features {
		c := f.Clone()
		c.SetAttr(models.FieldUniID, i+1)
		out.Add(c)
	}
	return out
}

// PadCrossLines constructs the two full-length perpendicular lines (E-W
// and N-S) through each pad anchor point. Pads sit in arbitrary
// orientations, so both cardinal lines are produced and no footprint clip
// is needed. Both lines carry the anchor's Id.
func (b *Builder) PadCrossLines(points *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomLine)
	length := b.BearingLength
	id := 0
	for _, f := range points.Features {
		id++
		p := f.Point
		ew := f.Clone()
		ew.Point = spatial.Point{}
		ew.Line = spatial.Polyline{{X: p.X - length, Y: p.Y}, {X: p.X + length, Y: p.Y}}
		ew.SetAttr(models.FieldID, id)
		out.Add(ew)

		ns := f.Clone()
		ns.Point = spatial.Point{}
		ns.Line = spatial.Polyline{{X: p.X, Y: p.Y - length}, {X: p.X, Y: p.Y + length}}
		ns.SetAttr(models.FieldID, id)
		out.Add(ns)
	}
	return out
}

// PadRings builds the disturbance-adjacent sampling annulus around every
// pad: the pad boundary buffered outward to the inner and outer distances,
// with the smaller buffer erased from the larger. The result is a
// fixed-width ring independent of the point-based matrix plots.
func PadRings(pads *models.FeatureCollection, inner, outer float64) (*models.FeatureCollection, error) {
	out := models.NewFeatureCollection(models.GeomPolygon)
	for _, f := range pads.Features {
		if len(f.Polygon) == 0 {
			continue
		}
		ring, err := spatial.RingBuffer(f.Polygon[0], inner, outer)
		if err != nil {
			return nil, fmt.Errorf("matrix: ring buffer for Uni_ID=%d: %w", f.AttrInt(models.FieldUniID), err)
		}
		c := f.Clone()
		c.Polygon = ring
		out.Add(c)
	}
	return out, nil
}
