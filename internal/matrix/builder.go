// Package matrix derives the fixed-geometry sampling plots from sampled
// anchor features: perpendicular bearing lines through footprint centroids,
// extensions into the adjacent matrix, plot centre points at line ends, and
// the circular plots themselves. A parallel path handles well pads.
package matrix

import (
	"fmt"
	"log"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// Builder holds the fixed plot-geometry distances from configuration.
type Builder struct {
	BearingLength   float64 // overshoot of the perpendicular bearing line
	ExtensionLength float64 // outward extension past the footprint edge
	PlotRadius      float64 // circular plot radius
}

// NewBuilder creates a builder with the given distances.
func NewBuilder(bearingLength, extensionLength, plotRadius float64) *Builder {
	return &Builder{
		BearingLength:   bearingLength,
		ExtensionLength: extensionLength,
		PlotRadius:      plotRadius,
	}
}

// AnnotateCentroids returns a copy of the footprint polygons with their
// planar centroid coordinates stored as Centroid_X / Centroid_Y attributes.
func AnnotateCentroids(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(fc.GeomType)
	for _, f := range fc.Features {
		c := f.Clone()
		centroid := f.Polygon.Centroid()
		c.SetAttr(models.FieldCentroidX, centroid.X)
		c.SetAttr(models.FieldCentroidY, centroid.Y)
		out.Add(c)
	}
	return out
}

// CentroidPoints materializes one point feature per annotated footprint,
// carrying all footprint attributes.
func CentroidPoints(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomPoint)
	for _, f := range fc.Features {
		c := f.Clone()
		c.Point = spatial.Point{
			X: f.AttrFloat(models.FieldCentroidX),
			Y: f.AttrFloat(models.FieldCentroidY),
		}
		c.Polygon = nil
		out.Add(c)
	}
	return out
}

// BearingLines constructs one line through each centroid point, oriented
// perpendicular to the anchor's direction class: an E_W anchor gets a N_S
// bearing line and vice versa. Anchors whose direction is diagonal or
// unknown are skipped with a diagnostic. Each line is assigned a numeric Id
// (the anchor's Uni_ID when present, otherwise a running index) that
// every derived geometry downstream carries.
func (b *Builder) BearingLines(points *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomLine)
	half := b.BearingLength / 2
	for i, f := range points.Features {
		dir := spatial.Direction(f.AttrString(models.FieldDirection))
		if !dir.Cardinal() {
			log.Printf("Ignoring anchor with direction %q", dir)
			continue
		}
		p := f.Point
		var line spatial.Polyline
		if dir == spatial.DirEW {
			line = spatial.Polyline{{X: p.X, Y: p.Y - half}, {X: p.X, Y: p.Y + half}}
		} else {
			line = spatial.Polyline{{X: p.X - half, Y: p.Y}, {X: p.X + half, Y: p.Y}}
		}
		c := f.Clone()
		c.Point = spatial.Point{}
		c.Line = line
		if c.AttrInt(models.FieldID) == 0 {
			if uni := c.AttrInt(models.FieldUniID); uni != 0 {
				c.SetAttr(models.FieldID, uni)
			} else {
				c.SetAttr(models.FieldID, i+1)
			}
		}
		out.Add(c)
	}
	return out
}

// ClipToFootprints intersects every bearing line with the footprint
// polygons, keeping the portion inside the footprint together with the
// attributes of both inputs. Lines that miss every footprint are dropped
// silently, matching the intersect semantics. When a line crosses a
// footprint in several pieces the pieces are flattened into one chain so
// the endpoints span the whole crossing.
func ClipToFootprints(bearings, footprints *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomLine)
	for _, line := range bearings.Features {
		for _, foot := range footprints.Features {
			if !spatial.LineIntersectsPolygon(line.Line, foot.Polygon) {
				continue
			}
			parts := spatial.ClipPolylineToPolygon(line.Line, foot.Polygon)
			if len(parts) == 0 {
				continue
			}
			var chain spatial.Polyline
			for _, part := range parts {
				chain = append(chain, part...)
			}
			if chain.Length() == 0 {
				continue
			}
			c := line.Clone()
			c.Line = chain
			for k, v := range foot.Attrs {
				if _, exists := c.Attrs[k]; !exists {
					c.Attrs[k] = v
				}
			}
			out.Add(c)
		}
	}
	return out
}

// ExtendLines extends each clipped segment outward from both endpoints by
// the configured distance along the segment's own angle. Zero-length
// segments cannot yield an angle and are skipped with a diagnostic.
func (b *Builder) ExtendLines(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomLine)
	for _, f := range fc.Features {
		extended, err := f.Line.Extend(b.ExtensionLength)
		if err != nil {
			log.Printf("Skipping zero-length segment Id=%d", f.AttrInt(models.FieldID))
			continue
		}
		c := f.Clone()
		c.Line = extended
		out.Add(c)
	}
	return out
}

// EndPoints emits one point per endpoint of every extended line, tagged
// with End_Type "Start" or "End" and the line's Id. These are the matrix
// plot centres.
func EndPoints(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomPoint)
	for _, f := range fc.Features {
		start, end := f.Line.Endpoints()
		for _, e := range []struct {
			pt  spatial.Point
			typ string
		}{{start, "Start"}, {end, "End"}} {
			p := models.NewFeature()
			p.Point = e.pt
			p.SetAttr(models.FieldID, f.AttrInt(models.FieldID))
			p.SetAttr(models.FieldEndType, e.typ)
			out.Add(p)
		}
	}
	return out
}

// Plots buffers every plot centre by the configured radius, producing the
// final circular matrix plot polygons carrying Id and End_Type.
func (b *Builder) Plots(points *models.FeatureCollection) (*models.FeatureCollection, error) {
	out := models.NewFeatureCollection(models.GeomPolygon)
	for _, f := range points.Features {
		circle, err := spatial.CircleBuffer(f.Point, b.PlotRadius)
		if err != nil {
			return nil, fmt.Errorf("matrix: buffering plot centre: %w", err)
		}
		c := models.NewFeature()
		c.Polygon = circle
		c.SetAttr(models.FieldID, f.AttrInt(models.FieldID))
		c.SetAttr(models.FieldEndType, f.AttrString(models.FieldEndType))
		out.Add(c)
	}
	return out, nil
}
