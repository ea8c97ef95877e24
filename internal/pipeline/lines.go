package pipeline

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/sampling"
	"github.com/tmyeomans/RS2.1/internal/spatial"
	"github.com/tmyeomans/RS2.1/internal/storage"
	"github.com/tmyeomans/RS2.1/internal/stratify"
)

// runLines executes the stratified line-sampling pipeline: orientation
// annotation, ecosite stratification, grid stratification, then random
// point sampling within every stratum-cell dataset.
func (r *Runner) runLines(runID string, rng *rand.Rand) error {
	lines, err := storage.ReadDataset(r.sourcePath(r.cfg.LinesFile))
	if err != nil {
		return err
	}
	if lines.Empty() {
		return fmt.Errorf("lines: source dataset %s has no features", r.cfg.LinesFile)
	}
	ecosites, err := storage.ReadDataset(r.sourcePath(r.cfg.EcositeFile))
	if err != nil {
		return err
	}
	if ecosites.Empty() {
		return fmt.Errorf("lines: ecosite dataset %s has no features", r.cfg.EcositeFile)
	}
	grid, err := storage.ReadDataset(r.sourcePath(r.cfg.GridFile))
	if err != nil {
		return err
	}
	if grid.Empty() {
		return fmt.Errorf("lines: grid dataset %s has no features", r.cfg.GridFile)
	}

	// Bearing, length and direction class for every line.
	lines = AnnotateOrientation(lines)
	log.Printf("Bearing, length and directions added for %d lines", lines.Len())

	// One polygon dataset per generalized ecosite; Unknown is excluded
	// from everything downstream.
	ecoPolys := EcositePartitions(ecosites)
	if len(ecoPolys) == 0 {
		return fmt.Errorf("lines: no known ecosites in %s", r.cfg.EcositeFile)
	}
	for _, part := range ecoPolys {
		path := r.workingPath(DirEcositePolys, part.Name+".shp")
		if err := storage.WriteDataset(path, part.Collection); err != nil {
			return err
		}
		if err := r.recordStratum(runID, part.Name, "ecosite", path, part.Collection.Len()); err != nil {
			return err
		}
	}

	// Clip the lines to each ecosite, tagging the ecosite attribute.
	var ecoLines []stratify.Partition
	for _, part := range ecoPolys {
		eco := part.Name[:len(part.Name)-len("_poly")]
		clipped := clipLinesToPolygons(lines, part.Collection, eco)
		if clipped.Empty() {
			log.Printf("No lines intersect ecosite %s", eco)
			continue
		}
		name := eco + "_lines"
		path := r.workingPath(DirLinesEcosite, name+".shp")
		if err := storage.WriteDataset(path, clipped); err != nil {
			return err
		}
		ecoLines = append(ecoLines, stratify.Partition{Name: name, Collection: clipped})
	}

	// Partition every ecosite's lines by line type and direction.
	var strata []stratify.Partition
	for _, el := range ecoLines {
		eco := el.Name[:len(el.Name)-len("_lines")]
		for _, s := range stratify.ByAttributes(el.Collection, eco, models.FieldLineType, models.FieldDirection) {
			path := r.workingPath(DirStratifiedLines, s.Name+".shp")
			if err := storage.WriteDataset(path, s.Collection); err != nil {
				return err
			}
			if err := r.recordStratum(runID, s.Name, "strata", path, s.Collection.Len()); err != nil {
				return err
			}
			strata = append(strata, s)
		}
	}

	// Grid-stratify the cardinal strata; diagonal lines are not sampled
	// systematically.
	var gridStrata []stratify.Partition
	for _, s := range strata {
		if diagonalStratum(s.Collection) {
			log.Printf("Skipping %s", s.Name)
			continue
		}
		cells, err := stratify.ByGrid(s.Collection, grid, s.Name)
		if err != nil {
			return err
		}
		for _, c := range cells {
			path := r.workingPath(DirGridStratifiedLines, c.Name+".shp")
			if err := storage.WriteDataset(path, c.Collection); err != nil {
				return err
			}
			if err := r.recordStratum(runID, c.Name, "grid", path, c.Collection.Len()); err != nil {
				return err
			}
			gridStrata = append(gridStrata, c)
		}
	}
	if len(gridStrata) == 0 {
		return fmt.Errorf("lines: no grid strata produced, nothing to sample")
	}

	// Random point sampling within every stratum-cell dataset.
	for _, gs := range gridStrata {
		units, err := sampling.SampleLinePoints(gs.Collection, r.cfg.LineSampleTarget, rng)
		if err != nil {
			return fmt.Errorf("lines: sampling %s: %w", gs.Name, err)
		}
		pts := models.NewFeatureCollection(models.GeomPoint)
		for i := range units {
			units[i].RunID = runID
			units[i].Stratum = gs.Name
			f := models.NewFeature()
			f.Point = units[i].Point
			f.SetAttr(models.FieldLineID, units[i].ProvenanceID)
			pts.Add(f)
		}
		path := r.workingPath(DirSystRandomPts, gs.Name+"_rndpt.shp")
		if err := storage.WriteDataset(path, pts); err != nil {
			return err
		}
		if err := r.samples.RecordUnits(units); err != nil {
			return err
		}
		log.Printf("%d points generated and saved to %s", len(units), path)
	}
	return nil
}

// AnnotateOrientation returns a copy of the lines with bearing, length and
// direction-class attributes derived from geometry.
func AnnotateOrientation(fc *models.FeatureCollection) *models.FeatureCollection {
	out := models.NewFeatureCollection(fc.GeomType)
	for _, f := range fc.Features {
		c := f.Clone()
		bearing := f.Line.Bearing()
		c.SetAttr(models.FieldBearing, bearing)
		c.SetAttr(models.FieldLength, f.Line.Length())
		c.SetAttr(models.FieldDirection, string(spatial.ClassifyDirection(bearing)))
		out.Add(c)
	}
	return out
}

// EcositePartitions maps every polygon's gridcode to its generalized
// ecosite and groups the polygons per ecosite, excluding Unknown.
func EcositePartitions(ecosites *models.FeatureCollection) []stratify.Partition {
	mapped := models.NewFeatureCollection(ecosites.GeomType)
	for _, f := range ecosites.Features {
		c := f.Clone()
		c.SetAttr(models.FieldEcosite, stratify.MapEcosite(f.AttrInt(models.FieldGridcode)))
		mapped.Add(c)
	}
	return stratify.ByEcosite(mapped, "_poly")
}

// clipLinesToPolygons clips every line to the union of the partition's
// polygons, tagging the clipped parts with the ecosite label.
func clipLinesToPolygons(lines, polys *models.FeatureCollection, eco string) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomLine)
	for _, lf := range lines.Features {
		for _, pf := range polys.Features {
			for _, part := range spatial.ClipPolylineToPolygon(lf.Line, pf.Polygon) {
				c := lf.Clone()
				c.Line = part
				c.SetAttr(models.FieldEcosite, eco)
				out.Add(c)
			}
		}
	}
	return out
}

// diagonalStratum reports whether the stratum's lines are diagonal
// (SW_NE or NW_SE) and therefore skipped by the grid stage.
func diagonalStratum(fc *models.FeatureCollection) bool {
	for _, f := range fc.Features {
		switch spatial.Direction(f.AttrString(models.FieldDirection)) {
		case spatial.DirSWNE, spatial.DirNWSE:
			return true
		}
	}
	return false
}
