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

// runPads executes the well-pad sampling pipeline: ecosite assignment for
// the surface hole locations, grid stratification, random subset sampling
// per partition, combination into one dataset, and the circular pad plots.
func (r *Runner) runPads(runID string, rng *rand.Rand) error {
	shl, err := storage.ReadDataset(r.sourcePath(r.cfg.SHLFile))
	if err != nil {
		return err
	}
	if shl.Empty() {
		return fmt.Errorf("pads: SHL dataset %s has no features", r.cfg.SHLFile)
	}
	ecosites, err := storage.ReadDataset(r.sourcePath(r.cfg.EcositeFile))
	if err != nil {
		return err
	}
	if ecosites.Empty() {
		return fmt.Errorf("pads: ecosite dataset %s has no features", r.cfg.EcositeFile)
	}
	grid, err := storage.ReadDataset(r.sourcePath(r.cfg.GridFile))
	if err != nil {
		return err
	}
	if grid.Empty() {
		return fmt.Errorf("pads: grid dataset %s has no features", r.cfg.GridFile)
	}

	// SHL points per ecosite. The pad pipeline derives the ecosite
	// partitions itself so it can run independently of the line pipeline.
	ecoPolys := EcositePartitions(ecosites)
	if len(ecoPolys) == 0 {
		return fmt.Errorf("pads: no known ecosites in %s", r.cfg.EcositeFile)
	}
	var shlByEco []stratify.Partition
	for _, part := range ecoPolys {
		eco := part.Name[:len(part.Name)-len("_poly")]
		sub := selectPointsInPolygons(shl, part.Collection, eco)
		if sub.Empty() {
			log.Printf("No surface hole locations in ecosite %s", eco)
			continue
		}
		name := "SHL_" + eco
		path := r.workingPath(DirSHLEcosite, name+".shp")
		if err := storage.WriteDataset(path, sub); err != nil {
			return err
		}
		shlByEco = append(shlByEco, stratify.Partition{Name: name, Collection: sub})
	}
	log.Printf("Surface hole locations with ecosites complete")

	// Grid-stratify each ecosite's SHL points.
	var partitions []stratify.Partition
	for _, se := range shlByEco {
		cells, err := stratify.ByGrid(se.Collection, grid, se.Name)
		if err != nil {
			return err
		}
		for _, c := range cells {
			path := r.workingPath(DirGridStratifiedSHL, c.Name+".shp")
			if err := storage.WriteDataset(path, c.Collection); err != nil {
				return err
			}
			if err := r.recordStratum(runID, c.Name, "grid", path, c.Collection.Len()); err != nil {
				return err
			}
			partitions = append(partitions, c)
		}
	}
	if len(partitions) == 0 {
		return fmt.Errorf("pads: no grid partitions produced, nothing to sample")
	}

	// Random subset per partition, then combine.
	combined := models.NewFeatureCollection(models.GeomPoint)
	for _, part := range partitions {
		sampled, picked, err := sampling.SampleSubset(part.Collection, r.cfg.PadSampleTarget, rng)
		if err != nil {
			return fmt.Errorf("pads: sampling %s: %w", part.Name, err)
		}
		if sampled == nil {
			continue
		}
		path := r.workingPath(DirSystRandSHL, part.Name+"_rndsample.shp")
		if err := storage.WriteDataset(path, sampled); err != nil {
			return err
		}
		units := make([]models.SampleUnit, 0, sampled.Len())
		for i, f := range sampled.Features {
			units = append(units, models.SampleUnit{
				RunID:        runID,
				Stratum:      part.Name,
				ProvenanceID: picked[i],
				Point:        f.Point,
				X:            f.Point.X,
				Y:            f.Point.Y,
			})
			combined.Add(f.Clone())
		}
		if err := r.samples.RecordUnits(units); err != nil {
			return err
		}
		log.Printf("Features randomly sampled and saved to %s", path)
	}
	if combined.Empty() {
		return fmt.Errorf("pads: no features sampled across %d partitions", len(partitions))
	}

	combinedPath := r.workingPath(DirSHLCombined, CombinedSHLName)
	if err := storage.WriteDataset(combinedPath, combined); err != nil {
		return err
	}
	log.Printf("Combined samples saved to %s", combinedPath)

	// Circular pad plots around every sampled location.
	plots := models.NewFeatureCollection(models.GeomPolygon)
	records := make([]models.MatrixPlot, 0, combined.Len())
	for i, f := range combined.Features {
		circle, err := spatial.CircleBuffer(f.Point, r.cfg.PadPlotRadius)
		if err != nil {
			return fmt.Errorf("pads: buffering pad plot: %w", err)
		}
		c := f.Clone()
		c.Point = spatial.Point{}
		c.Polygon = circle
		plots.Add(c)
		records = append(records, models.MatrixPlot{
			RunID:   runID,
			PlotID:  i + 1,
			EndType: "Pad",
			Center:  f.Point,
			X:       f.Point.X,
			Y:       f.Point.Y,
			Radius:  r.cfg.PadPlotRadius,
		})
	}
	plotsPath := r.workingPath(DirSHLPlots, PadPlotsName)
	if err := storage.WriteDataset(plotsPath, plots); err != nil {
		return err
	}
	if err := r.plots.RecordPlots(records); err != nil {
		return err
	}
	log.Printf("Plots created")
	return nil
}

// selectPointsInPolygons returns the points contained by any polygon of
// the partition, tagged with the ecosite label.
func selectPointsInPolygons(points, polys *models.FeatureCollection, eco string) *models.FeatureCollection {
	out := models.NewFeatureCollection(models.GeomPoint)
	for _, pt := range points.Features {
		for _, pf := range polys.Features {
			if pf.Polygon.Contains(pt.Point) {
				c := pt.Clone()
				c.SetAttr(models.FieldEcosite, eco)
				out.Add(c)
				break
			}
		}
	}
	return out
}
