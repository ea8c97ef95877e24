package pipeline

import (
	"fmt"
	"log"

	"github.com/tmyeomans/RS2.1/internal/matrix"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/storage"
)

// runMatrix builds the matrix plots for digitized line footprints and for
// the sampled well pads. The pad half depends on the pad pipeline's
// outputs and fails fast when they are missing.
func (r *Runner) runMatrix(runID string) error {
	b := matrix.NewBuilder(r.cfg.BearingLength, r.cfg.ExtensionLength, r.cfg.PlotRadius)

	if err := r.runLineMatrix(runID, b); err != nil {
		return fmt.Errorf("matrix: line plots: %w", err)
	}
	if err := r.runPadMatrix(runID, b); err != nil {
		return fmt.Errorf("matrix: wellpad plots: %w", err)
	}
	return nil
}

// runLineMatrix derives plots for hand-digitized line footprints:
// centroid, perpendicular bearing line, footprint clip, extension,
// endpoint plot centres, circular plots, and attribute propagation.
func (r *Runner) runLineMatrix(runID string, b *matrix.Builder) error {
	footprints, err := storage.ReadDataset(r.sourcePath(r.cfg.FootprintsFile))
	if err != nil {
		return err
	}
	if footprints.Empty() {
		return fmt.Errorf("footprint dataset %s has no features", r.cfg.FootprintsFile)
	}

	annotated := matrix.AnnotateCentroids(footprints)
	log.Printf("Centroid coordinates calculated for %d footprints", annotated.Len())

	centroids := matrix.CentroidPoints(annotated)
	if err := storage.WriteDataset(r.workingPath(DirLineMidpoint, "Centroid_Points.shp"), centroids); err != nil {
		return err
	}

	bearings := b.BearingLines(centroids)
	if bearings.Empty() {
		return fmt.Errorf("no footprints with cardinal directions, no bearing lines built")
	}
	if err := storage.WriteDataset(r.workingPath(DirMatrixLoc, "matrix_bearing.shp"), bearings); err != nil {
		return err
	}

	clipped := matrix.ClipToFootprints(bearings, annotated)
	if clipped.Empty() {
		return fmt.Errorf("bearing lines do not intersect any footprint")
	}
	if err := storage.WriteDataset(r.workingPath(DirMatrixLoc, "bearing_clip.shp"), clipped); err != nil {
		return err
	}

	extended := b.ExtendLines(clipped)
	if extended.Empty() {
		return fmt.Errorf("all clipped segments were zero length")
	}
	if err := storage.WriteDataset(r.workingPath(DirMatrixLoc, "bearing_extended.shp"), extended); err != nil {
		return err
	}

	extendedAtt, err := matrix.TransferAttributes(centroids, extended)
	if err != nil {
		return err
	}
	if err := storage.WriteDataset(r.workingPath(DirMatrixLoc, "bearing_extended_att.shp"), extendedAtt); err != nil {
		return err
	}

	ends := matrix.EndPoints(extendedAtt)
	if err := storage.WriteDataset(r.workingPath(DirMatrixLoc, "matrix_loc.shp"), ends); err != nil {
		return err
	}

	plots, err := b.Plots(ends)
	if err != nil {
		return err
	}
	if err := storage.WriteDataset(r.workingPath(DirMatrixPlots, "matrix_plot.shp"), plots); err != nil {
		return err
	}
	if err := r.recordPlotCentres(runID, ends, r.cfg.PlotRadius); err != nil {
		return err
	}

	plotsAtt, err := matrix.TransferAttributes(extendedAtt, plots)
	if err != nil {
		return err
	}
	return storage.WriteDataset(r.workingPath(DirMatrixPlots, "matrix_plot_att.shp"), plotsAtt)
}

// runPadMatrix derives the wellpad matrix: the ring buffer around each
// sampled pad plus plot centres at the ends of full-length cross lines
// through the pad anchor point.
func (r *Runner) runPadMatrix(runID string, b *matrix.Builder) error {
	pads, err := storage.ReadDataset(r.workingPath(DirSHLPlots, PadPlotsName))
	if err != nil {
		return fmt.Errorf("pad plots missing, run the pads pipeline first: %w", err)
	}
	padPts, err := storage.ReadDataset(r.workingPath(DirSHLCombined, CombinedSHLName))
	if err != nil {
		return fmt.Errorf("combined SHL samples missing, run the pads pipeline first: %w", err)
	}
	if pads.Empty() || padPts.Empty() {
		return fmt.Errorf("pad pipeline outputs are empty")
	}

	padsUID := matrix.AddUniqueIDs(pads)
	if err := storage.WriteDataset(r.workingPath(DirWellpadMatrixLoc, "wellpads_uid.shp"), padsUID); err != nil {
		return err
	}

	rings, err := matrix.PadRings(padsUID, r.cfg.RingInner, r.cfg.RingOuter)
	if err != nil {
		return err
	}
	if !rings.Empty() {
		if err := storage.WriteDataset(r.workingPath(DirWellpadMatrixLoc, "wellpads_matrix_ring.shp"), rings); err != nil {
			return err
		}
		log.Printf("Wellpad matrix rings completed")
	}

	cross := b.PadCrossLines(padPts)
	if err := storage.WriteDataset(r.workingPath(DirWellpadMatrixLoc, "SHL_mx_lines.shp"), cross); err != nil {
		return err
	}

	crossAtt, err := matrix.TransferAttributes(padsUID, cross)
	if err != nil {
		return err
	}
	if err := storage.WriteDataset(r.workingPath(DirWellpadMatrixLoc, "SHL_mx_lines_att.shp"), crossAtt); err != nil {
		return err
	}

	ends := matrix.EndPoints(crossAtt)
	if err := storage.WriteDataset(r.workingPath(DirWellpadMatrixLoc, "SHL_matrix_loc.shp"), ends); err != nil {
		return err
	}

	plots, err := b.Plots(ends)
	if err != nil {
		return err
	}
	if err := storage.WriteDataset(r.workingPath(DirWellpadPlots, "SHL_matrix_plot.shp"), plots); err != nil {
		return err
	}
	if err := r.recordPlotCentres(runID, ends, r.cfg.PlotRadius); err != nil {
		return err
	}

	plotsAtt, err := matrix.TransferAttributes(crossAtt, plots)
	if err != nil {
		return err
	}
	return storage.WriteDataset(r.workingPath(DirWellpadPlots, "SHL_matrix_plot_att.shp"), plotsAtt)
}

// recordPlotCentres registers every plot centre point in the registry.
func (r *Runner) recordPlotCentres(runID string, ends *models.FeatureCollection, radius float64) error {
	records := make([]models.MatrixPlot, 0, ends.Len())
	for _, f := range ends.Features {
		records = append(records, models.MatrixPlot{
			RunID:   runID,
			PlotID:  f.AttrInt(models.FieldID),
			EndType: f.AttrString(models.FieldEndType),
			Center:  f.Point,
			X:       f.Point.X,
			Y:       f.Point.Y,
			Radius:  radius,
		})
	}
	return r.plots.RecordPlots(records)
}
