package models

import "github.com/tmyeomans/RS2.1/internal/spatial"

// SampleUnit is one selected sample: a random point along a line, or a
// whole pad feature. Immutable once created. ProvenanceID links the unit
// back to the line's position in the permutation (or the feature index)
// that produced it.
type SampleUnit struct {
	RunID        string        `json:"run_id" db:"run_id"`
	Stratum      string        `json:"stratum" db:"stratum"`
	ProvenanceID int           `json:"provenance_id" db:"provenance_id"`
	Fraction     float64       `json:"fraction" db:"fraction"` // position along the line, [0,1]; 0 for pads
	Point        spatial.Point `json:"-"`
	X            float64       `json:"x" db:"x"`
	Y            float64       `json:"y" db:"y"`
}

// MatrixPlot is the terminal entity: a circular sampling plot of fixed
// radius centred on a derived endpoint. End_Type records which end of the
// extended bearing line the plot sits on.
type MatrixPlot struct {
	RunID   string        `json:"run_id" db:"run_id"`
	PlotID  int           `json:"plot_id" db:"plot_id"`
	EndType string        `json:"end_type" db:"end_type"` // "Start" or "End"
	Center  spatial.Point `json:"-"`
	X       float64       `json:"x" db:"x"`
	Y       float64       `json:"y" db:"y"`
	Radius  float64       `json:"radius" db:"radius"`
}
