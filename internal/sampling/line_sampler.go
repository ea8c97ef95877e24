// Package sampling draws the random sample units within each stratum. All
// randomness flows through an explicitly seeded *rand.Rand so runs are
// reproducible and independently testable.
package sampling

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/tmyeomans/RS2.1/internal/models"
)

// ErrEmptyInput is returned when a sampler is asked to draw from a
// collection with no features.
var ErrEmptyInput = errors.New("sampling: empty input collection")

// SampleLinePoints draws exactly target random points along the lines of
// one stratum. Lines are visited in repeated uniformly random permutations;
// each visit draws an independent fractional position in [0,1) along that
// line. A line's provenance ID is its position within the permutation that
// produced the point. When the quota is reached mid-permutation the walk
// truncates; when a permutation is exhausted a fresh one is drawn, so small
// strata sample the same line more than once at new positions.
//
// An empty stratum fails fast instead of looping forever.
func SampleLinePoints(fc *models.FeatureCollection, target int, rng *rand.Rand) ([]models.SampleUnit, error) {
	if fc == nil || fc.Empty() {
		return nil, ErrEmptyInput
	}
	if fc.GeomType != models.GeomLine {
		return nil, fmt.Errorf("sampling: expected line geometry, got %s", fc.GeomType)
	}
	if target <= 0 {
		return nil, fmt.Errorf("sampling: target count must be positive, got %d", target)
	}

	units := make([]models.SampleUnit, 0, target)
	for len(units) < target {
		perm := rng.Perm(len(fc.Features))
		for pos, idx := range perm {
			frac := rng.Float64()
			pt := fc.Features[idx].Line.PointAlong(frac)
			units = append(units, models.SampleUnit{
				ProvenanceID: pos,
				Fraction:     frac,
				Point:        pt,
				X:            pt.X,
				Y:            pt.Y,
			})
			if len(units) >= target {
				break
			}
		}
	}
	return units, nil
}
