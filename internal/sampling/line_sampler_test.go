package sampling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

func lineCollection(lengths ...float64) *models.FeatureCollection {
	fc := models.NewFeatureCollection(models.GeomLine)
	for _, length := range lengths {
		f := models.NewFeature()
		f.Line = spatial.Polyline{{X: 0, Y: 0}, {X: length, Y: 0}}
		fc.Add(f)
	}
	return fc
}

func TestSampleLinePointsQuota(t *testing.T) {
	fc := lineCollection(10, 20, 30)
	rng := rand.New(rand.NewSource(1))

	units, err := SampleLinePoints(fc, 30, rng)
	require.NoError(t, err)
	assert.Len(t, units, 30)
}

func TestSampleLinePointsProvenanceAndFractions(t *testing.T) {
	fc := lineCollection(10, 20, 30)
	rng := rand.New(rand.NewSource(1))

	units, err := SampleLinePoints(fc, 5, rng)
	require.NoError(t, err)
	require.Len(t, units, 5)

	for _, u := range units {
		assert.GreaterOrEqual(t, u.ProvenanceID, 0)
		assert.Less(t, u.ProvenanceID, 3)
		assert.GreaterOrEqual(t, u.Fraction, 0.0)
		assert.Less(t, u.Fraction, 1.0)
		// Points lie on one of the input lines (all on the x axis).
		assert.Equal(t, 0.0, u.Y)
		assert.GreaterOrEqual(t, u.X, 0.0)
		assert.LessOrEqual(t, u.X, 30.0)
	}
}

func TestSampleLinePointsWithReplacement(t *testing.T) {
	// One line, quota 30: the same line must be revisited at new positions.
	fc := lineCollection(100)
	rng := rand.New(rand.NewSource(7))

	units, err := SampleLinePoints(fc, 30, rng)
	require.NoError(t, err)
	require.Len(t, units, 30)

	seen := make(map[float64]bool)
	for _, u := range units {
		assert.Equal(t, 0, u.ProvenanceID)
		seen[u.Fraction] = true
	}
	assert.Greater(t, len(seen), 1, "positions should differ across passes")
}

func TestSampleLinePointsReproducible(t *testing.T) {
	a, err := SampleLinePoints(lineCollection(10, 20, 30), 15, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := SampleLinePoints(lineCollection(10, 20, 30), 15, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleLinePointsEmptyInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := SampleLinePoints(models.NewFeatureCollection(models.GeomLine), 30, rng)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = SampleLinePoints(nil, 30, rng)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSampleLinePointsBadArgs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := SampleLinePoints(lineCollection(10), 0, rng)
	assert.Error(t, err)

	pts := models.NewFeatureCollection(models.GeomPoint)
	f := models.NewFeature()
	pts.Add(f)
	_, err = SampleLinePoints(pts, 30, rng)
	assert.Error(t, err)
}
