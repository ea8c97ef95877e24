package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

func samplePoints() *models.FeatureCollection {
	fc := models.NewFeatureCollection(models.GeomPoint)
	for i := 0; i < 3; i++ {
		f := models.NewFeature()
		f.Point = spatial.Point{X: float64(i * 10), Y: float64(i * 20)}
		f.SetAttr("ecosite", "UD")
		f.SetAttr(models.FieldGridID, "A1")
		fc.Add(f)
	}
	return fc
}

func TestGeoJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pts.geojson")

	require.NoError(t, WriteDataset(path, samplePoints()))

	got, err := ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, models.GeomPoint, got.GeomType)
	assert.InDelta(t, 20, got.Features[2].Point.X, 1e-9)
	assert.Equal(t, "UD", got.Features[0].AttrString("ecosite"))
	assert.Equal(t, "A1", got.Features[0].AttrString(models.FieldGridID))
}

func TestGeoJSONLineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.geojson")

	fc := models.NewFeatureCollection(models.GeomLine)
	f := models.NewFeature()
	f.Line = spatial.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}}
	f.SetAttr("line_type", "Pipeline")
	fc.Add(f)
	require.NoError(t, WriteDataset(path, fc))

	got, err := ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, models.GeomLine, got.GeomType)
	assert.InDelta(t, 150, got.Features[0].Line.Length(), 1e-9)
	assert.Equal(t, "Pipeline", got.Features[0].AttrString("line_type"))
}

func TestWriteRejectsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.geojson")

	err := WriteDataset(path, models.NewFeatureCollection(models.GeomPoint))
	assert.ErrorIs(t, err, ErrEmptyCollection)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "empty collections are never materialized")

	assert.ErrorIs(t, WriteDataset(path, nil), ErrEmptyCollection)
}

func TestWriteLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDataset(filepath.Join(dir, "pts.geojson"), samplePoints()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pts.geojson", entries[0].Name())
}

func TestReadMissingDataset(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestReadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pts.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n"), 0o644))

	_, err := ReadDataset(path)
	assert.Error(t, err)
}

func TestShapefileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pads.shp")

	require.NoError(t, WriteDataset(path, samplePoints()))

	// The triplet appears under its final names only.
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(filepath.Join(dir, "pads"+ext))
		assert.NoError(t, err, "missing %s", ext)
	}

	got, err := ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, models.GeomPoint, got.GeomType)
	assert.InDelta(t, 40, got.Features[2].Point.Y, 1e-6)
	assert.Equal(t, "UD", got.Features[0].AttrString("ecosite"))
}

func TestShapefileWriteCommitsCompleteTriple(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDataset(filepath.Join(dir, "pads.shp"), samplePoints()))

	// The attribute table lands under its dotted name and no staging
	// directory survives the commit.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"pads.shp", "pads.shx", "pads.dbf"}, names)
}

func TestShapefilePolylineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.shp")

	fc := models.NewFeatureCollection(models.GeomLine)
	f := models.NewFeature()
	f.Line = spatial.Polyline{{X: 0, Y: 0}, {X: 30, Y: 40}}
	f.SetAttr("direction", "SW_NE")
	fc.Add(f)
	require.NoError(t, WriteDataset(path, fc))

	got, err := ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.InDelta(t, 50, got.Features[0].Line.Length(), 1e-6)
	assert.Equal(t, "SW_NE", got.Features[0].AttrString("direction"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "Working_Files", "Stratified_lines")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	for _, name := range []string{"b.geojson", "a.geojson"} {
		require.NoError(t, WriteDataset(filepath.Join(sub, name), samplePoints()))
	}

	paths, err := Discover(dir, "Working_Files/**/*.geojson")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(sub, "a.geojson"), paths[0])
	assert.Equal(t, filepath.Join(sub, "b.geojson"), paths[1])
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Rand_SHL_comb", BaseName("/tmp/x/Rand_SHL_comb.shp"))
	assert.Equal(t, "pts", BaseName("pts.geojson"))
}
