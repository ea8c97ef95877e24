package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

func TestTransferAttributesPointToLine(t *testing.T) {
	source := models.NewFeatureCollection(models.GeomPoint)
	s := models.NewFeature()
	s.Point = spatial.Point{X: 5, Y: 0}
	s.SetAttr("ecosite", "UD")
	s.SetAttr("line_type", "Pipeline")
	source.Add(s)

	target := models.NewFeatureCollection(models.GeomLine)
	hit := models.NewFeature()
	hit.Line = spatial.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}
	hit.SetAttr(models.FieldID, 1)
	target.Add(hit)
	miss := models.NewFeature()
	miss.Line = spatial.Polyline{{X: 0, Y: 50}, {X: 10, Y: 50}}
	target.Add(miss)

	out, err := TransferAttributes(source, target)
	require.NoError(t, err)
	// Unmatched targets are dropped, the join keeps common records only.
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "UD", out.Features[0].AttrString("ecosite"))
	assert.Equal(t, "Pipeline", out.Features[0].AttrString("line_type"))
	assert.Equal(t, 1, out.Features[0].AttrInt(models.FieldID))
}

func TestTransferAttributesNeverOverwrites(t *testing.T) {
	source := models.NewFeatureCollection(models.GeomPoint)
	s := models.NewFeature()
	s.Point = spatial.Point{X: 5, Y: 5}
	s.SetAttr("ecosite", "WT")
	source.Add(s)

	target := models.NewFeatureCollection(models.GeomPolygon)
	tf := models.NewFeature()
	tf.Polygon = spatial.Polygon{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	tf.SetAttr("ecosite", "UD")
	target.Add(tf)

	out, err := TransferAttributes(source, target)
	require.NoError(t, err)
	assert.Equal(t, "UD", out.Features[0].AttrString("ecosite"))
}

func TestTransferAttributesLineToPolygon(t *testing.T) {
	source := models.NewFeatureCollection(models.GeomLine)
	s := models.NewFeature()
	s.Line = spatial.Polyline{{X: 0, Y: 5}, {X: 20, Y: 5}}
	s.SetAttr("direction", "E_W")
	source.Add(s)

	target := models.NewFeatureCollection(models.GeomPolygon)
	tf := models.NewFeature()
	tf.Polygon = spatial.Polygon{{{X: 8, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 10}, {X: 8, Y: 10}}}
	target.Add(tf)

	out, err := TransferAttributes(source, target)
	require.NoError(t, err)
	assert.Equal(t, "E_W", out.Features[0].AttrString("direction"))
}

func TestTransferAttributesNoIntersection(t *testing.T) {
	source := models.NewFeatureCollection(models.GeomPoint)
	s := models.NewFeature()
	s.Point = spatial.Point{X: 1000, Y: 1000}
	source.Add(s)

	target := models.NewFeatureCollection(models.GeomLine)
	tf := models.NewFeature()
	tf.Line = spatial.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}
	target.Add(tf)

	_, err := TransferAttributes(source, target)
	assert.ErrorIs(t, err, ErrNoIntersection)
}
