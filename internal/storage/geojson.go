package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	geojson "github.com/paulmach/go.geojson"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// readGeoJSON loads a FeatureCollection, requiring a single geometry type.
func readGeoJSON(path string) (*models.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: reading %s: %w", path, err)
	}
	gfc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("storage: parsing %s: %w", path, err)
	}

	var fc *models.FeatureCollection
	for _, gf := range gfc.Features {
		if gf.Geometry == nil {
			continue
		}
		f := models.NewFeature()
		for k, v := range gf.Properties {
			f.Attrs[k] = v
		}
		var t models.GeomType
		switch {
		case gf.Geometry.IsPoint():
			t = models.GeomPoint
			f.Point = spatial.Point{X: gf.Geometry.Point[0], Y: gf.Geometry.Point[1]}
		case gf.Geometry.IsLineString():
			t = models.GeomLine
			for _, c := range gf.Geometry.LineString {
				f.Line = append(f.Line, spatial.Point{X: c[0], Y: c[1]})
			}
		case gf.Geometry.IsPolygon():
			t = models.GeomPolygon
			for _, ring := range gf.Geometry.Polygon {
				r := make(spatial.Ring, 0, len(ring))
				for _, c := range ring {
					r = append(r, spatial.Point{X: c[0], Y: c[1]})
				}
				// GeoJSON rings are explicitly closed; ours are not.
				if n := len(r); n > 1 && r[0] == r[n-1] {
					r = r[:n-1]
				}
				f.Polygon = append(f.Polygon, r)
			}
		default:
			return nil, fmt.Errorf("storage: unsupported geometry %q in %s", gf.Geometry.Type, path)
		}
		if fc == nil {
			fc = models.NewFeatureCollection(t)
		} else if fc.GeomType != t {
			return nil, fmt.Errorf("storage: mixed geometry types in %s", path)
		}
		fc.Add(f)
	}
	if fc == nil {
		fc = models.NewFeatureCollection(models.GeomPoint)
	}
	return fc, nil
}

// writeGeoJSON marshals the collection and renames it into place.
func writeGeoJSON(path string, fc *models.FeatureCollection) error {
	data, err := json.MarshalIndent(ToGeoJSON(fc), "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshalling %s: %w", path, err)
	}
	tmp := filepath.Join(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage: committing %s: %w", path, err)
	}
	return nil
}

// ToGeoJSON converts a collection into a GeoJSON FeatureCollection, also
// used directly by the results API.
func ToGeoJSON(fc *models.FeatureCollection) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		var gf *geojson.Feature
		switch fc.GeomType {
		case models.GeomPoint:
			gf = geojson.NewPointFeature([]float64{f.Point.X, f.Point.Y})
		case models.GeomLine:
			coords := make([][]float64, 0, len(f.Line))
			for _, p := range f.Line {
				coords = append(coords, []float64{p.X, p.Y})
			}
			gf = geojson.NewLineStringFeature(coords)
		case models.GeomPolygon:
			rings := make([][][]float64, 0, len(f.Polygon))
			for _, ring := range f.Polygon {
				coords := make([][]float64, 0, len(ring)+1)
				for _, p := range ring {
					coords = append(coords, []float64{p.X, p.Y})
				}
				if len(coords) > 0 {
					coords = append(coords, coords[0])
				}
				rings = append(rings, coords)
			}
			gf = geojson.NewPolygonFeature(rings)
		}
		for k, v := range f.Attrs {
			gf.SetProperty(k, v)
		}
		out.AddFeature(gf)
	}
	return out
}
