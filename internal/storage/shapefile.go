package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// readShapefile loads geometry and DBF attributes. Multipart polylines are
// split into one feature per part; the parts of a polygon record become
// the rings of a single polygon.
func readShapefile(path string) (*models.FeatureCollection, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: opening shapefile %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()

	var fc *models.FeatureCollection
	for r.Next() {
		idx, shape := r.Shape()
		attrs := func() map[string]interface{} {
			m := make(map[string]interface{}, len(fields))
			for i, f := range fields {
				m[f.String()] = strings.TrimSpace(r.ReadAttribute(idx, i))
			}
			return m
		}

		switch s := shape.(type) {
		case *shp.Point:
			if fc == nil {
				fc = models.NewFeatureCollection(models.GeomPoint)
			}
			f := models.NewFeature()
			f.Point = spatial.Point{X: s.X, Y: s.Y}
			f.Attrs = attrs()
			fc.Add(f)
		case *shp.PolyLine:
			if fc == nil {
				fc = models.NewFeatureCollection(models.GeomLine)
			}
			for _, part := range splitParts(s.Parts, s.Points) {
				f := models.NewFeature()
				f.Line = spatial.Polyline(part)
				f.Attrs = attrs()
				fc.Add(f)
			}
		case *shp.Polygon:
			if fc == nil {
				fc = models.NewFeatureCollection(models.GeomPolygon)
			}
			f := models.NewFeature()
			for _, part := range splitParts(s.Parts, s.Points) {
				// Rings arrive explicitly closed; our closing edge is
				// implicit.
				if n := len(part); n > 1 && part[0] == part[n-1] {
					part = part[:n-1]
				}
				f.Polygon = append(f.Polygon, spatial.Ring(part))
			}
			f.Attrs = attrs()
			fc.Add(f)
		default:
			return nil, fmt.Errorf("storage: unsupported shape type %T in %s", shape, path)
		}
	}
	if fc == nil {
		fc = models.NewFeatureCollection(models.GeomPoint)
	}
	return fc, nil
}

// splitParts turns go-shp's flat point slice plus part offsets into
// separate vertex chains.
func splitParts(parts []int32, points []shp.Point) [][]spatial.Point {
	if len(parts) == 0 {
		parts = []int32{0}
	}
	out := make([][]spatial.Point, 0, len(parts))
	for i := range parts {
		start := parts[i]
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		chain := make([]spatial.Point, 0, end-start)
		for j := start; j < end; j++ {
			chain = append(chain, spatial.Point{X: points[j].X, Y: points[j].Y})
		}
		out = append(out, chain)
	}
	return out
}

// writeShapefile stages the collection in a temporary directory next to the
// destination, then renames the .shp/.shx/.dbf triple into place. The rename
// happens only after all three sidecars exist, so a failed write never leaves
// a partial dataset behind.
func writeShapefile(path string, fc *models.FeatureCollection) error {
	dir := filepath.Dir(path)
	stage, err := os.MkdirTemp(dir, ".stage-")
	if err != nil {
		return fmt.Errorf("storage: staging %s: %w", path, err)
	}
	defer os.RemoveAll(stage)

	tmpBase := strings.TrimSuffix(filepath.Join(stage, filepath.Base(path)), ".shp")
	if err := writeShapefileTo(tmpBase+".shp", fc); err != nil {
		return err
	}
	// go-shp names the attribute table basename+"dbf", without the dot.
	if err := os.Rename(tmpBase+"dbf", tmpBase+".dbf"); err != nil {
		return fmt.Errorf("storage: staging %s: %w", path, err)
	}
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		if _, err := os.Stat(tmpBase + ext); err != nil {
			return fmt.Errorf("storage: staging %s: %w", path, err)
		}
	}
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		to := strings.TrimSuffix(path, ".shp") + ext
		if err := os.Rename(tmpBase+ext, to); err != nil {
			return fmt.Errorf("storage: committing %s: %w", to, err)
		}
	}
	writeProjection(path)
	return nil
}

func writeShapefileTo(path string, fc *models.FeatureCollection) error {
	var shapeType shp.ShapeType
	switch fc.GeomType {
	case models.GeomPoint:
		shapeType = shp.POINT
	case models.GeomLine:
		shapeType = shp.POLYLINE
	case models.GeomPolygon:
		shapeType = shp.POLYGON
	default:
		return fmt.Errorf("storage: unsupported geometry type %q", fc.GeomType)
	}

	w, err := shp.Create(path, shapeType)
	if err != nil {
		return fmt.Errorf("storage: creating shapefile %s: %w", path, err)
	}
	defer w.Close()

	names := fc.FieldNames()
	fields := make([]shp.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, dbfField(name, fc))
	}
	w.SetFields(fields)

	for _, f := range fc.Features {
		var row int32
		switch fc.GeomType {
		case models.GeomPoint:
			row = w.Write(&shp.Point{X: f.Point.X, Y: f.Point.Y})
		case models.GeomLine:
			row = w.Write(polylineShape(f.Line))
		case models.GeomPolygon:
			row = w.Write(polygonShape(f.Polygon))
		}
		for i, name := range names {
			if v, ok := f.Attrs[name]; ok && v != nil {
				if err := w.WriteAttribute(int(row), i, v); err != nil {
					return fmt.Errorf("storage: writing attribute %s: %w", name, err)
				}
			}
		}
	}
	return nil
}

// dbfField picks a DBF field type from the first non-nil value seen for
// the attribute.
func dbfField(name string, fc *models.FeatureCollection) shp.Field {
	for _, f := range fc.Features {
		switch f.Attrs[name].(type) {
		case float64:
			return shp.FloatField(name, 19, 7)
		case int, int64:
			return shp.NumberField(name, 19)
		case string:
			return shp.StringField(name, 64)
		}
	}
	return shp.StringField(name, 64)
}

func polylineShape(line spatial.Polyline) *shp.PolyLine {
	pts := make([]shp.Point, len(line))
	for i, p := range line {
		pts[i] = shp.Point{X: p.X, Y: p.Y}
	}
	return shp.NewPolyLine([][]shp.Point{pts})
}

func polygonShape(poly spatial.Polygon) *shp.Polygon {
	parts := make([][]shp.Point, 0, len(poly))
	for _, ring := range poly {
		pts := make([]shp.Point, 0, len(ring)+1)
		for _, p := range ring {
			pts = append(pts, shp.Point{X: p.X, Y: p.Y})
		}
		// Shapefile rings are explicitly closed.
		if len(pts) > 0 && (pts[0] != pts[len(pts)-1]) {
			pts = append(pts, pts[0])
		}
		parts = append(parts, pts)
	}
	return (*shp.Polygon)(shp.NewPolyLine(parts))
}
