package models

import (
	"sort"
	"strconv"

	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// GeomType identifies the single geometry type a dataset carries.
type GeomType string

const (
	GeomPoint   GeomType = "point"
	GeomLine    GeomType = "line"
	GeomPolygon GeomType = "polygon"
)

// Attribute field names this workflow adds to features. Original attributes
// are never overwritten except for these.
const (
	FieldBearing   = "bearing"
	FieldLength    = "length"
	FieldDirection = "direction"
	FieldEcosite   = "ecosite"
	FieldLineType  = "line_type"
	FieldGridID    = "Grid_ID"
	FieldUniID     = "Uni_ID"
	FieldLineID    = "LineID"
	FieldID        = "Id"
	FieldEndType   = "End_Type"
	FieldCentroidX = "Centroid_X"
	FieldCentroidY = "Centroid_Y"
	FieldLicence   = "Licence" // confidential; dropped during pad sampling
	FieldGridcode  = "gridcode"
)

// Feature is a single record in a dataset: one geometry of the dataset's
// type plus named attributes. Exactly one of Point, Line or Polygon is
// meaningful, selected by the owning collection's GeomType. Holding all
// three flat instead of behind an interface follows the GeoJSON geometry
// representation and keeps cursor code free of type assertions.
type Feature struct {
	Point   spatial.Point
	Line    spatial.Polyline
	Polygon spatial.Polygon

	Attrs map[string]interface{}
}

// NewFeature returns a feature with an empty attribute map.
func NewFeature() *Feature {
	return &Feature{Attrs: make(map[string]interface{})}
}

// Clone deep-copies the feature. Geometry slices are shared only at the
// coordinate level, which is safe because coordinates are never mutated in
// place; the attribute map is always copied.
func (f *Feature) Clone() *Feature {
	out := &Feature{
		Point:   f.Point,
		Line:    f.Line,
		Polygon: f.Polygon,
		Attrs:   make(map[string]interface{}, len(f.Attrs)),
	}
	for k, v := range f.Attrs {
		out.Attrs[k] = v
	}
	return out
}

// SetAttr sets a single attribute value.
func (f *Feature) SetAttr(name string, value interface{}) {
	if f.Attrs == nil {
		f.Attrs = make(map[string]interface{})
	}
	f.Attrs[name] = value
}

// AttrString returns the attribute as a string, or "" when absent.
func (f *Feature) AttrString(name string) string {
	switch v := f.Attrs[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return ""
	}
}

// AttrFloat returns the attribute as a float64, or 0 when absent or not
// numeric.
func (f *Feature) AttrFloat(name string) float64 {
	switch v := f.Attrs[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		n, _ := strconv.ParseFloat(v, 64)
		return n
	default:
		return 0
	}
}

// AttrInt returns the attribute as an int, or 0 when absent or not numeric.
func (f *Feature) AttrInt(name string) int {
	switch v := f.Attrs[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// FeatureCollection is an in-memory dataset of a single geometry type.
type FeatureCollection struct {
	GeomType GeomType
	Features []*Feature
}

// NewFeatureCollection returns an empty collection of the given type.
func NewFeatureCollection(t GeomType) *FeatureCollection {
	return &FeatureCollection{GeomType: t}
}

// Add appends a feature.
func (fc *FeatureCollection) Add(f *Feature) {
	fc.Features = append(fc.Features, f)
}

// Len returns the number of features.
func (fc *FeatureCollection) Len() int {
	return len(fc.Features)
}

// Empty reports whether the collection has no features.
func (fc *FeatureCollection) Empty() bool {
	return len(fc.Features) == 0
}

// FieldNames returns the union of attribute names across all features,
// sorted so written schemas are deterministic.
func (fc *FeatureCollection) FieldNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		for k := range f.Attrs {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}
