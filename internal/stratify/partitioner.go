package stratify

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/spatial"
)

// Partition is one non-empty subset of a dataset, named deterministically
// from the key values that selected it.
type Partition struct {
	Name       string
	Collection *models.FeatureCollection
}

// ByAttributes splits the collection into one partition per distinct
// combination of the given attribute values observed in the data.
// Combinations with no matching features produce no partition, so an
// absent partition means "no members". Features missing any key attribute
// are skipped. Names are baseName_val1_val2..., sanitized and sorted.
func ByAttributes(fc *models.FeatureCollection, baseName string, fields ...string) []Partition {
	groups := make(map[string]*models.FeatureCollection)
	for _, f := range fc.Features {
		vals := make([]string, 0, len(fields))
		missing := false
		for _, field := range fields {
			v := f.AttrString(field)
			if v == "" {
				missing = true
				break
			}
			vals = append(vals, SanitizeToken(v))
		}
		if missing {
			continue
		}
		name := baseName
		if name != "" {
			name += "_"
		}
		name += strings.Join(vals, "_")
		g, ok := groups[name]
		if !ok {
			g = models.NewFeatureCollection(fc.GeomType)
			groups[name] = g
		}
		g.Add(f.Clone())
	}
	return sortedPartitions(groups)
}

// ByEcosite groups features by their ecosite attribute, excluding Unknown.
func ByEcosite(fc *models.FeatureCollection, suffix string) []Partition {
	groups := make(map[string]*models.FeatureCollection)
	for _, f := range fc.Features {
		eco := f.AttrString(models.FieldEcosite)
		if eco == "" || eco == EcositeUnknown {
			continue
		}
		name := SanitizeToken(eco) + suffix
		g, ok := groups[name]
		if !ok {
			g = models.NewFeatureCollection(fc.GeomType)
			groups[name] = g
		}
		g.Add(f.Clone())
	}
	return sortedPartitions(groups)
}

// ByGrid clips the collection to every intersecting cell of the systematic
// grid. Line features are clipped to the cell boundary, with one output
// feature per clipped part; point features are selected by containment.
// Cells with no members are skipped with a diagnostic. Every output
// feature is tagged with the cell's GRID_ID.
func ByGrid(fc *models.FeatureCollection, grid *models.FeatureCollection, baseName string) ([]Partition, error) {
	if grid.GeomType != models.GeomPolygon {
		return nil, fmt.Errorf("stratify: grid dataset must be polygons, got %s", grid.GeomType)
	}
	groups := make(map[string]*models.FeatureCollection)
	for _, cell := range grid.Features {
		gridID := cell.AttrString(models.FieldGridID)
		if gridID == "" {
			gridID = cell.AttrString("GRID_ID")
		}
		if gridID == "" {
			return nil, fmt.Errorf("stratify: grid cell without GRID_ID")
		}
		sub := clipToCell(fc, cell.Polygon, gridID)
		if sub.Empty() {
			log.Printf("Skipping empty grid cell %s for %s", gridID, baseName)
			continue
		}
		groups[fmt.Sprintf("%s_%s", baseName, SanitizeToken(gridID))] = sub
	}
	return sortedPartitions(groups), nil
}

// clipToCell returns the members of fc that fall in the cell, clipped to
// its boundary for line geometry.
func clipToCell(fc *models.FeatureCollection, cell spatial.Polygon, gridID string) *models.FeatureCollection {
	out := models.NewFeatureCollection(fc.GeomType)
	for _, f := range fc.Features {
		switch fc.GeomType {
		case models.GeomPoint:
			if cell.Contains(f.Point) {
				c := f.Clone()
				c.SetAttr(models.FieldGridID, gridID)
				out.Add(c)
			}
		case models.GeomLine:
			for _, part := range spatial.ClipPolylineToPolygon(f.Line, cell) {
				c := f.Clone()
				c.Line = part
				c.SetAttr(models.FieldGridID, gridID)
				out.Add(c)
			}
		case models.GeomPolygon:
			if len(f.Polygon) > 0 && cell.Contains(f.Polygon.Centroid()) {
				c := f.Clone()
				c.SetAttr(models.FieldGridID, gridID)
				out.Add(c)
			}
		}
	}
	return out
}

// SanitizeToken makes a key value safe for use in dataset names.
func SanitizeToken(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func sortedPartitions(groups map[string]*models.FeatureCollection) []Partition {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]Partition, 0, len(names))
	for _, name := range names {
		parts = append(parts, Partition{Name: name, Collection: groups[name]})
	}
	return parts
}
