// Package storage reads and writes feature datasets: ESRI shapefiles with
// DBF attributes, and GeoJSON. Writes are atomic: stage outputs appear
// whole or not at all, so a crash mid-write never leaves a malformed
// collection behind. Empty collections are never materialized.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tmyeomans/RS2.1/internal/models"
)

// ErrEmptyCollection rejects attempts to write a dataset with no features;
// an absent file means "no members".
var ErrEmptyCollection = errors.New("storage: refusing to write empty collection")

// ReadDataset loads a dataset, dispatching on the file extension.
func ReadDataset(path string) (*models.FeatureCollection, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("storage: missing source dataset %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return readShapefile(path)
	case ".geojson", ".json":
		return readGeoJSON(path)
	default:
		return nil, fmt.Errorf("storage: unsupported dataset format %q", filepath.Ext(path))
	}
}

// WriteDataset writes a dataset next to its final path via a temporary
// name, renaming on completion.
func WriteDataset(path string, fc *models.FeatureCollection) error {
	if fc == nil || fc.Empty() {
		return ErrEmptyCollection
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: creating output folder: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return writeShapefile(path, fc)
	case ".geojson", ".json":
		return writeGeoJSON(path, fc)
	default:
		return fmt.Errorf("storage: unsupported dataset format %q", filepath.Ext(path))
	}
}

// Discover returns the dataset paths under root matching the doublestar
// pattern (for example "Working_Files/Stratified_lines/*.shp" or
// "**/*.shp"), sorted for deterministic iteration.
func Discover(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("storage: globbing %q: %w", pattern, err)
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, m))
	}
	sort.Strings(paths)
	return paths, nil
}

// BaseName returns the dataset name without directory or extension, the
// token stage outputs derive their names from.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
