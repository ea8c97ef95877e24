package config

import (
	"os"
	"strconv"
)

// Config holds every tunable the sampling pipelines use, collected in one
// place so each stage receives an explicit configuration instead of
// reaching for globals.
type Config struct {
	// Folders
	RootFolder    string // root of the sampling workspace
	SourceFolder  string // input datasets, under RootFolder
	WorkingFolder string // stage outputs, under RootFolder

	// Source dataset names (relative to SourceFolder)
	LinesFile   string // linear disturbance centrelines
	EcositeFile string // ecosite polygons with gridcode
	GridFile    string // systematic sampling grid with GRID_ID
	SHLFile     string // surface hole locations (well pads)

	// Digitized footprint polygons consumed by the matrix pipeline
	FootprintsFile string

	// Sampling quotas
	LineSampleTarget int // random points per line stratum
	PadSampleTarget  int // pads per grid/ecosite partition

	// Matrix plot geometry
	PlotRadius      float64 // 5.642 m gives a ~100 m2 circular plot
	PadPlotRadius   float64 // pad plot buffer, 5.6419 in the field protocol
	RingInner       float64 // inner edge of the wellpad matrix ring
	RingOuter       float64 // outer edge of the wellpad matrix ring
	BearingLength   float64 // overshoot of the perpendicular bearing line
	ExtensionLength float64 // distance past the footprint edge to the plot centre

	EPSG int // target coordinate system, UTM zone 12N

	Seed int64 // sampling seed; 0 means derive from the clock

	// Registry and API
	DBPath    string
	Port      string
	JWTSecret string
}

// Load builds a Config from environment variables, falling back to the
// field-protocol defaults.
func Load() *Config {
	return &Config{
		RootFolder:    getenv("SAMPLER_ROOT", "./Samples"),
		SourceFolder:  getenv("SAMPLER_SOURCE", "Source_files"),
		WorkingFolder: getenv("SAMPLER_WORKING", "Working_Files"),

		LinesFile:   getenv("SAMPLER_LINES", "lines.shp"),
		EcositeFile: getenv("SAMPLER_ECOSITES", "ecosites.shp"),
		GridFile:    getenv("SAMPLER_GRID", "grid.shp"),
		SHLFile:     getenv("SAMPLER_SHL", "shl.shp"),

		FootprintsFile: getenv("SAMPLER_FOOTPRINTS", "footprints.shp"),

		LineSampleTarget: getenvInt("SAMPLER_LINE_TARGET", 30),
		PadSampleTarget:  getenvInt("SAMPLER_PAD_TARGET", 5),

		PlotRadius:      getenvFloat("SAMPLER_PLOT_RADIUS", 5.642),
		PadPlotRadius:   getenvFloat("SAMPLER_PAD_PLOT_RADIUS", 5.6419),
		RingInner:       getenvFloat("SAMPLER_RING_INNER", 24),
		RingOuter:       getenvFloat("SAMPLER_RING_OUTER", 26),
		BearingLength:   getenvFloat("SAMPLER_BEARING_LENGTH", 100),
		ExtensionLength: getenvFloat("SAMPLER_EXTENSION", 25),

		EPSG: getenvInt("SAMPLER_EPSG", 26912),

		Seed: int64(getenvInt("SAMPLER_SEED", 0)),

		DBPath:    getenv("DB_PATH", "./data/sampling/runs.db"),
		Port:      getenv("PORT", ":8080"),
		JWTSecret: getenv("JWT_SECRET", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
