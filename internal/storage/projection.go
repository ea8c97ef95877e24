package storage

import (
	"os"
	"strings"
)

// epsg is the coordinate system stamped on written shapefiles. Zero means
// no .prj sidecar is emitted.
var epsg int

// SetEPSG selects the coordinate system for subsequent shapefile writes.
func SetEPSG(code int) {
	epsg = code
}

// prjByEPSG holds the ESRI WKT for the coordinate systems this workflow
// targets. Inputs are expected already projected; nothing reprojects.
var prjByEPSG = map[int]string{
	// NAD83 / UTM zone 12N
	26912: `PROJCS["NAD_1983_UTM_Zone_12N",GEOGCS["GCS_North_American_1983",DATUM["D_North_American_1983",SPHEROID["GRS_1980",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",0.0],PARAMETER["Central_Meridian",-111.0],PARAMETER["Scale_Factor",0.9996],PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`,
}

// writeProjection emits the .prj sidecar next to a committed shapefile
// when the configured EPSG code is known.
func writeProjection(shpPath string) {
	wkt, ok := prjByEPSG[epsg]
	if !ok {
		return
	}
	prj := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	// A failed sidecar write never fails the dataset write.
	_ = os.WriteFile(prj, []byte(wkt), 0o644)
}
