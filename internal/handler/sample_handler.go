package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/repository"
	"github.com/tmyeomans/RS2.1/internal/spatial"
	"github.com/tmyeomans/RS2.1/internal/storage"
	"github.com/tmyeomans/RS2.1/pkg/response"
)

// SampleHandler serves the sample units and strata of a run
type SampleHandler struct {
	samples *repository.SampleRepository
}

// NewSampleHandler creates a new sample handler
func NewSampleHandler(samples *repository.SampleRepository) *SampleHandler {
	return &SampleHandler{samples: samples}
}

// GetSamples returns the sample points of a run as GeoJSON
// GET /api/v1/runs/:id/samples
func (h *SampleHandler) GetSamples(c *gin.Context) {
	units, err := h.samples.UnitsByRun(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to load sample units")
		return
	}
	if len(units) == 0 {
		response.NotFound(c, "No samples recorded for this run")
		return
	}

	fc := models.NewFeatureCollection(models.GeomPoint)
	for _, u := range units {
		f := models.NewFeature()
		f.Point = spatial.Point{X: u.X, Y: u.Y}
		f.SetAttr("stratum", u.Stratum)
		f.SetAttr("provenance_id", u.ProvenanceID)
		f.SetAttr("fraction", u.Fraction)
		fc.Add(f)
	}

	c.JSON(200, storage.ToGeoJSON(fc))
}

// GetStrata returns the materialized stratum datasets of a run
// GET /api/v1/runs/:id/strata
func (h *SampleHandler) GetStrata(c *gin.Context) {
	strata, err := h.samples.StrataByRun(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to load strata")
		return
	}

	response.Success(c, gin.H{
		"data":  strata,
		"count": len(strata),
	})
}
