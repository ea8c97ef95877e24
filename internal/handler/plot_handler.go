package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/repository"
	"github.com/tmyeomans/RS2.1/internal/spatial"
	"github.com/tmyeomans/RS2.1/internal/storage"
	"github.com/tmyeomans/RS2.1/pkg/response"
)

// PlotHandler serves the matrix plots of a run
type PlotHandler struct {
	plots *repository.PlotRepository
}

// NewPlotHandler creates a new plot handler
func NewPlotHandler(plots *repository.PlotRepository) *PlotHandler {
	return &PlotHandler{plots: plots}
}

// GetPlots returns the plot centres of a run as GeoJSON
// GET /api/v1/runs/:id/plots
func (h *PlotHandler) GetPlots(c *gin.Context) {
	plots, err := h.plots.PlotsByRun(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to load plots")
		return
	}
	if len(plots) == 0 {
		response.NotFound(c, "No plots recorded for this run")
		return
	}

	fc := models.NewFeatureCollection(models.GeomPoint)
	for _, p := range plots {
		f := models.NewFeature()
		f.Point = spatial.Point{X: p.X, Y: p.Y}
		f.SetAttr(models.FieldID, p.PlotID)
		f.SetAttr(models.FieldEndType, p.EndType)
		f.SetAttr("radius", p.Radius)
		fc.Add(f)
	}

	c.JSON(200, storage.ToGeoJSON(fc))
}
