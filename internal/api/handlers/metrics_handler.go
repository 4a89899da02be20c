// internal/api/handlers/metrics_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suqpos/backend-go/internal/export"
	"github.com/suqpos/backend-go/internal/service"
)

type MetricsHandler struct {
	metrics  *service.MetricsService
	reporter *export.Reporter
}

func NewMetricsHandler(metrics *service.MetricsService, reporter *export.Reporter) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, reporter: reporter}
}

// GetSnapshot computes the full metrics set for the requested period.
func (h *MetricsHandler) GetSnapshot(c *gin.Context) {
	period, start, end, err := parsePeriodQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	snap, err := h.metrics.Snapshot(c.Request.Context(), period, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetTimeSeries returns the chart buckets for week, month or year.
func (h *MetricsHandler) GetTimeSeries(c *gin.Context) {
	period, _, _, err := parsePeriodQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	points, err := h.metrics.TimeSeries(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": period, "points": points})
}

// ExportReport renders the snapshot as CSV. When object storage is
// configured the report is uploaded and its object name returned;
// otherwise the CSV body is served directly.
func (h *MetricsHandler) ExportReport(c *gin.Context) {
	period, start, end, err := parsePeriodQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	snap, err := h.metrics.Snapshot(c.Request.Context(), period, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	object, payload, err := h.reporter.Export(c.Request.Context(), snap)
	if err != nil {
		respondError(c, err)
		return
	}

	if object != "" {
		c.JSON(http.StatusOK, gin.H{"object": object, "size": len(payload)})
		return
	}

	filename := fmt.Sprintf("metrics-%s.csv", period)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}
