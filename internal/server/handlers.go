package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Simon-Lee-UK/air-pollution/internal/heatmap"
	"github.com/Simon-Lee-UK/air-pollution/internal/log"
	"github.com/Simon-Lee-UK/air-pollution/internal/summary"
)

// Heatmap titles, matching the batch outputs.
const (
	measurementTitle = "Available Measurement Columns per Year"
	statusTitle      = "Unique Status Column Values per Year"
	unitTitle        = "Unique Unit Column Values per Year"
)

// yearRange resolves the requested start/end years, defaulting to the
// configured span ending at the most recent complete year.
func (s *Server) yearRange(c *gin.Context) (start, end int, ok bool) {
	end = time.Now().Year() - 1
	start = end - (s.cfg.YearSpan - 1)

	if v := c.Query("start"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start year"})
			return 0, 0, false
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end year"})
			return 0, 0, false
		}
		end = parsed
	}
	if end < start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end year precedes start year"})
		return 0, 0, false
	}
	return start, end, true
}

func yearsBetween(start, end int) []int {
	years := make([]int, 0, end-start+1)
	for year := start; year <= end; year++ {
		years = append(years, year)
	}
	return years
}

func (s *Server) runSummary(c *gin.Context) (*summary.Result, string, bool) {
	siteID := c.Param("site_id")
	start, end, ok := s.yearRange(c)
	if !ok {
		return nil, "", false
	}

	runID := uuid.NewString()
	log.Infof("summary run %s: site=%s years=%d-%d", runID, siteID, start, end)

	result, err := s.inspector.Build(c.Request.Context(), siteID, yearsBetween(start, end))
	if err != nil {
		if errors.Is(err, summary.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"run_id": runID, "error": err.Error()})
			return nil, "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"run_id": runID, "error": err.Error()})
		return nil, "", false
	}
	return result, runID, true
}

func (s *Server) handleSummary(c *gin.Context) {
	result, runID, ok := s.runSummary(c)
	if !ok {
		return
	}

	retrieved := make([]int, 0, len(result.Years))
	for _, yd := range result.Years {
		retrieved = append(retrieved, yd.Year)
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":          runID,
		"site_id":         result.SiteID,
		"retrieved_years": retrieved,
		"measurements":    result.Measurements,
		"status":          result.StatusDetail,
		"unit":            result.UnitDetail,
		"status_counts":   result.StatusCounts,
		"unit_counts":     result.UnitCounts,
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	siteID := c.Param("site_id")
	start, end, ok := s.yearRange(c)
	if !ok {
		return
	}

	runID := uuid.NewString()
	log.Infof("preview run %s: site=%s years=%d-%d", runID, siteID, start, end)

	preview, err := s.inspector.Preview(c.Request.Context(), siteID, start, end)
	if err != nil {
		if errors.Is(err, summary.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"run_id": runID, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"run_id": runID, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      runID,
		"site_id":     preview.SiteID,
		"sample_year": preview.SampleYear,
		"valid_years": preview.ValidYears,
		"columns":     preview.Sample.Columns,
		"rows":        preview.Sample.Rows,
	})
}

func (s *Server) handleHeatmap(c *gin.Context) {
	kind := c.Param("kind")
	if kind != "measurements" && kind != "status" && kind != "unit" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of measurements, status, unit"})
		return
	}

	result, _, ok := s.runSummary(c)
	if !ok {
		return
	}

	var svg []byte
	switch kind {
	case "measurements":
		svg = heatmap.Presence(result.Measurements, measurementTitle)
	case "status":
		svg = heatmap.Counts(result.StatusCounts, statusTitle)
	case "unit":
		svg = heatmap.Counts(result.UnitCounts, unitTitle)
	}

	c.Data(http.StatusOK, "image/svg+xml", svg)
}
