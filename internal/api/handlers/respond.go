// internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/domain"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// respondError maps domain errors onto HTTP statuses. Validation problems
// are the caller's fault, integrity refusals are conflicts, a failed
// composite fetch means an upstream source was unavailable.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsIntegrity(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsCompositeFetch(err):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("upstream fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.NewValidationError("invalid date %q, want RFC3339 or YYYY-MM-DD", raw)
	}
	return &t, nil
}

// parsePeriodQuery reads period plus the optional custom bounds.
func parsePeriodQuery(c *gin.Context) (domain.Period, *time.Time, *time.Time, error) {
	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		return "", nil, nil, err
	}
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		return "", nil, nil, err
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		return "", nil, nil, err
	}
	return period, start, end, nil
}
