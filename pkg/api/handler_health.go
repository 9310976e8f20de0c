package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/contractmask/pkg/database"
	"github.com/codeready-toolchain/contractmask/pkg/version"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusDegraded  = "degraded"
	healthStatusUnhealthy = "unhealthy"
)

// healthHandler handles GET /health. Only the service's own components are
// checked; the entity tagger is external and a tagger outage degrades
// masking instead of failing it.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := healthStatusHealthy
	checks := make(map[string]HealthCheck)

	if s.db != nil {
		dbHealth, err := database.Health(ctx, s.db)
		if err != nil {
			// The ledger is auxiliary; masking keeps working without it.
			status = healthStatusDegraded
			checks["database"] = HealthCheck{Status: healthStatusUnhealthy, Message: err.Error()}
		} else {
			checks["database"] = HealthCheck{Status: healthStatusHealthy, Database: dbHealth}
		}
	}

	stats := s.cfg.Stats()
	c.JSON(http.StatusOK, &HealthResponse{
		Status:  status,
		Version: version.GitCommit,
		Checks:  checks,
		Configuration: ConfigurationStats{
			Rules:         s.masker.Registry().Len(),
			Abbreviations: stats.Abbreviations,
			TaggerEnabled: s.masker.TaggerEnabled(),
		},
	})
}
