package api

import (
	"github.com/codeready-toolchain/contractmask/pkg/database"
	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MaskResponse is returned by POST /api/v1/mask.
type MaskResponse struct {
	Masked   string            `json:"masked"`
	Degraded bool              `json:"degraded,omitempty"`
	Entities masking.MaskStats `json:"entities"`
	Regex    masking.Report    `json:"regex"`
}

// SegmentResponse is returned by POST /api/v1/segment.
type SegmentResponse struct {
	Sentences []models.Sentence `json:"sentences"`
}

// SegmentMaskResponse is returned by POST /api/v1/segment-mask.
type SegmentMaskResponse struct {
	Sentences []models.Sentence    `json:"sentences"`
	Failures  []models.UnitFailure `json:"failures,omitempty"`
	Units     int                  `json:"units"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string                 `json:"status"`
	Version       string                 `json:"version"`
	Checks        map[string]HealthCheck `json:"checks,omitempty"`
	Configuration ConfigurationStats     `json:"configuration"`
}

// HealthCheck is the state of one component.
type HealthCheck struct {
	Status   string                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Database *database.HealthStatus `json:"database,omitempty"`
}

// ConfigurationStats contains counts of loaded configuration items.
type ConfigurationStats struct {
	Rules         int  `json:"rules"`
	Abbreviations int  `json:"abbreviations"`
	TaggerEnabled bool `json:"tagger_enabled"`
}
