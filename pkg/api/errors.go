package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/segment"
)

// Error codes returned in ErrorResponse.Error.
const (
	codeInvalidRequest       = "INVALID_REQUEST"
	codeBodyTooLarge         = "BODY_TOO_LARGE"
	codePlaceholderCollision = "PLACEHOLDER_COLLISION"
	codeTaggerUnavailable    = "TAGGER_UNAVAILABLE"
	codeTimeout              = "TIMEOUT"
	codeInternal             = "INTERNAL_ERROR"
)

// apiError is an HTTP status with the body to send.
type apiError struct {
	Status int
	Body   ErrorResponse
}

// mapServiceError maps masking and segmentation errors to HTTP responses.
func mapServiceError(err error) apiError {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apiError{http.StatusRequestEntityTooLarge, ErrorResponse{Error: codeBodyTooLarge, Details: err.Error()}}
	case errors.Is(err, segment.ErrPlaceholderCollision):
		return apiError{http.StatusUnprocessableEntity, ErrorResponse{Error: codePlaceholderCollision, Details: "text contains reserved placeholder characters"}}
	case errors.Is(err, masking.ErrTaggerUnavailable):
		return apiError{http.StatusServiceUnavailable, ErrorResponse{Error: codeTaggerUnavailable, Details: "entity tagger unavailable"}}
	case errors.Is(err, context.DeadlineExceeded):
		return apiError{http.StatusGatewayTimeout, ErrorResponse{Error: codeTimeout, Details: "request timed out"}}
	}

	slog.Error("Unexpected service error", "error", err)
	return apiError{http.StatusInternalServerError, ErrorResponse{Error: codeInternal, Details: "internal server error"}}
}
