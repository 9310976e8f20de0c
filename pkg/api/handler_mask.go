package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// bindText decodes a TextRequest and writes the error response on failure.
func bindText(c *gin.Context) (string, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, mapServiceError(err))
			return "", false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidRequest, Details: err.Error()})
		return "", false
	}
	return req.Text, true
}

func writeError(c *gin.Context, e apiError) {
	c.JSON(e.Status, e.Body)
}

// maskHandler handles POST /api/v1/mask.
func (s *Server) maskHandler(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "api.mask")
	defer span.End()

	text, ok := bindText(c)
	if !ok {
		return
	}

	res, err := s.masker.Mask(ctx, text)
	if err != nil {
		span.RecordError(err)
		writeError(c, mapServiceError(err))
		return
	}
	span.SetAttributes(attribute.Bool("degraded", res.Degraded))

	c.JSON(http.StatusOK, &MaskResponse{
		Masked:   res.Masked,
		Degraded: res.Degraded,
		Entities: res.Entities,
		Regex:    res.Regex,
	})
}

// segmentHandler handles POST /api/v1/segment.
func (s *Server) segmentHandler(c *gin.Context) {
	_, span := s.tracer.Start(c.Request.Context(), "api.segment")
	defer span.End()

	text, ok := bindText(c)
	if !ok {
		return
	}

	sentences, err := s.segmenter.Split(text)
	if err != nil {
		span.RecordError(err)
		writeError(c, mapServiceError(err))
		return
	}
	span.SetAttributes(attribute.Int("sentences", len(sentences)))

	c.JSON(http.StatusOK, &SegmentResponse{Sentences: sentences})
}

// segmentMaskHandler handles POST /api/v1/segment-mask.
func (s *Server) segmentMaskHandler(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "api.segment_mask")
	defer span.End()

	text, ok := bindText(c)
	if !ok {
		return
	}

	doc, err := s.masker.SegmentAndMask(ctx, text)
	if err != nil {
		span.RecordError(err)
		writeError(c, mapServiceError(err))
		return
	}

	c.JSON(http.StatusOK, &SegmentMaskResponse{
		Sentences: doc.Sentences,
		Failures:  doc.Failures,
		Units:     doc.Units,
	})
}
