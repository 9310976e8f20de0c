package api

// TextRequest is the body of every masking endpoint.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}
