package tagger

import (
	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// Wire format shared by the HTTP and gRPC transports.
//
//	detect:       {"text": "..."}      -> {"spans": [{"label","start","end","score"}]}
//	detect batch: {"texts": ["..."]}   -> {"results": [{"spans": [...]}]}

type detectRequest struct {
	Text string `json:"text"`
}

type detectBatchRequest struct {
	Texts []string `json:"texts"`
}

type wireSpan struct {
	Label string  `json:"label"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score,omitempty"`
}

type detectResponse struct {
	Spans []wireSpan `json:"spans"`
}

type detectBatchResponse struct {
	Results []detectResponse `json:"results"`
}

// toSpans converts wire spans over text, translating rune offsets when the
// tagger reports them.
func toSpans(text string, in []wireSpan, unit config.OffsetUnit) []models.EntitySpan {
	if len(in) == 0 {
		return nil
	}
	spans := make([]models.EntitySpan, len(in))
	for i, ws := range in {
		spans[i] = models.EntitySpan{
			Label:      ParseLabel(ws.Label),
			Start:      ws.Start,
			End:        ws.End,
			Confidence: ws.Score,
		}
	}
	if unit == config.OffsetUnitRune {
		spans = RuneToByteOffsets(text, spans)
	}
	return spans
}
