// Package tagger provides clients for external named-entity taggers.
//
// A tagger returns labelled byte spans over the text it was given. The
// masking pipeline only consumes PERSON, LOCATION and ORGANIZATION spans;
// every other label is surfaced as OTHER.
package tagger

import (
	"context"
	"errors"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// ErrUnavailable wraps every transport or protocol failure of a tagger call.
var ErrUnavailable = errors.New("tagger unavailable")

// Tagger detects entity spans in a single text.
type Tagger interface {
	Detect(ctx context.Context, text string) ([]models.EntitySpan, error)
}

// BatchTagger is implemented by taggers that accept several texts per round trip.
// The result has one span slice per input text, in input order.
type BatchTagger interface {
	Tagger
	DetectBatch(ctx context.Context, texts []string) ([][]models.EntitySpan, error)
}
