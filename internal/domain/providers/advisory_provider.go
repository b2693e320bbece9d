package providers

import (
	"context"
	"errors"
)

// ErrAdvisoryEmptyAnswer is returned when the advisory backend responded
// without usable text.
var ErrAdvisoryEmptyAnswer = errors.New("advisory response missing output text")

// AdvisoryProvider answers a patient question constrained to a pre-serialized
// financial context. Implementations cross a network boundary and must honor
// context cancellation.
type AdvisoryProvider interface {
	Answer(ctx context.Context, groundingContext, question string) (string, error)
}
