package ocr

import (
	"context"
	"errors"
	"strings"
)

// DefaultHybridThreshold is the confidence the secondary engine must
// exceed to be preferred.
const DefaultHybridThreshold = 0.6

// Hybrid runs a primary and a secondary engine on the same image. The
// secondary result wins when it is non-empty and its confidence exceeds
// Threshold; otherwise the primary result is returned. When the primary
// fails, any usable secondary result is returned instead.
type Hybrid struct {
	Primary   Recognizer
	Secondary Recognizer
	Threshold float64
}

// NewHybrid creates a hybrid recognizer with the default threshold.
func NewHybrid(primary, secondary Recognizer) *Hybrid {
	return &Hybrid{Primary: primary, Secondary: secondary, Threshold: DefaultHybridThreshold}
}

// Recognize implements Recognizer.
func (h *Hybrid) Recognize(ctx context.Context, image []byte, languages []string) (Result, error) {
	primary, perr := h.Primary.Recognize(ctx, image, languages)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	secondary, serr := h.Secondary.Recognize(ctx, image, languages)
	if serr == nil && strings.TrimSpace(secondary.Text) != "" {
		if secondary.Confidence > h.Threshold || perr != nil {
			return secondary, nil
		}
	}

	if perr != nil {
		if serr != nil {
			return Result{}, errors.Join(perr, serr)
		}
		return Result{}, perr
	}
	return primary, nil
}
