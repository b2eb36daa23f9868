package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/BarCut/internal/model"
)

// ErrRejectedInput matches every *RejectedInputError via errors.Is.
var ErrRejectedInput = errors.New("rejected input")

// RejectedInputError reports input that must not reach the model builder.
// Line is the index of the offending demand line, or -1 when the problem is
// not tied to one line.
type RejectedInputError struct {
	Line        int
	Width       float64
	ParentWidth float64
	Reason      string
}

func (e *RejectedInputError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("rejected input: %s", e.Reason)
	}
	return fmt.Sprintf("rejected input: line %d: %s", e.Line+1, e.Reason)
}

func (e *RejectedInputError) Is(target error) bool {
	return target == ErrRejectedInput
}

// ValidateDemands checks the preconditions of a solve: a positive finite
// parent width, a non-empty demand list, and for each line a positive
// quantity and a positive width no larger than the parent width.
func ValidateDemands(demands []model.DemandLine, parentWidth float64) error {
	if !(parentWidth > 0) || math.IsInf(parentWidth, 0) {
		return &RejectedInputError{
			Line:        -1,
			ParentWidth: parentWidth,
			Reason:      fmt.Sprintf("parent width %g must be positive", parentWidth),
		}
	}
	if len(demands) == 0 {
		return &RejectedInputError{Line: -1, ParentWidth: parentWidth, Reason: "no demand lines"}
	}

	for i, d := range demands {
		switch {
		case d.Quantity <= 0:
			return &RejectedInputError{
				Line: i, Width: d.Width, ParentWidth: parentWidth,
				Reason: fmt.Sprintf("quantity %d must be positive", d.Quantity),
			}
		case !(d.Width > 0) || math.IsInf(d.Width, 0):
			return &RejectedInputError{
				Line: i, Width: d.Width, ParentWidth: parentWidth,
				Reason: fmt.Sprintf("width %g must be positive", d.Width),
			}
		case d.Width > parentWidth:
			return &RejectedInputError{
				Line: i, Width: d.Width, ParentWidth: parentWidth,
				Reason: fmt.Sprintf("width %g exceeds parent width %g", d.Width, parentWidth),
			}
		}
	}
	return nil
}
