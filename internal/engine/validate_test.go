package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/model"
)

func TestValidateDemands(t *testing.T) {
	tests := []struct {
		name        string
		demands     []model.DemandLine
		parentWidth float64
		wantLine    int
	}{
		{"width exceeds parent", lines(1, 150), 100, 0},
		{"second line too wide", lines(2, 50, 1, 101), 100, 1},
		{"zero quantity", lines(0, 50), 100, 0},
		{"negative width", lines(1, -5), 100, 0},
		{"NaN width", []model.DemandLine{{Quantity: 1, Width: math.NaN()}}, 100, 0},
		{"empty demand", nil, 100, -1},
		{"zero parent width", lines(1, 50), 0, -1},
		{"infinite parent width", lines(1, 50), math.Inf(1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDemands(tt.demands, tt.parentWidth)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRejectedInput))

			var rejected *RejectedInputError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tt.wantLine, rejected.Line)
		})
	}
}

func TestValidateDemands_AcceptsWidthEqualToParent(t *testing.T) {
	assert.NoError(t, ValidateDemands(lines(1, 100, 2, 50), 100))
}

func TestRejectedInputError_Message(t *testing.T) {
	err := ValidateDemands(lines(1, 150), 100)
	require.Error(t, err)
	assert.Equal(t, "rejected input: line 1: width 150 exceeds parent width 100", err.Error())
}
