package hysteresis

import (
	"testing"

	"github.com/RMahshie/bhloop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  models.Stats
	}{
		{
			name:  "constant",
			input: []float64{5, 5, 5, 5},
			want:  models.Stats{Min: 5, Max: 5, PeakToPeak: 0, RMS: 5},
		},
		{
			name:  "symmetric",
			input: []float64{-1, 1, -1, 1},
			want:  models.Stats{Min: -1, Max: 1, PeakToPeak: 2, RMS: 1},
		},
		{
			name:  "single sample",
			input: []float64{-3},
			want:  models.Stats{Min: -3, Max: -3, PeakToPeak: 0, RMS: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStats(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStats_Empty(t *testing.T) {
	_, err := ComputeStats(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ComputeStats([]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}
