package hysteresis

import (
	"fmt"
	"math"

	"github.com/RMahshie/bhloop/pkg/models"
)

// ComputeStats returns min, max, peak-to-peak and RMS of v in a single pass
func ComputeStats(v []float64) (models.Stats, error) {
	if len(v) == 0 {
		return models.Stats{}, fmt.Errorf("%w: no samples to summarise", ErrEmptyInput)
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	var sumSq float64
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
		sumSq += x * x
	}

	return models.Stats{
		Min:        lo,
		Max:        hi,
		PeakToPeak: hi - lo,
		RMS:        math.Sqrt(sumSq / float64(len(v))),
	}, nil
}
