package hysteresis

import (
	"fmt"
	"math"

	"github.com/RMahshie/bhloop/pkg/models"
)

const (
	// DirectionNoiseFloor is the smallest |dx| between decimated samples that still
	// counts as movement along x.
	DirectionNoiseFloor = 1e-9

	DefaultBins             = models.DefaultLoopBins
	DefaultTargetPlotPoints = models.DefaultTargetPlotPoints
)

// DecimationStride returns max(1, n/targetPlotPoints)
func DecimationStride(n, targetPlotPoints int) int {
	if targetPlotPoints <= 0 {
		return 1
	}
	return max(1, n/targetPlotPoints)
}

// DecimateSeries walks v with the stride derived from targetPlotPoints and
// returns (plot index, value) points for a time chart.
func DecimateSeries(v []float64, targetPlotPoints int) []models.Point {
	step := DecimationStride(len(v), targetPlotPoints)
	out := make([]models.Point, 0, len(v)/step+1)
	for i, p := 0, 0; i < len(v); i, p = i+step, p+1 {
		out = append(out, models.Point{X: float64(p), Y: v[i]})
	}
	return out
}

// Reconstruct turns the paired signals into a direction-classified scatter and
// two averaged branch curves. Bsat, Br and Hc are left at zero.
//
// Samples are visited with the given stride. A sample is kept when it moved at
// least DirectionNoiseFloor along x since the previous visited sample, and is
// tagged Rising or Falling by the sign of that move. Kept samples are binned
// over [xmin, xmax] with width (xmax-xmin)/(bins-1); each occupied bin yields
// one branch point at its left edge with the mean y of its samples.
func Reconstruct(xSignal, ySignal []float64, decimation, bins int) (*models.LoopResult, error) {
	if len(xSignal) != len(ySignal) {
		return nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)", ErrInvalidInput, len(xSignal), len(ySignal))
	}
	if decimation < 1 {
		return nil, fmt.Errorf("%w: decimation must be at least 1, got %d", ErrInvalidInput, decimation)
	}
	if bins < 2 {
		return nil, fmt.Errorf("%w: bins must be at least 2, got %d", ErrInvalidInput, bins)
	}
	for i := range xSignal {
		if !isFinite(xSignal[i]) || !isFinite(ySignal[i]) {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalidInput, i)
		}
	}

	result := &models.LoopResult{
		Scatter: classify(xSignal, ySignal, decimation),
		Rising:  models.BranchCurve{},
		Falling: models.BranchCurve{},
	}
	if len(result.Scatter) == 0 {
		return result, nil
	}

	result.Rising, result.Falling = average(result.Scatter, bins)
	for _, branch := range []models.BranchCurve{result.Rising, result.Falling} {
		for _, p := range branch {
			if !isFinite(p.X) || !isFinite(p.Y) {
				return nil, fmt.Errorf("%w: signal range overflows the branch average", ErrInvalidInput)
			}
		}
	}
	return result, nil
}

func classify(x, y []float64, step int) []models.ScatterPoint {
	scatter := make([]models.ScatterPoint, 0, len(x)/step)
	for i := step; i < len(x); i += step {
		dx := x[i] - x[i-step]
		if math.Abs(dx) < DirectionNoiseFloor {
			continue
		}
		dir := models.Falling
		if dx > 0 {
			dir = models.Rising
		}
		scatter = append(scatter, models.ScatterPoint{X: x[i], Y: y[i], Direction: dir})
	}
	return scatter
}

// bin accumulates y per bin for one direction
type bin struct {
	sum   float64
	count int
}

func average(scatter []models.ScatterPoint, bins int) (rising, falling models.BranchCurve) {
	xmin, xmax := scatter[0].X, scatter[0].X
	for _, p := range scatter[1:] {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
	}
	width := (xmax - xmin) / float64(bins-1)

	up := make([]bin, bins)
	down := make([]bin, bins)
	for _, p := range scatter {
		b := 0
		if width > 0 {
			f := math.Floor((p.X - xmin) / width)
			if !(f >= 0 && f < float64(bins)) {
				continue
			}
			b = int(f)
		}
		if p.Direction == models.Rising {
			up[b].sum += p.Y
			up[b].count++
		} else {
			down[b].sum += p.Y
			down[b].count++
		}
	}

	rising = models.BranchCurve{}
	falling = models.BranchCurve{}
	for i := 0; i < bins; i++ {
		x := xmin + float64(i)*width
		if up[i].count > 0 {
			rising = append(rising, models.Point{X: x, Y: up[i].sum / float64(up[i].count)})
		}
		if down[i].count > 0 {
			falling = append(falling, models.Point{X: x, Y: down[i].sum / float64(down[i].count)})
		}
	}
	return rising, falling
}
