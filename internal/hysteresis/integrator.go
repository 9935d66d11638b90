package hysteresis

import (
	"fmt"
	"math"
)

// IntegratorTau is the time constant of the emulated RC integrator: 800 ohm * 470 nF.
const IntegratorTau = 800.0 * 470e-9

// Integrate runs samples through a first-order RC low-pass discretized with the
// trapezoidal rule:
//
//	y[n] = a*y[n-1] + b*(x[n] + x[n-1])
//	a = (2tau - dt) / (2tau + dt),  b = dt / (2tau + dt)
//
// Filter state starts at rest on every call.
func Integrate(samples []float64, sampleRateHz int) ([]float64, error) {
	if sampleRateHz <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, sampleRateHz)
	}

	dt := 1.0 / float64(sampleRateHz)
	a := (2*IntegratorTau - dt) / (2*IntegratorTau + dt)
	b := dt / (2*IntegratorTau + dt)

	out := make([]float64, len(samples))
	var yPrev, xPrev float64
	for i, x := range samples {
		if !isFinite(x) {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalidInput, i)
		}
		y := a*yPrev + b*(x+xPrev)
		if !isFinite(y) {
			return nil, fmt.Errorf("%w: integrated sample %d overflows", ErrInvalidInput, i)
		}
		out[i] = y
		yPrev = y
		xPrev = x
	}

	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
