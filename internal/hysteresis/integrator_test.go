package hysteresis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate(t *testing.T) {
	t.Run("zero input stays at rest", func(t *testing.T) {
		for _, rate := range []int{1, 100, 10_000, 1_000_000} {
			out, err := Integrate(make([]float64, 500), rate)
			require.NoError(t, err)
			require.Len(t, out, 500)
			for i, y := range out {
				assert.Zero(t, y, "rate %d sample %d", rate, i)
			}
		}
	})

	t.Run("non-positive sample rate", func(t *testing.T) {
		for _, rate := range []int{0, -1, -10_000} {
			_, err := Integrate([]float64{1, 2, 3}, rate)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("non-finite sample", func(t *testing.T) {
		_, err := Integrate([]float64{0, math.NaN(), 1}, 10_000)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = Integrate([]float64{math.Inf(1)}, 10_000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("overflowing output", func(t *testing.T) {
		_, err := Integrate([]float64{1.7e308, 1.7e308, 1.7e308}, 10_000)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("impulse follows the recurrence", func(t *testing.T) {
		dt := 1.0 / 10_000
		a := (2*IntegratorTau - dt) / (2*IntegratorTau + dt)
		b := dt / (2*IntegratorTau + dt)

		out, err := Integrate([]float64{1, 0, 0, 0}, 10_000)
		require.NoError(t, err)

		assert.InDelta(t, b, out[0], 1e-15)
		assert.InDelta(t, a*b+b, out[1], 1e-15)
		assert.InDelta(t, a*(a*b+b), out[2], 1e-15)
		assert.InDelta(t, a*a*(a*b+b), out[3], 1e-15)
	})

	t.Run("unit DC gain", func(t *testing.T) {
		in := make([]float64, 2000)
		for i := range in {
			in[i] = 1
		}
		out, err := Integrate(in, 10_000)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, out[len(out)-1], 1e-9)
	})

	t.Run("no memory between calls", func(t *testing.T) {
		in := []float64{0.3, -0.1, 0.7, 0.2}
		first, err := Integrate(in, 10_000)
		require.NoError(t, err)
		_, err = Integrate([]float64{5, 5, 5}, 10_000)
		require.NoError(t, err)
		second, err := Integrate(in, 10_000)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := Integrate(nil, 10_000)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
