package models

import "math"

// Acquisition limits of the bench
const (
	DefaultSampleRateHz     = 10_000
	DefaultBufferSize       = 4000
	DefaultAcquisitionTime  = 0.4
	DefaultInputRangeV      = 25.0
	DefaultTargetPlotPoints = 10_000
	DefaultLoopBins         = 150

	MinBufferSize      = 100
	MaxBufferSize      = 10_000
	MinAcquisitionTime = 0.01
	MaxAcquisitionTime = 10.0
)

// AcquisitionConfig holds the capture settings handed to the acquisition device
// and the plot density settings used when reconstructing the loop.
type AcquisitionConfig struct {
	SampleRateHz     int     `json:"sample_rate_hz" doc:"Sample rate [Hz]"`
	BufferSize       int     `json:"buffer_size" doc:"Samples per channel"`
	AcquisitionTime  float64 `json:"acquisition_time" doc:"Capture duration [s]"`
	InputRangeV      float64 `json:"input_range_v" doc:"Analog input range [V]"`
	TargetPlotPoints int     `json:"target_plot_points" doc:"Plot point budget driving the decimation stride"`
	Bins             int     `json:"bins" doc:"Number of bins per loop branch"`
}

// DefaultAcquisitionConfig returns 10 kHz, 4000 samples (0.4 s) at +-25 V
func DefaultAcquisitionConfig() AcquisitionConfig {
	return AcquisitionConfig{
		SampleRateHz:     DefaultSampleRateHz,
		BufferSize:       DefaultBufferSize,
		AcquisitionTime:  DefaultAcquisitionTime,
		InputRangeV:      DefaultInputRangeV,
		TargetPlotPoints: DefaultTargetPlotPoints,
		Bins:             DefaultLoopBins,
	}
}

// BufferFromTime returns the number of samples needed to cover AcquisitionTime
func (c AcquisitionConfig) BufferFromTime() int {
	return int(math.Round(c.AcquisitionTime * float64(c.SampleRateHz)))
}

// TimeFromBuffer returns the capture duration implied by BufferSize.
// Zero when the sample rate is not positive.
func (c AcquisitionConfig) TimeFromBuffer() float64 {
	if c.SampleRateHz <= 0 {
		return 0
	}
	return float64(c.BufferSize) / float64(c.SampleRateHz)
}
