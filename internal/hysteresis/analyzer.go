package hysteresis

import (
	"fmt"
	"math"

	"github.com/RMahshie/bhloop/pkg/models"
)

// Options controls plot density and branch resolution
type Options struct {
	TargetPlotPoints int
	Bins             int
}

// DefaultOptions returns a 10 000 point budget and 150 bins
func DefaultOptions() Options {
	return Options{
		TargetPlotPoints: DefaultTargetPlotPoints,
		Bins:             DefaultBins,
	}
}

// Result is the analyzer output for one acquisition
type Result struct {
	// Integrated is CH0 after integration, the x signal of the loop
	Integrated []float64
	Loop       *models.LoopResult
	BrFound    bool
	HcFound    bool
}

// Analyzer extracts Bsat, Br and Hc from a completed acquisition
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates an analyzer. Zero fields fall back to the defaults.
func NewAnalyzer(opts Options) *Analyzer {
	def := DefaultOptions()
	if opts.TargetPlotPoints == 0 {
		opts.TargetPlotPoints = def.TargetPlotPoints
	}
	if opts.Bins == 0 {
		opts.Bins = def.Bins
	}
	return &Analyzer{opts: opts}
}

// Options returns the settings the analyzer runs with
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze integrates ch0, reconstructs the loop against ch1 and derives the
// scalars. Br and Hc are read from the rising branch only.
func (a *Analyzer) Analyze(ch0, ch1 []float64, sampleRateHz int, params models.PhysicalParameters) (*Result, error) {
	hScale, err := HScale(params)
	if err != nil {
		return nil, err
	}
	bScale, err := BScale(params)
	if err != nil {
		return nil, err
	}
	if len(ch0) != len(ch1) {
		return nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)", ErrInvalidInput, len(ch0), len(ch1))
	}
	if a.opts.TargetPlotPoints < 1 {
		return nil, fmt.Errorf("%w: target plot points must be at least 1, got %d", ErrInvalidInput, a.opts.TargetPlotPoints)
	}

	integrated, err := Integrate(ch0, sampleRateHz)
	if err != nil {
		return nil, fmt.Errorf("failed to integrate ch0: %w", err)
	}

	stride := DecimationStride(len(integrated), a.opts.TargetPlotPoints)
	loop, err := Reconstruct(integrated, ch1, stride, a.opts.Bins)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct loop: %w", err)
	}

	for _, branch := range []models.BranchCurve{loop.Rising, loop.Falling} {
		for _, p := range branch {
			loop.Bsat = math.Max(loop.Bsat, math.Abs(p.Y*bScale))
		}
	}

	br, brFound := LookupAtX(loop.Rising, 0)
	hc, hcFound := LookupAtY(loop.Rising, 0)
	loop.Br = br * bScale
	loop.Hc = hc * hScale
	if !isFinite(loop.Bsat) || !isFinite(loop.Br) || !isFinite(loop.Hc) {
		return nil, fmt.Errorf("%w: scaled loop figures overflow", ErrInvalidInput)
	}

	return &Result{
		Integrated: integrated,
		Loop:       loop,
		BrFound:    brFound,
		HcFound:    hcFound,
	}, nil
}
