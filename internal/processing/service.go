package processing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/bhloop/internal/capture"
	"github.com/RMahshie/bhloop/internal/hysteresis"
	"github.com/RMahshie/bhloop/internal/publish"
	"github.com/RMahshie/bhloop/internal/storage"
	"github.com/RMahshie/bhloop/pkg/models"
)

// Input is one acquisition to analyze. Zero SampleRateHz and nil Parameters
// fall back to the configured defaults.
type Input struct {
	CH0          []float64
	CH1          []float64
	SampleRateHz int
	Parameters   *models.PhysicalParameters
	CaptureID    string
}

type ProcessingService interface {
	Analyze(ctx context.Context, in Input) (*models.Analysis, error)
	AnalyzeCapture(ctx context.Context, captureID string, sampleRateHz int, params *models.PhysicalParameters) (*models.Analysis, error)
}

type processingService struct {
	s3          storage.S3Service
	publisher   publish.Publisher
	analyzer    *hysteresis.Analyzer
	acquisition models.AcquisitionConfig
	physical    models.PhysicalParameters
}

func NewProcessingService(s3Service storage.S3Service, publisher publish.Publisher, acquisition models.AcquisitionConfig, physical models.PhysicalParameters) ProcessingService {
	return &processingService{
		s3:        s3Service,
		publisher: publisher,
		analyzer: hysteresis.NewAnalyzer(hysteresis.Options{
			TargetPlotPoints: acquisition.TargetPlotPoints,
			Bins:             acquisition.Bins,
		}),
		acquisition: acquisition,
		physical:    physical,
	}
}

func (s *processingService) Analyze(ctx context.Context, in Input) (*models.Analysis, error) {
	analysisID := uuid.New().String()

	sampleRate := in.SampleRateHz
	if sampleRate == 0 {
		sampleRate = s.acquisition.SampleRateHz
	}
	params := s.physical
	if in.Parameters != nil {
		params = *in.Parameters
	}

	logger := log.With().Str("analysisID", analysisID).Str("captureID", in.CaptureID).Logger()
	logger.Info().Int("samples", len(in.CH0)).Int("sampleRateHz", sampleRate).Msg("Analyzing acquisition")

	// Step 1: Integrate CH0 and reconstruct the loop
	res, err := s.analyzer.Analyze(in.CH0, in.CH1, sampleRate, params)
	if err != nil {
		logger.Warn().Err(err).Msg("Analysis rejected")
		return nil, err
	}

	// Step 2: Channel statistics over integrated CH0 and raw CH1
	statsCH0, err := hysteresis.ComputeStats(res.Integrated)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ch0 statistics: %w", err)
	}
	statsCH1, err := hysteresis.ComputeStats(in.CH1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ch1 statistics: %w", err)
	}

	target := s.analyzer.Options().TargetPlotPoints
	analysis := &models.Analysis{
		ID:            analysisID,
		CaptureID:     in.CaptureID,
		SampleRateHz:  sampleRate,
		Samples:       len(in.CH0),
		Parameters:    params,
		StatsCH0:      statsCH0,
		StatsCH1:      statsCH1,
		Loop:          *res.Loop,
		Outline:       res.Loop.Outline(),
		BrFound:       res.BrFound,
		HcFound:       res.HcFound,
		TimeSeriesCH0: hysteresis.DecimateSeries(res.Integrated, target),
		TimeSeriesCH1: hysteresis.DecimateSeries(in.CH1, target),
		CreatedAt:     time.Now(),
	}

	logger.Info().
		Int("scatter", len(analysis.Loop.Scatter)).
		Int("rising", len(analysis.Loop.Rising)).
		Int("falling", len(analysis.Loop.Falling)).
		Float64("bsat", analysis.Loop.Bsat).
		Float64("br", analysis.Loop.Br).
		Float64("hc", analysis.Loop.Hc).
		Bool("brFound", analysis.BrFound).
		Bool("hcFound", analysis.HcFound).
		Msg("Analysis complete")

	// Step 3: Hand the result to presentation; a failed publish does not fail the analysis
	if err := s.publisher.Publish(ctx, analysis); err != nil {
		logger.Error().Err(err).Msg("Failed to publish analysis")
	}

	return analysis, nil
}

func (s *processingService) AnalyzeCapture(ctx context.Context, captureID string, sampleRateHz int, params *models.PhysicalParameters) (*models.Analysis, error) {
	key := storage.CaptureKey(captureID)
	log.Info().Str("captureID", captureID).Str("key", key).Msg("Downloading capture")

	data, err := s.s3.DownloadFile(ctx, key)
	if err != nil {
		return nil, err
	}

	c, err := capture.DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture %s: %w", captureID, err)
	}

	return s.Analyze(ctx, Input{
		CH0:          c.CH0,
		CH1:          c.CH1,
		SampleRateHz: sampleRateHz,
		Parameters:   params,
		CaptureID:    captureID,
	})
}
