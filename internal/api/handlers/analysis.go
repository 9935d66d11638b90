package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/bhloop/internal/hysteresis"
	"github.com/RMahshie/bhloop/internal/processing"
	"github.com/RMahshie/bhloop/internal/storage"
	"github.com/RMahshie/bhloop/pkg/models"
)

const uploadURLExpiry = 15 * time.Minute

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	s3Service     storage.S3Service
	processingSvc processing.ProcessingService
	acquisition   models.AcquisitionConfig
	physical      models.PhysicalParameters
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(s3Service storage.S3Service, processingSvc processing.ProcessingService, acquisition models.AcquisitionConfig, physical models.PhysicalParameters) *AnalysisHandler {
	return &AnalysisHandler{
		s3Service:     s3Service,
		processingSvc: processingSvc,
		acquisition:   acquisition,
		physical:      physical,
	}
}

// Analyze runs an acquisition sent inline through the pipeline
func (h *AnalysisHandler) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	log.Info().Int("ch0", len(req.Body.CH0)).Int("ch1", len(req.Body.CH1)).Msg("Analysis request received")

	analysis, err := h.processingSvc.Analyze(ctx, processing.Input{
		CH0:          req.Body.CH0,
		CH1:          req.Body.CH1,
		SampleRateHz: req.Body.SampleRateHz,
		Parameters:   req.Body.Parameters,
	})
	if err != nil {
		return nil, toHTTPError("Failed to analyze acquisition", err)
	}

	return &models.AnalyzeResponse{Body: analysis}, nil
}

// CreateCapture returns an upload URL for a new capture
func (h *AnalysisHandler) CreateCapture(ctx context.Context, req *models.CreateCaptureRequest) (*models.CreateCaptureResponse, error) {
	captureID := uuid.New()
	key := storage.CaptureKey(captureID.String())

	contentType := req.Body.ContentType
	if contentType == "" {
		contentType = "text/csv"
	}

	log.Info().Str("captureID", captureID.String()).Str("key", key).Str("contentType", contentType).Msg("Generating capture upload URL")
	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, key, contentType)
	if err != nil {
		return nil, huma.Error400BadRequest("Failed to prepare upload. Please try again.", err)
	}

	return &models.CreateCaptureResponse{
		Body: models.CreateCaptureResponseBody{
			ID:        captureID.String(),
			UploadURL: uploadURL,
			ExpiresIn: int(uploadURLExpiry.Seconds()),
		},
	}, nil
}

// AnalyzeCapture analyzes a capture previously uploaded to object storage
func (h *AnalysisHandler) AnalyzeCapture(ctx context.Context, req *models.AnalyzeCaptureRequest) (*models.AnalyzeResponse, error) {
	log.Info().Str("captureID", req.ID).Msg("Capture analysis request received")
	captureID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid capture ID", err)
	}

	analysis, err := h.processingSvc.AnalyzeCapture(ctx, captureID.String(), req.Body.SampleRateHz, req.Body.Parameters)
	if err != nil {
		return nil, toHTTPError("Failed to analyze capture", err)
	}

	return &models.AnalyzeResponse{Body: analysis}, nil
}

// GetAcquisitionDefaults returns the configured acquisition settings and physical parameters
func (h *AnalysisHandler) GetAcquisitionDefaults(ctx context.Context, _ *struct{}) (*models.AcquisitionDefaultsResponse, error) {
	return &models.AcquisitionDefaultsResponse{
		Body: models.AcquisitionDefaultsResponseBody{
			Acquisition: h.acquisition,
			Parameters:  h.physical,
		},
	}, nil
}

// toHTTPError maps pipeline errors onto HTTP status codes
func toHTTPError(msg string, err error) error {
	switch {
	case errors.Is(err, hysteresis.ErrInvalidInput),
		errors.Is(err, hysteresis.ErrInvalidPhysicalParameters),
		errors.Is(err, hysteresis.ErrEmptyInput):
		return huma.Error422UnprocessableEntity(msg+": "+err.Error(), err)
	case errors.Is(err, storage.ErrNotFound):
		return huma.Error404NotFound("Capture not found", err)
	default:
		log.Error().Err(err).Msg(msg)
		return huma.Error500InternalServerError(msg, err)
	}
}
