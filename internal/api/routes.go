package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/bhloop/internal/api/handlers"
	"github.com/RMahshie/bhloop/internal/processing"
	"github.com/RMahshie/bhloop/internal/storage"
	"github.com/RMahshie/bhloop/pkg/models"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, s3Service storage.S3Service, processingSvc processing.ProcessingService, acquisition models.AcquisitionConfig, physical models.PhysicalParameters) {
	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(s3Service, processingSvc, acquisition, physical)

	huma.Register(api, huma.Operation{
		OperationID: "getAcquisitionDefaults",
		Method:      http.MethodGet,
		Path:        "/api/acquisition/defaults",
		Summary:     "Get acquisition defaults",
		Description: "Returns the configured acquisition settings and physical parameters",
		Tags:        []string{"Acquisition"},
	}, analysisHandler.GetAcquisitionDefaults)

	// Register analysis routes
	huma.Register(api, huma.Operation{
		OperationID: "analyze",
		Method:      http.MethodPost,
		Path:        "/api/analyses",
		Summary:     "Analyze an acquisition",
		Description: "Integrates CH0, reconstructs the B-H loop and returns Bsat, Br and Hc",
		Tags:        []string{"Analysis"},
	}, analysisHandler.Analyze)

	huma.Register(api, huma.Operation{
		OperationID: "createCapture",
		Method:      http.MethodPost,
		Path:        "/api/captures",
		Summary:     "Create a capture",
		Description: "Returns a pre-signed URL for uploading a two-channel CSV capture",
		Tags:        []string{"Capture"},
	}, analysisHandler.CreateCapture)

	huma.Register(api, huma.Operation{
		OperationID: "analyzeCapture",
		Method:      http.MethodPost,
		Path:        "/api/captures/{id}/analysis",
		Summary:     "Analyze an uploaded capture",
		Description: "Downloads the capture from object storage and runs it through the pipeline",
		Tags:        []string{"Capture"},
	}, analysisHandler.AnalyzeCapture)
}
