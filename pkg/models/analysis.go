package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Analysis is the outcome of running one acquisition through the pipeline
type Analysis struct {
	ID           string             `json:"id" doc:"Analysis unique identifier"`
	CaptureID    string             `json:"capture_id,omitempty" doc:"Source capture, when analyzed from object storage"`
	SampleRateHz int                `json:"sample_rate_hz" doc:"Sample rate used for integration [Hz]"`
	Samples      int                `json:"samples" doc:"Samples per channel"`
	Parameters   PhysicalParameters `json:"parameters" doc:"Physical parameters used for scaling"`

	// Statistics of the integrated CH0 and the raw CH1
	StatsCH0 Stats `json:"stats_ch0" doc:"Statistics of the integrated induction channel"`
	StatsCH1 Stats `json:"stats_ch1" doc:"Statistics of the shunt channel"`

	Loop    LoopResult `json:"loop" doc:"Reconstructed hysteresis loop"`
	Outline []Point    `json:"outline" doc:"Closed loop path (rising then falling reversed)"`
	BrFound bool       `json:"br_found" doc:"Whether the rising branch crosses H = 0"`
	HcFound bool       `json:"hc_found" doc:"Whether the rising branch crosses B = 0"`

	// Decimated time series for the time chart, x is the plot index
	TimeSeriesCH0 []Point `json:"time_series_ch0" doc:"Decimated integrated CH0"`
	TimeSeriesCH1 []Point `json:"time_series_ch1" doc:"Decimated CH1"`

	CreatedAt time.Time `json:"created_at" doc:"Analysis timestamp"`
}

// AnalyzeRequestBody carries one completed acquisition
type AnalyzeRequestBody struct {
	CH0          []float64           `json:"ch0" minItems:"2" maxItems:"10000" required:"true" doc:"Raw sense coil voltages"`
	CH1          []float64           `json:"ch1" minItems:"2" maxItems:"10000" required:"true" doc:"Raw shunt voltages"`
	SampleRateHz int                 `json:"sample_rate_hz,omitempty" minimum:"0" doc:"Sample rate [Hz], configured default when omitted"`
	Parameters   *PhysicalParameters `json:"parameters,omitempty" doc:"Physical parameters, configured default when omitted"`
}

// AnalyzeRequest represents a request to analyze an acquisition sent inline
type AnalyzeRequest struct {
	Body AnalyzeRequestBody
}

// AnalyzeResponse returns the full analysis
type AnalyzeResponse struct {
	Body *Analysis
}

// CreateCaptureRequest represents a request for a capture upload slot
type CreateCaptureRequest struct {
	Body struct {
		ContentType string `json:"content_type" enum:"text/csv,text/plain" default:"text/csv" doc:"Capture file MIME type"`
	} `required:"false"`
}

// CreateCaptureResponseBody is the body of the create capture response
type CreateCaptureResponseBody struct {
	ID        string `json:"id" doc:"Capture unique identifier"`
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for file upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateCaptureResponse represents the response from creating a capture slot
type CreateCaptureResponse struct {
	Body CreateCaptureResponseBody
}

// AnalyzeCaptureRequest represents a request to analyze an uploaded capture
type AnalyzeCaptureRequest struct {
	ID   string                    `path:"id" doc:"Capture ID"`
	Body AnalyzeCaptureRequestBody `required:"false"`
}

// AnalyzeCaptureRequestBody overrides the configured defaults for one capture
type AnalyzeCaptureRequestBody struct {
	SampleRateHz int                 `json:"sample_rate_hz,omitempty" minimum:"0" doc:"Sample rate [Hz], configured default when omitted"`
	Parameters   *PhysicalParameters `json:"parameters,omitempty" doc:"Physical parameters, configured default when omitted"`
}

// AcquisitionDefaultsResponseBody is the body of the defaults response
type AcquisitionDefaultsResponseBody struct {
	Acquisition AcquisitionConfig  `json:"acquisition" doc:"Configured acquisition settings"`
	Parameters  PhysicalParameters `json:"parameters" doc:"Configured physical parameters"`
}

// AcquisitionDefaultsResponse returns the configured defaults
type AcquisitionDefaultsResponse struct {
	Body AcquisitionDefaultsResponseBody
}
