package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/bhloop/internal/capture"
	"github.com/RMahshie/bhloop/internal/hysteresis"
	"github.com/RMahshie/bhloop/internal/storage"
	"github.com/RMahshie/bhloop/pkg/models"
)

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockPublisher implements publish.Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockPublisher) Close() {}

// generateLoop returns a 50 Hz excitation sampled at 10 kHz over two periods
func generateLoop(n int) (ch0, ch1 []float64) {
	ch0 = make([]float64, n)
	ch1 = make([]float64, n)
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * 50 * float64(i) / 10_000
		ch0[i] = math.Sin(phase)
		ch1[i] = 0.5 * math.Sin(phase+0.3)
	}
	return ch0, ch1
}

func newService(s3 *MockS3Service, pub *MockPublisher) ProcessingService {
	return NewProcessingService(s3, pub, models.DefaultAcquisitionConfig(), models.DefaultPhysicalParameters())
}

func TestAnalyze(t *testing.T) {
	s3 := &MockS3Service{}
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.AnythingOfType("*models.Analysis")).Return(nil)

	ch0, ch1 := generateLoop(400)
	analysis, err := newService(s3, pub).Analyze(context.Background(), Input{CH0: ch0, CH1: ch1})
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, models.DefaultSampleRateHz, analysis.SampleRateHz)
	assert.Equal(t, 400, analysis.Samples)
	assert.Equal(t, models.DefaultPhysicalParameters(), analysis.Parameters)
	assert.NotEmpty(t, analysis.Loop.Rising)
	assert.NotEmpty(t, analysis.Loop.Falling)
	assert.Len(t, analysis.Outline, len(analysis.Loop.Rising)+len(analysis.Loop.Falling))
	assert.Len(t, analysis.TimeSeriesCH0, 400)
	assert.Len(t, analysis.TimeSeriesCH1, 400)
	assert.InDelta(t, 0.5, analysis.StatsCH1.Max, 1e-3)
	assert.InDelta(t, 0.5/math.Sqrt2, analysis.StatsCH1.RMS, 1e-3)
	assert.Greater(t, analysis.Loop.Bsat, 0.0)

	pub.AssertCalled(t, "Publish", mock.Anything, analysis)
}

func TestAnalyze_Overrides(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	params := models.DefaultPhysicalParameters()
	params.TurnsB = 100

	ch0, ch1 := generateLoop(400)
	analysis, err := newService(&MockS3Service{}, pub).Analyze(context.Background(), Input{
		CH0: ch0, CH1: ch1, SampleRateHz: 20_000, Parameters: &params,
	})
	require.NoError(t, err)

	assert.Equal(t, 20_000, analysis.SampleRateHz)
	assert.Equal(t, 100.0, analysis.Parameters.TurnsB)
}

func TestAnalyze_PublishFailureIsNotFatal(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	ch0, ch1 := generateLoop(200)
	analysis, err := newService(&MockS3Service{}, pub).Analyze(context.Background(), Input{CH0: ch0, CH1: ch1})
	require.NoError(t, err)
	assert.NotNil(t, analysis)
}

func TestAnalyze_Rejected(t *testing.T) {
	bad := models.DefaultPhysicalParameters()
	bad.Area = 0

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{name: "mismatched channels", input: Input{CH0: []float64{1, 2, 3}, CH1: []float64{1, 2}}, wantErr: hysteresis.ErrInvalidInput},
		{name: "negative sample rate", input: Input{CH0: []float64{1, 2}, CH1: []float64{1, 2}, SampleRateHz: -1}, wantErr: hysteresis.ErrInvalidInput},
		{name: "bad parameters", input: Input{CH0: []float64{1, 2}, CH1: []float64{1, 2}, Parameters: &bad}, wantErr: hysteresis.ErrInvalidPhysicalParameters},
		{name: "empty channels", input: Input{}, wantErr: hysteresis.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &MockPublisher{}
			_, err := newService(&MockS3Service{}, pub).Analyze(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestAnalyzeCapture(t *testing.T) {
	ch0, ch1 := generateLoop(400)
	var buf bytes.Buffer
	require.NoError(t, capture.EncodeCSV(&buf, &capture.Capture{CH0: ch0, CH1: ch1}))

	s3 := &MockS3Service{}
	s3.On("DownloadFile", mock.Anything, "captures/cap-1.csv").Return(buf.Bytes(), nil)
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	analysis, err := newService(s3, pub).AnalyzeCapture(context.Background(), "cap-1", 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "cap-1", analysis.CaptureID)
	assert.Equal(t, 400, analysis.Samples)
	s3.AssertExpectations(t)
}

func TestAnalyzeCapture_Errors(t *testing.T) {
	t.Run("missing capture", func(t *testing.T) {
		s3 := &MockS3Service{}
		s3.On("DownloadFile", mock.Anything, "captures/nope.csv").Return(nil, fmt.Errorf("%w: captures/nope.csv", storage.ErrNotFound))

		_, err := newService(s3, &MockPublisher{}).AnalyzeCapture(context.Background(), "nope", 0, nil)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("malformed capture", func(t *testing.T) {
		s3 := &MockS3Service{}
		s3.On("DownloadFile", mock.Anything, "captures/bad.csv").Return([]byte("ch0,ch1\n1,x\n"), nil)

		_, err := newService(s3, &MockPublisher{}).AnalyzeCapture(context.Background(), "bad", 0, nil)
		assert.ErrorIs(t, err, hysteresis.ErrInvalidInput)
	})
}
