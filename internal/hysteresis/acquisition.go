package hysteresis

import (
	"fmt"

	"github.com/RMahshie/bhloop/pkg/models"
)

// ValidateAcquisition checks capture settings against the bench limits
func ValidateAcquisition(c models.AcquisitionConfig) error {
	switch {
	case c.SampleRateHz <= 0:
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, c.SampleRateHz)
	case c.BufferSize < models.MinBufferSize || c.BufferSize > models.MaxBufferSize:
		return fmt.Errorf("%w: buffer size %d outside [%d, %d]", ErrInvalidInput, c.BufferSize, models.MinBufferSize, models.MaxBufferSize)
	case c.AcquisitionTime < models.MinAcquisitionTime || c.AcquisitionTime > models.MaxAcquisitionTime:
		return fmt.Errorf("%w: acquisition time %gs outside [%g, %g]", ErrInvalidInput, c.AcquisitionTime, models.MinAcquisitionTime, models.MaxAcquisitionTime)
	case c.TargetPlotPoints < 1:
		return fmt.Errorf("%w: target plot points must be at least 1, got %d", ErrInvalidInput, c.TargetPlotPoints)
	case c.Bins < 2:
		return fmt.Errorf("%w: bins must be at least 2, got %d", ErrInvalidInput, c.Bins)
	}
	return nil
}
