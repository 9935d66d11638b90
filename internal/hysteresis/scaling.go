package hysteresis

import (
	"fmt"

	"github.com/RMahshie/bhloop/pkg/models"
)

// HScale converts shunt voltage to field strength: turnsExc / (pathLen * shunt) [(A/m)/V]
func HScale(p models.PhysicalParameters) (float64, error) {
	if err := requirePositive("turns_exc", p.TurnsExc); err != nil {
		return 0, err
	}
	if err := requirePositive("path_len", p.PathLen); err != nil {
		return 0, err
	}
	if err := requirePositive("shunt", p.Shunt); err != nil {
		return 0, err
	}
	return p.TurnsExc / (p.PathLen * p.Shunt), nil
}

// BScale converts integrated sense coil voltage to induction: 1 / (turnsB * area) [T/(V*s)]
func BScale(p models.PhysicalParameters) (float64, error) {
	if err := requirePositive("turns_b", p.TurnsB); err != nil {
		return 0, err
	}
	if err := requirePositive("area", p.Area); err != nil {
		return 0, err
	}
	return 1.0 / (p.TurnsB * p.Area), nil
}

// ValidateParameters checks all five constants at once
func ValidateParameters(p models.PhysicalParameters) error {
	if _, err := HScale(p); err != nil {
		return err
	}
	_, err := BScale(p)
	return err
}

// requirePositive also rejects NaN, which fails every comparison
func requirePositive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidPhysicalParameters, name, v)
	}
	return nil
}
