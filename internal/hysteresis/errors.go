// Package hysteresis reconstructs magnetic B-H hysteresis loops from two raw
// voltage channels.
//
// CH0 carries the voltage induced in the sense coil and is integrated into a
// sequence proportional to B. CH1 carries the shunt voltage, proportional to
// the excitation current and therefore to H. The loop is reconstructed by
// classifying decimated samples by direction of travel, binning them along the
// independent axis and averaging each bin per direction.
//
// Every function here is synchronous and keeps no state between calls.
package hysteresis

import "errors"

var (
	// ErrInvalidInput is returned for malformed sequences or settings
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPhysicalParameters is returned when a scaling constant is not positive
	ErrInvalidPhysicalParameters = errors.New("invalid physical parameters")
	// ErrEmptyInput is returned when a statistic is requested over zero samples
	ErrEmptyInput = errors.New("empty input")
)
