package capture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/RMahshie/bhloop/internal/hysteresis"
	"github.com/RMahshie/bhloop/pkg/models"
)

// Capture is one completed two-channel acquisition
type Capture struct {
	CH0 []float64
	CH1 []float64
}

// Len returns the number of samples per channel
func (c *Capture) Len() int {
	return len(c.CH0)
}

// DecodeCSV reads a capture with one "ch0,ch1" row per sample. A leading
// non-numeric row is treated as a header.
func DecodeCSV(r io.Reader) (*Capture, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	c := &Capture{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", hysteresis.ErrInvalidInput, err)
		}

		v0, err0 := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		v1, err1 := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err0 != nil || err1 != nil {
			if row == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: row %d is not numeric", hysteresis.ErrInvalidInput, row)
		}
		if math.IsNaN(v0) || math.IsInf(v0, 0) || math.IsNaN(v1) || math.IsInf(v1, 0) {
			return nil, fmt.Errorf("%w: row %d is not finite", hysteresis.ErrInvalidInput, row)
		}

		if c.Len() == models.MaxBufferSize {
			return nil, fmt.Errorf("%w: capture exceeds %d samples", hysteresis.ErrInvalidInput, models.MaxBufferSize)
		}
		c.CH0 = append(c.CH0, v0)
		c.CH1 = append(c.CH1, v1)
	}

	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: capture has no samples", hysteresis.ErrEmptyInput)
	}
	return c, nil
}

// EncodeCSV writes a capture in the format DecodeCSV reads
func EncodeCSV(w io.Writer, c *Capture) error {
	if len(c.CH0) != len(c.CH1) {
		return fmt.Errorf("%w: channel lengths differ (%d vs %d)", hysteresis.ErrInvalidInput, len(c.CH0), len(c.CH1))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ch0", "ch1"}); err != nil {
		return err
	}
	for i := range c.CH0 {
		if err := cw.Write([]string{
			strconv.FormatFloat(c.CH0[i], 'g', -1, 64),
			strconv.FormatFloat(c.CH1[i], 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
