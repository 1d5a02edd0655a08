package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMeasurement is returned when a record breaks the wavelength/reflectance alignment
var ErrInvalidMeasurement = errors.New("invalid measurement")

// Measurement is one spectrophotometer export, converted to reflectance
type Measurement struct {
	Filename    string    // label stored inside the file, not the filesystem path
	Timestamp   time.Time // acquisition date and time from the header
	Operator    string
	Description string // used as the legend label
	Wavelength  []float64
	Reflectance []float64

	// Path is the file the record was read from
	Path string
}

// Validate checks that wavelength and reflectance are index-aligned and non-empty
func (m *Measurement) Validate() error {
	if len(m.Wavelength) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidMeasurement)
	}
	if len(m.Wavelength) != len(m.Reflectance) {
		return fmt.Errorf("%w: %d wavelengths but %d reflectance values",
			ErrInvalidMeasurement, len(m.Wavelength), len(m.Reflectance))
	}
	return nil
}

// Samples returns the number of wavelength/reflectance pairs
func (m *Measurement) Samples() int {
	return len(m.Wavelength)
}

// Collection is an ordered set of measurements, in file match order
type Collection []Measurement

// Descriptions returns the legend labels in collection order
func (c Collection) Descriptions() []string {
	out := make([]string, len(c))
	for i := range c {
		out[i] = c[i].Description
	}
	return out
}
