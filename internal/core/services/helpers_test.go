package services

import (
	"math"
	"time"

	"github.com/kamal-hamza/specplot/internal/core/domain"
)

// descendingGrid returns 900, 850, ..., 300 nm
func descendingGrid() []float64 {
	var wl []float64
	for w := 900.0; w >= 300; w -= 50 {
		wl = append(wl, w)
	}
	return wl
}

// newMeasurement builds a record on the descending grid with reflectance 0.10 + 0.01*i
func newMeasurement(description string) *domain.Measurement {
	wl := descendingGrid()
	refl := make([]float64, len(wl))
	for i := range refl {
		refl[i] = 0.10 + 0.01*float64(i)
	}
	return &domain.Measurement{
		Filename:    description + ".sp",
		Timestamp:   time.Date(2023, time.May, 9, 14, 22, 5, 0, time.UTC),
		Operator:    "jdoe",
		Description: description,
		Wavelength:  wl,
		Reflectance: refl,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
