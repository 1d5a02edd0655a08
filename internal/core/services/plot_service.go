package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/google/uuid"

	"github.com/kamal-hamza/specplot/internal/core/domain"
	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// Visible band edges in nm
const (
	VisibleLow  = 400.0
	VisibleHigh = 700.0
)

var (
	// ErrNoRecords is returned when there is nothing to plot
	ErrNoRecords = errors.New("no measurements to plot")

	// ErrBandEdge is returned when a record has no sample at or below a required wavelength
	ErrBandEdge = errors.New("no sample at or below wavelength")

	// ErrEmptyBand is returned when the 700 nm index does not precede the 400 nm index
	ErrEmptyBand = errors.New("visible band is empty (wavelengths must be descending)")
)

// PlotOptions controls the chart layout
type PlotOptions struct {
	Title           string
	Wavelength      domain.Range // x axis
	Reflectance     domain.Range // y axis
	AnnotationStart float64      // x position of the first annotation
	AnnotationStep  float64      // x offset added per record
}

// DefaultPlotOptions returns the standard grey-card layout
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Title:           "Grey card reflectance",
		Wavelength:      domain.Range{Min: 380, Max: 950},
		Reflectance:     domain.Range{Min: 0, Max: 0.5},
		AnnotationStart: 400,
		AnnotationStep:  25,
	}
}

// PlotService turns a collection into an annotated chart and hands it to a viewer
type PlotService struct {
	renderer ports.ChartRenderer
	opener   ports.FileOpener
	logger   *slog.Logger
}

// NewPlotService creates a new plot service. opener may be nil when charts are never opened.
func NewPlotService(renderer ports.ChartRenderer, opener ports.FileOpener, logger *slog.Logger) *PlotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlotService{
		renderer: renderer,
		opener:   opener,
		logger:   logger.With(slog.String("component", "plot")),
	}
}

// PlotRequest represents a request to render and display a collection
type PlotRequest struct {
	Records   domain.Collection
	Options   PlotOptions
	Output    string // chart file; empty selects a unique name in OutputDir
	OutputDir string // defaults to the system temp dir
	Open      bool   // hand the chart to the viewer
}

// PlotResponse describes the rendered chart
type PlotResponse struct {
	Chart  *domain.Chart
	Output string
	Opened bool
}

// Plot builds the chart, writes it to disk and optionally opens it
func (s *PlotService) Plot(ctx context.Context, req PlotRequest) (*PlotResponse, error) {
	chart, err := s.Build(req.Records, req.Options)
	if err != nil {
		return nil, err
	}

	output := req.Output
	if output == "" {
		dir := req.OutputDir
		if dir == "" {
			dir = os.TempDir()
		}
		output = filepath.Join(dir, "spectra-"+uuid.NewString()+s.renderer.Extension())
	}

	if err := s.Export(chart, output); err != nil {
		return nil, err
	}
	s.logger.Debug("chart written", slog.String("path", output), slog.Int("traces", len(chart.Traces)))

	resp := &PlotResponse{Chart: chart, Output: output}
	if req.Open && s.opener != nil {
		if err := s.opener.Open(ctx, output); err != nil {
			return resp, fmt.Errorf("failed to open chart: %w", err)
		}
		resp.Opened = true
	}

	return resp, nil
}

// Export renders chart into the file at path, creating its directory
func (s *PlotService) Export(chart *domain.Chart, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := s.renderer.Render(f, chart); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

// Build computes the traces and their visible-band annotations.
// A band lookup failure on any record fails the whole chart.
func (s *PlotService) Build(records domain.Collection, opts PlotOptions) (*domain.Chart, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	chart := &domain.Chart{
		Title:  opts.Title,
		XLabel: "Wavelength (nm)",
		YLabel: "Reflectance",
		XRange: opts.Wavelength,
		YRange: opts.Reflectance,
		Traces: make([]domain.Trace, 0, len(records)),
	}

	for i := range records {
		m := &records[i]
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, m.Description, err)
		}

		avg, err := VisibleAverage(m)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, m.Description, err)
		}

		annX := opts.AnnotationStart + opts.AnnotationStep*float64(i)
		idx, ok := firstAtOrBelow(m.Wavelength, annX)
		if !ok {
			return nil, fmt.Errorf("record %d (%s): %w %g nm", i, m.Description, ErrBandEdge, annX)
		}

		chart.Traces = append(chart.Traces, domain.Trace{
			Name:           m.Description,
			X:              m.Wavelength,
			Y:              m.Reflectance,
			VisibleAverage: avg,
			Annotation: domain.Annotation{
				X:    annX,
				Y:    m.Reflectance[idx],
				Text: FormatVisibleAverage(avg),
			},
		})
	}

	return chart, nil
}

// VisibleAverage returns the mean reflectance between the first sample at or
// below 700 nm (inclusive) and the first sample at or below 400 nm (exclusive).
// On descending data this covers 400 < wavelength <= 700.
func VisibleAverage(m *domain.Measurement) (float64, error) {
	i400, ok := firstAtOrBelow(m.Wavelength, VisibleLow)
	if !ok {
		return 0, fmt.Errorf("%w %g nm", ErrBandEdge, VisibleLow)
	}
	i700, ok := firstAtOrBelow(m.Wavelength, VisibleHigh)
	if !ok {
		return 0, fmt.Errorf("%w %g nm", ErrBandEdge, VisibleHigh)
	}
	if i700 >= i400 {
		return 0, ErrEmptyBand
	}

	band := m.Reflectance[i700:i400]
	return vecmath.Sum(band) / float64(len(band)), nil
}

// FormatVisibleAverage renders the annotation text for a fractional average
func FormatVisibleAverage(avg float64) string {
	return fmt.Sprintf("Avg_VIS=%.1f%%", 100*avg)
}

// firstAtOrBelow returns the first index whose wavelength is <= limit
func firstAtOrBelow(wavelength []float64, limit float64) (int, bool) {
	for i, wl := range wavelength {
		if wl <= limit {
			return i, true
		}
	}
	return -1, false
}
