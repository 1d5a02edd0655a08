// Package chart renders spectral charts as interactive ECharts pages.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/google/uuid"

	"github.com/kamal-hamza/specplot/internal/core/domain"
	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// Options controls the page surrounding the chart
type Options struct {
	Width  string // CSS size, e.g. "1200px"
	Height string
	Theme  string // go-echarts theme name
}

// DefaultOptions returns a page size suited to a laptop browser window
func DefaultOptions() Options {
	return Options{
		Width:  "1200px",
		Height: "700px",
		Theme:  "white",
	}
}

// EChartsRenderer renders charts with go-echarts
type EChartsRenderer struct {
	opts Options
}

// NewEChartsRenderer creates a new renderer
func NewEChartsRenderer(o Options) *EChartsRenderer {
	d := DefaultOptions()
	if o.Width == "" {
		o.Width = d.Width
	}
	if o.Height == "" {
		o.Height = d.Height
	}
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	return &EChartsRenderer{opts: o}
}

// Ensure it implements the interface
var _ ports.ChartRenderer = (*EChartsRenderer)(nil)

// Extension returns the rendered document extension
func (r *EChartsRenderer) Extension() string {
	return ".html"
}

// Render writes chart as a standalone HTML page
func (r *EChartsRenderer) Render(w io.Writer, chart *domain.Chart) error {
	line := r.Build(chart)
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render echarts page: %w", err)
	}
	return nil
}

// Build converts the chart model into a go-echarts line chart
func (r *EChartsRenderer) Build(chart *domain.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chart.Title,
			Width:     r.opts.Width,
			Height:    r.opts.Height,
			Theme:     r.opts.Theme,
			ChartID:   "spectra_" + uuid.NewString()[:8],
		}),
		charts.WithTitleOpts(opts.Title{
			Title: chart.Title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			XAxisIndex: []int{0},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true), Type: "png"},
				Restore:     &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: chart.XLabel,
			Min:  chart.XRange.Min,
			Max:  chart.XRange.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: chart.YLabel,
			Min:  chart.YRange.Min,
			Max:  chart.YRange.Max,
		}),
	)

	for _, tr := range chart.Traces {
		line.AddSeries(tr.Name, lineData(tr),
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithMarkPointNameCoordItemOpts(annotationPoint(tr.Annotation)),
		)
	}

	return line
}

// lineData pairs each wavelength with its reflectance for a value x axis
func lineData(tr domain.Trace) []opts.LineData {
	data := make([]opts.LineData, len(tr.X))
	for i := range tr.X {
		data[i] = opts.LineData{Value: []interface{}{tr.X[i], tr.Y[i]}}
	}
	return data
}

// annotationPoint draws a downward arrow on the annotated sample with the text above it
func annotationPoint(a domain.Annotation) opts.MarkPointNameCoordItem {
	return opts.MarkPointNameCoordItem{
		Name:         a.Text,
		Coordinate:   []interface{}{a.X, a.Y},
		Value:        a.Text,
		Symbol:       "arrow",
		SymbolSize:   14,
		SymbolRotate: 180,
		Label: &opts.Label{
			Show:      opts.Bool(true),
			Position:  "top",
			Formatter: types.FuncStr(a.Text),
		},
	}
}
