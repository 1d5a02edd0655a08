package ports

import (
	"context"
	"io"
	"iter"

	"github.com/kamal-hamza/specplot/internal/core/domain"
)

// Locator defines the port for expanding a path pattern into input files
type Locator interface {
	// Locate returns the paths matching pattern, in match order.
	// An empty match is not an error.
	Locate(pattern string) (iter.Seq[string], error)
}

// RecordReader defines the port for reading one instrument export file
type RecordReader interface {
	// Read parses the file at path into a measurement record
	Read(ctx context.Context, path string) (*domain.Measurement, error)
}

// ChartRenderer defines the port for turning a chart model into a viewable document
type ChartRenderer interface {
	// Render writes the chart to w
	Render(w io.Writer, chart *domain.Chart) error

	// Extension returns the file extension of the rendered document (e.g. ".html")
	Extension() string
}

// FileOpener defines the port for opening files with default applications
type FileOpener interface {
	// Open opens a file with the configured viewer or the system's default application
	Open(ctx context.Context, filepath string) error
}
