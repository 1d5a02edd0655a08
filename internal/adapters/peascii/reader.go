package peascii

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kamal-hamza/specplot/internal/core/domain"
	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// Reader reads export files from disk
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a new file reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		logger: logger.With(slog.String("component", "peascii")),
	}
}

// Ensure it implements the interface
var _ ports.RecordReader = (*Reader)(nil)

// Read loads and parses the file at path
func (r *Reader) Read(ctx context.Context, path string) (*domain.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	m, err := Parse(string(content))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	m.Path = path

	r.logger.Debug("parsed export",
		slog.String("path", path),
		slog.String("label", m.Filename),
		slog.Int("samples", m.Samples()))

	return m, nil
}
