package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kamal-hamza/specplot/internal/core/domain"
	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// LoadService expands a file pattern and parses every match into a collection
type LoadService struct {
	locator ports.Locator
	reader  ports.RecordReader
	logger  *slog.Logger
}

// NewLoadService creates a new load service
func NewLoadService(locator ports.Locator, reader ports.RecordReader, logger *slog.Logger) *LoadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadService{
		locator: locator,
		reader:  reader,
		logger:  logger.With(slog.String("component", "load")),
	}
}

// LoadRequest represents a request to load measurements
type LoadRequest struct {
	Pattern string // file path or glob pattern

	// Select, when set, narrows the matched paths before parsing (e.g. an interactive picker)
	Select func(paths []string) ([]string, error)
}

// LoadResponse represents the loaded measurements
type LoadResponse struct {
	Records domain.Collection
	Paths   []string // matched paths, in match order
	Total   int
}

// Execute locates the files and parses them in match order.
// Any parse failure aborts the load; no partial collection is returned.
func (s *LoadService) Execute(ctx context.Context, req LoadRequest) (*LoadResponse, error) {
	matches, err := s.locator.Locate(req.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to locate files: %w", err)
	}

	var paths []string
	for path := range matches {
		paths = append(paths, path)
	}
	s.logger.Debug("located files", slog.String("pattern", req.Pattern), slog.Int("matches", len(paths)))

	if req.Select != nil && len(paths) > 0 {
		paths, err = req.Select(paths)
		if err != nil {
			return nil, fmt.Errorf("failed to select files: %w", err)
		}
	}

	records := make(domain.Collection, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := s.reader.Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		records = append(records, *record)
	}

	return &LoadResponse{
		Records: records,
		Paths:   paths,
		Total:   len(records),
	}, nil
}
