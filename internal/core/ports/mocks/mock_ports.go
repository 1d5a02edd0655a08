package mocks

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"sync"

	"github.com/kamal-hamza/specplot/internal/core/domain"
)

// MockLocator is a mock implementation of the Locator interface for testing
type MockLocator struct {
	Paths []string
	Err   error

	mu       sync.Mutex
	patterns []string
}

// NewMockLocator creates a locator that yields paths for every pattern
func NewMockLocator(paths ...string) *MockLocator {
	return &MockLocator{Paths: paths}
}

// Locate records the pattern and yields the configured paths
func (m *MockLocator) Locate(pattern string) (iter.Seq[string], error) {
	m.mu.Lock()
	m.patterns = append(m.patterns, pattern)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Values(m.Paths), nil
}

// Patterns returns the patterns passed to Locate
func (m *MockLocator) Patterns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.patterns...)
}

// MockRecordReader is a mock implementation of the RecordReader interface for testing
type MockRecordReader struct {
	mu      sync.RWMutex
	records map[string]*domain.Measurement
	errs    map[string]error
	reads   []string
}

// NewMockRecordReader creates a new mock record reader
func NewMockRecordReader() *MockRecordReader {
	return &MockRecordReader{
		records: make(map[string]*domain.Measurement),
		errs:    make(map[string]error),
	}
}

// Add registers the record returned for path
func (m *MockRecordReader) Add(path string, record *domain.Measurement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[path] = record
}

// Fail registers the error returned for path
func (m *MockRecordReader) Fail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[path] = err
}

// Read returns the registered record for path
func (m *MockRecordReader) Read(ctx context.Context, path string) (*domain.Measurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads = append(m.reads, path)
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	record, ok := m.records[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	copied := *record
	copied.Path = path
	return &copied, nil
}

// Reads returns the paths passed to Read, in call order
func (m *MockRecordReader) Reads() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.reads...)
}

// MockChartRenderer is a mock implementation of the ChartRenderer interface for testing
type MockChartRenderer struct {
	Err      error
	Rendered []*domain.Chart
}

// NewMockChartRenderer creates a new mock chart renderer
func NewMockChartRenderer() *MockChartRenderer {
	return &MockChartRenderer{}
}

// Render records the chart and writes its title
func (m *MockChartRenderer) Render(w io.Writer, chart *domain.Chart) error {
	if m.Err != nil {
		return m.Err
	}
	m.Rendered = append(m.Rendered, chart)
	_, err := fmt.Fprintf(w, "chart: %s (%d traces)\n", chart.Title, len(chart.Traces))
	return err
}

// Extension returns the mock document extension
func (m *MockChartRenderer) Extension() string {
	return ".txt"
}

// MockFileOpener is a mock implementation of the FileOpener interface for testing
type MockFileOpener struct {
	Err    error
	Opened []string
}

// NewMockFileOpener creates a new mock file opener
func NewMockFileOpener() *MockFileOpener {
	return &MockFileOpener{}
}

// Open records the path
func (m *MockFileOpener) Open(ctx context.Context, filepath string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Opened = append(m.Opened, filepath)
	return nil
}
