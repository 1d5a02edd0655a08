// Package peascii reads the ASCII export written by PerkinElmer UV WinLab.
//
// The format is positional: metadata lives on fixed header lines and the
// numeric block follows a "#DATA" marker line as tab separated
// wavelength/absorbance pairs.
package peascii

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kamal-hamza/specplot/internal/core/domain"
)

// Fixed header line indices (0-based)
const (
	lineFilename    = 2
	lineDate        = 3
	lineTime        = 4
	lineOperator    = 7
	lineDescription = 8

	minHeaderLines = lineDescription + 1
)

const (
	// DataSentinel separates the header from the data block
	DataSentinel = "#DATA"

	// TimestampLayout is the layout of the date line joined with the time line
	TimestampLayout = "06/01/02 15:04:05"

	timeWidth = len("15:04:05")
)

var (
	ErrShortHeader    = errors.New("file has fewer header lines than expected")
	ErrTimestamp      = errors.New("timestamp does not match yy/mm/dd HH:MM:SS")
	ErrNoDataSentinel = errors.New("data sentinel " + DataSentinel + " not found")
	ErrEmptyData      = errors.New("no data rows after " + DataSentinel)
	ErrDataRow        = errors.New("malformed data row")
)

// ParseError represents a failure to parse an export file
type ParseError struct {
	Path  string
	Line  int // 1-based, 0 when the failure is not tied to a line
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(":")
	}
	if e.Line > 0 {
		b.WriteString(strconv.Itoa(e.Line))
		b.WriteString(":")
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%s: %v", e.Field, e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts the content of an export file into a measurement record.
// Reflectance is derived as 1 - absorbance for every data row.
func Parse(content string) (*domain.Measurement, error) {
	lines := splitLines(content)

	if len(lines) < minHeaderLines {
		return nil, &ParseError{
			Line:  len(lines),
			Field: "header",
			Err:   fmt.Errorf("%w: got %d, need %d", ErrShortHeader, len(lines), minHeaderLines),
		}
	}

	timestamp, err := parseTimestamp(lines[lineDate], lines[lineTime])
	if err != nil {
		return nil, &ParseError{Line: lineDate + 1, Field: "timestamp", Err: err}
	}

	sentinel := -1
	for i, line := range lines {
		if line == DataSentinel {
			sentinel = i
			break
		}
	}
	if sentinel < 0 {
		return nil, &ParseError{Field: "data", Err: ErrNoDataSentinel}
	}

	rows := lines[sentinel+1:]
	if len(rows) == 0 {
		return nil, &ParseError{Line: sentinel + 1, Field: "data", Err: ErrEmptyData}
	}

	wavelength := make([]float64, len(rows))
	reflectance := make([]float64, len(rows))
	for i, row := range rows {
		wl, absorbance, err := parseRow(row)
		if err != nil {
			return nil, &ParseError{Line: sentinel + 2 + i, Field: "data", Err: err}
		}
		wavelength[i] = wl
		reflectance[i] = 1.0 - absorbance
	}

	m := &domain.Measurement{
		Filename:    lines[lineFilename],
		Timestamp:   timestamp,
		Operator:    lines[lineOperator],
		Description: lines[lineDescription],
		Wavelength:  wavelength,
		Reflectance: reflectance,
	}
	if err := m.Validate(); err != nil {
		return nil, &ParseError{Field: "data", Err: err}
	}

	return m, nil
}

// splitLines splits content into whitespace-trimmed lines.
// A final line terminator does not start an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	raw := strings.Split(content, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// parseTimestamp combines the date line with the first 8 characters of the time line
func parseTimestamp(dateLine, timeLine string) (time.Time, error) {
	if len(timeLine) > timeWidth {
		timeLine = timeLine[:timeWidth]
	}
	ts, err := time.Parse(TimestampLayout, dateLine+" "+timeLine)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrTimestamp, dateLine, timeLine)
	}
	return ts, nil
}

// parseRow splits "<wavelength>\t<absorbance>"
func parseRow(row string) (float64, float64, error) {
	fields := strings.Split(row, "\t")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: expected 2 tab separated fields, got %d in %q", ErrDataRow, len(fields), row)
	}

	wavelength, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: wavelength %q is not a number", ErrDataRow, fields[0])
	}
	absorbance, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: absorbance %q is not a number", ErrDataRow, fields[1])
	}

	return wavelength, absorbance, nil
}
