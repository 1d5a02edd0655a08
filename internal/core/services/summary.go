package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/kamal-hamza/specplot/internal/core/domain"
)

// SummaryRow is the tabular view of one measurement
type SummaryRow struct {
	Label       string
	Timestamp   time.Time
	Operator    string
	Description string
	Samples     int
	VisibleAvg  float64
	Err         error // set when the visible average could not be computed
}

// Summarize returns one row per record in collection order.
// Band failures are kept per row so the table can still be printed.
func Summarize(records domain.Collection) []SummaryRow {
	rows := make([]SummaryRow, 0, len(records))
	for i := range records {
		m := &records[i]
		avg, err := VisibleAverage(m)
		rows = append(rows, SummaryRow{
			Label:       m.Filename,
			Timestamp:   m.Timestamp,
			Operator:    m.Operator,
			Description: m.Description,
			Samples:     m.Samples(),
			VisibleAvg:  avg,
			Err:         err,
		})
	}
	return rows
}

// AverageText returns the percentage text, or "n/a" when the average failed
func (r SummaryRow) AverageText() string {
	if r.Err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", 100*r.VisibleAvg)
}

// FormatTSV renders rows as tab separated text with a header line
func FormatTSV(rows []SummaryRow, timeLayout string) string {
	var b strings.Builder
	b.WriteString("label\ttimestamp\toperator\tdescription\tsamples\tavg_vis\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Label,
			r.Timestamp.Format(timeLayout),
			r.Operator,
			r.Description,
			r.Samples,
			r.AverageText())
	}
	return b.String()
}
