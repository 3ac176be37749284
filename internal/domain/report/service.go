package report

import (
	"context"
	"time"
)

type ReportService interface {
	// BuildAttendanceCSV renders every record in [start, end] as CSV,
	// newest date first with names alphabetical within a date. The second
	// return value is the suggested download filename.
	BuildAttendanceCSV(ctx context.Context, start, end time.Time) ([]byte, string, error)
}
