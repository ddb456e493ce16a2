// Package export renders user data into downloadable formats: CSV for the
// tracking dashboard, plain text for the journal, and PDF for meal plans.
// Everything is rendered in memory; handlers stream the bytes directly.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

// logCSVHeader is the fixed column set clients rely on; order matters.
var logCSVHeader = []string{
	"Date", "Sleep Hours", "Mood Rating", "Study Hours",
	"Water Intake", "Exercise Minutes", "Productivity Score",
}

// LogsCSV renders daily logs as CSV, one row per log in the given order
// (callers pass them date ascending). The header row is always present,
// even for zero logs.
func LogsCSV(logs []domain.DailyLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(logCSVHeader); err != nil {
		return nil, err
	}
	for _, l := range logs {
		row := []string{
			l.Date,
			num(l.SleepHours),
			num(l.MoodRating),
			num(l.StudyHours),
			num(l.WaterIntake),
			num(l.ExerciseMinutes),
			num(l.ProductivityScore),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// num formats a metric value without a forced decimal point (7.5 stays 7.5,
// 30 stays 30).
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
