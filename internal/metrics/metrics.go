package metrics

import (
	"errors"
	"math"

	"studenttrack/internal/model"
)

// ErrNoData reports an aggregate over an empty grade set. It is distinct
// from a numeric zero: callers must render it as an absence, not as 0.0.
var ErrNoData = errors.New("no grades recorded")

// AverageScore is the mean of a student's scores, rounded to 2 decimals.
// No grades is a valid zero-value state, not a failure.
func AverageScore(grades []model.Grade) float64 {
	if len(grades) == 0 {
		return 0.0
	}
	total := 0
	for _, g := range grades {
		total += g.Score
	}
	return round2(float64(total) / float64(len(grades)))
}

// AttendancePercentage is 100*present/total rounded to 2 decimals. An
// empty record set means 100.0: no marking counts as full attendance.
func AttendancePercentage(records []model.Attendance) float64 {
	if len(records) == 0 {
		return 100.0
	}
	present := 0
	for _, r := range records {
		if r.Status == model.StatusPresent {
			present++
		}
	}
	return round2(float64(present) / float64(len(records)) * 100)
}

// ClassAverage is the mean over one subject's grades across all students.
// ErrNoData when the subject has no grades.
func ClassAverage(grades []model.Grade) (float64, error) {
	if len(grades) == 0 {
		return 0, ErrNoData
	}
	total := 0
	for _, g := range grades {
		total += g.Score
	}
	return round2(float64(total) / float64(len(grades))), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
