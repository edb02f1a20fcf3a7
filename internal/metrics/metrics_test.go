package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studenttrack/internal/metrics"
	"studenttrack/internal/model"
)

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected float64
	}{
		{"Two grades", []int{90, 70}, 80.0},
		{"Single grade", []int{55}, 55.0},
		{"Rounded to two decimals", []int{85, 90, 78}, 84.33},
		{"No grades", nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grades := make([]model.Grade, 0, len(tt.scores))
			for _, score := range tt.scores {
				grades = append(grades, model.Grade{Subject: "Math", Score: score})
			}
			assert.Equal(t, tt.expected, metrics.AverageScore(grades))
		})
	}
}

func TestAttendancePercentage(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		expected float64
	}{
		{"Two present one absent", []string{model.StatusPresent, model.StatusPresent, model.StatusAbsent}, 66.67},
		{"All present", []string{model.StatusPresent, model.StatusPresent}, 100.0},
		{"All absent", []string{model.StatusAbsent}, 0.0},
		{"No records counts as full attendance", nil, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]model.Attendance, 0, len(tt.statuses))
			for _, status := range tt.statuses {
				records = append(records, model.Attendance{Status: status})
			}
			assert.Equal(t, tt.expected, metrics.AttendancePercentage(records))
		})
	}
}

func TestClassAverage(t *testing.T) {
	grades := []model.Grade{
		{Subject: "Math", Score: 40},
		{Subject: "Math", Score: 45},
	}
	avg, err := metrics.ClassAverage(grades)
	assert.NoError(t, err)
	assert.Equal(t, 42.5, avg)
}

func TestClassAverageNoData(t *testing.T) {
	_, err := metrics.ClassAverage(nil)
	assert.ErrorIs(t, err, metrics.ErrNoData)
}
