package metrics

import "fmt"

// Insight thresholds. Fixed constants, not configuration.
const (
	LowScoreThreshold      = 50
	GoodScoreThreshold     = 80
	LowAttendanceThreshold = 75
	LowClassAvgThreshold   = 55
)

// Insight categories, stable strings for the presentation layer.
const (
	CategoryClassAverageLow  = "class_average_low"
	CategoryAttendanceLinked = "attendance_linked"
	CategoryAttentionNeeded  = "attention_needed"
	CategoryMonitor          = "monitor"
)

// Insight is a one-shot advisory generated right after a grade is
// recorded. It is never persisted.
type Insight struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// EvaluateInsight runs the fixed rule table against a freshly recorded
// grade. gradeCount and classAverage describe the subject after the new
// grade was persisted, so the new score is part of the aggregate. Rules
// are checked in order and the first match wins; fewer than two recorded
// grades for the subject means no insight at all.
func EvaluateInsight(studentName, subject string, newScore, gradeCount int, classAverage, attendancePct float64) *Insight {
	if gradeCount < 2 {
		return nil
	}

	switch {
	case newScore < LowScoreThreshold && classAverage < LowClassAvgThreshold:
		return &Insight{
			Category: CategoryClassAverageLow,
			Message: fmt.Sprintf("The whole class is performing low in %s (class average: %.2f%%). This topic may need to be reviewed.",
				subject, classAverage),
		}
	case newScore < LowScoreThreshold && attendancePct < LowAttendanceThreshold:
		return &Insight{
			Category: CategoryAttendanceLinked,
			Message: fmt.Sprintf("%s scored low (%d%%) and their attendance is only %.2f%%. Encourage them to attend regularly.",
				studentName, newScore, attendancePct),
		}
	case newScore < LowScoreThreshold:
		return &Insight{
			Category: CategoryAttentionNeeded,
			Message: fmt.Sprintf("%s attends regularly (%.2f%%) but still scored low (%d%%) in %s. They may need personal attention.",
				studentName, attendancePct, newScore, subject),
		}
	case newScore >= GoodScoreThreshold && attendancePct < LowAttendanceThreshold:
		return &Insight{
			Category: CategoryMonitor,
			Message: fmt.Sprintf("%s scored well (%d%%) in %s but attendance is %.2f%%. Keep an eye on the minimum criteria.",
				studentName, newScore, subject, attendancePct),
		}
	}
	return nil
}
