package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"studenttrack/internal/metrics"
	"studenttrack/internal/store"
)

type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// ClassAverage is the subject-wide mean. metrics.ErrNoData when the
// subject has no grades; the caller must render that as absence, not 0.
func (s *ReportService) ClassAverage(subject string) (float64, error) {
	grades, err := s.store.ListGradesBySubject(subject)
	if err != nil {
		return 0, err
	}
	return metrics.ClassAverage(grades)
}

// Topper identifies the highest score in a subject and who holds it.
type Topper struct {
	StudentName string `json:"student_name"`
	RollNumber  int    `json:"roll_number"`
	Subject     string `json:"subject"`
	Score       int    `json:"score"`
}

// SubjectTopper returns the subject's best grade; ties go to the earliest
// recorded grade. metrics.ErrNoData when the subject has no grades.
func (s *ReportService) SubjectTopper(subject string) (*Topper, error) {
	grade, err := s.store.TopGradeBySubject(subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, metrics.ErrNoData
		}
		return nil, err
	}
	student, err := s.store.GetStudent(grade.StudentID)
	if err != nil {
		return nil, err
	}
	return &Topper{
		StudentName: student.Name,
		RollNumber:  student.RollNumber,
		Subject:     subject,
		Score:       grade.Score,
	}, nil
}

// ExportCSV writes the backup: header row, then one row per (student,
// grade) pair. The first row of each student carries roll number, name,
// average and attendance; follow-up rows leave those four blank. A student
// with no grades gets a single row with N/A for subject and score.
func (s *ReportService) ExportCSV(w io.Writer) error {
	students, err := s.store.ListStudentsWithRecords()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Roll Number", "Name", "Overall Average %", "Attendance %", "Subject", "Score"}); err != nil {
		return err
	}

	if len(students) == 0 {
		if err := cw.Write([]string{"No students found in the database."}); err != nil {
			return err
		}
	}

	for _, student := range students {
		avg := fmt.Sprintf("%.2f", metrics.AverageScore(student.Grades))
		att := fmt.Sprintf("%.2f", metrics.AttendancePercentage(student.Attendance))
		roll := strconv.Itoa(student.RollNumber)

		if len(student.Grades) == 0 {
			if err := cw.Write([]string{roll, student.Name, avg, att, "N/A", "N/A"}); err != nil {
				return err
			}
			continue
		}
		for i, grade := range student.Grades {
			row := []string{roll, student.Name, avg, att, grade.Subject, strconv.Itoa(grade.Score)}
			if i > 0 {
				row[0], row[1], row[2], row[3] = "", "", "", ""
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ScatterPoint pairs a student's attendance (x) with their average (y).
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// ChartData feeds the analysis dashboard graphs.
type ChartData struct {
	Labels      []string       `json:"labels"`
	AvgScores   []float64      `json:"avg_scores"`
	Attendance  []float64      `json:"attendance"`
	ScatterData []ScatterPoint `json:"scatter_data"`
}

func (s *ReportService) ChartData() (*ChartData, error) {
	students, err := s.store.ListStudentsWithRecords()
	if err != nil {
		return nil, err
	}

	data := &ChartData{
		Labels:      make([]string, 0, len(students)),
		AvgScores:   make([]float64, 0, len(students)),
		Attendance:  make([]float64, 0, len(students)),
		ScatterData: make([]ScatterPoint, 0, len(students)),
	}
	for _, student := range students {
		avg := metrics.AverageScore(student.Grades)
		att := metrics.AttendancePercentage(student.Attendance)
		data.Labels = append(data.Labels, student.Name)
		data.AvgScores = append(data.AvgScores, avg)
		data.Attendance = append(data.Attendance, att)
		data.ScatterData = append(data.ScatterData, ScatterPoint{X: att, Y: avg, Label: student.Name})
	}
	return data, nil
}
