package service

import (
	"log"
	"time"

	"studenttrack/internal/metrics"
	"studenttrack/internal/model"
	"studenttrack/internal/store"
)

type StudentService struct {
	store *store.Store
}

func NewStudentService(st *store.Store) *StudentService {
	return &StudentService{store: st}
}

// StudentSummary is one overview row: the student plus derived numbers.
type StudentSummary struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	RollNumber           int     `json:"roll_number"`
	AverageScore         float64 `json:"average_score"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Overview lists every student with average score and attendance
// percentage, and reports whether today's attendance is already marked.
type Overview struct {
	Students         []StudentSummary `json:"students"`
	AttendanceMarked bool             `json:"attendance_marked"`
	InsightsCount    int              `json:"insights_count"`
}

func (s *StudentService) Overview() (*Overview, error) {
	students, err := s.store.ListStudentsWithRecords()
	if err != nil {
		return nil, err
	}

	summaries := make([]StudentSummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, StudentSummary{
			ID:                   student.ID,
			Name:                 student.Name,
			RollNumber:           student.RollNumber,
			AverageScore:         metrics.AverageScore(student.Grades),
			AttendancePercentage: metrics.AttendancePercentage(student.Attendance),
		})
	}

	marked, err := s.store.CountAttendanceOnDate(model.Day(time.Now()))
	if err != nil {
		return nil, err
	}

	// Insights are one-shot and never stored, so the counter stays zero.
	return &Overview{Students: summaries, AttendanceMarked: marked > 0, InsightsCount: 0}, nil
}

// AddStudent registers a student. Duplicate roll numbers come back as
// store.ErrDuplicate.
func (s *StudentService) AddStudent(name string, rollNumber int) (*model.Student, error) {
	student := &model.Student{Name: name, RollNumber: rollNumber}
	if err := s.store.AddStudent(student); err != nil {
		return nil, err
	}
	return student, nil
}

// StudentDetail is the detail-page payload: the full record plus derived
// numbers.
type StudentDetail struct {
	Student              *model.Student `json:"student"`
	AverageScore         float64        `json:"average_score"`
	AttendancePercentage float64        `json:"attendance_percentage"`
}

func (s *StudentService) Detail(id uint) (*StudentDetail, error) {
	student, err := s.store.GetStudentWithRecords(id)
	if err != nil {
		return nil, err
	}
	return &StudentDetail{
		Student:              student,
		AverageScore:         metrics.AverageScore(student.Grades),
		AttendancePercentage: metrics.AttendancePercentage(student.Attendance),
	}, nil
}

func (s *StudentService) DeleteStudent(id uint) error {
	return s.store.DeleteStudent(id)
}

// AddGrade records a score for a student and evaluates the insight rules
// against the subject's post-insert state. The returned insight is nil
// when no rule fires.
func (s *StudentService) AddGrade(studentID uint, subject string, score int) (*model.Grade, *metrics.Insight, error) {
	student, err := s.store.GetStudent(studentID)
	if err != nil {
		return nil, nil, err
	}

	grade := &model.Grade{Subject: subject, Score: score, StudentID: student.ID}
	if err := s.store.AddGrade(grade); err != nil {
		return nil, nil, err
	}

	// The grade is committed at this point; insight evaluation is
	// best-effort and must not turn the successful write into a failure.
	subjectGrades, err := s.store.ListGradesBySubject(subject)
	if err != nil {
		log.Println("Skipping insight evaluation:", err)
		return grade, nil, nil
	}
	classAvg, err := metrics.ClassAverage(subjectGrades)
	if err != nil {
		return grade, nil, nil
	}

	attendance, err := s.store.ListAttendanceByStudent(student.ID)
	if err != nil {
		log.Println("Skipping insight evaluation:", err)
		return grade, nil, nil
	}

	insight := metrics.EvaluateInsight(
		student.Name, subject, score, len(subjectGrades),
		classAvg, metrics.AttendancePercentage(attendance),
	)
	return grade, insight, nil
}
