package service

import (
	"time"

	"studenttrack/internal/model"
	"studenttrack/internal/store"
)

type AttendanceService struct {
	store *store.Store
}

func NewAttendanceService(st *store.Store) *AttendanceService {
	return &AttendanceService{store: st}
}

// AttendanceEntry is one student's status within a daily marking batch.
type AttendanceEntry struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkDay records the given day's attendance for every entry in one
// transaction: either the whole register is written or none of it is.
// Each (student, day) pair is written at most once; re-marking updates
// the existing row instead of creating a duplicate. An unknown student
// id rolls the batch back.
func (s *AttendanceService) MarkDay(day time.Time, entries []AttendanceEntry) error {
	date := model.Day(day)
	records := make([]model.Attendance, 0, len(entries))
	for _, entry := range entries {
		records = append(records, model.Attendance{
			StudentID: entry.StudentID,
			Date:      date,
			Status:    entry.Status,
		})
	}
	return s.store.UpsertAttendanceBatch(records)
}
