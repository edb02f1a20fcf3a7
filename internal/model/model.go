package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// StatusPresent marks a student as present for a school day.
	StatusPresent = "Present"
	// StatusAbsent marks a student as absent for a school day.
	StatusAbsent = "Absent"
)

// Student is a learner tracked by the teacher. RollNumber is the
// institution-assigned identifier and is unique and immutable; ID is the
// internal record key. Deleting a student deletes its grades and
// attendance records.
type Student struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"size:100;not null" json:"name"`
	RollNumber int          `gorm:"uniqueIndex;not null" json:"roll_number"`
	Grades     []Grade      `gorm:"constraint:OnDelete:CASCADE" json:"grades,omitempty"`
	Attendance []Attendance `gorm:"constraint:OnDelete:CASCADE" json:"attendance,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Grade is a single subject score for a student. Subject is free text and
// not normalized: "Math" and "math" are distinct subjects.
type Grade struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Subject   string `gorm:"size:100;not null" json:"subject"`
	Score     int    `gorm:"not null" json:"score"`
	StudentID uint   `gorm:"not null" json:"student_id"`
}

// Attendance is one student's status for one calendar day. The composite
// unique index means re-marking a day updates the existing row.
type Attendance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Date      datatypes.Date `gorm:"uniqueIndex:idx_attendance_student_date;not null" json:"date"`
	Status    string         `gorm:"size:10;not null" json:"status"`
	StudentID uint           `gorm:"uniqueIndex:idx_attendance_student_date;not null" json:"student_id"`
}

// Day normalizes a timestamp to its calendar date in UTC so attendance
// rows for the same day always compare equal.
func Day(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}
