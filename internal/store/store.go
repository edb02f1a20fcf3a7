package store

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studenttrack/internal/model"
)

var (
	// ErrNotFound reports a lookup for a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a uniqueness-constraint violation, kept distinct
	// from generic persistence failures so handlers can answer 409.
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the single gateway to the database. It is handed to services
// explicitly rather than living in a package-level handle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetStudent(id uint) (*model.Student, error) {
	var student model.Student
	if err := s.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &student, nil
}

// GetStudentWithRecords loads a student together with grades and
// attendance, both in insertion order.
func (s *Store) GetStudentWithRecords(id uint) (*model.Student, error) {
	var student model.Student
	err := s.db.
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Attendance", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &student, nil
}

func (s *Store) ListStudents() ([]model.Student, error) {
	var students []model.Student
	if err := s.db.Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// ListStudentsWithRecords is the overview and export query: every student
// with grades and attendance preloaded.
func (s *Store) ListStudentsWithRecords() ([]model.Student, error) {
	var students []model.Student
	err := s.db.
		Preload("Grades", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Attendance").
		Order("id ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// ListGradesBySubject matches the subject exactly and case-sensitively.
func (s *Store) ListGradesBySubject(subject string) ([]model.Grade, error) {
	var grades []model.Grade
	if err := s.db.Where("subject = ?", subject).Order("id ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (s *Store) ListAttendanceByStudent(studentID uint) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := s.db.Where("student_id = ?", studentID).Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAttendance returns the row for one (student, day), or ErrNotFound.
func (s *Store) FindAttendance(studentID uint, day datatypes.Date) (*model.Attendance, error) {
	var record model.Attendance
	err := s.db.Where("student_id = ? AND date = ?", studentID, day).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attendance for student %d: %w", studentID, ErrNotFound)
		}
		return nil, err
	}
	return &record, nil
}

// CountAttendanceOnDate backs the "attendance marked today" flag on the
// overview.
func (s *Store) CountAttendanceOnDate(day datatypes.Date) (int64, error) {
	var count int64
	if err := s.db.Model(&model.Attendance{}).Where("date = ?", day).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddStudent inserts a new student. A taken roll number yields
// ErrDuplicate and leaves the existing row untouched.
func (s *Store) AddStudent(student *model.Student) error {
	var existing model.Student
	err := s.db.Where("roll_number = ?", student.RollNumber).First(&existing).Error
	if err == nil {
		return fmt.Errorf("roll number %d: %w", student.RollNumber, ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.db.Create(student).Error; err != nil {
		// A concurrent insert can still lose the race to the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("roll number %d: %w", student.RollNumber, ErrDuplicate)
		}
		return err
	}
	return nil
}

func (s *Store) AddGrade(grade *model.Grade) error {
	return s.db.Create(grade).Error
}

// UpsertAttendance inserts the day's row or, when the (student, date) pair
// already exists, updates its status in place.
func (s *Store) UpsertAttendance(record *model.Attendance) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("attendance for student %d: %w", record.StudentID, ErrDuplicate)
		}
		return err
	}
	return nil
}

// UpsertAttendanceBatch writes a whole day's marking atomically: every
// record goes through the same upsert as UpsertAttendance, and any
// failure (including an unknown student) rolls the entire batch back.
func (s *Store) UpsertAttendanceBatch(records []model.Attendance) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			record := &records[i]

			var count int64
			if err := tx.Model(&model.Student{}).Where("id = ?", record.StudentID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("student %d: %w", record.StudentID, ErrNotFound)
			}

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status"}),
			}).Create(record).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("attendance for student %d: %w", record.StudentID, ErrDuplicate)
				}
				return err
			}
		}
		return nil
	})
}

// DeleteStudent removes the student and, through the association select,
// its grades and attendance rows.
func (s *Store) DeleteStudent(id uint) error {
	student, err := s.GetStudent(id)
	if err != nil {
		return err
	}
	return s.db.Select(clause.Associations).Delete(student).Error
}

// TopGradeBySubject returns the highest grade for a subject. Ties break to
// the lowest grade id, so the result is deterministic regardless of
// storage order. ErrNotFound means no grades exist for the subject.
func (s *Store) TopGradeBySubject(subject string) (*model.Grade, error) {
	var grade model.Grade
	err := s.db.Where("subject = ?", subject).Order("score DESC, id ASC").First(&grade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("grades for %q: %w", subject, ErrNotFound)
		}
		return nil, err
	}
	return &grade, nil
}
