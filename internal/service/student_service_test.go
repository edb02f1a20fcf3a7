package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studenttrack/internal/metrics"
	"studenttrack/internal/model"
	"studenttrack/internal/service"
	"studenttrack/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal("failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&model.Student{}, &model.Grade{}, &model.Attendance{}); err != nil {
		t.Fatal("failed to migrate:", err)
	}
	return store.NewStore(db)
}

func TestOverview(t *testing.T) {
	st := setupTestStore(t)
	svc := service.NewStudentService(st)

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)
	_, err = svc.AddStudent("Bilal", 2)
	require.NoError(t, err)

	_, _, err = svc.AddGrade(asha.ID, "Math", 90)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Science", 70)
	require.NoError(t, err)

	overview, err := svc.Overview()
	require.NoError(t, err)
	require.Len(t, overview.Students, 2)

	assert.Equal(t, 80.0, overview.Students[0].AverageScore)
	assert.Equal(t, 100.0, overview.Students[0].AttendancePercentage)
	assert.Equal(t, 0.0, overview.Students[1].AverageScore)
	assert.False(t, overview.AttendanceMarked)
	assert.Zero(t, overview.InsightsCount)

	// Marking today's attendance flips the flag.
	require.NoError(t, st.UpsertAttendance(&model.Attendance{
		StudentID: asha.ID, Date: model.Day(time.Now()), Status: model.StatusPresent,
	}))
	overview, err = svc.Overview()
	require.NoError(t, err)
	assert.True(t, overview.AttendanceMarked)
}

func TestAddStudentDuplicateRoll(t *testing.T) {
	svc := service.NewStudentService(setupTestStore(t))

	_, err := svc.AddStudent("Asha", 5)
	require.NoError(t, err)
	_, err = svc.AddStudent("Bilal", 5)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestDetail(t *testing.T) {
	st := setupTestStore(t)
	svc := service.NewStudentService(st)

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Math", 90)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Math", 70)
	require.NoError(t, err)

	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for i, status := range []string{model.StatusPresent, model.StatusPresent, model.StatusAbsent} {
		require.NoError(t, st.UpsertAttendance(&model.Attendance{
			StudentID: asha.ID, Date: model.Day(day.AddDate(0, 0, i)), Status: status,
		}))
	}

	detail, err := svc.Detail(asha.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, detail.AverageScore)
	assert.Equal(t, 66.67, detail.AttendancePercentage)
	assert.Len(t, detail.Student.Grades, 2)
	assert.Len(t, detail.Student.Attendance, 3)
}

func TestDetailNotFound(t *testing.T) {
	svc := service.NewStudentService(setupTestStore(t))
	_, err := svc.Detail(404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddGradeFirstGradeEmitsNoInsight(t *testing.T) {
	svc := service.NewStudentService(setupTestStore(t))

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)

	grade, insight, err := svc.AddGrade(asha.ID, "Math", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, grade.Score)
	assert.Nil(t, insight)
}

func TestAddGradeClassWideRuleWins(t *testing.T) {
	st := setupTestStore(t)
	svc := service.NewStudentService(st)

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)
	bilal, err := svc.AddStudent("Bilal", 2)
	require.NoError(t, err)

	// Math holds 40 and 45 (avg 42.5); Bilal also has poor attendance, so
	// both the class-wide and attendance rules would match the new 30.
	_, _, err = svc.AddGrade(asha.ID, "Math", 40)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Math", 45)
	require.NoError(t, err)
	require.NoError(t, st.UpsertAttendance(&model.Attendance{
		StudentID: bilal.ID, Date: model.Day(time.Now()), Status: model.StatusAbsent,
	}))

	_, insight, err := svc.AddGrade(bilal.ID, "Math", 30)
	require.NoError(t, err)
	require.NotNil(t, insight)
	assert.Equal(t, metrics.CategoryClassAverageLow, insight.Category)
}

func TestAddGradeAttendanceLinkedRule(t *testing.T) {
	st := setupTestStore(t)
	svc := service.NewStudentService(st)

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)
	bilal, err := svc.AddStudent("Bilal", 2)
	require.NoError(t, err)

	// Keep the class average healthy so only the attendance rule matches.
	_, _, err = svc.AddGrade(asha.ID, "Math", 95)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Math", 90)
	require.NoError(t, err)
	require.NoError(t, st.UpsertAttendance(&model.Attendance{
		StudentID: bilal.ID, Date: model.Day(time.Now()), Status: model.StatusAbsent,
	}))

	_, insight, err := svc.AddGrade(bilal.ID, "Math", 30)
	require.NoError(t, err)
	require.NotNil(t, insight)
	assert.Equal(t, metrics.CategoryAttendanceLinked, insight.Category)
}

func TestAddGradeInsightLookupFailureKeepsGrade(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal("failed to connect to database:", err)
	}
	require.NoError(t, db.AutoMigrate(&model.Student{}, &model.Grade{}, &model.Attendance{}))
	st := store.NewStore(db)
	svc := service.NewStudentService(st)

	asha, err := svc.AddStudent("Asha", 1)
	require.NoError(t, err)
	_, _, err = svc.AddGrade(asha.ID, "Math", 45)
	require.NoError(t, err)

	// Break the attendance lookup; the grade write itself still works.
	require.NoError(t, db.Migrator().DropTable(&model.Attendance{}))

	grade, insight, err := svc.AddGrade(asha.ID, "Math", 40)
	require.NoError(t, err)
	require.NotNil(t, grade)
	assert.Nil(t, insight)

	grades, err := st.ListGradesBySubject("Math")
	require.NoError(t, err)
	assert.Len(t, grades, 2)
}

func TestAddGradeUnknownStudent(t *testing.T) {
	svc := service.NewStudentService(setupTestStore(t))
	_, _, err := svc.AddGrade(99, "Math", 50)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
