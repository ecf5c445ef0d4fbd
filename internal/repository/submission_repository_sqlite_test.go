package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedule-intake-api/internal/models"
	"github.com/noah-isme/schedule-intake-api/pkg/config"
	"github.com/noah-isme/schedule-intake-api/pkg/database"
)

func newSQLiteRepo(t *testing.T) (*SubmissionRepository, *sqlx.DB) {
	t.Helper()
	db, err := database.NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "schedule.db"), MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.EnsureSchema(context.Background(), db))
	return NewSubmissionRepository(db), db
}

func availabilityRow(day int, slot, kind string) models.AvailabilityRow {
	return models.AvailabilityRow{Day: intPtr(day), Time: strPtr(slot), Type: strPtr(kind)}
}

func classRow(day int, slot string) models.ClassScheduleRow {
	return models.ClassScheduleRow{Day: intPtr(day), Time: strPtr(slot)}
}

func TestSQLiteReplaceForStudentReplacesPriorRows(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForStudent(ctx, "S1",
		[]models.AvailabilityRow{availabilityRow(1, "09:00-10:00", "available"), availabilityRow(2, "11:00-12:00", "preferred")},
		[]models.ClassScheduleRow{classRow(1, "10:00-11:00")},
	))
	require.NoError(t, repo.ReplaceForStudent(ctx, "S1",
		[]models.AvailabilityRow{availabilityRow(5, "14:00-15:00", "available")},
		nil,
	))

	avail, err := repo.ListAvailability(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, "S1", avail[0].StudentID)
	assert.Equal(t, 5, avail[0].Day)
	assert.Equal(t, "14:00-15:00", avail[0].Time)
	assert.Equal(t, "available", avail[0].Type)

	classes, err := repo.ListClassSchedule(ctx, "S1")
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestSQLiteReplaceForStudentKeepsDuplicates(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	row := availabilityRow(0, "08:00-09:00", "available")
	require.NoError(t, repo.ReplaceForStudent(ctx, "S1", []models.AvailabilityRow{row, row}, nil))

	avail, err := repo.ListAvailability(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, avail, 2)
	assert.Less(t, avail[0].ID, avail[1].ID)
}

func TestSQLiteReplaceForStudentRollsBackOnMissingField(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForStudent(ctx, "S1",
		[]models.AvailabilityRow{availabilityRow(1, "09:00-10:00", "available")},
		[]models.ClassScheduleRow{classRow(1, "10:00-11:00")},
	))

	err := repo.ReplaceForStudent(ctx, "S1",
		[]models.AvailabilityRow{availabilityRow(3, "09:00-10:00", "available")},
		[]models.ClassScheduleRow{{Day: intPtr(2)}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT NULL")

	avail, err := repo.ListAvailability(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, 1, avail[0].Day)

	var total int
	require.NoError(t, db.GetContext(ctx, &total, `SELECT COUNT(*) FROM student_class_schedule WHERE student_id = ?`, "S1"))
	assert.Equal(t, 1, total)
}

func TestSQLiteReplaceForStudentIsolatesStudents(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForStudent(ctx, "S1", []models.AvailabilityRow{availabilityRow(1, "09:00-10:00", "available")}, nil))
	require.NoError(t, repo.ReplaceForStudent(ctx, "S2", nil, []models.ClassScheduleRow{classRow(6, "18:00-19:00")}))
	require.NoError(t, repo.ReplaceForStudent(ctx, "S2", nil, nil))

	avail, err := repo.ListAvailability(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, avail, 1)
}

func TestSQLiteReplaceForStudentConcurrentWriters(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	students := []string{"A", "B", "C", "D", "E", "F"}
	var wg sync.WaitGroup
	errs := make(chan error, len(students)*3)
	for _, id := range students {
		for round := 0; round < 3; round++ {
			wg.Add(1)
			go func(id string, round int) {
				defer wg.Done()
				errs <- repo.ReplaceForStudent(ctx, id,
					[]models.AvailabilityRow{availabilityRow(round, "09:00-10:00", "available")},
					[]models.ClassScheduleRow{classRow(round, "10:00-11:00")},
				)
			}(id, round)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, id := range students {
		avail, err := repo.ListAvailability(ctx, id)
		require.NoError(t, err)
		assert.Len(t, avail, 1, "student %s", id)
		classes, err := repo.ListClassSchedule(ctx, id)
		require.NoError(t, err)
		assert.Len(t, classes, 1, "student %s", id)
	}
}
