package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedule-intake-api/internal/models"
)

const (
	deleteAvailabilityQuery  = `DELETE FROM student_availability WHERE student_id = ?`
	deleteClassScheduleQuery = `DELETE FROM student_class_schedule WHERE student_id = ?`
	insertAvailabilityQuery  = `INSERT INTO student_availability (student_id, day, time, type) VALUES (:student_id, :day, :time, :type)`
	insertClassScheduleQuery = `INSERT INTO student_class_schedule (student_id, day, time) VALUES (:student_id, :day, :time)`
)

// SubmissionRepository persists student availability and class schedules.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// ReplaceForStudent deletes every stored row for studentID and inserts the given rows in
// one transaction. Any failure rolls back, leaving the previous rows in place.
func (r *SubmissionRepository) ReplaceForStudent(ctx context.Context, studentID string, availability []models.AvailabilityRow, classes []models.ClassScheduleRow) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace submission: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteAvailabilityQuery, studentID); err != nil {
		return fmt.Errorf("delete student availability: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteClassScheduleQuery, studentID); err != nil {
		return fmt.Errorf("delete student class schedule: %w", err)
	}

	if err = insertAvailability(ctx, tx, studentID, availability); err != nil {
		return err
	}
	if err = insertClassSchedule(ctx, tx, studentID, classes); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace submission: %w", err)
	}
	return nil
}

func insertAvailability(ctx context.Context, exec sqlx.ExtContext, studentID string, rows []models.AvailabilityRow) error {
	for i := range rows {
		row := rows[i]
		row.StudentID = studentID
		if _, err := sqlx.NamedExecContext(ctx, exec, insertAvailabilityQuery, &row); err != nil {
			return fmt.Errorf("insert availability #%d: %w", i, err)
		}
	}
	return nil
}

func insertClassSchedule(ctx context.Context, exec sqlx.ExtContext, studentID string, rows []models.ClassScheduleRow) error {
	for i := range rows {
		row := rows[i]
		row.StudentID = studentID
		if _, err := sqlx.NamedExecContext(ctx, exec, insertClassScheduleQuery, &row); err != nil {
			return fmt.Errorf("insert class schedule #%d: %w", i, err)
		}
	}
	return nil
}

// ListAvailability returns the stored availability rows for a student in insertion order.
func (r *SubmissionRepository) ListAvailability(ctx context.Context, studentID string) ([]models.AvailabilityEntry, error) {
	const query = `SELECT id, student_id, day, time, type FROM student_availability WHERE student_id = ? ORDER BY id`
	entries := []models.AvailabilityEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list student availability: %w", err)
	}
	return entries, nil
}

// ListClassSchedule returns the stored class rows for a student in insertion order.
func (r *SubmissionRepository) ListClassSchedule(ctx context.Context, studentID string) ([]models.ClassScheduleEntry, error) {
	const query = `SELECT id, student_id, day, time FROM student_class_schedule WHERE student_id = ? ORDER BY id`
	entries := []models.ClassScheduleEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list student class schedule: %w", err)
	}
	return entries, nil
}

// Ping verifies the database is reachable.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
