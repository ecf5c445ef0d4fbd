package models

// AvailabilityEntry is one (day, time slot, category) tuple a student can or prefers to work.
type AvailabilityEntry struct {
	ID        int64  `db:"id" json:"id"`
	StudentID string `db:"student_id" json:"student_id"`
	Day       int    `db:"day" json:"day"`
	Time      string `db:"time" json:"time"`
	Type      string `db:"type" json:"type"`
}

// ClassScheduleEntry is one (day, time slot) tuple a student spends in class.
type ClassScheduleEntry struct {
	ID        int64  `db:"id" json:"id"`
	StudentID string `db:"student_id" json:"student_id"`
	Day       int    `db:"day" json:"day"`
	Time      string `db:"time" json:"time"`
}

// AvailabilityRow is the insert shape for student_availability. Nil fields are written
// as NULL and rejected by the NOT NULL constraints.
type AvailabilityRow struct {
	StudentID string  `db:"student_id"`
	Day       *int    `db:"day"`
	Time      *string `db:"time"`
	Type      *string `db:"type"`
}

// ClassScheduleRow is the insert shape for student_class_schedule.
type ClassScheduleRow struct {
	StudentID string  `db:"student_id"`
	Day       *int    `db:"day"`
	Time      *string `db:"time"`
}

// SubmissionResult summarises a stored submission.
type SubmissionResult struct {
	StudentID          string `json:"student_id"`
	AvailabilityCount  int    `json:"availability_count"`
	ClassScheduleCount int    `json:"class_schedule_count"`
}
