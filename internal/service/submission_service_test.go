package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/schedule-intake-api/internal/dto"
	"github.com/noah-isme/schedule-intake-api/internal/models"
	appErrors "github.com/noah-isme/schedule-intake-api/pkg/errors"
)

type submissionRepoMock struct {
	calls        int
	studentID    string
	availability []models.AvailabilityRow
	classes      []models.ClassScheduleRow
	err          error
}

func (m *submissionRepoMock) ReplaceForStudent(ctx context.Context, studentID string, availability []models.AvailabilityRow, classes []models.ClassScheduleRow) error {
	m.calls++
	m.studentID = studentID
	m.availability = availability
	m.classes = classes
	return m.err
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestSubmissionServiceSubmit(t *testing.T) {
	repo := &submissionRepoMock{}
	metrics := NewMetricsService()
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewSubmissionService(repo, validator.New(), metrics, zap.New(core))

	result, err := svc.Submit(context.Background(), dto.SubmitScheduleRequest{
		StudentID: "S1",
		Availability: []dto.AvailabilityItem{
			{Day: intPtr(1), Time: strPtr("09:00-10:00"), Type: strPtr("available")},
			{Day: intPtr(2), Time: strPtr("13:00-14:00"), Type: strPtr("preferred")},
		},
		ClassSchedule: []dto.ClassScheduleItem{
			{Day: intPtr(1), Time: strPtr("10:00-11:00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.SubmissionResult{StudentID: "S1", AvailabilityCount: 2, ClassScheduleCount: 1}, result)

	require.Equal(t, 1, repo.calls)
	assert.Equal(t, "S1", repo.studentID)
	require.Len(t, repo.availability, 2)
	assert.Equal(t, "preferred", *repo.availability[1].Type)
	assert.Equal(t, "S1", repo.availability[1].StudentID)
	require.Len(t, repo.classes, 1)
	assert.Equal(t, 1, *repo.classes[0].Day)

	assert.Equal(t, 1, logs.FilterMessage("schedule submission received").Len())
	assert.Equal(t, 1, logs.FilterMessage("schedule submission stored").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submissions.WithLabelValues(OutcomeSuccess)))
}

func TestSubmissionServiceSubmitEmptyListsStillReplaces(t *testing.T) {
	repo := &submissionRepoMock{}
	svc := NewSubmissionService(repo, nil, nil, nil)

	result, err := svc.Submit(context.Background(), dto.SubmitScheduleRequest{StudentID: "S1"})
	require.NoError(t, err)
	assert.Zero(t, result.AvailabilityCount)
	assert.Zero(t, result.ClassScheduleCount)
	assert.Equal(t, 1, repo.calls)
	assert.Empty(t, repo.availability)
	assert.Empty(t, repo.classes)
}

func TestSubmissionServiceSubmitRequiresStudentID(t *testing.T) {
	repo := &submissionRepoMock{}
	metrics := NewMetricsService()
	svc := NewSubmissionService(repo, validator.New(), metrics, zap.NewNop())

	_, err := svc.Submit(context.Background(), dto.SubmitScheduleRequest{
		Availability: []dto.AvailabilityItem{{Day: intPtr(1), Time: strPtr("09:00-10:00"), Type: strPtr("available")}},
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "studentId is required", appErr.Message)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, repo.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submissions.WithLabelValues(OutcomeInvalid)))
}

func TestSubmissionServiceSubmitStorageFailure(t *testing.T) {
	cause := errors.New("NOT NULL constraint failed: student_availability.type")
	repo := &submissionRepoMock{err: cause}
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewSubmissionService(repo, validator.New(), NewMetricsService(), zap.New(core))

	_, err := svc.Submit(context.Background(), dto.SubmitScheduleRequest{
		StudentID:    "S1",
		Availability: []dto.AvailabilityItem{{Day: intPtr(1), Time: strPtr("09:00-10:00")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Nil(t, repo.availability[0].Type)

	failed := logs.FilterMessage("schedule submission failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, 0, logs.FilterMessage("schedule submission stored").Len())
}
