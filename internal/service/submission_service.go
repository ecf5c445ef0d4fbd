package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schedule-intake-api/internal/dto"
	"github.com/noah-isme/schedule-intake-api/internal/models"
	appErrors "github.com/noah-isme/schedule-intake-api/pkg/errors"
)

type submissionRepository interface {
	ReplaceForStudent(ctx context.Context, studentID string, availability []models.AvailabilityRow, classes []models.ClassScheduleRow) error
}

// SubmissionService validates schedule submissions and replaces the stored rows.
type SubmissionService struct {
	repo      submissionRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSubmissionService builds the service.
func NewSubmissionService(repo submissionRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		repo:      repo,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit replaces every availability and class-schedule row of req.StudentID with the
// submitted ones.
func (s *SubmissionService) Submit(ctx context.Context, req dto.SubmitScheduleRequest) (*models.SubmissionResult, error) {
	if err := s.validate(req); err != nil {
		s.metrics.ObserveSubmission(OutcomeInvalid, 0, 0)
		return nil, err
	}

	s.logger.Info("schedule submission received",
		zap.String("student_id", req.StudentID),
		zap.Int("availability_count", len(req.Availability)),
		zap.Int("class_schedule_count", len(req.ClassSchedule)),
		zap.Object("payload", req),
	)

	availability := make([]models.AvailabilityRow, 0, len(req.Availability))
	for _, item := range req.Availability {
		availability = append(availability, models.AvailabilityRow{
			StudentID: req.StudentID,
			Day:       item.Day,
			Time:      item.Time,
			Type:      item.Type,
		})
	}
	classes := make([]models.ClassScheduleRow, 0, len(req.ClassSchedule))
	for _, item := range req.ClassSchedule {
		classes = append(classes, models.ClassScheduleRow{
			StudentID: req.StudentID,
			Day:       item.Day,
			Time:      item.Time,
		})
	}

	start := time.Now()
	err := s.repo.ReplaceForStudent(ctx, req.StudentID, availability, classes)
	s.metrics.ObserveDBQuery("replace_submission", time.Since(start))
	if err != nil {
		s.metrics.ObserveSubmission(OutcomeStorageFailed, 0, 0)
		s.logger.Error("schedule submission failed",
			zap.String("student_id", req.StudentID),
			zap.Error(err),
		)
		return nil, appErrors.WrapAs(appErrors.ErrStorage, err)
	}

	s.metrics.ObserveSubmission(OutcomeSuccess, len(availability), len(classes))
	s.logger.Info("schedule submission stored",
		zap.String("student_id", req.StudentID),
		zap.Int("availability_count", len(availability)),
		zap.Int("class_schedule_count", len(classes)),
	)

	return &models.SubmissionResult{
		StudentID:          req.StudentID,
		AvailabilityCount:  len(availability),
		ClassScheduleCount: len(classes),
	}, nil
}

func (s *SubmissionService) validate(req dto.SubmitScheduleRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "StudentID" {
				return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "studentId is required")
			}
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
}
