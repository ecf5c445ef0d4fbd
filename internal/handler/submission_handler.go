package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/schedule-intake-api/internal/dto"
	"github.com/noah-isme/schedule-intake-api/internal/models"
	"github.com/noah-isme/schedule-intake-api/internal/service"
	appErrors "github.com/noah-isme/schedule-intake-api/pkg/errors"
	"github.com/noah-isme/schedule-intake-api/pkg/logger"
	"github.com/noah-isme/schedule-intake-api/pkg/response"
)

// SubmissionSuccessMessage is returned after a submission is stored.
const SubmissionSuccessMessage = "schedule submitted successfully"

type submissionService interface {
	Submit(ctx context.Context, req dto.SubmitScheduleRequest) (*models.SubmissionResult, error)
}

// SubmissionHandler exposes the schedule submission endpoint.
type SubmissionHandler struct {
	service submissionService
	metrics *service.MetricsService
	logger  *zap.Logger
}

// NewSubmissionHandler constructs the handler. metrics and logger may be nil.
func NewSubmissionHandler(svc submissionService, metrics *service.MetricsService, logger *zap.Logger) *SubmissionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionHandler{service: svc, metrics: metrics, logger: logger}
}

// Submit godoc
// @Summary Submit a student's availability and class schedule
// @Description Replaces every stored availability and class-schedule row for the student.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.SubmitScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/submit-schedule [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ObserveSubmission(service.OutcomeRequestFormat, 0, 0)
		logger.FromContext(h.logger, c).Warn("schedule submission rejected", zap.Error(err))
		_ = c.Error(err)
		response.Error(c, appErrors.WrapAs(appErrors.ErrRequestFormat, err))
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), req); err != nil {
		_ = c.Error(err)
		response.Error(c, err)
		return
	}
	response.Success(c, SubmissionSuccessMessage)
}
