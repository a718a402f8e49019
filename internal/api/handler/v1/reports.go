package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-events-api/internal/api/handler/v1/response"
	"github.com/campushq/campus-events-api/internal/domain"
)

type ReportService interface {
	FeedbackAnalytics(ctx context.Context, filter domain.FeedbackFilter) (domain.FeedbackAnalytics, error)
	EventPopularity(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.EventPopularity, error)
	AttendanceSummary(ctx context.Context, filter domain.ReportFilter) (domain.AttendanceSummary, error)
	StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]domain.StudentParticipation, error)
	DashboardSummary(ctx context.Context) (domain.DashboardSummary, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func feedbackFilterFromQuery(ctx *gin.Context) domain.FeedbackFilter {
	return domain.FeedbackFilter{
		CollegeID: parseUintQuery(ctx, "college_id"),
		EventID:   parseUintQuery(ctx, "event_id"),
		From:      parseTimeQuery(ctx, "from"),
		To:        parseTimeQuery(ctx, "to"),
	}
}

func reportFilterFromQuery(ctx *gin.Context) domain.ReportFilter {
	return domain.ReportFilter{
		CollegeID: parseUintQuery(ctx, "college_id"),
		EventType: ctx.Query("event_type"),
		From:      parseTimeQuery(ctx, "from"),
		To:        parseTimeQuery(ctx, "to"),
	}
}

// HandleFeedbackAnalytics godoc
// @Summary      Feedback analytics with rating distribution and top events
// @Tags         reports
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        event_id    query      int     false "event ID"
// @Param        from        query      string  false "start date (RFC3339 or YYYY-MM-DD)"
// @Param        to          query      string  false "end date (RFC3339 or YYYY-MM-DD)"
// @Success      200        {object}   domain.FeedbackAnalytics
// @Failure      500        {object}   response.Err
// @Router       /reports/feedback [get]
func (h *ReportHandler) HandleFeedbackAnalytics(ctx *gin.Context) {
	analytics, err := h.svc.FeedbackAnalytics(ctx.Request.Context(), feedbackFilterFromQuery(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleFeedbackAnalytics -> h.svc.FeedbackAnalytics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, analytics)
}

// HandleEventPopularity godoc
// @Summary      Events ranked by registrations
// @Tags         reports
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        event_type  query      string  false "event type"
// @Param        limit       query      int     false "max rows (default 10)"
// @Success      200        {object}   []domain.EventPopularity
// @Failure      500        {object}   response.Err
// @Router       /reports/popularity [get]
func (h *ReportHandler) HandleEventPopularity(ctx *gin.Context) {
	popularity, err := h.svc.EventPopularity(ctx.Request.Context(), reportFilterFromQuery(ctx), parseIntQuery(ctx, "limit"))
	if err != nil {
		err = fmt.Errorf("v1.HandleEventPopularity -> h.svc.EventPopularity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, popularity)
}

// HandleAttendanceSummary godoc
// @Summary      Attendance totals broken down by event type and college
// @Tags         reports
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        event_type  query      string  false "event type"
// @Success      200        {object}   domain.AttendanceSummary
// @Failure      500        {object}   response.Err
// @Router       /reports/attendance [get]
func (h *ReportHandler) HandleAttendanceSummary(ctx *gin.Context) {
	summary, err := h.svc.AttendanceSummary(ctx.Request.Context(), reportFilterFromQuery(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleAttendanceSummary -> h.svc.AttendanceSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleStudentParticipation godoc
// @Summary      Students ranked by event participation
// @Tags         reports
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        department  query      string  false "department"
// @Param        min_events  query      int     false "minimum registrations (default 1)"
// @Success      200        {object}   []domain.StudentParticipation
// @Failure      500        {object}   response.Err
// @Router       /reports/participation [get]
func (h *ReportHandler) HandleStudentParticipation(ctx *gin.Context) {
	participation, err := h.svc.StudentParticipation(
		ctx.Request.Context(),
		parseUintQuery(ctx, "college_id"),
		ctx.Query("department"),
		parseIntQuery(ctx, "min_events"),
	)
	if err != nil {
		err = fmt.Errorf("v1.HandleStudentParticipation -> h.svc.StudentParticipation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, participation)
}

// HandleDashboard godoc
// @Summary      Platform-wide dashboard summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}   domain.DashboardSummary
// @Failure      500  {object}   response.Err
// @Router       /reports/dashboard [get]
func (h *ReportHandler) HandleDashboard(ctx *gin.Context) {
	summary, err := h.svc.DashboardSummary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.DashboardSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, summary)
}
