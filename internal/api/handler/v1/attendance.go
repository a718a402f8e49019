package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-events-api/internal/api/handler/v1/request"
	"github.com/campushq/campus-events-api/internal/api/handler/v1/response"
	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/service"
)

type AttendanceService interface {
	MarkAttendance(ctx context.Context, eventID, studentID uint, status domain.AttendanceStatus, notes string, markedBy uint) (domain.Attendance, error)
	CheckOut(ctx context.Context, eventID, studentID uint) error
	ListAttendance(ctx context.Context, eventID uint) ([]domain.Attendance, error)
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		svc: svc,
	}
}

// HandleMarkAttendance godoc
// @Summary      Mark a registered student's attendance
// @Description  Marking is idempotent; repeating the call updates the existing record.
// @Tags         attendance
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.MarkAttendanceRequest true "request body"
// @Success      200     {object}   domain.Attendance
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      409     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/attendance [post]
func (h *AttendanceHandler) HandleMarkAttendance(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.MarkAttendanceRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	attendance, err := h.svc.MarkAttendance(
		ctx.Request.Context(),
		eventID,
		req.StudentID,
		domain.AttendanceStatus(req.Status),
		req.Notes,
		callerIdentity(ctx).UserID,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrEventNotActive):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventNotActive))
		case errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotRegistered))
		default:
			err = fmt.Errorf("v1.HandleMarkAttendance -> h.svc.MarkAttendance -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, attendance)
}

// HandleCheckOut godoc
// @Summary      Record a student's check-out time
// @Tags         attendance
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.CheckOutRequest true "request body"
// @Success      200     {object}   map[string]string
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/attendance/checkout [post]
func (h *AttendanceHandler) HandleCheckOut(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.CheckOutRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.CheckOut(ctx.Request.Context(), eventID, req.StudentID); err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAttendanceNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCheckOut -> h.svc.CheckOut -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "checked_out"})
}

// HandleListAttendance godoc
// @Summary      List an event's attendance records
// @Tags         attendance
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   []domain.Attendance
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/attendance [get]
func (h *AttendanceHandler) HandleListAttendance(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	attendance, err := h.svc.ListAttendance(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListAttendance -> h.svc.ListAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, attendance)
}
