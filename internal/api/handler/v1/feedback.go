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

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, eventID, studentID uint, rating int, comments string) (domain.Feedback, error)
	ListFeedback(ctx context.Context, eventID uint) ([]domain.Feedback, error)
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Submit feedback for an attended event
// @Description  One rating per student per event; the student must have been marked present.
// @Tags         feedback
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.SubmitFeedbackRequest true "request body"
// @Success      201     {object}   domain.Feedback
// @Failure      400     {object}   response.Err
// @Failure      403     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      409     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/feedback [post]
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SubmitFeedbackRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !canActForStudent(callerIdentity(ctx), req.StudentID) {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("students may only submit their own feedback")))

		return
	}

	feedback, err := h.svc.SubmitFeedback(ctx.Request.Context(), eventID, req.StudentID, req.Rating, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRating))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrAttendanceRequired):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAttendanceRequired))
		case errors.Is(err, service.ErrFeedbackExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrFeedbackExists))
		default:
			err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.SubmitFeedback -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, feedback)
}

// HandleListFeedback godoc
// @Summary      List an event's feedback
// @Tags         feedback
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   []domain.Feedback
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/feedback [get]
func (h *FeedbackHandler) HandleListFeedback(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedback, err := h.svc.ListFeedback(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListFeedback -> h.svc.ListFeedback -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, feedback)
}
