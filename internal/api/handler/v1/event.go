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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, int, error)
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	EndEvent(ctx context.Context, id uint) error
	CancelEvent(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, studentID uint) (domain.EventRegistration, error)
	Unregister(ctx context.Context, eventID, studentID uint) error
	ListRegistrations(ctx context.Context, eventID uint) ([]domain.EventRegistration, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	req := request.CreateEventRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		CollegeID:             req.CollegeID,
		Title:                 req.Title,
		Description:           req.Description,
		EventType:             req.EventType,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Location:              req.Location,
		MaxParticipants:       req.MaxParticipants,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationDeadline:  req.RegistrationDeadline,
		CreatedBy:             callerIdentity(ctx).UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEventDates):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidEventDates))
		case errors.Is(err, service.ErrCollegeNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCollegeNotFound))
		case errors.Is(err, service.ErrEventCodeExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventCodeExists))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get an event with its live registration count
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   response.EventDetail
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, registered, err := h.svc.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewEventDetail(event, registered))
}

// HandleListEvents godoc
// @Summary      List events, optionally filtered by college, status or type
// @Tags         events
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        status      query      string  false "event status" Enums(active, ended, cancelled)
// @Param        event_type  query      string  false "event type"
// @Success      200        {object}   []domain.Event
// @Failure      500        {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	filter := domain.EventFilter{
		CollegeID: parseUintQuery(ctx, "college_id"),
		Status:    ctx.Query("status"),
		EventType: ctx.Query("event_type"),
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.UpdateEventRequest true "request body"
// @Success      200     {object}   domain.Event
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateEventRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), domain.Event{
		ID:                    id,
		Title:                 req.Title,
		Description:           req.Description,
		EventType:             req.EventType,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Location:              req.Location,
		MaxParticipants:       req.MaxParticipants,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationDeadline:  req.RegistrationDeadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEventDates):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidEventDates))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleEndEvent godoc
// @Summary      End an active event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   map[string]string
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      409     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/end [post]
func (h *EventHandler) HandleEndEvent(ctx *gin.Context) {
	h.handleTransition(ctx, h.svc.EndEvent, string(domain.EventStatusEnded))
}

// HandleCancelEvent godoc
// @Summary      Cancel an active event
// @Tags         events
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   map[string]string
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      409     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/cancel [post]
func (h *EventHandler) HandleCancelEvent(ctx *gin.Context) {
	h.handleTransition(ctx, h.svc.CancelEvent, string(domain.EventStatusCancelled))
}

func (h *EventHandler) handleTransition(ctx *gin.Context, transition func(context.Context, uint) error, status string) {
	id, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = transition(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrEventNotActive):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventNotActive))
		default:
			err = fmt.Errorf("v1.handleTransition -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": status})
}

// HandleRegisterStudent godoc
// @Summary      Register a student for an event
// @Tags         registrations
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Param        request  body       request.RegisterStudentRequest true "request body"
// @Success      201     {object}   domain.EventRegistration
// @Failure      400     {object}   response.Err
// @Failure      403     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      409     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/register [post]
func (h *EventHandler) HandleRegisterStudent(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.RegisterStudentRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !canActForStudent(callerIdentity(ctx), req.StudentID) {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("students may only register themselves")))

		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), eventID, req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
		case errors.Is(err, service.ErrEventClosed),
			errors.Is(err, service.ErrRegistrationNotOpen),
			errors.Is(err, service.ErrRegistrationClosed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrEventFull),
			errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRegisterStudent -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleUnregisterStudent godoc
// @Summary      Cancel a student's registration
// @Tags         registrations
// @Produce      json
// @Param        eventID    path       int  true "event ID"
// @Param        studentID  path       int  true "student ID"
// @Success      200       {object}   map[string]string
// @Failure      400       {object}   response.Err
// @Failure      403       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /events/{eventID}/register/{studentID} [delete]
func (h *EventHandler) HandleUnregisterStudent(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	studentID, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !canActForStudent(callerIdentity(ctx), studentID) {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("students may only cancel their own registration")))

		return
	}

	if err = h.svc.Unregister(ctx.Request.Context(), eventID, studentID); err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrNotRegistered))

			return
		}

		err = fmt.Errorf("v1.HandleUnregisterStudent -> h.svc.Unregister -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// HandleListRegistrations godoc
// @Summary      List an event's registrations
// @Tags         registrations
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200     {object}   []domain.EventRegistration
// @Failure      400     {object}   response.Err
// @Failure      404     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /events/{eventID}/registrations [get]
func (h *EventHandler) HandleListRegistrations(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	registrations, err := h.svc.ListRegistrations(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.ListRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}
