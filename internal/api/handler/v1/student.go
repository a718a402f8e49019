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

type StudentService interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	GetStudent(ctx context.Context, id uint) (domain.Student, error)
	ListStudents(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
}

type StudentRegistrationService interface {
	ListStudentRegistrations(ctx context.Context, studentID uint) ([]domain.EventRegistration, error)
}

type StudentProfileService interface {
	StudentProfile(ctx context.Context, studentID uint) (domain.StudentProfile, error)
}

type StudentHandler struct {
	svc        StudentService
	regSvc     StudentRegistrationService
	profileSvc StudentProfileService
}

func NewStudentHandler(svc StudentService, regSvc StudentRegistrationService, profileSvc StudentProfileService) *StudentHandler {
	return &StudentHandler{
		svc:        svc,
		regSvc:     regSvc,
		profileSvc: profileSvc,
	}
}

// HandleCreateStudent godoc
// @Summary      Enroll a student
// @Tags         students
// @Produce      json
// @Param        request   body      request.CreateStudentRequest true "request body"
// @Success      201      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students [post]
func (h *StudentHandler) HandleCreateStudent(ctx *gin.Context) {
	req := request.CreateStudentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.CreateStudent(ctx.Request.Context(), domain.Student{
		StudentID:   req.StudentID,
		CollegeID:   req.CollegeID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Department:  req.Department,
		YearOfStudy: req.YearOfStudy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCollegeNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCollegeNotFound))
		case errors.Is(err, service.ErrStudentEmailExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrStudentEmailExists))
		case errors.Is(err, service.ErrStudentIDExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrStudentIDExists))
		default:
			err = fmt.Errorf("v1.HandleCreateStudent -> h.svc.CreateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// HandleGetStudent godoc
// @Summary      Get a student by ID
// @Tags         students
// @Produce      json
// @Param        studentID  path       int  true "student ID"
// @Success      200       {object}   domain.Student
// @Failure      400       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /students/{studentID} [get]
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetStudent -> h.svc.GetStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleListStudents godoc
// @Summary      List students, optionally filtered by college or department
// @Tags         students
// @Produce      json
// @Param        college_id  query      int     false "college ID"
// @Param        department  query      string  false "department"
// @Success      200        {object}   []domain.Student
// @Failure      500        {object}   response.Err
// @Router       /students [get]
func (h *StudentHandler) HandleListStudents(ctx *gin.Context) {
	filter := domain.StudentFilter{
		CollegeID:  parseUintQuery(ctx, "college_id"),
		Department: ctx.Query("department"),
	}

	students, err := h.svc.ListStudents(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleUpdateStudent godoc
// @Summary      Update a student
// @Tags         students
// @Produce      json
// @Param        studentID  path       int  true "student ID"
// @Param        request    body       request.UpdateStudentRequest true "request body"
// @Success      200       {object}   domain.Student
// @Failure      400       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /students/{studentID} [put]
func (h *StudentHandler) HandleUpdateStudent(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateStudentRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.UpdateStudent(ctx.Request.Context(), domain.Student{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Department:  req.Department,
		YearOfStudy: req.YearOfStudy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
		case errors.Is(err, service.ErrStudentEmailExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrStudentEmailExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateStudent -> h.svc.UpdateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleListStudentRegistrations godoc
// @Summary      List a student's event registrations
// @Tags         students
// @Produce      json
// @Param        studentID  path       int  true "student ID"
// @Success      200       {object}   []domain.EventRegistration
// @Failure      400       {object}   response.Err
// @Failure      403       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /students/{studentID}/registrations [get]
func (h *StudentHandler) HandleListStudentRegistrations(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !canActForStudent(callerIdentity(ctx), id) {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("students may only view their own registrations")))

		return
	}

	registrations, err := h.regSvc.ListStudentRegistrations(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleListStudentRegistrations -> h.regSvc.ListStudentRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleGetStudentProfile godoc
// @Summary      Get a student's participation profile
// @Tags         students
// @Produce      json
// @Param        studentID  path       int  true "student ID"
// @Success      200       {object}   domain.StudentProfile
// @Failure      400       {object}   response.Err
// @Failure      403       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /students/{studentID}/profile [get]
func (h *StudentHandler) HandleGetStudentProfile(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if !canActForStudent(callerIdentity(ctx), id) {
		response.RenderErr(ctx, response.ErrForbidden(errors.New("students may only view their own profile")))

		return
	}

	profile, err := h.profileSvc.StudentProfile(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetStudentProfile -> h.profileSvc.StudentProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, profile)
}
