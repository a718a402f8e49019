package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-events-api/internal/api/handler/v1/request"
	"github.com/campushq/campus-events-api/internal/api/handler/v1/response"
	"github.com/campushq/campus-events-api/internal/config"
	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/pkg/jwthelper"
	"github.com/campushq/campus-events-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, admin domain.AdminUser) (domain.AdminUser, error)
	Login(ctx context.Context, email, password string) (domain.AdminUser, error)
	StudentLogin(ctx context.Context, collegeCode, studentID string) (domain.Student, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

func (h *AuthHandler) tokenTTL() time.Duration {
	hours := h.conf.JWTTTLHours
	if hours <= 0 {
		hours = 24
	}

	return time.Duration(hours) * time.Hour
}

// HandleSignup godoc
// @Summary      Signup a new admin
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   domain.AdminUser
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	req := request.SignupRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin := domain.AdminUser{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: true,
	}
	if req.CollegeID != 0 {
		collegeID := req.CollegeID
		admin.CollegeID = &collegeID
	}

	created, err := h.svc.Signup(ctx.Request.Context(), admin)
	if err != nil {
		if errors.Is(err, service.ErrAdminEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAdminEmailExists))

			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleLogin godoc
// @Summary      Login an admin
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrAdminInactive) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), admin.ID, admin.Role, ctx.Request.UserAgent(), h.tokenTTL())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		Admin: admin,
	})
}

// HandleStudentLogin godoc
// @Summary      Login a student with college code and student id
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StudentLoginRequest true "request body"
// @Success      200      {object}   response.StudentLoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/student-login [post]
func (h *AuthHandler) HandleStudentLogin(ctx *gin.Context) {
	req := request.StudentLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.StudentLogin(ctx.Request.Context(), req.CollegeCode, req.StudentID)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) || errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleStudentLogin -> h.svc.StudentLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), student.ID, domain.RoleStudent, ctx.Request.UserAgent(), h.tokenTTL())
	if err != nil {
		err = fmt.Errorf("v1.HandleStudentLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StudentLoginResponse{
		Token:   token,
		Student: student,
	})
}
