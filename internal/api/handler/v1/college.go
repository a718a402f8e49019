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

type CollegeService interface {
	CreateCollege(ctx context.Context, college domain.College) (domain.College, error)
	GetCollege(ctx context.Context, id uint) (domain.College, error)
	ListColleges(ctx context.Context) ([]domain.College, error)
	UpdateCollege(ctx context.Context, college domain.College) (domain.College, error)
}

type CollegeHandler struct {
	svc CollegeService
}

func NewCollegeHandler(svc CollegeService) *CollegeHandler {
	return &CollegeHandler{
		svc: svc,
	}
}

// HandleCreateCollege godoc
// @Summary      Register a college
// @Tags         colleges
// @Produce      json
// @Param        request   body      request.CreateCollegeRequest true "request body"
// @Success      201      {object}   domain.College
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges [post]
func (h *CollegeHandler) HandleCreateCollege(ctx *gin.Context) {
	req := request.CreateCollegeRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	college, err := h.svc.CreateCollege(ctx.Request.Context(), domain.College{
		Code:         req.Code,
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		if errors.Is(err, service.ErrCollegeCodeExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrCollegeCodeExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateCollege -> h.svc.CreateCollege -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, college)
}

// HandleGetCollege godoc
// @Summary      Get a college by ID
// @Tags         colleges
// @Produce      json
// @Param        collegeID  path       int  true "college ID"
// @Success      200       {object}   domain.College
// @Failure      400       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /colleges/{collegeID} [get]
func (h *CollegeHandler) HandleGetCollege(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "collegeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	college, err := h.svc.GetCollege(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCollegeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetCollege -> h.svc.GetCollege -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, college)
}

// HandleListColleges godoc
// @Summary      List all colleges
// @Tags         colleges
// @Produce      json
// @Success      200  {object}   []domain.College
// @Failure      500  {object}   response.Err
// @Router       /colleges [get]
func (h *CollegeHandler) HandleListColleges(ctx *gin.Context) {
	colleges, err := h.svc.ListColleges(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListColleges -> h.svc.ListColleges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, colleges)
}

// HandleUpdateCollege godoc
// @Summary      Update a college
// @Tags         colleges
// @Produce      json
// @Param        collegeID  path       int  true "college ID"
// @Param        request    body       request.UpdateCollegeRequest true "request body"
// @Success      200       {object}   domain.College
// @Failure      400       {object}   response.Err
// @Failure      404       {object}   response.Err
// @Failure      500       {object}   response.Err
// @Router       /colleges/{collegeID} [put]
func (h *CollegeHandler) HandleUpdateCollege(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "collegeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateCollegeRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	college, err := h.svc.UpdateCollege(ctx.Request.Context(), domain.College{
		ID:           id,
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCollegeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateCollege -> h.svc.UpdateCollege -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, college)
}
