// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// ApplicationController handles admissions application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Create handles a public admissions application submission
// @Summary Submit an admissions application
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.CreateApplicationRequest true "Application fields"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Router /application [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid application payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	app, err := c.applicationService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationId", app.ID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app))
}

// List returns all applications for the staff back office
// @Summary List applications
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	apps, err := c.applicationService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps))
}

// GetByID returns one application with its documents
// @Summary Get an application
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /admin/applications/{id} [get]
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	app, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// UpdateStatus sets an application's status, admin role only
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.APIResponse "Unknown status value"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /admin/applications/{id} [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	app, err := c.applicationService.SetStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationId", id).Str("status", req.Status).Msg("Application status updated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// pathID parses a numeric path parameter
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationError("invalid " + name + " parameter")
	}
	return id, nil
}
