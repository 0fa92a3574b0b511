package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
)

// ContactController handles contact-form endpoints
type ContactController struct {
	contactService *services.ContactService
	logger         zerolog.Logger
}

// NewContactController creates a new ContactController
func NewContactController(contactService *services.ContactService, logger zerolog.Logger) *ContactController {
	return &ContactController{
		contactService: contactService,
		logger:         logger,
	}
}

// Create handles a public contact-form submission
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Message fields"
// @Success 201 {object} dto.APIResponse{data=models.ContactMessage}
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Router /contact [post]
func (c *ContactController) Create(ctx *gin.Context) {
	var req dto.CreateContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	msg, err := c.contactService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("contactId", msg.ID).Msg("Contact message received")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}

// List returns all contact messages, newest first
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ContactMessage}
// @Router /admin/contacts [get]
func (c *ContactController) List(ctx *gin.Context) {
	messages, err := c.contactService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// MarkResponded flags a contact message as handled. Any staff member may
// do this, not only admins.
// @Summary Mark a contact message as responded
// @Tags admin
// @Produce json
// @Param id path int true "Contact message ID"
// @Success 200 {object} dto.APIResponse{data=models.ContactMessage}
// @Failure 404 {object} dto.APIResponse "Contact message not found"
// @Router /admin/contacts/{id}/respond [patch]
func (c *ContactController) MarkResponded(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	msg, err := c.contactService.MarkResponded(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(msg))
}
