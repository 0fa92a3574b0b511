package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

// DocumentController handles application document endpoints
type DocumentController struct {
	documentService *services.DocumentService
	logger          zerolog.Logger
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService, logger zerolog.Logger) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		logger:          logger,
	}
}

// Upload attaches a file to an application. Intentionally public so an
// applicant can add documents before any student account exists.
// @Summary Upload an application document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Application ID"
// @Param document formData file true "Document file"
// @Param documentType formData string true "Document type"
// @Success 201 {object} dto.APIResponse{data=models.Document}
// @Failure 400 {object} dto.APIResponse "Missing file, bad type or oversized"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /uploads/applications/{id}/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	appID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := ctx.FormFile("document")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ValidationError("document file is required"))
		return
	}

	doc, err := c.documentService.Upload(ctx.Request.Context(), appID, file, ctx.PostForm("documentType"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationId", appID).Int64("documentId", doc.ID).Msg("Document uploaded")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(doc))
}

// List returns an application's documents, staff only
// @Summary List application documents
// @Tags documents
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Document}
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /uploads/applications/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	appID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docs, err := c.documentService.List(ctx.Request.Context(), appID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}

// View streams a document inline with its original MIME type. Public, like
// Upload; anyone holding the application and document ids may view.
// @Summary View an application document
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Application ID"
// @Param documentId path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse "Document or file not found"
// @Router /uploads/applications/{id}/documents/{documentId}/view [get]
func (c *DocumentController) View(ctx *gin.Context) {
	appID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	docID, err := pathID(ctx, "documentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, reader, err := c.documentService.Open(ctx.Request.Context(), appID, docID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer reader.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", doc.Name),
	}
	ctx.DataFromReader(http.StatusOK, doc.FileSize, doc.MimeType, reader, headers)
}

// Delete removes a document and its backing file, staff only
// @Summary Delete an application document
// @Tags documents
// @Produce json
// @Param id path int true "Application ID"
// @Param documentId path int true "Document ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Document not found"
// @Router /uploads/applications/{id}/documents/{documentId} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	appID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	docID, err := pathID(ctx, "documentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.documentService.Delete(ctx.Request.Context(), appID, docID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationId", appID).Int64("documentId", docID).Msg("Document deleted")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document deleted"))
}
