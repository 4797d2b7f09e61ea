package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// DocumentHandler manages the employer verification document. Files never
// pass through the API; clients talk to object storage with presigned URLs.
type DocumentHandler struct {
	documentUC domain.DocumentUsecase
}

// NewDocumentHandler registers the document routes. uploadQuota guards the
// upload-url route.
func NewDocumentHandler(employerOnly *gin.RouterGroup, uploadQuota gin.HandlerFunc, documentUC domain.DocumentUsecase) {
	handler := &DocumentHandler{documentUC: documentUC}

	docs := employerOnly.Group("/employers/me/document")
	{
		docs.POST("/upload-url", uploadQuota, handler.RequestUploadURL)
		docs.POST("/confirm", handler.ConfirmUpload)
		docs.GET("/view", handler.View)
		docs.GET("/download", handler.Download)
	}
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" example:"application/pdf"`
}

type ConfirmUploadRequest struct {
	Key string `json:"key"`
}

type SignedURLResponse struct {
	URL string `json:"url"`
}

// RequestUploadURL godoc
// @Summary      Get a presigned upload URL
// @Description  Accepts application/pdf, image/jpeg and image/png.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      UploadURLRequest  true  "Content type of the file"
// @Success      200   {object}  response.Response{data=domain.UploadSlot}
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /employers/me/document/upload-url [post]
// @Security     BearerAuth
func (h *DocumentHandler) RequestUploadURL(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	slot, err := h.documentUC.RequestUploadSlot(c.Request.Context(), p.ID, req.ContentType)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upload URL generated", slot)
}

// ConfirmUpload godoc
// @Summary      Confirm an uploaded document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      ConfirmUploadRequest  true  "Key returned by upload-url"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /employers/me/document/confirm [post]
// @Security     BearerAuth
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.documentUC.ConfirmUpload(c.Request.Context(), p.ID, req.Key); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Document saved", nil)
}

// View godoc
// @Summary      Get a short-lived URL to view the document
// @Tags         documents
// @Produce      json
// @Success      200  {object}  response.Response{data=SignedURLResponse}
// @Failure      404  {object}  response.Response
// @Router       /employers/me/document/view [get]
// @Security     BearerAuth
func (h *DocumentHandler) View(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	url, err := h.documentUC.GetViewURL(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "View URL generated", SignedURLResponse{URL: url})
}

// Download godoc
// @Summary      Get a short-lived URL to download the document
// @Tags         documents
// @Produce      json
// @Success      200  {object}  response.Response{data=SignedURLResponse}
// @Failure      404  {object}  response.Response
// @Router       /employers/me/document/download [get]
// @Security     BearerAuth
func (h *DocumentHandler) Download(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	url, err := h.documentUC.GetDownloadURL(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Download URL generated", SignedURLResponse{URL: url})
}
