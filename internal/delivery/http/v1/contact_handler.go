package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.Submit)
	public.GET("/contact/:id", handler.Get)
}

// Submit godoc
// @Summary      Submit Contact Form
// @Description  Stores a message from the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInput  true  "Contact Form Data"
// @Success      201      {object}  response.Response{data=domain.ContactMessage}
// @Failure      400      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	msg, err := h.contactUC.Submit(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Your message has been received", msg)
}

// Get godoc
// @Summary      Get a contact message
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  response.Response{data=domain.ContactMessage}
// @Failure      404  {object}  response.Response
// @Router       /contact/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	msg, err := h.contactUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message retrieved", msg)
}
