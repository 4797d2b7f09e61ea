package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(seekerOnly, employerOnly *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Seeker routes
	seekerOnly.POST("/jobs/:id/apply", handler.Apply)
	seekerOnly.GET("/applications/mine", handler.ListMine)

	// Employer routes
	employerOnly.GET("/jobs/:id/applications", handler.ListForJob)
	employerOnly.PATCH("/applications/:id/status", handler.UpdateStatus)
}

type UpdateApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" example:"accepted"`
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := middleware.SeekerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Seeker authentication required"))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List my applications
// @Description  Each application is expanded with its job and the poster's contact details.
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ApplicationWithJob}
// @Failure      401  {object}  response.Response
// @Router       /applications/mine [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	p, ok := middleware.SeekerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Seeker authentication required"))
		return
	}

	apps, err := h.applicationUC.ListForApplicant(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ListForJob godoc
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	apps, err := h.applicationUC.ListForJob(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// UpdateStatus godoc
// @Summary      Accept or reject an application
// @Description  Only applications still in the applied state can change.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.Param("id"), p.ID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}
