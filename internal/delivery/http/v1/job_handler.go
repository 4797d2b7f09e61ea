package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, employerOnly *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.Get)
		publicJobs.GET("/poster/:posterId", handler.ListByPoster)
	}

	// Employer routes, ownership is checked per job
	employerJobs := employerOnly.Group("/jobs")
	{
		employerJobs.POST("", handler.Create)
		employerJobs.PATCH("/:id", handler.Update)
		employerJobs.DELETE("/:id", handler.Delete)
		employerJobs.GET("/:id/applicants", handler.ListApplicants)
		employerJobs.GET("/:id/applicants/export", handler.ExportApplicants)
	}
	employerOnly.GET("/employers/me/jobs", handler.ListMine)
}

// parseJobFilter reads the listing filters from the query string.
func parseJobFilter(c *gin.Context) (domain.JobFilter, error) {
	filter := domain.JobFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		JobType:  c.Query("jobType"),
		Status:   c.Query("status"),
	}
	if skills := c.Query("skillsRequired"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}

	var details []string
	parseBound := func(param string) *float64 {
		raw := c.Query(param)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			details = append(details, fmt.Sprintf("%s must be a number", param))
			return nil
		}
		return &v
	}
	filter.SalaryGTE = parseBound("salary[gte]")
	filter.SalaryLTE = parseBound("salary[lte]")

	if len(details) > 0 {
		return filter, apperror.Validation(details)
	}
	return filter, nil
}

// queryInt returns fallback when param is absent and an error when it is not an integer.
func queryInt(c *gin.Context, param string, fallback int) (int, error) {
	raw := c.Query(param)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest(fmt.Sprintf("%s must be an integer", param))
	}
	return v, nil
}

// List godoc
// @Summary      List jobs
// @Description  Filterable, sortable and paginated job listing. Sort by createdAt, salary, title or expiresAt; prefix with - for descending.
// @Tags         jobs
// @Produce      json
// @Param        title           query     string  false  "Title contains (case-insensitive)"
// @Param        location        query     string  false  "Location contains (case-insensitive)"
// @Param        jobType         query     string  false  "daily, short-term or part-time"
// @Param        status          query     string  false  "open, in-progress or completed"
// @Param        skillsRequired  query     string  false  "Comma separated, any match"
// @Param        salary[gte]     query     number  false  "Minimum salary"
// @Param        salary[lte]     query     number  false  "Maximum salary"
// @Param        page            query     int     false  "Page number"  default(1)
// @Param        limit           query     int     false  "Page size"    default(10)
// @Param        sort            query     string  false  "Sort field"   default(-createdAt)
// @Success      200             {object}  response.Response{data=domain.JobPage}
// @Failure      400             {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter, err := parseJobFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.Error(err)
		return
	}
	limit, err := queryInt(c, "limit", domain.DefaultJobPageSize)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.jobUC.List(c.Request.Context(), filter, page, limit, c.Query("sort"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// Get godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// ListByPoster godoc
// @Summary      List jobs posted by an employer
// @Tags         jobs
// @Produce      json
// @Param        posterId  path      string  true  "Employer ID"
// @Success      200       {object}  response.Response{data=[]domain.Job}
// @Router       /jobs/poster/{posterId} [get]
func (h *JobHandler) ListByPoster(c *gin.Context) {
	jobs, err := h.jobUC.ListByPoster(c.Request.Context(), c.Param("posterId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// ListMine godoc
// @Summary      List my jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      401  {object}  response.Response
// @Router       /employers/me/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	jobs, err := h.jobUC.ListByOwner(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// Create godoc
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var req domain.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.Create(c.Request.Context(), p.ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Only fields present in the body are changed. Owner only.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.Update(c.Request.Context(), c.Param("id"), p.ID, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	if err := h.jobUC.Delete(c.Request.Context(), c.Param("id"), p.ID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ListApplicants godoc
// @Summary      List applicants of a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.ApplicantView}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applicants [get]
// @Security     BearerAuth
func (h *JobHandler) ListApplicants(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	applicants, err := h.jobUC.ListApplicants(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", applicants)
}

// ExportApplicants godoc
// @Summary      Export applicants as a spreadsheet
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applicants/export [get]
// @Security     BearerAuth
func (h *JobHandler) ExportApplicants(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	data, filename, err := h.jobUC.ExportApplicants(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
