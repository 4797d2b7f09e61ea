package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SeekerProfileHandler struct {
	profileUC domain.SeekerProfileUsecase
}

// NewSeekerProfileHandler registers /seekers/me on seekerOnly and the public
// profile on public.
func NewSeekerProfileHandler(public, seekerOnly *gin.RouterGroup, profileUC domain.SeekerProfileUsecase) {
	handler := &SeekerProfileHandler{profileUC: profileUC}

	seekerOnly.GET("/seekers/me", handler.GetMe)
	seekerOnly.PATCH("/seekers/me", handler.UpdateMe)
	public.GET("/seekers/:id", handler.GetPublic)
}

// GetPublic godoc
// @Summary      Get a seeker profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Seeker ID"
// @Success      200  {object}  response.Response{data=domain.Seeker}
// @Failure      404  {object}  response.Response
// @Router       /seekers/{id} [get]
func (h *SeekerProfileHandler) GetPublic(c *gin.Context) {
	seeker, err := h.profileUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", seeker)
}

// GetMe godoc
// @Summary      Get my seeker profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Seeker}
// @Failure      401  {object}  response.Response
// @Router       /seekers/me [get]
// @Security     BearerAuth
func (h *SeekerProfileHandler) GetMe(c *gin.Context) {
	p, ok := middleware.SeekerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Seeker authentication required"))
		return
	}

	seeker, err := h.profileUC.GetPublicProfile(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", seeker)
}

// UpdateMe godoc
// @Summary      Update my seeker profile
// @Description  Only fields present in the body are changed.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SeekerProfilePatch  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Seeker}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /seekers/me [patch]
// @Security     BearerAuth
func (h *SeekerProfileHandler) UpdateMe(c *gin.Context) {
	p, ok := middleware.SeekerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Seeker authentication required"))
		return
	}

	var patch domain.SeekerProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	seeker, err := h.profileUC.UpdateProfile(c.Request.Context(), p.ID, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", seeker)
}

type EmployerProfileHandler struct {
	profileUC domain.EmployerProfileUsecase
}

func NewEmployerProfileHandler(public, employerOnly *gin.RouterGroup, profileUC domain.EmployerProfileUsecase) {
	handler := &EmployerProfileHandler{profileUC: profileUC}

	employerOnly.GET("/employers/me", handler.GetMe)
	employerOnly.PATCH("/employers/me", handler.UpdateMe)
	public.GET("/employers/:id", handler.GetPublic)
}

// GetPublic godoc
// @Summary      Get an employer profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      string  true  "Employer ID"
// @Success      200  {object}  response.Response{data=domain.Employer}
// @Failure      404  {object}  response.Response
// @Router       /employers/{id} [get]
func (h *EmployerProfileHandler) GetPublic(c *gin.Context) {
	employer, err := h.profileUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", employer)
}

// GetMe godoc
// @Summary      Get my employer profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Employer}
// @Failure      401  {object}  response.Response
// @Router       /employers/me [get]
// @Security     BearerAuth
func (h *EmployerProfileHandler) GetMe(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	employer, err := h.profileUC.GetPublicProfile(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", employer)
}

// UpdateMe godoc
// @Summary      Update my employer profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      domain.EmployerProfilePatch  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Employer}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /employers/me [patch]
// @Security     BearerAuth
func (h *EmployerProfileHandler) UpdateMe(c *gin.Context) {
	p, ok := middleware.EmployerFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Employer authentication required"))
		return
	}

	var patch domain.EmployerProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	employer, err := h.profileUC.UpdateProfile(c.Request.Context(), p.ID, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", employer)
}
