package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/application"
	"github.com/nbfilms/studio-api/internal/domain/studio"
	"github.com/nbfilms/studio-api/internal/platform/response"
)

// StudioHandler exposes the about-page founders and the contact record.
type StudioHandler struct {
	service *application.StudioService
}

// NewStudioHandler creates a StudioHandler.
func NewStudioHandler(service *application.StudioService) *StudioHandler {
	return &StudioHandler{service: service}
}

// RegisterPublicRoutes mounts the visitor-facing endpoints.
func (h *StudioHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/founders", h.ListFounders)
	rg.GET("/contact-info", h.GetContactInfo)
}

// RegisterAdminRoutes mounts the console endpoints.
func (h *StudioHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/founders", h.CreateFounder)
	rg.PUT("/founders/:id", h.UpdateFounder)
	rg.DELETE("/founders/:id", h.DeleteFounder)
	rg.PUT("/contact-info", h.PutContactInfo)
	rg.DELETE("/contact-info", h.DeleteContactInfo)
}

// ListFounders handles GET /founders.
func (h *StudioHandler) ListFounders(c *gin.Context) {
	founders, err := h.service.ListFounders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, founders)
}

// CreateFounder handles POST /admin/founders as a multipart form with name,
// description and an optional image.
func (h *StudioHandler) CreateFounder(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	image, err := readFormImage(form, "image")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	founder, err := h.service.CreateFounder(c.Request.Context(), application.CreateFounderRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, founder)
}

// UpdateFounder handles PUT /admin/founders/:id.
func (h *StudioHandler) UpdateFounder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid founder id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	image, err := readFormImage(form, "image")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	founder, err := h.service.UpdateFounder(c.Request.Context(), id, application.UpdateFounderRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, founder)
}

// DeleteFounder handles DELETE /admin/founders/:id.
func (h *StudioHandler) DeleteFounder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid founder id")
		return
	}

	if err := h.service.DeleteFounder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetContactInfo handles GET /contact-info.
func (h *StudioHandler) GetContactInfo(c *gin.Context) {
	info, err := h.service.GetContactInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// PutContactInfo handles PUT /admin/contact-info.
func (h *StudioHandler) PutContactInfo(c *gin.Context) {
	var info studio.ContactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.BadRequest(c, "invalid contact payload: "+err.Error())
		return
	}

	if err := h.service.PutContactInfo(c.Request.Context(), info); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// DeleteContactInfo handles DELETE /admin/contact-info.
func (h *StudioHandler) DeleteContactInfo(c *gin.Context) {
	if err := h.service.DeleteContactInfo(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
