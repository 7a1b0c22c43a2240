package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/application"
	"github.com/nbfilms/studio-api/internal/platform/response"
)

// GalleryHandler exposes the public gallery and its admin management.
type GalleryHandler struct {
	service *application.GalleryService
}

// NewGalleryHandler creates a GalleryHandler.
func NewGalleryHandler(service *application.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// RegisterPublicRoutes mounts the visitor-facing endpoints.
func (h *GalleryHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/gallery/categories", h.ListCategories)
	rg.GET("/gallery/categories/:id/images", h.ListImages)
}

// RegisterAdminRoutes mounts the console endpoints.
func (h *GalleryHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/gallery/categories", h.CreateCategory)
	rg.PUT("/gallery/categories/:id", h.RenameCategory)
	rg.DELETE("/gallery/categories/:id", h.DeleteCategory)
	rg.POST("/gallery/categories/:id/images", h.AddImage)
	rg.DELETE("/gallery/categories/:id/images/:imageId", h.DeleteImage)
}

// ListCategories handles GET /gallery/categories.
func (h *GalleryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// ListImages handles GET /gallery/categories/:id/images.
func (h *GalleryHandler) ListImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	images, err := h.service.ListImages(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, images)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory handles POST /admin/gallery/categories.
func (h *GalleryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "category name is required")
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// RenameCategory handles PUT /admin/gallery/categories/:id.
func (h *GalleryHandler) RenameCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "category name is required")
		return
	}

	if err := h.service.RenameCategory(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "name": req.Name})
}

// DeleteCategory handles DELETE /admin/gallery/categories/:id. Images in the
// category go with it.
func (h *GalleryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddImage handles POST /admin/gallery/categories/:id/images as a multipart
// form with an "image" file field.
func (h *GalleryHandler) AddImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	upload, err := readFormImage(form, "image")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if upload == nil {
		response.BadRequest(c, "image file is required")
		return
	}

	img, err := h.service.AddImage(c.Request.Context(), id, *upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, img)
}

// DeleteImage handles DELETE /admin/gallery/categories/:id/images/:imageId.
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), categoryID, imageID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
