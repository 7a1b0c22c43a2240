package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/application"
	"github.com/nbfilms/studio-api/internal/platform/response"
)

// maxImageBytes caps a single uploaded image at 16 MiB.
const maxImageBytes = 16 << 20

// CatalogHandler exposes the service catalog and ratings.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterPublicRoutes mounts the visitor-facing endpoints.
func (h *CatalogHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
	rg.GET("/services/:id", h.Get)
	rg.POST("/ratings", h.SubmitRating)
	rg.GET("/ratings/summary", h.RatingSummary)
}

// RegisterAdminRoutes mounts the console endpoints.
func (h *CatalogHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/services", h.Create)
	rg.PUT("/services/:id", h.Update)
	rg.DELETE("/services/:id", h.Delete)
}

// List handles GET /services.
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, services)
}

// Get handles GET /services/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service id")
		return
	}

	pkg, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pkg)
}

// Create handles POST /admin/services as a multipart form with fields title,
// description, inclusions, mainImage and up to four thumbnails.
func (h *CatalogHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	req := application.CreateServiceRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Inclusions:  form.Value["inclusions"],
	}

	main, err := readFormImage(form, "mainImage")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if main != nil {
		req.MainImage = *main
	}

	thumbs, err := readFormImages(form, "thumbnails")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.Thumbnails = thumbs

	pkg, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pkg)
}

// Update handles PUT /admin/services/:id. Omitted images keep their URLs.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service id")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	req := application.UpdateServiceRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if vals, ok := form.Value["inclusions"]; ok {
		req.Inclusions = vals
	}

	main, err := readFormImage(form, "mainImage")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.MainImage = main

	thumbs, err := readFormImages(form, "thumbnails")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.Thumbnails = thumbs

	pkg, err := h.service.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pkg)
}

// Delete handles DELETE /admin/services/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service id")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitRating handles POST /ratings.
func (h *CatalogHandler) SubmitRating(c *gin.Context) {
	var req application.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid rating payload: "+err.Error())
		return
	}

	rating, err := h.service.SubmitRating(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rating)
}

// RatingSummary handles GET /ratings/summary?package=<title>.
func (h *CatalogHandler) RatingSummary(c *gin.Context) {
	pkg := c.Query("package")
	if pkg == "" {
		response.BadRequest(c, "package is required")
		return
	}

	summary, err := h.service.RatingSummary(c.Request.Context(), pkg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// readFormImage reads a single optional file field; nil when absent.
func readFormImage(form *multipart.Form, field string) (*application.ImageUpload, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return readFileHeader(files[0])
}

// readFormImages reads a repeated file field.
func readFormImages(form *multipart.Form, field string) ([]application.ImageUpload, error) {
	files := form.File[field]
	uploads := make([]application.ImageUpload, 0, len(files))
	for _, fh := range files {
		upload, err := readFileHeader(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *upload)
	}
	return uploads, nil
}

func readFileHeader(fh *multipart.FileHeader) (*application.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return nil, err
	}
	return &application.ImageUpload{Name: fh.Filename, Data: data}, nil
}
