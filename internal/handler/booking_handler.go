package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nbfilms/studio-api/internal/application"
	"github.com/nbfilms/studio-api/internal/domain/booking"
	"github.com/nbfilms/studio-api/internal/platform/response"
)

// BookingHandler exposes the public submission endpoints and the admin
// booking console.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterPublicRoutes mounts the visitor-facing endpoints.
func (h *BookingHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Submit)
	rg.GET("/bookings/booked-dates", h.BookedDates)
}

// RegisterAdminRoutes mounts the console endpoints.
func (h *BookingHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/watch", h.Watch)
	rg.PATCH("/bookings/:id/status", h.ChangeStatus)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.GET("/stats/bookings", h.Stats)
}

// Submit handles POST /bookings.
func (h *BookingHandler) Submit(c *gin.Context) {
	var req application.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid booking payload: "+err.Error())
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// BookedDates handles GET /bookings/booked-dates.
func (h *BookingHandler) BookedDates(c *gin.Context) {
	dates, err := h.service.BookedDates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"bookedDates": dates})
}

// List handles GET /admin/bookings. The status filter defaults to pending so
// the console opens on the actionable queue.
func (h *BookingHandler) List(c *gin.Context) {
	params := booking.ListParams{
		Status:  c.DefaultQuery("status", string(booking.StatusPending)),
		Package: c.DefaultQuery("package", booking.FilterAll),
		Search:  c.Query("search"),
	}
	if v := c.Query("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			response.BadRequest(c, "month must be between 1 and 12")
			return
		}
		params.Month = month
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "year must be a number")
			return
		}
		params.Year = year
	}
	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "page must be a number")
			return
		}
		params.Page = page
	}

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, page.Items, page.Total, page.Page, page.Limit)
}

// Watch handles GET /admin/bookings/watch as a server-sent event stream. Every
// committed change delivers the full collection.
func (h *BookingHandler) Watch(c *gin.Context) {
	snapshots, unsubscribe := h.service.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("bookings", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus handles PATCH /admin/bookings/:id/status.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	dto, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Delete handles DELETE /admin/bookings/:id.
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats handles GET /admin/stats/bookings.
func (h *BookingHandler) Stats(c *gin.Context) {
	var year int
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "year must be a number")
			return
		}
		year = parsed
	}

	stats, err := h.service.Stats(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
