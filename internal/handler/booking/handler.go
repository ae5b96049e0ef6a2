package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/handler"
	"github.com/nekkositon/booking-api/internal/middleware"
	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/booking"
)

// Handler exposes the client-facing booking endpoints. Admin transitions
// live in the admin handler.
type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/bookings")
	grp.GET("", h.ListOwn)
	grp.POST("", h.Create)
	grp.POST("/:id/payment-proof", h.UploadPaymentProof)
	grp.POST("/:id/cancel", h.CancelOwn)
}

// Create books a service directly, bypassing the multi-step intake form.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.ParseInLocation(model.DateOnly, req.BookingDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking date, expected YYYY-MM-DD"))
		return
	}

	user := middleware.CurrentUser(c)
	created, err := h.service.Create(c.Request.Context(), user.ID, req.ServiceID, date, req.Message)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListOwn(c *gin.Context) {
	user := middleware.CurrentUser(c)

	bookings, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

// UploadPaymentProof accepts a multipart file, stores it, and advances the
// booking to pending_confirmation.
func (h *Handler) UploadPaymentProof(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("payment proof file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}
	defer file.Close()

	user := middleware.CurrentUser(c)
	stored, err := h.service.UploadPaymentProof(c.Request.Context(), id, user.ID, fileHeader.Filename, file)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stored))
}

func (h *Handler) CancelOwn(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	user := middleware.CurrentUser(c)
	stored, err := h.service.CancelOwn(c.Request.Context(), id, user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stored))
}
