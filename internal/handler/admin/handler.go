package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/handler"
	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/adminrequest"
	"github.com/nekkositon/booking-api/internal/service/booking"
	"github.com/nekkositon/booking-api/internal/service/calendar"
	"github.com/nekkositon/booking-api/pkg/format"
)

// Handler serves the admin dashboard: booking management, the month
// calendar, and admin elevation requests.
type Handler struct {
	bookingSvc *booking.Service
	requestSvc *adminrequest.Service
	// loc is the canonical calendar for every day-truncation in a request.
	loc *time.Location
}

func NewHandler(bookingSvc *booking.Service, requestSvc *adminrequest.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{bookingSvc: bookingSvc, requestSvc: requestSvc, loc: loc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/admin")
	grp.GET("/dashboard", h.Dashboard)
	grp.GET("/bookings", h.ListBookings)
	grp.POST("/bookings/:id/status", h.TransitionBooking)
	grp.GET("/calendar", h.Calendar)
	grp.GET("/requests", h.ListRequests)
	grp.POST("/requests/:id/decision", h.DecideRequest)
}

func (h *Handler) Dashboard(c *gin.Context) {
	details, err := h.bookingSvc.ListDetailed(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	pending, err := h.requestSvc.ListPending(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	stats := calendar.ComputeStats(details)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"stats":                  stats,
		"total_earnings_display": format.Money(stats.TotalEarnings),
		"pending_requests":       pending,
	}))
}

func (h *Handler) ListBookings(c *gin.Context) {
	details, err := h.bookingSvc.ListDetailed(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	status := c.DefaultQuery("status", calendar.StatusFilterAll)
	query := c.Query("q")

	c.JSON(http.StatusOK, handler.NewSuccessResponse(calendar.Filter(details, status, query)))
}

func (h *Handler) TransitionBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	var req model.TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	stored, err := h.bookingSvc.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	// The response carries the store's acknowledged record, not the
	// requested one.
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stored))
}

// Calendar returns the month grid plus day buckets for the selected day.
// ?month=YYYY-MM defaults to the current month, ?selected=YYYY-MM-DD is
// optional.
func (h *Handler) Calendar(c *gin.Context) {
	now := time.Now().In(h.loc)

	ref := now
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid month, expected YYYY-MM"))
			return
		}
		ref = parsed
	}

	var selected *time.Time
	if raw := c.Query("selected"); raw != "" {
		parsed, err := time.ParseInLocation(model.DateOnly, raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid selected date, expected YYYY-MM-DD"))
			return
		}
		selected = &parsed
	}

	details, err := h.bookingSvc.ListDetailed(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	payload := gin.H{
		"days": calendar.MonthGrid(ref, now, selected, details, h.loc),
	}
	if selected != nil {
		buckets := calendar.DayBuckets(details, h.loc)
		payload["selected_bookings"] = buckets[calendar.DayKey(*selected, h.loc)]
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(payload))
}

func (h *Handler) ListRequests(c *gin.Context) {
	pending, err := h.requestSvc.ListPending(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(pending))
}

func (h *Handler) DecideRequest(c *gin.Context) {
	var req model.DecideAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	decided, err := h.requestSvc.Decide(c.Request.Context(), c.Param("id"), req.Decision)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(decided))
}
