package intake

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/handler"
	"github.com/nekkositon/booking-api/internal/middleware"
	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/intake"
)

type Handler struct {
	service *intake.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *intake.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/intake")
	grp.POST("", h.auth.OptionalAuthenticate(), h.Start)
	grp.GET("/:id", h.GetDraft)
	grp.PUT("/:id/contact", h.SetContact)
	grp.PUT("/:id/details", h.SetDetails)
	grp.POST("/:id/advance", h.Advance)
	grp.POST("/:id/back", h.Retreat)
	grp.POST("/:id/submit", h.auth.OptionalAuthenticate(), h.Submit)
}

// Start opens a draft. ?service_id= carries a package preselected outside
// the form; the field stays editable inside step 2.
func (h *Handler) Start(c *gin.Context) {
	var preselect *int64
	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
			return
		}
		preselect = &id
	}

	draft, err := h.service.Start(c.Request.Context(), middleware.CurrentUser(c), preselect)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(draft))
}

func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(draft))
}

func (h *Handler) SetContact(c *gin.Context) {
	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	draft, err := h.service.SetContact(c.Request.Context(), c.Param("id"), model.IntakeContact{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(draft))
}

func (h *Handler) SetDetails(c *gin.Context) {
	var req model.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	draft, err := h.service.SetDetails(c.Request.Context(), c.Param("id"), model.IntakeDetails{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Message:   req.Message,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(draft))
}

func (h *Handler) Advance(c *gin.Context) {
	draft, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(draft))
}

func (h *Handler) Retreat(c *gin.Context) {
	draft, err := h.service.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(draft))
}

func (h *Handler) Submit(c *gin.Context) {
	draft, booking, err := h.service.Submit(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"draft":   draft,
		"booking": booking,
	}))
}
