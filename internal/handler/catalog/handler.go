package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/handler"
	"github.com/nekkositon/booking-api/internal/service/catalog"
	"github.com/nekkositon/booking-api/pkg/format"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/services")
	grp.GET("", h.ListServices)
	grp.GET("/:id", h.GetService)
}

type serviceView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display,omitempty"`
	IsCustom     bool   `json:"is_custom"`
}

func (h *Handler) ListServices(c *gin.Context) {
	bookableOnly := c.DefaultQuery("bookable", "true") != "false"

	services, err := h.service.List(c.Request.Context(), bookableOnly)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	views := make([]serviceView, 0, len(services))
	for _, svc := range services {
		view := serviceView{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Price:       svc.Price,
			IsCustom:    svc.IsCustom,
		}
		if !svc.IsCustom {
			view.PriceDisplay = format.Money(svc.Price)
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(svc))
}
