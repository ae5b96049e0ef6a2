package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/handler"
	"github.com/nekkositon/booking-api/internal/middleware"
	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/internal/service/user"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/me")
	grp.GET("", h.GetProfile)
	grp.PUT("", h.UpdateProfile)
	grp.POST("/avatar", h.UploadAvatar)
}

func (h *Handler) GetProfile(c *gin.Context) {
	current := middleware.CurrentUser(c)

	profile, err := h.service.Get(c.Request.Context(), current.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	current := middleware.CurrentUser(c)
	updated, err := h.service.UpdateProfile(c.Request.Context(), current.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("avatar file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}
	defer file.Close()

	current := middleware.CurrentUser(c)
	updated, err := h.service.UploadAvatar(c.Request.Context(), current.ID, fileHeader.Filename, file)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
