package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/middleware"
	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/response"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin/settings", middleware.RequireAdmin())
	{
		admin.GET("", h.GetSettings)    // GET /v1/admin/settings
		admin.PUT("", h.UpdateSettings) // PUT /v1/admin/settings
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			response.NotFound(c, "Return app settings is not configured")
			return
		}
		logger.Error("failed to load settings", err)
		response.InternalServerError(c, "Failed to load settings")
		return
	}

	response.Success(c, http.StatusOK, cfg)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var cfg ReturnAppSettings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), &cfg); err != nil {
		logger.Error("failed to update settings", err)
		response.InternalServerError(c, "Failed to update settings")
		return
	}

	response.Success(c, http.StatusOK, cfg)
}
