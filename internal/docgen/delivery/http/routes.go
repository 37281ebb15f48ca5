package http

import (
	"docgen-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.RequestLogger())
	{
		api.POST("/documents/generate", h.GenerateDocument)
		api.POST("/documents/preview", h.RegeneratePreview)
	}
}
