package http

import "github.com/gin-gonic/gin"

// Register registers the project routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/daily", h.GetDaily)
	rg.POST("/generate", h.GenerateCustom)
	rg.GET("/archive", h.GetArchive)
	rg.GET("/stats", h.GetStats)
	rg.DELETE("/cache", h.ClearCache)
	rg.GET("/:id", h.GetByID)
}
