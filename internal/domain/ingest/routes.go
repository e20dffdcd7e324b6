package ingest

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sync", h.TriggerSync) // POST /api/sync
}
