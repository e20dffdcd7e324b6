package ads

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	adsGroup := r.Group("/ads")
	{
		adsGroup.GET("", h.GetAds)                     // GET /api/ads?page=...&sortBy=...
		adsGroup.GET("/stats/overview", h.GetStats)    // GET /api/ads/stats/overview
		adsGroup.GET("/:id", h.GetAdByID)              // GET /api/ads/:id
	}
}
