package ingest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"adscope/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type syncRequest struct {
	SearchTerms string `json:"searchTerms"`
	Country     string `json:"country"`
	MaxAds      int    `json:"maxAds"`
}

// TriggerSync runs one ingestion pass synchronously and reports how many
// ads were saved.
func (h *Handler) TriggerSync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := h.service.Sync(c.Request.Context(), req.SearchTerms, req.Country, req.MaxAds)
	if err != nil {
		_ = c.Error(err)
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully synced %d ads", count),
		"count":   count,
	})
}
