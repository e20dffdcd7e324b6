package ads

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"adscope/internal/pkg/response"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetAds lists ads with filtering, sorting and pagination.
// Invalid sort fields and orders are coerced to safe defaults rather than
// rejected; the read path is deliberately permissive.
func (h *Handler) GetAds(c *gin.Context) {
	var f Filters

	f.Status = c.Query("status")
	f.Search = c.Query("search")
	f.SearchType = c.DefaultQuery("searchType", SearchTypeKeyword)
	f.SortBy = c.DefaultQuery("sortBy", "performance_score")
	f.Order = c.DefaultQuery("order", "DESC")

	if minScore := c.Query("minScore"); minScore != "" {
		if val, err := strconv.ParseFloat(minScore, 64); err == nil {
			f.MinScore = &val
		}
	}

	f.Limit = defaultLimit
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= maxLimit {
			f.Limit = val
		}
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}
	f.Offset = (page - 1) * f.Limit

	items, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		response.Internal(c, err)
		return
	}

	response.Paginated(c, items, response.NewPagination(page, f.Limit, total))
}

// GetAdByID returns the full ad with all sequence fields deserialized.
func (h *Handler) GetAdByID(c *gin.Context) {
	ad, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Ad not found")
			return
		}
		_ = c.Error(err)
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, ad)
}

// GetStats returns the overview aggregates and top advertisers.
func (h *Handler) GetStats(c *gin.Context) {
	overview, topPerformers, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview":      overview,
		"topPerformers": topPerformers,
	})
}
