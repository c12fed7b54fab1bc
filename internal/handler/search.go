package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/observability"

	"github.com/gin-gonic/gin"
)

var searchCategories = map[domain.SearchCategory]bool{
	domain.SearchCategoryTransaction: true,
	domain.SearchCategoryAddress:     true,
	domain.SearchCategoryToken:       true,
	domain.SearchCategoryNFT:         true,
	domain.SearchCategoryBlock:       true,
	domain.SearchCategoryAll:         true,
}

func parseSearchCategories(raw []string) ([]domain.SearchCategory, bool) {
	categories := make([]domain.SearchCategory, 0, len(raw))
	for _, name := range raw {
		category := domain.SearchCategory(strings.ToUpper(name))
		if !searchCategories[category] {
			return nil, false
		}
		categories = append(categories, category)
	}
	return categories, true
}

func (h *Handler) Autocomplete(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		mapDomainError(c, domain.ErrEmptyQuery)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 20"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       q,
		"suggestions": h.search.Autocomplete(q, limit),
	})
}

func (h *Handler) SearchBlockchain(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, ok := parseSearchCategories(req.Categories)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 1 || limit > 100 {
		mapDomainError(c, domain.ErrInvalidPageSize)
		return
	}

	observability.Searches.Inc()
	c.JSON(http.StatusOK, h.search.Search(req.Query, categories, limit))
}

func (h *Handler) SearchBlockchainGet(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		mapDomainError(c, domain.ErrEmptyQuery)
		return
	}

	var raw []string
	if category := c.Query("category"); category != "" {
		raw = []string{category}
	}
	categories, ok := parseSearchCategories(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		mapDomainError(c, domain.ErrInvalidPageSize)
		return
	}

	observability.Searches.Inc()
	c.JSON(http.StatusOK, h.search.Search(q, categories, limit))
}

func (h *Handler) SearchAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.Analytics())
}
