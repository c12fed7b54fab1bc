package handler

import (
	"net/http"
	"strconv"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func priceQuery(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

func (h *Handler) ListMarketplaceItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		mapDomainError(c, domain.ErrInvalidPage)
		return
	}
	if limit < 1 || limit > 100 {
		mapDomainError(c, domain.ErrInvalidPageSize)
		return
	}

	minPrice, ok := priceQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := priceQuery(c, "max_price")
	if !ok {
		return
	}

	filter := domain.ListingFilter{
		ContentType: domain.ContentType(c.Query("content_type")),
		ListingType: domain.ListingType(c.Query("listing_type")),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		Search:      c.Query("search"),
		Sort:        domain.ListingSort(c.DefaultQuery("sort", "recent")),
		Page:        page,
		Limit:       limit,
	}

	listings, total, err := h.listings.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list marketplace items failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.MarketplaceListing, 0, len(listings))
	for _, l := range listings {
		items = append(items, dto.ToMarketplaceListing(l))
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, dto.MarketplaceListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

func (h *Handler) GetFeatured(c *gin.Context) {
	listings, _, err := h.listings.List(c.Request.Context(), domain.ListingFilter{
		Sort:  domain.ListingSortRecent,
		Page:  1,
		Limit: 6,
	})
	if err != nil {
		log.WithError(err).Error("featured listings failed")
		mapDomainError(c, err)
		return
	}

	featured := make([]dto.FeaturedNFT, 0, len(listings))
	for _, l := range listings {
		featured = append(featured, dto.ToFeaturedNFT(l))
	}

	c.JSON(http.StatusOK, featured)
}

func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalNFTs, err := h.nfts.Count(ctx)
	if err != nil {
		log.WithError(err).Error("marketplace stats failed")
		mapDomainError(c, err)
		return
	}

	totalListings, err := h.listings.Count(ctx)
	if err != nil {
		log.WithError(err).Error("marketplace stats failed")
		mapDomainError(c, err)
		return
	}

	totalCreators, err := h.nfts.CountCreators(ctx)
	if err != nil {
		log.WithError(err).Error("marketplace stats failed")
		mapDomainError(c, err)
		return
	}

	volume, err := h.listings.TotalVolume(ctx)
	if err != nil {
		log.WithError(err).Error("marketplace stats failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMarketStatsResponse(domain.MarketStats{
		TotalNFTs:     totalNFTs,
		TotalListings: totalListings,
		TotalCreators: totalCreators,
		TotalVolume:   volume,
	}))
}

func (h *Handler) GetUserNFTs(c *gin.Context) {
	ctx := c.Request.Context()
	address := c.Param("address")

	switch c.DefaultQuery("type", "created") {
	case "created", "owned":
		nfts, err := h.nfts.ListByCreator(ctx, address)
		if err != nil {
			log.WithError(err).Error("user nfts failed")
			mapDomainError(c, err)
			return
		}

		listed, err := h.listings.ListedTokenIDs(ctx)
		if err != nil {
			log.WithError(err).Error("listed token ids failed")
			mapDomainError(c, err)
			return
		}

		items := make([]dto.UserNFTItem, 0, len(nfts))
		for _, n := range nfts {
			items = append(items, dto.ToUserNFTItem(n, listed[n.TokenID]))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})

	case "listings":
		listings, err := h.listings.ListBySeller(ctx, address)
		if err != nil {
			log.WithError(err).Error("user listings failed")
			mapDomainError(c, err)
			return
		}

		items := make([]dto.MarketplaceListing, 0, len(listings))
		for _, l := range listings {
			items = append(items, dto.ToMarketplaceListing(l))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})

	default:
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
	}
}

func (h *Handler) GetUserStats(c *gin.Context) {
	ctx := c.Request.Context()
	address := c.Param("address")

	created, err := h.nfts.ListByCreator(ctx, address)
	if err != nil {
		log.WithError(err).Error("user stats failed")
		mapDomainError(c, err)
		return
	}

	listings, err := h.listings.ListBySeller(ctx, address)
	if err != nil {
		log.WithError(err).Error("user stats failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserStatsResponse{
		TotalCreated:         len(created),
		TotalOwned:           len(created),
		TotalListings:        len(listings),
		TotalSales:           "0.00",
		TotalRoyaltiesEarned: "0.00",
	})
}
