package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"
)

func tokenIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("token_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListNFTs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		mapDomainError(c, domain.ErrInvalidPage)
		return
	}
	if pageSize < 1 || pageSize > 100 {
		mapDomainError(c, domain.ErrInvalidPageSize)
		return
	}

	filter := domain.NFTFilter{
		ContentType: domain.ContentType(c.Query("content_type")),
		Creator:     c.Query("creator"),
		Page:        page,
		PageSize:    pageSize,
	}

	nfts, total, err := h.nfts.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list nfts failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.NFTMetadata, 0, len(nfts))
	for _, n := range nfts {
		items = append(items, dto.ToNFTMetadata(n))
	}

	c.JSON(http.StatusOK, dto.NFTListResponse{
		NFTs:     items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetNFT(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	nft, err := h.nfts.GetByTokenID(c.Request.Context(), tokenID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNFTMetadata(nft))
}

func (h *Handler) GetProvenance(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	nft, err := h.nfts.GetByTokenID(c.Request.Context(), tokenID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProvenanceResponse{
		TokenID:        nft.TokenID,
		ProvenanceHash: nft.ProvenanceHash,
		CreatorAddress: nft.CreatorAddress,
		ModelVersion:   nft.ModelVersion,
		Timestamp:      nft.CreatedAt.Unix(),
		Parents:        []string{},
		Children:       []string{},
	})
}

// GetNFTQR renders a share QR code pointing at the token's content.
func (h *Handler) GetNFTQR(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	nft, err := h.nfts.GetByTokenID(c.Request.Context(), tokenID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	target := nft.ImageURL
	if nft.MetadataCID != "" {
		target = h.store.GatewayURL(nft.MetadataCID)
	}
	if target == "" {
		target = "dgc://nft/" + strconv.FormatInt(nft.TokenID, 10)
	}

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		log.WithError(err).Error("qr encode failed")
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) IndexNFT(c *gin.Context) {
	var meta dto.NFTMetadata
	if err := c.ShouldBindJSON(&meta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.nfts.Upsert(c.Request.Context(), dto.FromNFTMetadata(meta)); err != nil {
		log.WithError(err).Error("index nft failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "indexed", "token_id": meta.TokenID})
}

// RemoveNFT is idempotent; removing an unindexed token is not an error.
func (h *Handler) RemoveNFT(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	if err := h.nfts.Delete(c.Request.Context(), tokenID); err != nil && !errors.Is(err, domain.ErrNFTNotFound) {
		log.WithError(err).Error("remove nft failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed", "token_id": tokenID})
}

func (h *Handler) IndexListing(c *gin.Context) {
	var listing dto.MarketplaceListing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.listings.Upsert(c.Request.Context(), dto.FromMarketplaceListing(listing)); err != nil {
		log.WithError(err).Error("index listing failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "indexed", "token_id": listing.TokenID})
}

func (h *Handler) RemoveListing(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	if err := h.listings.Delete(c.Request.Context(), tokenID); err != nil && !errors.Is(err, domain.ErrListingNotFound) {
		log.WithError(err).Error("remove listing failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed", "token_id": tokenID})
}
