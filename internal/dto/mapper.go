package dto

import (
	"fmt"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func ToGenerateResponse(j *domain.GenerationJob) GenerateResponse {
	seed := int64(j.Seed)
	ts := j.CreatedAt.Unix()
	resp := GenerateResponse{
		JobID:     j.ID.String(),
		Status:    string(j.Status),
		Seed:      &seed,
		Timestamp: &ts,
	}
	if j.ContentHash != "" {
		resp.ContentHash = &j.ContentHash
	}
	if j.ModelVersion != "" {
		resp.ModelVersion = &j.ModelVersion
	}
	if j.IsComplete() {
		resp.GenerationTimeMS = &j.GenerationTimeMS
	}
	if j.Error != "" {
		resp.Error = &j.Error
	}
	return resp
}

func ToNFTMetadata(n *domain.NFT) NFTMetadata {
	meta := NFTMetadata{
		TokenID:        n.TokenID,
		Name:           n.Name,
		Description:    n.Description,
		Image:          n.ImageURL,
		ContentType:    string(n.ContentType),
		CreatorAddress: n.CreatorAddress,
		ModelVersion:   n.ModelVersion,
		Timestamp:      n.CreatedAt.Unix(),
	}
	if n.ProvenanceHash != "" {
		meta.ProvenanceHash = &n.ProvenanceHash
	}
	return meta
}

func FromNFTMetadata(meta NFTMetadata) *domain.NFT {
	nft := &domain.NFT{
		TokenID:        meta.TokenID,
		Name:           meta.Name,
		Description:    meta.Description,
		ImageURL:       meta.Image,
		ContentURL:     meta.Image,
		ContentType:    domain.ContentType(meta.ContentType),
		CreatorAddress: meta.CreatorAddress,
		OwnerAddress:   meta.CreatorAddress,
		ModelVersion:   meta.ModelVersion,
		CreatedAt:      time.Unix(meta.Timestamp, 0).UTC(),
	}
	if meta.ProvenanceHash != nil {
		nft.ProvenanceHash = *meta.ProvenanceHash
	}
	return nft
}

func ToMarketplaceListing(l *domain.Listing) MarketplaceListing {
	return MarketplaceListing{
		TokenID:        l.TokenID,
		Name:           l.Name,
		Description:    l.Description,
		ImageURL:       l.ImageURL,
		ContentType:    string(l.ContentType),
		Price:          l.Price,
		Seller:         l.SellerAddress,
		ListingType:    string(l.ListingType),
		AuctionEndTime: l.AuctionEndTime,
		HighestBid:     l.HighestBid,
		TotalRoyalty:   l.TotalRoyalty,
		Creator:        l.CreatorAddress,
		CreatedAt:      l.CreatedAt.Unix(),
	}
}

// FromMarketplaceListing keys listings by token id, matching the contracts'
// one-active-listing-per-token rule.
func FromMarketplaceListing(m MarketplaceListing) *domain.Listing {
	listingType := domain.ListingType(m.ListingType)
	if listingType == "" {
		listingType = domain.ListingTypeFixed
	}
	createdAt := time.Unix(m.CreatedAt, 0).UTC()
	if m.CreatedAt == 0 {
		createdAt = time.Now().UTC()
	}
	return &domain.Listing{
		ListingID:      m.TokenID,
		TokenID:        m.TokenID,
		SellerAddress:  m.Seller,
		Name:           m.Name,
		Description:    m.Description,
		ImageURL:       m.ImageURL,
		ContentType:    domain.ContentType(m.ContentType),
		Price:          m.Price,
		ListingType:    listingType,
		AuctionEndTime: m.AuctionEndTime,
		HighestBid:     m.HighestBid,
		TotalRoyalty:   m.TotalRoyalty,
		CreatorAddress: m.Creator,
		CreatedAt:      createdAt,
	}
}

func ToFeaturedNFT(l *domain.Listing) FeaturedNFT {
	return FeaturedNFT{
		TokenID:  l.TokenID,
		Name:     l.Name,
		ImageURL: l.ImageURL,
		Creator:  l.CreatorAddress,
		Price:    l.Price,
	}
}

func ToUserNFTItem(n *domain.NFT, listed bool) UserNFTItem {
	return UserNFTItem{
		TokenID:     n.TokenID,
		Name:        n.Name,
		ImageURL:    n.ImageURL,
		ContentType: string(n.ContentType),
		IsListed:    listed,
	}
}

func ToMarketStatsResponse(s domain.MarketStats) MarketStatsResponse {
	return MarketStatsResponse{
		TotalNFTs:     s.TotalNFTs,
		TotalListings: s.TotalListings,
		TotalCreators: s.TotalCreators,
		TotalVolume:   fmt.Sprintf("%.2f", s.TotalVolume),
	}
}

func ToDNAResponse(dna *domain.ContentDNA, traits string, rarity float64) DNAResponse {
	genes := make(map[string]GeneDTO, len(dna.Genes))
	for geneType, gene := range dna.Genes {
		genes[string(geneType)] = GeneDTO{
			Value:        gene.Value,
			Dominant:     gene.Dominant,
			MutationRate: gene.MutationRate,
		}
	}
	return DNAResponse{
		DNAHash:      dna.Hash,
		Genes:        genes,
		Generation:   dna.Generation,
		ParentHashes: dna.ParentHashes,
		Mutations:    dna.MutationHistory,
		Traits:       traits,
		RarityScore:  rarity,
	}
}
