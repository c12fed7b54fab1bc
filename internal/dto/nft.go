package dto

// NFTMetadata is the index record shape shared by public reads and the
// internal indexing API. Timestamp is unix seconds.
type NFTMetadata struct {
	TokenID        int64   `json:"token_id"`
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Image          string  `json:"image"`
	ContentType    string  `json:"content_type" binding:"required"`
	CreatorAddress string  `json:"creator_address" binding:"required"`
	ModelVersion   string  `json:"model_version"`
	Timestamp      int64   `json:"timestamp"`
	ProvenanceHash *string `json:"provenance_hash"`
}

type NFTListResponse struct {
	NFTs     []NFTMetadata `json:"nfts"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type ProvenanceResponse struct {
	TokenID        int64    `json:"token_id"`
	ProvenanceHash string   `json:"provenance_hash"`
	CreatorAddress string   `json:"creator_address"`
	ModelVersion   string   `json:"model_version"`
	Timestamp      int64    `json:"timestamp"`
	Parents        []string `json:"parents"`
	Children       []string `json:"children"`
}

type MarketplaceListing struct {
	TokenID        int64   `json:"token_id"`
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	ContentType    string  `json:"content_type" binding:"required"`
	Price          string  `json:"price" binding:"required"`
	Seller         string  `json:"seller" binding:"required"`
	ListingType    string  `json:"listing_type"`
	AuctionEndTime *int64  `json:"auction_end_time"`
	HighestBid     *string `json:"highest_bid"`
	TotalRoyalty   int     `json:"total_royalty"`
	Creator        string  `json:"creator"`
	CreatedAt      int64   `json:"created_at"`
}

type MarketplaceListResponse struct {
	Items      []MarketplaceListing `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

type FeaturedNFT struct {
	TokenID  int64  `json:"tokenId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Creator  string `json:"creator"`
	Price    string `json:"price"`
}

type MarketStatsResponse struct {
	TotalNFTs     int    `json:"totalNFTs"`
	TotalListings int    `json:"totalListings"`
	TotalCreators int    `json:"totalCreators"`
	TotalVolume   string `json:"totalVolume"`
}

// UserNFTItem is the compact card used by profile pages.
type UserNFTItem struct {
	TokenID     int64  `json:"tokenId"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	ContentType string `json:"contentType"`
	IsListed    bool   `json:"isListed"`
}

type UserStatsResponse struct {
	TotalCreated         int    `json:"totalCreated"`
	TotalOwned           int    `json:"totalOwned"`
	TotalListings        int    `json:"totalListings"`
	TotalSales           string `json:"totalSales"`
	TotalRoyaltiesEarned string `json:"totalRoyaltiesEarned"`
}
