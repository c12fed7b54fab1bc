package domain

import "time"

// NFT is one indexed token. Records arrive from the internal indexing API or
// from the simulated chain listener, never from user traffic directly.
type NFT struct {
	TokenID        int64       `json:"token_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"image_url"`
	ContentURL     string      `json:"content_url"`
	ContentType    ContentType `json:"content_type"`
	CreatorAddress string      `json:"creator_address"`
	OwnerAddress   string      `json:"owner_address"`
	MetadataCID    string      `json:"metadata_cid"`
	ProvenanceHash string      `json:"provenance_hash"`
	ModelVersion   string      `json:"model_version"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ListingType string

const (
	ListingTypeFixed   ListingType = "FIXED"
	ListingTypeAuction ListingType = "AUCTION"
)

// Listing is a marketplace entry for an indexed token. Price is a decimal
// string in ETH, as emitted by the contracts.
type Listing struct {
	ListingID      int64       `json:"listing_id"`
	TokenID        int64       `json:"token_id"`
	SellerAddress  string      `json:"seller_address"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"image_url"`
	ContentType    ContentType `json:"content_type"`
	Price          string      `json:"price"`
	ListingType    ListingType `json:"listing_type"`
	AuctionEndTime *int64      `json:"auction_end_time,omitempty"`
	HighestBid     *string     `json:"highest_bid,omitempty"`
	TotalRoyalty   int         `json:"total_royalty"`
	CreatorAddress string      `json:"creator_address"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ListingSort string

const (
	ListingSortRecent    ListingSort = "recent"
	ListingSortPriceLow  ListingSort = "price_low"
	ListingSortPriceHigh ListingSort = "price_high"
)

// NFTFilter narrows List queries. Zero values mean "no constraint".
type NFTFilter struct {
	ContentType ContentType
	Creator     string
	Page        int
	PageSize    int
}

// ListingFilter narrows marketplace queries.
type ListingFilter struct {
	ContentType ContentType
	ListingType ListingType
	MinPrice    *float64
	MaxPrice    *float64
	Search      string
	Sort        ListingSort
	Page        int
	Limit       int
}

// MarketStats is the aggregate block served by /api/stats.
type MarketStats struct {
	TotalNFTs     int     `json:"totalNFTs"`
	TotalListings int     `json:"totalListings"`
	TotalCreators int     `json:"totalCreators"`
	TotalVolume   float64 `json:"-"`
}
